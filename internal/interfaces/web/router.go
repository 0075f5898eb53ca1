package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fuenr/myteam-web/internal/application/onboarding"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
	"github.com/fuenr/myteam-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	API      *backend.Client
	Sessions *session.Manager
	Wizard   *onboarding.Wizard
	Log      *logger.Logger
}

// Router registra las pantallas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(Guard(deps.Sessions))

	authHandler := NewAuthHandler(deps.API, deps.Sessions, deps.Log)
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	registerHandler := NewRegisterHandler(deps.Wizard, deps.Log)
	app.Get("/register", registerHandler.Show)
	app.Post("/register/company", registerHandler.CreateCompany)
	app.Post("/register/admin", registerHandler.CreateAdmin)
	app.Post("/register/employees", registerHandler.CreateEmployees)

	dashboardHandler := NewDashboardHandler(deps.API, deps.Sessions)
	app.Get("/dashboard", dashboardHandler.Show)

	usersHandler := NewUsersHandler(deps.API, deps.Sessions, deps.Log)
	app.Get("/users", usersHandler.List)
	app.Get("/users/:id", usersHandler.Detail)
	app.Post("/users/:id", usersHandler.Update)
	app.Get("/users/:id/delete", usersHandler.ConfirmDelete)
	app.Post("/users/:id/delete", usersHandler.Delete)

	contractsHandler := NewContractsHandler(deps.API, deps.Sessions)
	app.Get("/users/:id/contracts", contractsHandler.List)
	app.Get("/users/:id/contracts/new", contractsHandler.ShowForm)
	app.Post("/users/:id/contracts", contractsHandler.Create)
	app.Get("/users/:id/contracts/:cid/edit", contractsHandler.ShowForm)
	app.Post("/users/:id/contracts/:cid", contractsHandler.Update)
	app.Get("/users/:id/contracts/:cid/delete", contractsHandler.ConfirmDelete)
	app.Post("/users/:id/contracts/:cid/delete", contractsHandler.Delete)

	vacationsHandler := NewVacationsHandler(deps.API, deps.Sessions)
	app.Get("/vacations", vacationsHandler.List)
	app.Get("/vacations/new", vacationsHandler.ShowForm)
	app.Post("/vacations", vacationsHandler.Create)
	app.Get("/vacations/:id/edit", vacationsHandler.ShowForm)
	app.Post("/vacations/:id", vacationsHandler.Update)
	app.Get("/vacations/:id/delete", vacationsHandler.ConfirmDelete)
	app.Post("/vacations/:id/delete", vacationsHandler.Delete)
}

// ErrorHandler manejador de error a nivel de aplicación. Es el único
// suscriptor de la señal de sesión expirada del cliente del backend: purga
// las dos entradas del almacén y navega a login. Exactamente una purga y una
// navegación por 401; repetirlo no encuentra nada que borrar.
func ErrorHandler(sessions *session.Manager, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, backend.ErrSessionExpired) {
			sessions.Clear(c)
			return c.Redirect(PathLogin, fiber.StatusFound)
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("error no manejado en pantalla")
		return c.Status(code).Render("error", fiber.Map{
			"Title":  "Error",
			"Status": code,
		}, "layouts/base")
	}
}
