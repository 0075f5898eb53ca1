package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
	"github.com/fuenr/myteam-web/pkg/logger"
)

// AuthHandler pantallas de login y cierre de sesión.
type AuthHandler struct {
	api      *backend.Client
	sessions *session.Manager
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(api *backend.Client, sessions *session.Manager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, log: log}
}

// ShowLogin renderiza el formulario de acceso.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Acceso"}, "layouts/base")
}

// Login procesa POST /login: autentica contra el backend y, si es correcto,
// persiste token + usuario en la sesión y navega a la pantalla por defecto.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return h.renderLoginError(c, "Email y contraseña son obligatorios")
	}

	token, user, err := h.api.Login(c.Context(), email, password)
	if err != nil {
		// En el login un 401 significa credenciales inválidas, no sesión
		// caducada: se muestra en línea y no se toca el almacén.
		if errors.Is(err, backend.ErrSessionExpired) {
			return h.renderLoginError(c, "Email o contraseña incorrectos")
		}
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderLoginError(c, apiErr.Message)
		}
		h.log.Error().Err(err).Msg("fallo de login contra el backend")
		return h.renderLoginError(c, "No se pudo iniciar sesión, inténtalo de nuevo")
	}

	h.sessions.Login(c, token, user)
	h.log.Info().Str("user_id", user.ID.String()).Msg("sesión iniciada")
	return c.Redirect(PathLanding, fiber.StatusFound)
}

// Logout limpia la sesión y vuelve al login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c)
	return c.Redirect(PathLogin, fiber.StatusFound)
}

func (h *AuthHandler) renderLoginError(c *fiber.Ctx, msg string) error {
	return c.Render("login", fiber.Map{
		"Title": "Acceso",
		"Error": msg,
		"Email": c.FormValue("email"),
	}, "layouts/base")
}
