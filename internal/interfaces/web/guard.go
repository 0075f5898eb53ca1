package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fuenr/myteam-web/internal/session"
)

// Rutas de referencia del guard.
const (
	PathLogin    = "/login"
	PathRegister = "/register"
	PathLanding  = "/dashboard" // pantalla por defecto con sesión
)

// knownPrefixes pantallas protegidas registradas en el router.
var knownPrefixes = []string{"/dashboard", "/users", "/vacations", "/logout"}

// Decision resultado del guard para una navegación.
type Decision struct {
	Allow    bool
	Redirect string // destino cuando Allow es false
}

// Resolve decide, en función de la ruta y del estado de sesión, si la pantalla
// se sirve o se redirige. Es una función pura que se reevalúa en cada navegación.
//
//   - sin sesión + ruta protegida      -> redirige a login
//   - con sesión + login               -> redirige a la pantalla por defecto
//   - registro                         -> alcanzable siempre (es la puerta de alta de empresa)
//   - ruta desconocida                 -> pantalla por defecto si hay sesión, login si no
func Resolve(path string, authenticated bool) Decision {
	switch {
	case path == PathRegister || strings.HasPrefix(path, PathRegister+"/"):
		return Decision{Allow: true}
	case path == PathLogin:
		if authenticated {
			return Decision{Redirect: PathLanding}
		}
		return Decision{Allow: true}
	}

	known := false
	for _, prefix := range knownPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			known = true
			break
		}
	}

	if !authenticated {
		return Decision{Redirect: PathLogin}
	}
	if !known {
		return Decision{Redirect: PathLanding}
	}
	return Decision{Allow: true}
}

// Guard middleware que aplica Resolve sobre cada petición usando el estado de
// sesión actual.
func Guard(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Resolve(c.Path(), sessions.Current(c) != nil)
		if !decision.Allow {
			return c.Redirect(decision.Redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}
