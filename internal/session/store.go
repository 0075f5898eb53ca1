// Package session gestiona el espejo de sesión del cliente: dos entradas de
// texto (token Bearer y usuario serializado) en un almacén clave/valor que
// sobrevive recargas de página. La implementación por defecto usa cookies del
// navegador; la interfaz Store permite sustituir el mecanismo de persistencia.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Claves de las dos entradas persistidas.
const (
	TokenKey = "myteam_token"
	UserKey  = "myteam_user"
)

// Store almacén clave/valor ligado a la petición en curso.
type Store interface {
	Get(c *fiber.Ctx, key string) string
	Set(c *fiber.Ctx, key, value string)
	Delete(c *fiber.Ctx, key string)
}

// CookieStore implementación de Store sobre cookies HTTPOnly.
// El navegador es el dueño del almacén; aquí solo se lee y escribe.
type CookieStore struct {
	Domain string
	Secure bool
	MaxAge time.Duration // 0 = cookie de sesión de navegador
}

// NewCookieStore construye el almacén de cookies.
func NewCookieStore(domain string, secure bool) *CookieStore {
	return &CookieStore{Domain: domain, Secure: secure}
}

func (s *CookieStore) Get(c *fiber.Ctx, key string) string {
	return c.Cookies(key)
}

func (s *CookieStore) Set(c *fiber.Ctx, key, value string) {
	cookie := &fiber.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Domain:   s.Domain,
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.MaxAge > 0 {
		cookie.Expires = time.Now().Add(s.MaxAge)
	}
	c.Cookie(cookie)
}

func (s *CookieStore) Delete(c *fiber.Ctx, key string) {
	c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Domain:   s.Domain,
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}
