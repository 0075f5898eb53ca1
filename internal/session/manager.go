package session

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fuenr/myteam-web/internal/domain"
)

// Manager controlador de sesión: único dueño de las escrituras sobre el Store.
// El valor en memoria de cada petición se deriva siempre del espejo persistido,
// de modo que ambos solo divergen entre Login y la respuesta que fija las cookies.
type Manager struct {
	store Store
}

// NewManager construye el controlador sobre un Store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Current devuelve el usuario de la sesión, o nil si no hay sesión válida.
// Un usuario espejado sin token (o con token ya vencido) cuenta como no
// autenticado aunque la entrada de usuario siga en el almacén.
// Cualquier fallo de parseo del espejo degrada a "sin sesión", nunca a error.
func (m *Manager) Current(c *fiber.Ctx) *domain.User {
	if m.Token(c) == "" {
		return nil
	}

	raw := m.store.Get(c, UserKey)
	if raw == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(decoded, &u); err != nil {
		return nil
	}
	if err := u.Validate(); err != nil {
		return nil
	}
	return &u
}

// Token devuelve el token Bearer persistido, o "" si no existe o ya venció.
func (m *Manager) Token(c *fiber.Ctx) string {
	token := m.store.Get(c, TokenKey)
	if token == "" || tokenExpired(token) {
		return ""
	}
	return token
}

// Login persiste el token y el usuario tras una autenticación correcta.
func (m *Manager) Login(c *fiber.Ctx, token string, u *domain.User) {
	m.store.Set(c, TokenKey, token)
	m.setUser(c, u)
}

// Update re-serializa el usuario espejado (tras una edición del propio perfil)
// para que la copia persistida y el valor vivo no diverjan.
func (m *Manager) Update(c *fiber.Ctx, u *domain.User) {
	m.setUser(c, u)
}

// Logout elimina el token y el usuario del almacén.
func (m *Manager) Logout(c *fiber.Ctx) {
	m.store.Delete(c, TokenKey)
	m.store.Delete(c, UserKey)
}

// Clear alias de Logout para el manejador de sesión expirada. Idempotente:
// borrar entradas ausentes no tiene efecto.
func (m *Manager) Clear(c *fiber.Ctx) {
	m.Logout(c)
}

func (m *Manager) setUser(c *fiber.Ctx, u *domain.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	m.store.Set(c, UserKey, base64.RawURLEncoding.EncodeToString(raw))
}

// tokenExpired inspecciona el claim exp del token sin verificar la firma
// (verificar es asunto del backend). Evita pintar una pantalla que va a
// rebotar en el primer 401. Un token que no parsea como JWT se trata como
// opaco y se deja pasar: el backend tiene la última palabra.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
