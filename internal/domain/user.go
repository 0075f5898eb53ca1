package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role etiqueta de autorización de un usuario. Es el único discriminante
// de permisos en todas las pantallas.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid indica si el rol es uno de los dos conocidos.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User usuario de MyTeam tal como lo devuelve el backend.
// La app solo mantiene copias transitorias por vista; la única copia que
// sobrevive a la navegación es el espejo de sesión.
type User struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate comprueba la forma mínima de un usuario recibido del backend.
func (u *User) Validate() error {
	if u.ID == uuid.Nil || u.Email == "" || !u.Role.Valid() {
		return ErrMalformedPayload
	}
	return nil
}

// UpdateUserRequest cuerpo de PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// CreateUserRequest cuerpo de POST /users y de cada fila del alta por lotes.
type CreateUserRequest struct {
	CompanyID uuid.UUID `json:"company_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
}
