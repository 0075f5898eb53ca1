package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company empresa a la que pertenecen los usuarios. Se crea una sola vez
// durante el alta guiada (onboarding).
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CIF       string    `json:"cif"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompanyRequest cuerpo de POST /companies.
type CreateCompanyRequest struct {
	Name string `json:"name"`
	CIF  string `json:"cif"`
}
