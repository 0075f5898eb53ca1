package domain

import (
	"time"

	"github.com/google/uuid"
)

// VacationStatus estado de una solicitud de vacaciones.
type VacationStatus string

const (
	VacationStatusPending  VacationStatus = "PENDING"
	VacationStatusApproved VacationStatus = "APPROVED"
	VacationStatusRejected VacationStatus = "REJECTED"
)

// Valid indica si el estado es uno de los tres conocidos.
func (s VacationStatus) Valid() bool {
	return s == VacationStatusPending || s == VacationStatusApproved || s == VacationStatusRejected
}

// Vacation solicitud de vacaciones de un usuario. Las transiciones de estado
// PENDING -> APPROVED/REJECTED las decide un administrador.
type Vacation struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Status    VacationStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Days devuelve la duración en días naturales, ambos extremos incluidos:
// floor(|fin - inicio| en días) + 1. Ej: 2024-01-01 a 2024-01-05 son 5 días.
func (v Vacation) Days() int {
	d := v.EndDate.Sub(v.StartDate)
	if d < 0 {
		d = -d
	}
	return int(d/(24*time.Hour)) + 1
}

// VacationRequest cuerpo de POST /users/{id}/vacations y PUT /vacations/{id}.
// Status solo se envía cuando el actor es administrador.
type VacationRequest struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Status    VacationStatus `json:"status,omitempty"`
}
