package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractType modalidad de contrato. Los literales son los que espera el backend.
type ContractType string

const (
	ContractTypeIndefinite         ContractType = "Contrato indefinido"
	ContractTypeTemporary          ContractType = "Contrato temporal"
	ContractTypeTraining           ContractType = "Contrato formativo"
	ContractTypeFixedDiscontinuous ContractType = "Contrato fijo-discontinuo"
)

// ContractTypes lista de modalidades para los selects de formulario.
var ContractTypes = []ContractType{
	ContractTypeIndefinite,
	ContractTypeTemporary,
	ContractTypeTraining,
	ContractTypeFixedDiscontinuous,
}

// Valid indica si la modalidad es una de las cuatro conocidas.
func (t ContractType) Valid() bool {
	switch t {
	case ContractTypeIndefinite, ContractTypeTemporary, ContractTypeTraining, ContractTypeFixedDiscontinuous:
		return true
	}
	return false
}

// Contract contrato laboral de un usuario. Solo visible y editable por administradores.
type Contract struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"` // nil = indefinido
	Type      ContractType    `json:"type"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ContractRequest cuerpo de POST /users/{id}/contracts y PUT /contracts/{id}.
type ContractRequest struct {
	StartDate string          `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	Type      ContractType    `json:"type"`
	Position  string          `json:"position"`
	Salary    decimal.Decimal `json:"salary"`
}

// ValidateContractForm valida en cliente las mismas reglas que aplica el backend:
// posición obligatoria, salario no negativo y fecha fin coherente con la modalidad.
// El contrato indefinido no lleva fecha fin; el resto la exige y no puede ser
// anterior al inicio.
func ValidateContractForm(start time.Time, end *time.Time, typ ContractType, position string, salary decimal.Decimal) error {
	if position == "" || !typ.Valid() {
		return ErrInvalidInput
	}
	if salary.IsNegative() {
		return ErrInvalidInput
	}
	if typ == ContractTypeIndefinite {
		return nil
	}
	if end == nil || end.Before(start) {
		return ErrInvalidInput
	}
	return nil
}
