// Package onboarding implementa el alta guiada en tres pasos: empresa ->
// administrador -> empleados en lote. Los pasos son estrictamente secuenciales
// y cada uno depende del éxito del anterior; no hay vuelta atrás una vez que
// la llamada de un paso ha sido aceptada por el backend.
//
// Los pasos no son transaccionales entre sí: si el paso 2 o 3 falla, la
// empresa (y el administrador, en su caso) ya creados permanecen. El flujo se
// retoma en el paso fallido, nunca se compensa ni se repite desde el paso 1.
package onboarding

import (
	"context"

	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/domain"
)

// Pasos del asistente.
const (
	StepCompany   = 1
	StepAdmin     = 2
	StepEmployees = 3
)

// Backend subconjunto del cliente del API que necesita el asistente.
type Backend interface {
	CreateCompany(ctx context.Context, in domain.CreateCompanyRequest) (*domain.Company, error)
	CreateUser(ctx context.Context, in domain.CreateUserRequest) (*domain.User, error)
	BatchCreateUsers(ctx context.Context, companyID uuid.UUID, rows []domain.CreateUserRequest) ([]domain.User, error)
}

// Wizard caso de uso del alta guiada.
type Wizard struct {
	api Backend
}

// NewWizard construye el asistente sobre el cliente del backend.
func NewWizard(api Backend) *Wizard {
	return &Wizard{api: api}
}

// CreateCompany ejecuta el paso 1. Devuelve el id de la empresa creada, que
// se arrastra a los pasos siguientes.
func (w *Wizard) CreateCompany(ctx context.Context, name, cif string) (uuid.UUID, error) {
	if name == "" || cif == "" {
		return uuid.Nil, domain.ErrInvalidInput
	}
	company, err := w.api.CreateCompany(ctx, domain.CreateCompanyRequest{Name: name, CIF: cif})
	if err != nil {
		return uuid.Nil, err
	}
	return company.ID, nil
}

// CreateAdmin ejecuta el paso 2: alta del usuario administrador de la empresa.
func (w *Wizard) CreateAdmin(ctx context.Context, companyID uuid.UUID, name, email, password string) error {
	if companyID == uuid.Nil || name == "" || email == "" || password == "" {
		return domain.ErrInvalidInput
	}
	_, err := w.api.CreateUser(ctx, domain.CreateUserRequest{
		CompanyID: companyID,
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      domain.RoleAdmin,
	})
	return err
}

// EmployeeRow fila del formulario de empleados del paso 3.
type EmployeeRow struct {
	Name     string
	Email    string
	Password string
}

// ValidRows filtra las filas con nombre, email y password no vacíos y las
// convierte en peticiones de alta con rol EMPLOYEE.
func ValidRows(rows []EmployeeRow) []domain.CreateUserRequest {
	out := make([]domain.CreateUserRequest, 0, len(rows))
	for _, r := range rows {
		if r.Name == "" || r.Email == "" || r.Password == "" {
			continue
		}
		out = append(out, domain.CreateUserRequest{
			Name:     r.Name,
			Email:    r.Email,
			Password: r.Password,
			Role:     domain.RoleEmployee,
		})
	}
	return out
}

// CreateEmployees ejecuta el paso 3. Con cero filas válidas no se emite
// ninguna llamada y el flujo se da por completado igualmente. Devuelve el
// número de empleados enviados al backend.
func (w *Wizard) CreateEmployees(ctx context.Context, companyID uuid.UUID, rows []EmployeeRow) (int, error) {
	if companyID == uuid.Nil {
		return 0, domain.ErrInvalidInput
	}
	valid := ValidRows(rows)
	if len(valid) == 0 {
		return 0, nil
	}
	if _, err := w.api.BatchCreateUsers(ctx, companyID, valid); err != nil {
		return 0, err
	}
	return len(valid), nil
}
