package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Auth y alta
// ──────────────────────────────────────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Login llama a POST /login. Devuelve el token Bearer y el usuario autenticado;
// la persistencia de ambos en la sesión es responsabilidad del llamador.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", nil, err
	}
	if out.Token == "" || out.User == nil {
		return "", nil, domain.ErrMalformedPayload
	}
	if err := out.User.Validate(); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

// CreateCompany llama a POST /companies (público, paso 1 del onboarding).
func (c *Client) CreateCompany(ctx context.Context, in domain.CreateCompanyRequest) (*domain.Company, error) {
	var out domain.Company
	if err := c.do(ctx, http.MethodPost, "/companies", "", in, &out); err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, domain.ErrMalformedPayload
	}
	return &out, nil
}

// CreateUser llama a POST /users (público durante el onboarding: alta del administrador).
func (c *Client) CreateUser(ctx context.Context, in domain.CreateUserRequest) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPost, "/users", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchCreateUsers llama a POST /companies/{id}/users/batch con las filas válidas
// del paso 3 del onboarding.
func (c *Client) BatchCreateUsers(ctx context.Context, companyID uuid.UUID, rows []domain.CreateUserRequest) ([]domain.User, error) {
	var out []domain.User
	path := fmt.Sprintf("/companies/%s/users/batch", companyID)
	if err := c.do(ctx, http.MethodPost, path, "", rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

// GetUser llama a GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, token string, id uuid.UUID) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id.String(), token, nil, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser llama a PUT /users/{id} y devuelve el usuario actualizado.
func (c *Client) UpdateUser(ctx context.Context, token string, id uuid.UUID, in domain.UpdateUserRequest) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+id.String(), token, in, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser llama a DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id.String(), token, nil, nil)
}

// ListCompanyUsers llama a GET /companies/{id}/users.
func (c *Client) ListCompanyUsers(ctx context.Context, token string, companyID uuid.UUID) ([]domain.User, error) {
	var out []domain.User
	path := fmt.Sprintf("/companies/%s/users", companyID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

// DashboardStats llama a GET /dashboard/stats.
func (c *Client) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Contratos
// ──────────────────────────────────────────────────────────────────────────────

// ListContracts llama a GET /users/{id}/contracts.
func (c *Client) ListContracts(ctx context.Context, token string, userID uuid.UUID) ([]domain.Contract, error) {
	var out []domain.Contract
	path := fmt.Sprintf("/users/%s/contracts", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContract llama a POST /users/{id}/contracts.
func (c *Client) CreateContract(ctx context.Context, token string, userID uuid.UUID, in domain.ContractRequest) (*domain.Contract, error) {
	var out domain.Contract
	path := fmt.Sprintf("/users/%s/contracts", userID)
	if err := c.do(ctx, http.MethodPost, path, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContract llama a PUT /contracts/{id}.
func (c *Client) UpdateContract(ctx context.Context, token string, id uuid.UUID, in domain.ContractRequest) (*domain.Contract, error) {
	var out domain.Contract
	if err := c.do(ctx, http.MethodPut, "/contracts/"+id.String(), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContract llama a DELETE /contracts/{id}.
func (c *Client) DeleteContract(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/contracts/"+id.String(), token, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vacaciones
// ──────────────────────────────────────────────────────────────────────────────

// ListVacations llama a GET /users/{id}/vacations.
func (c *Client) ListVacations(ctx context.Context, token string, userID uuid.UUID) ([]domain.Vacation, error) {
	var out []domain.Vacation
	path := fmt.Sprintf("/users/%s/vacations", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateVacation llama a POST /users/{id}/vacations.
func (c *Client) CreateVacation(ctx context.Context, token string, userID uuid.UUID, in domain.VacationRequest) (*domain.Vacation, error) {
	var out domain.Vacation
	path := fmt.Sprintf("/users/%s/vacations", userID)
	if err := c.do(ctx, http.MethodPost, path, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVacation llama a PUT /vacations/{id}.
func (c *Client) UpdateVacation(ctx context.Context, token string, id uuid.UUID, in domain.VacationRequest) (*domain.Vacation, error) {
	var out domain.Vacation
	if err := c.do(ctx, http.MethodPut, "/vacations/"+id.String(), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVacation llama a DELETE /vacations/{id}.
func (c *Client) DeleteVacation(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/vacations/"+id.String(), token, nil, nil)
}
