package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuenr/myteam-web/internal/application/authz"
	"github.com/fuenr/myteam-web/internal/domain"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
)

// ContractsHandler contratos de un usuario. Toda la pantalla es solo para
// administradores: visibilidad y mutación.
type ContractsHandler struct {
	api      *backend.Client
	sessions *session.Manager
}

// NewContractsHandler construye el handler de contratos.
func NewContractsHandler(api *backend.Client, sessions *session.Manager) *ContractsHandler {
	return &ContractsHandler{api: api, sessions: sessions}
}

// requireAdmin corta la petición si la sesión no es de administrador.
func (h *ContractsHandler) requireAdmin(c *fiber.Ctx) error {
	if !authz.CanManageContracts(h.sessions.Current(c)) {
		return fiber.ErrForbidden
	}
	return nil
}

// List carga GET /users/{id}/contracts.
func (h *ContractsHandler) List(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	token := h.sessions.Token(c)
	target, err := h.api.GetUser(c.Context(), token, userID)
	if err != nil {
		return err
	}
	contracts, err := h.api.ListContracts(c.Context(), token, userID)
	if err != nil {
		return err
	}

	current := h.sessions.Current(c)
	return c.Render("contracts", fiber.Map{
		"Title":       "Contratos",
		"CurrentUser": current,
		"IsAdmin":     true,
		"Target":      target,
		"Contracts":   contracts,
	}, "layouts/base")
}

// ShowForm renderiza el formulario de contrato (alta o edición).
func (h *ContractsHandler) ShowForm(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	data := fiber.Map{
		"Title":        "Nuevo contrato",
		"CurrentUser":  h.sessions.Current(c),
		"IsAdmin":      true,
		"UserID":       userID.String(),
		"Types":        domain.ContractTypes,
		"Action":       "/users/" + userID.String() + "/contracts",
		"StartDate":    time.Now().Format(dateLayout),
		"EndDate":      "",
		"Position":     "",
		"Salary":       "",
		"SelectedType": string(domain.ContractTypeIndefinite),
	}

	if cidParam := c.Params("cid"); cidParam != "" {
		cid, err := uuid.Parse(cidParam)
		if err != nil {
			return fiber.ErrNotFound
		}
		contract, err := h.find(c, userID, cid)
		if err != nil {
			return err
		}
		data["Title"] = "Editar contrato"
		data["Action"] = "/users/" + userID.String() + "/contracts/" + cid.String()
		data["StartDate"] = contract.StartDate.Format(dateLayout)
		if contract.EndDate != nil {
			data["EndDate"] = contract.EndDate.Format(dateLayout)
		}
		data["Position"] = contract.Position
		data["Salary"] = contract.Salary.String()
		data["SelectedType"] = string(contract.Type)
	}

	return c.Render("contract_form", data, "layouts/base")
}

// Create emite POST /users/{id}/contracts.
func (h *ContractsHandler) Create(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	req, errMsg := h.parseForm(c)
	if errMsg != "" {
		return h.renderFormError(c, userID, nil, errMsg)
	}

	if _, err := h.api.CreateContract(c.Context(), h.sessions.Token(c), userID, *req); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderFormError(c, userID, nil, apiErr.Message)
		}
		return err
	}

	return c.Redirect("/users/"+userID.String()+"/contracts", fiber.StatusFound)
}

// Update emite PUT /contracts/{id}.
func (h *ContractsHandler) Update(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	cid, err := uuid.Parse(c.Params("cid"))
	if err != nil {
		return fiber.ErrNotFound
	}

	req, errMsg := h.parseForm(c)
	if errMsg != "" {
		return h.renderFormError(c, userID, &cid, errMsg)
	}

	if _, err := h.api.UpdateContract(c.Context(), h.sessions.Token(c), cid, *req); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderFormError(c, userID, &cid, apiErr.Message)
		}
		return err
	}

	return c.Redirect("/users/"+userID.String()+"/contracts", fiber.StatusFound)
}

// ConfirmDelete paso de confirmación explícito previo al borrado.
func (h *ContractsHandler) ConfirmDelete(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	cid, err := uuid.Parse(c.Params("cid"))
	if err != nil {
		return fiber.ErrNotFound
	}
	contract, err := h.find(c, userID, cid)
	if err != nil {
		return err
	}

	return c.Render("contract_delete", fiber.Map{
		"Title":       "Eliminar contrato",
		"CurrentUser": h.sessions.Current(c),
		"IsAdmin":     true,
		"UserID":      userID.String(),
		"Contract":    contract,
	}, "layouts/base")
}

// Delete emite DELETE /contracts/{id} y vuelve al listado.
func (h *ContractsHandler) Delete(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	cid, err := uuid.Parse(c.Params("cid"))
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := h.api.DeleteContract(c.Context(), h.sessions.Token(c), cid); err != nil {
		return err
	}
	return c.Redirect("/users/"+userID.String()+"/contracts", fiber.StatusFound)
}

// find localiza un contrato dentro de la colección del usuario; el backend no
// expone GET de un contrato individual.
func (h *ContractsHandler) find(c *fiber.Ctx, userID, cid uuid.UUID) (*domain.Contract, error) {
	contracts, err := h.api.ListContracts(c.Context(), h.sessions.Token(c), userID)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID == cid {
			return &contracts[i], nil
		}
	}
	return nil, fiber.ErrNotFound
}

// parseForm valida el formulario de contrato con las mismas reglas que el
// backend y lo convierte en cuerpo de petición. El contrato indefinido viaja
// sin fecha fin aunque el formulario la traiga.
func (h *ContractsHandler) parseForm(c *fiber.Ctx) (*domain.ContractRequest, string) {
	start, err := time.Parse(dateLayout, c.FormValue("start_date"))
	if err != nil {
		return nil, "La fecha de inicio no es válida"
	}

	typ := domain.ContractType(c.FormValue("type"))
	position := c.FormValue("position")

	salary, err := decimal.NewFromString(c.FormValue("salary"))
	if err != nil {
		return nil, "El salario no es válido"
	}

	var end *time.Time
	var endStr *string
	if raw := c.FormValue("end_date"); raw != "" && typ != domain.ContractTypeIndefinite {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, "La fecha de fin no es válida"
		}
		end = &parsed
		formatted := parsed.Format(dateLayout)
		endStr = &formatted
	}

	if err := domain.ValidateContractForm(start, end, typ, position, salary); err != nil {
		return nil, "Revisa los datos del contrato: posición, salario y fechas según la modalidad"
	}

	return &domain.ContractRequest{
		StartDate: start.Format(dateLayout),
		EndDate:   endStr,
		Type:      typ,
		Position:  position,
		Salary:    salary,
	}, ""
}

func (h *ContractsHandler) renderFormError(c *fiber.Ctx, userID uuid.UUID, cid *uuid.UUID, msg string) error {
	data := fiber.Map{
		"Title":        "Nuevo contrato",
		"CurrentUser":  h.sessions.Current(c),
		"IsAdmin":      true,
		"UserID":       userID.String(),
		"Types":        domain.ContractTypes,
		"Action":       "/users/" + userID.String() + "/contracts",
		"StartDate":    c.FormValue("start_date"),
		"EndDate":      c.FormValue("end_date"),
		"Position":     c.FormValue("position"),
		"Salary":       c.FormValue("salary"),
		"SelectedType": c.FormValue("type"),
		"Error":        msg,
	}
	if cid != nil {
		data["Title"] = "Editar contrato"
		data["Action"] = "/users/" + userID.String() + "/contracts/" + cid.String()
	}
	return c.Render("contract_form", data, "layouts/base")
}
