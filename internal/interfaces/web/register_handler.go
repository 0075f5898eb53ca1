package web

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/application/onboarding"
	"github.com/fuenr/myteam-web/internal/domain"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/pkg/logger"
)

// maxEmployeeRows filas del formulario de empleados del paso 3.
const maxEmployeeRows = 10

// RegisterHandler alta guiada en tres pasos: empresa -> administrador -> empleados.
// El paso actual y el id de la empresa creada viajan en la URL, de modo que un
// paso fallido se reintenta desde sí mismo y nunca se repite un paso ya aceptado.
type RegisterHandler struct {
	wizard *onboarding.Wizard
	log    *logger.Logger
}

// NewRegisterHandler construye el handler del alta guiada.
func NewRegisterHandler(wizard *onboarding.Wizard, log *logger.Logger) *RegisterHandler {
	return &RegisterHandler{wizard: wizard, log: log}
}

// Show renderiza el paso indicado en ?step (1 por defecto). Los pasos 2 y 3
// exigen el company_id arrastrado del paso 1; sin él se vuelve al paso 1.
func (h *RegisterHandler) Show(c *fiber.Ctx) error {
	step, _ := strconv.Atoi(c.Query("step", "1"))
	companyID := c.Query("company_id")

	if step < onboarding.StepCompany || step > onboarding.StepEmployees {
		step = onboarding.StepCompany
	}
	if step > onboarding.StepCompany {
		if _, err := uuid.Parse(companyID); err != nil {
			step = onboarding.StepCompany
			companyID = ""
		}
	}

	return h.renderStep(c, step, companyID, "")
}

// CreateCompany procesa el paso 1. Si el backend acepta, avanza al paso 2
// llevando el company_id; si falla, se queda en el paso 1 con el error en línea.
func (h *RegisterHandler) CreateCompany(c *fiber.Ctx) error {
	name := c.FormValue("name")
	cif := c.FormValue("cif")

	companyID, err := h.wizard.CreateCompany(c.Context(), name, cif)
	if err != nil {
		return h.renderStep(c, onboarding.StepCompany, "", stepError(err, "Nombre y CIF son obligatorios", "No se pudo crear la empresa"))
	}

	h.log.Info().Str("company_id", companyID.String()).Msg("empresa creada en onboarding")
	return c.Redirect(fmt.Sprintf("%s?step=%d&company_id=%s", PathRegister, onboarding.StepAdmin, companyID), fiber.StatusFound)
}

// CreateAdmin procesa el paso 2. Un fallo mantiene el asistente en el paso 2:
// la empresa ya creada permanece (los pasos no son transaccionales entre sí).
func (h *RegisterHandler) CreateAdmin(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.FormValue("company_id"))
	if err != nil {
		return h.renderStep(c, onboarding.StepCompany, "", "La empresa del paso anterior no es válida, vuelve a empezar")
	}

	err = h.wizard.CreateAdmin(c.Context(), companyID, c.FormValue("name"), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		return h.renderStep(c, onboarding.StepAdmin, companyID.String(), stepError(err, "Nombre, email y contraseña son obligatorios", "No se pudo crear el administrador"))
	}

	return c.Redirect(fmt.Sprintf("%s?step=%d&company_id=%s", PathRegister, onboarding.StepEmployees, companyID), fiber.StatusFound)
}

// CreateEmployees procesa el paso 3. Las filas incompletas se descartan; con
// cero filas válidas no se llama al backend y el flujo termina igualmente en
// el login.
func (h *RegisterHandler) CreateEmployees(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.FormValue("company_id"))
	if err != nil {
		return h.renderStep(c, onboarding.StepCompany, "", "La empresa del paso anterior no es válida, vuelve a empezar")
	}

	rows := make([]onboarding.EmployeeRow, 0, maxEmployeeRows)
	for i := 0; i < maxEmployeeRows; i++ {
		rows = append(rows, onboarding.EmployeeRow{
			Name:     c.FormValue(fmt.Sprintf("emp_name_%d", i)),
			Email:    c.FormValue(fmt.Sprintf("emp_email_%d", i)),
			Password: c.FormValue(fmt.Sprintf("emp_password_%d", i)),
		})
	}

	count, err := h.wizard.CreateEmployees(c.Context(), companyID, rows)
	if err != nil {
		return h.renderStep(c, onboarding.StepEmployees, companyID.String(), stepError(err, "Revisa las filas de empleados", "No se pudieron crear los empleados"))
	}

	h.log.Info().Int("employees", count).Str("company_id", companyID.String()).Msg("onboarding completado")
	return c.Redirect(PathLogin, fiber.StatusFound)
}

func (h *RegisterHandler) renderStep(c *fiber.Ctx, step int, companyID, errMsg string) error {
	return c.Render("register", fiber.Map{
		"Title":     "Alta de empresa",
		"Step":      step,
		"CompanyID": companyID,
		"Rows":      make([]int, maxEmployeeRows),
		"Error":     errMsg,
	}, "layouts/base")
}

// stepError elige el mensaje en línea para un fallo de paso: validación local,
// mensaje de negocio del backend o genérico de transporte.
func stepError(err error, invalidMsg, genericMsg string) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, domain.ErrInvalidInput):
		return invalidMsg
	default:
		return genericMsg
	}
}
