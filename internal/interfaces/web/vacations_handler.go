package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/application/authz"
	"github.com/fuenr/myteam-web/internal/domain"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
)

const dateLayout = "2006-01-02"

// VacationsHandler solicitudes de vacaciones del usuario de sesión.
type VacationsHandler struct {
	api      *backend.Client
	sessions *session.Manager
}

// NewVacationsHandler construye el handler de vacaciones.
func NewVacationsHandler(api *backend.Client, sessions *session.Manager) *VacationsHandler {
	return &VacationsHandler{api: api, sessions: sessions}
}

// vacationRow fila de la tabla con los permisos ya resueltos.
type vacationRow struct {
	domain.Vacation
	Days    int
	CanEdit bool
}

// List carga GET /users/{id}/vacations y calcula por fila la duración
// inclusiva y si la sesión puede editarla.
func (h *VacationsHandler) List(c *fiber.Ctx) error {
	current := h.sessions.Current(c)

	vacations, err := h.api.ListVacations(c.Context(), h.sessions.Token(c), current.ID)
	if err != nil {
		return err
	}

	rows := make([]vacationRow, 0, len(vacations))
	for _, v := range vacations {
		rows = append(rows, vacationRow{
			Vacation: v,
			Days:     v.Days(),
			CanEdit:  authz.CanEditVacation(current, v),
		})
	}

	return c.Render("vacations", fiber.Map{
		"Title":       "Vacaciones",
		"CurrentUser": current,
		"IsAdmin":     authz.IsAdmin(current),
		"Rows":        rows,
	}, "layouts/base")
}

// ShowForm renderiza el formulario de solicitud (alta o edición).
func (h *VacationsHandler) ShowForm(c *fiber.Ctx) error {
	current := h.sessions.Current(c)

	data := fiber.Map{
		"Title":        "Solicitar vacaciones",
		"CurrentUser":  current,
		"IsAdmin":      authz.IsAdmin(current),
		"CanSetStatus": false,
		"Action":       "/vacations",
		"StartDate":    time.Now().Format(dateLayout),
		"EndDate":      "",
		"Status":       string(domain.VacationStatusPending),
		"Statuses":     []domain.VacationStatus{domain.VacationStatusPending, domain.VacationStatusApproved, domain.VacationStatusRejected},
	}

	if idParam := c.Params("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return fiber.ErrNotFound
		}
		vacation, err := h.find(c, id)
		if err != nil {
			return err
		}
		if !authz.CanEditVacation(current, *vacation) {
			// Sin permiso de edición (p. ej. ya aprobada y la sesión no es
			// admin): la acción se deniega antes de pintar el formulario.
			return c.Redirect("/vacations", fiber.StatusFound)
		}
		data["Title"] = "Editar vacaciones"
		data["Action"] = "/vacations/" + id.String()
		data["CanSetStatus"] = authz.CanSetVacationStatus(current)
		data["StartDate"] = vacation.StartDate.Format(dateLayout)
		data["EndDate"] = vacation.EndDate.Format(dateLayout)
		data["Status"] = string(vacation.Status)
	}

	return c.Render("vacation_form", data, "layouts/base")
}

// Create emite POST /users/{id}/vacations con las fechas del formulario.
func (h *VacationsHandler) Create(c *fiber.Ctx) error {
	current := h.sessions.Current(c)

	start, end, errMsg := parseDateRange(c.FormValue("start_date"), c.FormValue("end_date"))
	if errMsg != "" {
		return h.renderFormError(c, nil, errMsg)
	}

	_, err := h.api.CreateVacation(c.Context(), h.sessions.Token(c), current.ID, domain.VacationRequest{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderFormError(c, nil, apiErr.Message)
		}
		return err
	}

	return c.Redirect("/vacations", fiber.StatusFound)
}

// Update emite PUT /vacations/{id}. El estado solo viaja en el cuerpo cuando
// la sesión es de administrador; el dueño no administrador solo puede mover
// fechas y únicamente mientras la solicitud siga PENDING.
func (h *VacationsHandler) Update(c *fiber.Ctx) error {
	current := h.sessions.Current(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	vacation, err := h.find(c, id)
	if err != nil {
		return err
	}
	if !authz.CanEditVacation(current, *vacation) {
		return fiber.ErrForbidden
	}

	start, end, errMsg := parseDateRange(c.FormValue("start_date"), c.FormValue("end_date"))
	if errMsg != "" {
		return h.renderFormError(c, vacation, errMsg)
	}

	req := domain.VacationRequest{StartDate: start, EndDate: end}
	if authz.CanSetVacationStatus(current) {
		status := domain.VacationStatus(c.FormValue("status"))
		if !status.Valid() {
			return h.renderFormError(c, vacation, "Estado no válido")
		}
		req.Status = status
	}

	if _, err := h.api.UpdateVacation(c.Context(), h.sessions.Token(c), id, req); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderFormError(c, vacation, apiErr.Message)
		}
		return err
	}

	return c.Redirect("/vacations", fiber.StatusFound)
}

// ConfirmDelete paso de confirmación explícito previo al borrado.
func (h *VacationsHandler) ConfirmDelete(c *fiber.Ctx) error {
	current := h.sessions.Current(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	vacation, err := h.find(c, id)
	if err != nil {
		return err
	}

	return c.Render("vacation_delete", fiber.Map{
		"Title":       "Eliminar solicitud",
		"CurrentUser": current,
		"IsAdmin":     authz.IsAdmin(current),
		"Vacation":    vacation,
		"Days":        vacation.Days(),
	}, "layouts/base")
}

// Delete emite DELETE /vacations/{id} y vuelve al listado.
func (h *VacationsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := h.api.DeleteVacation(c.Context(), h.sessions.Token(c), id); err != nil {
		return err
	}
	return c.Redirect("/vacations", fiber.StatusFound)
}

// find localiza una solicitud dentro de la colección del usuario de sesión.
// El backend no expone GET de una solicitud individual.
func (h *VacationsHandler) find(c *fiber.Ctx, id uuid.UUID) (*domain.Vacation, error) {
	current := h.sessions.Current(c)
	vacations, err := h.api.ListVacations(c.Context(), h.sessions.Token(c), current.ID)
	if err != nil {
		return nil, err
	}
	for i := range vacations {
		if vacations[i].ID == id {
			return &vacations[i], nil
		}
	}
	return nil, fiber.ErrNotFound
}

func (h *VacationsHandler) renderFormError(c *fiber.Ctx, vacation *domain.Vacation, msg string) error {
	current := h.sessions.Current(c)
	data := fiber.Map{
		"Title":        "Solicitar vacaciones",
		"CurrentUser":  current,
		"IsAdmin":      authz.IsAdmin(current),
		"CanSetStatus": vacation != nil && authz.CanSetVacationStatus(current),
		"Action":       "/vacations",
		"StartDate":    c.FormValue("start_date"),
		"EndDate":      c.FormValue("end_date"),
		"Status":       c.FormValue("status"),
		"Statuses":     []domain.VacationStatus{domain.VacationStatusPending, domain.VacationStatusApproved, domain.VacationStatusRejected},
		"Error":        msg,
	}
	if vacation != nil {
		data["Title"] = "Editar vacaciones"
		data["Action"] = "/vacations/" + vacation.ID.String()
	}
	return c.Render("vacation_form", data, "layouts/base")
}

// parseDateRange valida el rango de fechas del formulario (YYYY-MM-DD, inicio
// no posterior al fin). Devuelve las fechas normalizadas o el mensaje de error.
func parseDateRange(startStr, endStr string) (string, string, string) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return "", "", "La fecha de inicio no es válida"
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return "", "", "La fecha de fin no es válida"
	}
	if start.After(end) {
		return "", "", "La fecha de inicio no puede ser posterior a la de fin"
	}
	return start.Format(dateLayout), end.Format(dateLayout), ""
}
