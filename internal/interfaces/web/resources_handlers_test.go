package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuenr/myteam-web/internal/domain"
)

func vacationOf(u *domain.User, status domain.VacationStatus) domain.Vacation {
	return domain.Vacation{
		ID:        uuid.New(),
		UserID:    u.ID,
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Vacaciones
// ──────────────────────────────────────────────────────────────────────────────

// Una solicitud ya resuelta no es editable por su dueño: el formulario de
// edición rebota al listado sin pintar nada.
func TestVacaciones_ResueltaNoEditablePorElDueno(t *testing.T) {
	emp := sessionUser(domain.RoleEmployee)
	approved := vacationOf(emp, domain.VacationStatusApproved)

	up := newUpstream()
	up.on(http.MethodGet, "/users/"+emp.ID.String()+"/vacations", jsonResponse(http.StatusOK, []domain.Vacation{approved}))
	app := newTestApp(t, up)

	req := httptest.NewRequest(http.MethodGet, "/vacations/"+approved.ID.String()+"/edit", nil)
	withSession(t, req, emp)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/vacations", resp.Header.Get("Location"))
}

// El dueño no administrador mueve fechas de una solicitud PENDING, pero el
// campo de estado del formulario se ignora: el cuerpo del PUT viaja sin status.
func TestVacaciones_EmpleadoNoEnviaEstado(t *testing.T) {
	emp := sessionUser(domain.RoleEmployee)
	pending := vacationOf(emp, domain.VacationStatusPending)

	var raw map[string]interface{}
	up := newUpstream()
	up.on(http.MethodGet, "/users/"+emp.ID.String()+"/vacations", jsonResponse(http.StatusOK, []domain.Vacation{pending}))
	up.on(http.MethodPut, "/vacations/"+pending.ID.String(), func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		jsonResponse(http.StatusOK, pending)(w, r)
	})
	app := newTestApp(t, up)

	req := formRequest("/vacations/"+pending.ID.String(), url.Values{
		"start_date": {"2024-08-01"},
		"end_date":   {"2024-08-10"},
		"status":     {"APPROVED"}, // manipulado a mano, debe ignorarse
	})
	withSession(t, req, emp)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/vacations", resp.Header.Get("Location"))
	assert.Equal(t, "2024-08-01", raw["start_date"])
	assert.Equal(t, "2024-08-10", raw["end_date"])
	_, hasStatus := raw["status"]
	assert.False(t, hasStatus)
}

// El administrador sí resuelve la solicitud: el estado del formulario viaja
// en el cuerpo del PUT.
func TestVacaciones_AdminResuelveEstado(t *testing.T) {
	admin := sessionUser(domain.RoleAdmin)
	pending := vacationOf(admin, domain.VacationStatusPending)

	var raw map[string]interface{}
	up := newUpstream()
	up.on(http.MethodGet, "/users/"+admin.ID.String()+"/vacations", jsonResponse(http.StatusOK, []domain.Vacation{pending}))
	up.on(http.MethodPut, "/vacations/"+pending.ID.String(), func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		jsonResponse(http.StatusOK, pending)(w, r)
	})
	app := newTestApp(t, up)

	req := formRequest("/vacations/"+pending.ID.String(), url.Values{
		"start_date": {"2024-07-01"},
		"end_date":   {"2024-07-15"},
		"status":     {"APPROVED"},
	})
	withSession(t, req, admin)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "APPROVED", raw["status"])
}

// Un rango con inicio posterior al fin se rechaza en cliente sin llamar al backend.
func TestVacaciones_RangoInvalido(t *testing.T) {
	emp := sessionUser(domain.RoleEmployee)
	up := newUpstream()
	app := newTestApp(t, up)

	req := formRequest("/vacations", url.Values{
		"start_date": {"2024-08-10"},
		"end_date":   {"2024-08-01"},
	})
	withSession(t, req, emp)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "La fecha de inicio no puede ser posterior a la de fin")
	assert.Equal(t, 0, up.callCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Contratos
// ──────────────────────────────────────────────────────────────────────────────

// La pantalla de contratos es solo para administradores, también en lectura.
func TestContratos_EmpleadoNoVeContratos(t *testing.T) {
	emp := sessionUser(domain.RoleEmployee)
	up := newUpstream()
	app := newTestApp(t, up)

	req := httptest.NewRequest(http.MethodGet, "/users/"+emp.ID.String()+"/contracts", nil)
	withSession(t, req, emp)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, up.callCount())
}

// El contrato indefinido viaja sin fecha fin aunque el formulario la traiga.
func TestContratos_IndefinidoSinFechaFin(t *testing.T) {
	admin := sessionUser(domain.RoleAdmin)
	targetID := uuid.New()

	var raw map[string]interface{}
	up := newUpstream()
	up.on(http.MethodPost, "/users/"+targetID.String()+"/contracts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		jsonResponse(http.StatusCreated, domain.Contract{ID: uuid.New(), UserID: targetID})(w, r)
	})
	app := newTestApp(t, up)

	req := formRequest("/users/"+targetID.String()+"/contracts", url.Values{
		"start_date": {"2024-01-01"},
		"end_date":   {"2024-12-31"}, // se descarta por la modalidad
		"type":       {string(domain.ContractTypeIndefinite)},
		"position":   {"Backend"},
		"salary":     {"30000"},
	})
	withSession(t, req, admin)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/"+targetID.String()+"/contracts", resp.Header.Get("Location"))
	assert.Equal(t, "2024-01-01", raw["start_date"])
	assert.Nil(t, raw["end_date"])
	assert.Equal(t, string(domain.ContractTypeIndefinite), raw["type"])
}

// Un temporal sin fecha fin no pasa la validación de cliente: error en línea
// y ninguna petición al backend.
func TestContratos_TemporalExigeFechaFin(t *testing.T) {
	admin := sessionUser(domain.RoleAdmin)
	targetID := uuid.New()
	up := newUpstream()
	app := newTestApp(t, up)

	req := formRequest("/users/"+targetID.String()+"/contracts", url.Values{
		"start_date": {"2024-01-01"},
		"type":       {string(domain.ContractTypeTemporary)},
		"position":   {"Backend"},
		"salary":     {"30000"},
	})
	withSession(t, req, admin)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Revisa los datos del contrato")
	assert.Equal(t, 0, up.callCount())
}
