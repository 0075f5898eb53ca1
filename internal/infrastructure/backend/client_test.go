package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuenr/myteam-web/internal/domain"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/pkg/logger"
)

func newClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return backend.New(srv.URL, 5*time.Second, log)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Toda petición autenticada lleva Content-Type JSON y el token en Authorization.
func TestClient_CabecerasConToken(t *testing.T) {
	userID := uuid.New()
	var got *http.Request
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		writeJSON(w, http.StatusOK, domain.User{
			ID: userID, CompanyID: uuid.New(), Name: "Ana", Email: "ana@acme.es", Role: domain.RoleAdmin,
		})
	})

	u, err := c.GetUser(context.Background(), "tok-123", userID)
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	require.NotNil(t, got)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "/users/"+userID.String(), got.URL.Path)
}

// Las rutas públicas del onboarding no llevan Authorization.
func TestClient_SinTokenNoHayAuthorization(t *testing.T) {
	var auth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusCreated, domain.Company{ID: uuid.New(), Name: "Acme", CIF: "B1"})
	})

	_, err := c.CreateCompany(context.Background(), domain.CreateCompanyRequest{Name: "Acme", CIF: "B1"})
	require.NoError(t, err)
	assert.Empty(t, auth)
}

// Un 401 en cualquier endpoint se traduce en ErrSessionExpired, nunca en APIError.
func TestClient_401EsSesionExpirada(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token inválido"})
	})

	_, err := c.DashboardStats(context.Background(), "caducado")
	assert.ErrorIs(t, err, backend.ErrSessionExpired)

	var apiErr *backend.APIError
	assert.False(t, errors.As(err, &apiErr))
}

// Los errores de negocio llegan como {"error": "..."} y se exponen tal cual.
func TestClient_ErrorDeNegocio(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email ya registrado"})
	})

	_, err := c.CreateUser(context.Background(), domain.CreateUserRequest{Name: "Ana"})
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email ya registrado", apiErr.Message)
}

// Si el cuerpo de error no es JSON, se recurre al status text.
func TestClient_ErrorSinJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := c.DeleteUser(context.Background(), "tok", uuid.New())
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_Login(t *testing.T) {
	user := domain.User{ID: uuid.New(), CompanyID: uuid.New(), Name: "Ana", Email: "ana@acme.es", Role: domain.RoleAdmin}
	var body map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "ok",
			"token":   "tok-login",
			"user":    user,
		})
	})

	token, got, err := c.Login(context.Background(), "ana@acme.es", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", token)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "ana@acme.es", body["email"])
	assert.Equal(t, "secreto", body["password"])
}

// Una respuesta de login sin token o sin usuario se rechaza como payload malformado.
func TestClient_LoginPayloadIncompleto(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "ok", "token": ""})
	})

	_, _, err := c.Login(context.Background(), "ana@acme.es", "secreto")
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

// Las fechas de las solicitudes viajan como cadenas YYYY-MM-DD.
func TestClient_CreateVacation_FechasPlanas(t *testing.T) {
	var raw map[string]interface{}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusCreated, domain.Vacation{ID: uuid.New(), UserID: uuid.New(), Status: domain.VacationStatusPending})
	})

	_, err := c.CreateVacation(context.Background(), "tok", uuid.New(), domain.VacationRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", raw["start_date"])
	assert.Equal(t, "2024-07-15", raw["end_date"])
}
