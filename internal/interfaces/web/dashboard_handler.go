package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fuenr/myteam-web/internal/application/authz"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
)

// DashboardHandler pantalla de indicadores.
type DashboardHandler struct {
	api      *backend.Client
	sessions *session.Manager
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(api *backend.Client, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{api: api, sessions: sessions}
}

// Show carga GET /dashboard/stats y renderiza los indicadores. La colección
// se descarta al navegar: no hay caché entre vistas.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	user := h.sessions.Current(c)

	stats, err := h.api.DashboardStats(c.Context(), h.sessions.Token(c))
	if err != nil {
		return err
	}

	return c.Render("dashboard", fiber.Map{
		"Title":       "Dashboard",
		"CurrentUser": user,
		"IsAdmin":     authz.IsAdmin(user),
		"Stats":       stats.DisplayStats,
	}, "layouts/base")
}
