package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/application/authz"
	"github.com/fuenr/myteam-web/internal/domain"
	"github.com/fuenr/myteam-web/internal/infrastructure/backend"
	"github.com/fuenr/myteam-web/internal/session"
	"github.com/fuenr/myteam-web/pkg/logger"
)

// UsersHandler directorio de usuarios de la empresa y ficha de usuario.
type UsersHandler struct {
	api      *backend.Client
	sessions *session.Manager
	log      *logger.Logger
}

// NewUsersHandler construye el handler de usuarios.
func NewUsersHandler(api *backend.Client, sessions *session.Manager, log *logger.Logger) *UsersHandler {
	return &UsersHandler{api: api, sessions: sessions, log: log}
}

// List carga GET /companies/{company_id}/users con la empresa del usuario de sesión.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	current := h.sessions.Current(c)

	users, err := h.api.ListCompanyUsers(c.Context(), h.sessions.Token(c), current.CompanyID)
	if err != nil {
		return err
	}

	return c.Render("users", fiber.Map{
		"Title":       "Usuarios",
		"CurrentUser": current,
		"IsAdmin":     authz.IsAdmin(current),
		"Users":       users,
	}, "layouts/base")
}

// Detail renderiza la ficha de un usuario con las acciones que permite la sesión.
func (h *UsersHandler) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	target, err := h.api.GetUser(c.Context(), h.sessions.Token(c), id)
	if err != nil {
		return err
	}

	var flash string
	if c.Query("saved") == "1" {
		flash = "Usuario actualizado"
	}

	return h.renderDetail(c, target, flash, selfDeleteMessage(c))
}

// Update procesa PUT /users/{id} vía formulario. El campo de rol solo se tiene
// en cuenta si la sesión es de administrador; un no administrador conserva el
// rol que el registro ya tenía. Si el editado es el propio usuario, el espejo
// de sesión se actualiza para que no diverja de la copia persistida.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	current := h.sessions.Current(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !authz.CanEdit(current, id) {
		return fiber.ErrForbidden
	}

	token := h.sessions.Token(c)
	target, err := h.api.GetUser(c.Context(), token, id)
	if err != nil {
		return err
	}

	req := domain.UpdateUserRequest{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
		Role:  target.Role, // se preserva salvo reasignación por administrador
	}
	if authz.CanChangeRole(current) {
		role := domain.Role(c.FormValue("role"))
		if !role.Valid() {
			return h.renderDetail(c, target, "", "Rol no válido")
		}
		req.Role = role
	}
	if req.Name == "" || req.Email == "" {
		return h.renderDetail(c, target, "", "Nombre y email son obligatorios")
	}

	updated, err := h.api.UpdateUser(c.Context(), token, id, req)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderDetail(c, target, "", apiErr.Message)
		}
		return err
	}

	if authz.IsSelf(current, id) {
		h.sessions.Update(c, updated)
	}

	h.log.Info().Str("user_id", id.String()).Msg("usuario actualizado")
	return c.Redirect("/users/"+id.String()+"?saved=1", fiber.StatusFound)
}

// ConfirmDelete paso de confirmación explícito previo al borrado.
func (h *UsersHandler) ConfirmDelete(c *fiber.Ctx) error {
	current := h.sessions.Current(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !authz.CanDeleteUser(current, id) {
		return c.Redirect("/users/"+id.String()+"?err=self_delete", fiber.StatusFound)
	}

	target, err := h.api.GetUser(c.Context(), h.sessions.Token(c), id)
	if err != nil {
		return err
	}

	return c.Render("user_delete", fiber.Map{
		"Title":       "Eliminar usuario",
		"CurrentUser": current,
		"IsAdmin":     authz.IsAdmin(current),
		"Target":      target,
	}, "layouts/base")
}

// Delete emite DELETE /users/{id}. El auto-borrado del administrador se
// bloquea aquí, antes de emitir ninguna petición: es política de cliente,
// la imponga o no el backend.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	current := h.sessions.Current(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if !authz.CanDeleteUser(current, id) {
		return c.Redirect("/users/"+id.String()+"?err=self_delete", fiber.StatusFound)
	}

	if err := h.api.DeleteUser(c.Context(), h.sessions.Token(c), id); err != nil {
		return err
	}

	h.log.Info().Str("user_id", id.String()).Msg("usuario eliminado")
	return c.Redirect("/users", fiber.StatusFound)
}

func (h *UsersHandler) renderDetail(c *fiber.Ctx, target *domain.User, flash, errMsg string) error {
	current := h.sessions.Current(c)
	return c.Render("user_detail", fiber.Map{
		"Title":         "Ficha de usuario",
		"CurrentUser":   current,
		"IsAdmin":       authz.IsAdmin(current),
		"Target":        target,
		"CanEdit":       authz.CanEdit(current, target.ID),
		"CanChangeRole": authz.CanChangeRole(current),
		"CanDelete":     authz.CanDeleteUser(current, target.ID),
		"IsSelf":        authz.IsSelf(current, target.ID),
		"Flash":         flash,
		"Error":         errMsg,
		"Roles":         []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
	}, "layouts/base")
}

func selfDeleteMessage(c *fiber.Ctx) string {
	if c.Query("err") == "self_delete" {
		return "No puedes eliminar tu propio usuario"
	}
	return ""
}
