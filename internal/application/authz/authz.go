// Package authz concentra los predicados de autorización que comparten todas
// las pantallas. La autoridad final es el backend; aquí solo se decide qué
// acciones se muestran o se bloquean antes de emitir la petición.
package authz

import (
	"github.com/google/uuid"

	"github.com/fuenr/myteam-web/internal/domain"
)

// IsAdmin es true si y solo si el rol del usuario de sesión es ADMIN.
func IsAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleAdmin
}

// IsSelf indica si el registro pertenece al usuario de sesión.
func IsSelf(u *domain.User, ownerID uuid.UUID) bool {
	return u != nil && u.ID == ownerID
}

// CanEdit edición de nombre/email: administrador o el propio usuario.
func CanEdit(u *domain.User, ownerID uuid.UUID) bool {
	return IsAdmin(u) || IsSelf(u, ownerID)
}

// CanChangeRole reasignar rol exige ADMIN estricto; ser uno mismo no basta.
func CanChangeRole(u *domain.User) bool {
	return IsAdmin(u)
}

// CanManageContracts los contratos son visibles y mutables solo por administradores.
func CanManageContracts(u *domain.User) bool {
	return IsAdmin(u)
}

// CanSetVacationStatus aprobar o rechazar una solicitud exige ADMIN.
func CanSetVacationStatus(u *domain.User) bool {
	return IsAdmin(u)
}

// CanEditVacation un administrador edita siempre; el dueño no administrador
// solo mientras la solicitud siga PENDING.
func CanEditVacation(u *domain.User, v domain.Vacation) bool {
	if IsAdmin(u) {
		return true
	}
	return IsSelf(u, v.UserID) && v.Status == domain.VacationStatusPending
}

// CanDeleteUser borrar usuarios exige ADMIN y nunca sobre uno mismo.
// Es política de cliente: se bloquea antes de emitir la petición, la imponga
// o no el backend.
func CanDeleteUser(actor *domain.User, targetID uuid.UUID) bool {
	return IsAdmin(actor) && !IsSelf(actor, targetID)
}
