package services

import "stays-backend/internal/models"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManage reports whether the actor may act on a record owned by ownerID.
func (a Actor) CanManage(ownerID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == ownerID
}
