package model

import (
	"context"

	"github.com/ComfortN/restaurent-cms/shared/constant"
)

// Caller is the authenticated identity on whose behalf a request runs.
// Handlers build it from the request context once and pass it explicitly into
// services, so authorization decisions are pure functions of the caller and
// the target entity rather than of ambient request state.
type Caller struct {
	ID    string
	Email string
	Role  string
}

func CallerFromContext(ctx context.Context) Caller {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Caller{
		ID:    id,
		Email: email,
		Role:  role,
	}
}

func (c Caller) IsSuperAdmin() bool {
	return c.Role == constant.RoleSuperAdmin
}

func (c Caller) IsRestaurantAdmin() bool {
	return c.Role == constant.RoleRestaurantAdmin
}

// IsStaff reports whether the caller manages restaurants rather than dining
// at them.
func (c Caller) IsStaff() bool {
	return c.IsSuperAdmin() || c.IsRestaurantAdmin()
}

// CanManageRestaurant reports whether the caller may mutate the restaurant
// owned by ownerID.
func (c Caller) CanManageRestaurant(ownerID string) bool {
	if c.IsSuperAdmin() {
		return true
	}

	return c.IsRestaurantAdmin() && c.ID != "" && c.ID == ownerID
}
