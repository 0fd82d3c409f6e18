package dto

import (
	"database/sql"

	"github.com/ComfortN/restaurent-cms/internal/domains/user/model"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=super_admin restaurant_admin user"`
	FCMToken string `json:"fcm_token" validate:"omitempty,max=255"`
}

func (r *RegisterUserRequest) ToModel(hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	id := uuid.NewString()

	return model.User{
		ID:       id,
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FCMToken: sql.NullString{String: r.FCMToken, Valid: r.FCMToken != ""},
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	Active       bool   `json:"active"`
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Role = mod.Role
	r.Active = mod.Active

	if mod.RestaurantID.Valid {
		r.RestaurantID = mod.RestaurantID.String
	}
}
