package model

import (
	"database/sql"

	"github.com/ComfortN/restaurent-cms/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldRestaurantID = "restaurant_id"
	FieldFCMToken     = "fcm_token"
	FieldActive       = "active"
)

type User struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Password     string         `db:"password"`
	Role         string         `db:"role"`
	RestaurantID sql.NullString `db:"restaurant_id"`
	FCMToken     sql.NullString `db:"fcm_token"`
	Active       bool           `db:"active"`
	model.Metadata
}
