package model

import (
	"github.com/ComfortN/restaurent-cms/shared/model"
)

const (
	TableName  = "restaurants"
	EntityName = "restaurant"

	FieldID             = "id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCuisine        = "cuisine"
	FieldLocation       = "location"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldAdminID        = "admin_id"
	FieldTimeSlots      = "time_slots"
	FieldOperatingHours = "operating_hours"
)

type Restaurant struct {
	ID             string       `db:"id"`
	Name           string       `db:"name"`
	Description    string       `db:"description"`
	Cuisine        string       `db:"cuisine"`
	Location       string       `db:"location"`
	Phone          string       `db:"phone"`
	Email          string       `db:"email"`
	AdminID        string       `db:"admin_id"`
	TimeSlots      SlotList     `db:"time_slots"`
	OperatingHours WeekSchedule `db:"operating_hours"`
	model.Metadata
}
