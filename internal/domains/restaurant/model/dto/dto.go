package dto

import (
	"github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
	"github.com/ComfortN/restaurent-cms/shared"
	gDto "github.com/ComfortN/restaurent-cms/shared/dto"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/google/uuid"
)

type SlotRequest struct {
	Time     string `json:"time"     validate:"required,max=20"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

type HoursRequest struct {
	Open  string `json:"open"  validate:"required,max=5"`
	Close string `json:"close" validate:"required,max=5"`
}

type CreateRestaurantRequest struct {
	Name           string                  `json:"name"        validate:"required,max=100"`
	Description    string                  `json:"description" validate:"omitempty,max=1000"`
	Cuisine        string                  `json:"cuisine"     validate:"omitempty,max=100"`
	Location       string                  `json:"location"    validate:"required,max=255"`
	Phone          string                  `json:"phone"       validate:"omitempty,max=20"`
	Email          string                  `json:"email"       validate:"omitempty,email,max=100"`
	AdminID        string                  `json:"admin_id"    validate:"omitempty,uuid"`
	TimeSlots      []SlotRequest           `json:"time_slots"      validate:"omitempty,dive"`
	OperatingHours map[string]HoursRequest `json:"operating_hours" validate:"omitempty,dive"`
}

// ToModel builds the restaurant record. Restaurants created without an
// explicit catalog get hourly slots generated across a 10:00-21:00
// window so they are bookable immediately.
func (r *CreateRestaurantRequest) ToModel(caller gModel.Caller, defaultCapacity int) model.Restaurant {
	slots := make(model.SlotList, 0, len(r.TimeSlots))
	for _, slot := range r.TimeSlots {
		slots = append(slots, model.Slot{Time: slot.Time, Capacity: slot.Capacity})
	}

	if len(slots) == 0 {
		slots = model.SynthesizeSlots(model.HoursWindow{Open: "10:00", Close: "21:00"}, defaultCapacity)
	}

	schedule := make(model.WeekSchedule, len(r.OperatingHours))
	for day, hours := range r.OperatingHours {
		schedule[day] = model.HoursWindow{Open: hours.Open, Close: hours.Close}
	}

	adminID := r.AdminID
	if adminID == "" {
		adminID = caller.ID
	}

	return model.Restaurant{
		ID:             uuid.NewString(),
		Name:           r.Name,
		Description:    r.Description,
		Cuisine:        r.Cuisine,
		Location:       r.Location,
		Phone:          r.Phone,
		Email:          r.Email,
		AdminID:        adminID,
		TimeSlots:      slots,
		OperatingHours: schedule,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  caller.ID,
			ModifiedBy: caller.ID,
		},
	}
}

// UpdateRestaurantRequest is a patch: nil fields leave the stored value
// unchanged.
type UpdateRestaurantRequest struct {
	Name           *string                  `json:"name"        validate:"omitempty,max=100"`
	Description    *string                  `json:"description" validate:"omitempty,max=1000"`
	Cuisine        *string                  `json:"cuisine"     validate:"omitempty,max=100"`
	Location       *string                  `json:"location"    validate:"omitempty,max=255"`
	Phone          *string                  `json:"phone"       validate:"omitempty,max=20"`
	Email          *string                  `json:"email"       validate:"omitempty,email,max=100"`
	TimeSlots      *[]SlotRequest           `json:"time_slots"      validate:"omitempty,dive"`
	OperatingHours *map[string]HoursRequest `json:"operating_hours" validate:"omitempty,dive"`
}

// IsEmpty reports whether the patch carries no fields.
func (r *UpdateRestaurantRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Cuisine == nil &&
		r.Location == nil && r.Phone == nil && r.Email == nil &&
		r.TimeSlots == nil && r.OperatingHours == nil
}

// ToFields maps the set fields to their column values for a partial
// update.
func (r *UpdateRestaurantRequest) ToFields(caller gModel.Caller) map[string]any {
	fields := map[string]any{}

	if r.Name != nil {
		fields[model.FieldName] = *r.Name
	}

	if r.Description != nil {
		fields[model.FieldDescription] = *r.Description
	}

	if r.Cuisine != nil {
		fields[model.FieldCuisine] = *r.Cuisine
	}

	if r.Location != nil {
		fields[model.FieldLocation] = *r.Location
	}

	if r.Phone != nil {
		fields[model.FieldPhone] = *r.Phone
	}

	if r.Email != nil {
		fields[model.FieldEmail] = *r.Email
	}

	if r.TimeSlots != nil {
		slots := make(model.SlotList, 0, len(*r.TimeSlots))
		for _, slot := range *r.TimeSlots {
			slots = append(slots, model.Slot{Time: slot.Time, Capacity: slot.Capacity})
		}

		fields[model.FieldTimeSlots] = slots
	}

	if r.OperatingHours != nil {
		schedule := make(model.WeekSchedule, len(*r.OperatingHours))
		for day, hours := range *r.OperatingHours {
			schedule[day] = model.HoursWindow{Open: hours.Open, Close: hours.Close}
		}

		fields[model.FieldOperatingHours] = schedule
	}

	if len(fields) > 0 {
		fields["modified_at"] = timezone.Now()
		fields["modified_by"] = caller.ID
	}

	return fields
}

type SlotResponse struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

type RestaurantResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	Cuisine        string                  `json:"cuisine,omitempty"`
	Location       string                  `json:"location"`
	Phone          string                  `json:"phone,omitempty"`
	Email          string                  `json:"email,omitempty"`
	AdminID        string                  `json:"admin_id"`
	TimeSlots      []SlotResponse          `json:"time_slots"`
	OperatingHours map[string]HoursRequest `json:"operating_hours"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(mod model.Restaurant) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Cuisine = mod.Cuisine
	r.Location = mod.Location
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.AdminID = mod.AdminID

	r.TimeSlots = make([]SlotResponse, len(mod.TimeSlots))
	for i, slot := range mod.TimeSlots {
		r.TimeSlots[i] = SlotResponse{Time: slot.Time, Capacity: slot.Capacity}
	}

	r.OperatingHours = make(map[string]HoursRequest, len(mod.OperatingHours))
	for day, hours := range mod.OperatingHours {
		r.OperatingHours[day] = HoursRequest{Open: hours.Open, Close: hours.Close}
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetRestaurantsResponse) FromModels(models []model.Restaurant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Restaurants = make([]RestaurantResponse, len(models))
	for i, mod := range models {
		r.Restaurants[i].FromModel(mod)
	}
}
