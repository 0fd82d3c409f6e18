package dto

import (
	"database/sql"
	"time"

	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/shared"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	gDto "github.com/ComfortN/restaurent-cms/shared/dto"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID        string `json:"restaurant_id"         validate:"omitempty,uuid"`
	Date                string `json:"date"                  validate:"omitempty"`
	Time                string `json:"time"                  validate:"omitempty,max=20"`
	Guests              int    `json:"guests"                validate:"omitempty,min=1"`
	CustomerName        string `json:"customer_name"         validate:"omitempty,max=100"`
	CustomerEmail       string `json:"customer_email"        validate:"omitempty,email,max=100"`
	CustomerPhoneNumber string `json:"customer_phone_number" validate:"omitempty,max=20"`
	SpecialRequests     string `json:"special_requests"      validate:"omitempty,max=1000"`
}

// MissingFields lists the required fields that are absent or empty.
// Admission reports them together rather than failing on the first.
func (r *CreateReservationRequest) MissingFields() []string {
	missing := []string{}

	if r.RestaurantID == "" {
		missing = append(missing, "restaurant_id")
	}

	if r.Date == "" {
		missing = append(missing, "date")
	}

	if r.Time == "" {
		missing = append(missing, "time")
	}

	if r.Guests == 0 {
		missing = append(missing, "guests")
	}

	if r.CustomerName == "" {
		missing = append(missing, "customer_name")
	}

	if r.CustomerEmail == "" {
		missing = append(missing, "customer_email")
	}

	if r.CustomerPhoneNumber == "" {
		missing = append(missing, "customer_phone_number")
	}

	return missing
}

// ParseDate resolves the calendar date in the application timezone.
func (r *CreateReservationRequest) ParseDate() (time.Time, error) {
	return timezone.Parse(constant.CalendarDateFormat, r.Date)
}

func (r *CreateReservationRequest) ToModel(date time.Time, status string, caller gModel.Caller) model.Reservation {
	return model.Reservation{
		ID:                  uuid.NewString(),
		RestaurantID:        r.RestaurantID,
		UserID:              sql.NullString{String: caller.ID, Valid: caller.ID != ""},
		Date:                timezone.StartOfDay(date),
		Time:                r.Time,
		Guests:              r.Guests,
		Status:              status,
		CustomerName:        r.CustomerName,
		CustomerEmail:       r.CustomerEmail,
		CustomerPhoneNumber: r.CustomerPhoneNumber,
		SpecialRequests:     r.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  caller.ID,
			ModifiedBy: caller.ID,
		},
	}
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreatePaymentRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
}

type CreatePaymentResponse struct {
	ReservationID string `json:"reservation_id"`
	IntentID      string `json:"intent_id"`
	ClientSecret  string `json:"client_secret"`
	AmountCents   int64  `json:"amount_cents"`
}

type ConfirmPaymentRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	IntentID      string `json:"intent_id"      validate:"required"`
}

type ReservationResponse struct {
	ID                  string `json:"id"`
	RestaurantID        string `json:"restaurant_id"`
	UserID              string `json:"user_id,omitempty"`
	Date                string `json:"date"`
	Time                string `json:"time"`
	Guests              int    `json:"guests"`
	Status              string `json:"status"`
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhoneNumber string `json:"customer_phone_number"`
	SpecialRequests     string `json:"special_requests,omitempty"`
	IsCancelledByUser   bool   `json:"is_cancelled_by_user"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.RestaurantID = mod.RestaurantID
	r.Date = mod.Date.Format(constant.CalendarDateFormat)
	r.Time = mod.Time
	r.Guests = mod.Guests
	r.Status = mod.Status
	r.CustomerName = mod.CustomerName
	r.CustomerEmail = mod.CustomerEmail
	r.CustomerPhoneNumber = mod.CustomerPhoneNumber
	r.SpecialRequests = mod.SpecialRequests
	r.IsCancelledByUser = mod.IsCancelledByUser
	r.Metadata.FromModel(mod.Metadata)

	if mod.UserID.Valid {
		r.UserID = mod.UserID.String
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type OperatingHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type SlotAvailability struct {
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

type SlotAvailabilityList []SlotAvailability

// Bookable filters the list down to slots with seats remaining.
func (l SlotAvailabilityList) Bookable() SlotAvailabilityList {
	bookable := make(SlotAvailabilityList, 0, len(l))
	for _, slot := range l {
		if slot.Available > 0 {
			bookable = append(bookable, slot)
		}
	}

	return bookable
}

// AvailabilityResponse is the point-in-time view of booked versus
// remaining capacity per slot for one restaurant and date. Full slots
// stay in the availability list so clients can render them as such;
// the bookable list carries only the slots that can still be booked.
type AvailabilityResponse struct {
	Date           string                 `json:"date"`
	DayOfWeek      string                 `json:"day_of_week"`
	OperatingHours OperatingHoursResponse `json:"operating_hours"`
	Availability   SlotAvailabilityList   `json:"availability"`
	Bookable       SlotAvailabilityList   `json:"bookable"`
}
