package model

import (
	"database/sql"
	"time"

	"github.com/ComfortN/restaurent-cms/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                = "id"
	FieldRestaurantID      = "restaurant_id"
	FieldUserID            = "user_id"
	FieldDate              = "date"
	FieldTime              = "time"
	FieldGuests            = "guests"
	FieldStatus            = "status"
	FieldCustomerName      = "customer_name"
	FieldCustomerEmail     = "customer_email"
	FieldCustomerPhone     = "customer_phone_number"
	FieldSpecialRequests   = "special_requests"
	FieldIsCancelledByUser = "is_cancelled_by_user"
	FieldPaymentIntentID   = "payment_intent_id"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
	StatusExpired   = "expired"
)

// TerminalStatuses lists the statuses excluded from capacity
// accounting. Cancelled, rejected, and expired reservations release
// their seats.
var TerminalStatuses = []string{StatusCancelled, StatusRejected, StatusExpired}

// IsTransitionTarget reports whether status is a value callers may
// transition a reservation to.
func IsTransitionTarget(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}

	return false
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another. Cancelled is terminal; confirmed may only be
// cancelled.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	}

	return false
}

type Reservation struct {
	ID                  string         `db:"id"`
	RestaurantID        string         `db:"restaurant_id"`
	UserID              sql.NullString `db:"user_id"`
	Date                time.Time      `db:"date"`
	Time                string         `db:"time"`
	Guests              int            `db:"guests"`
	Status              string         `db:"status"`
	CustomerName        string         `db:"customer_name"`
	CustomerEmail       string         `db:"customer_email"`
	CustomerPhoneNumber string         `db:"customer_phone_number"`
	SpecialRequests     string         `db:"special_requests"`
	IsCancelledByUser   bool           `db:"is_cancelled_by_user"`
	PaymentIntentID     sql.NullString `db:"payment_intent_id"`
	model.Metadata
}

// IsTerminal reports whether the reservation no longer counts against
// slot capacity.
func (r Reservation) IsTerminal() bool {
	switch r.Status {
	case StatusCancelled, StatusRejected, StatusExpired:
		return true
	}

	return false
}
