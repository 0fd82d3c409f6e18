package model

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ComfortN/restaurent-cms/shared/failure"
)

// Machine-readable error kinds returned to booking clients.
const (
	KindValidation            = "ValidationError"
	KindPastDate              = "PastDateError"
	KindNotFound              = "NotFoundError"
	KindInvalidSlot           = "InvalidSlotError"
	KindOutsideOperatingHours = "OutsideOperatingHoursError"
	KindCapacityExceeded      = "CapacityExceededError"
	KindGuestCount            = "GuestCountError"
	KindInvalidStatus         = "InvalidStatusError"
	KindTransientStore        = "TransientStoreError"
)

// ErrValidation lists the missing or empty required fields.
func ErrValidation(missingFields []string) error {
	return failure.New(
		http.StatusBadRequest,
		KindValidation,
		fmt.Sprintf("missing required fields: %s", strings.Join(missingFields, ", ")),
	).WithDetails(map[string]any{
		"missing_fields": missingFields,
	})
}

// ErrPastDate rejects reservation dates before the current calendar
// day.
func ErrPastDate() error {
	return failure.New(
		http.StatusBadRequest,
		KindPastDate,
		"reservation date cannot be in the past",
	)
}

// ErrInvalidSlot rejects a time label absent from the restaurant's
// catalog.
func ErrInvalidSlot(timeLabel string) error {
	return failure.New(
		http.StatusBadRequest,
		KindInvalidSlot,
		fmt.Sprintf("time slot %q is not offered by this restaurant", timeLabel),
	)
}

// ErrOutsideOperatingHours rejects a slot whose hour falls outside the
// weekday's open/close window.
func ErrOutsideOperatingHours(timeLabel, open, close string) error {
	return failure.New(
		http.StatusBadRequest,
		KindOutsideOperatingHours,
		fmt.Sprintf("time slot %q is outside operating hours %s-%s", timeLabel, open, close),
	)
}

// ErrCapacityExceeded carries the remaining and requested seat counts
// for client display.
func ErrCapacityExceeded(availableSeats, requestedSeats int) error {
	return failure.New(
		http.StatusConflict,
		KindCapacityExceeded,
		fmt.Sprintf("only %d seat(s) remain for this slot, %d requested", availableSeats, requestedSeats),
	).WithDetails(map[string]any{
		"available_seats": availableSeats,
		"requested_seats": requestedSeats,
	})
}

// ErrGuestCount rejects guest counts outside [1, capacity].
func ErrGuestCount(guests, capacity int) error {
	return failure.New(
		http.StatusBadRequest,
		KindGuestCount,
		fmt.Sprintf("guest count %d must be between 1 and %d", guests, capacity),
	)
}

// ErrInvalidStatus rejects transition targets outside the allowed set.
func ErrInvalidStatus(status string) error {
	return failure.New(
		http.StatusBadRequest,
		KindInvalidStatus,
		fmt.Sprintf("status %q is not a valid reservation status", status),
	)
}

// ErrTransientStore wraps a persistence timeout or conflict; the caller
// may retry the attempt.
func ErrTransientStore(err error) error {
	return failure.New(
		http.StatusServiceUnavailable,
		KindTransientStore,
		fmt.Sprintf("reservation store temporarily unavailable: %v", err),
	)
}
