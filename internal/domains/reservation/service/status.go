package service

import (
	"context"
	"fmt"

	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	userModel "github.com/ComfortN/restaurent-cms/internal/domains/user/model"
	"github.com/ComfortN/restaurent-cms/shared"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	"github.com/ComfortN/restaurent-cms/shared/failure"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/rs/zerolog/log"
)

// UpdateStatus drives an admin-initiated lifecycle transition. The
// status change must persist for the call to succeed; notification
// delivery is best-effort and never fails the transition.
func (s *serviceImpl) UpdateStatus(ctx context.Context, caller gModel.Caller, id, status string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !model.IsTransitionTarget(status) {
		return res, model.ErrInvalidStatus(status) // nolint:wrapcheck
	}

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	restaurant, err := s.getRestaurant(ctx, reservation.RestaurantID)
	if err != nil {
		return res, err
	}

	if !caller.CanManageRestaurant(restaurant.AdminID) {
		return res, failure.Forbidden("caller does not manage this restaurant") // nolint:wrapcheck
	}

	if !model.CanTransition(reservation.Status, status) {
		return res, failure.Conflict(fmt.Sprintf("cannot transition reservation from %s to %s", reservation.Status, status)) // nolint:wrapcheck
	}

	if err = s.persistStatus(ctx, caller, &reservation, status, false); err != nil {
		return res, err
	}

	s.notifyStatusChange(ctx, reservation, restaurant.Name)

	res.FromModel(reservation)

	return res, nil
}

// Cancel is the customer self-service path: the reservation owner may
// cancel their own pending or confirmed reservation. Super admins may
// cancel on a customer's behalf; only owner-initiated cancellations are
// recorded as cancelled by the user.
func (s *serviceImpl) Cancel(ctx context.Context, caller gModel.Caller, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	owns := reservation.UserID.Valid && reservation.UserID.String == caller.ID
	if !owns && !caller.IsSuperAdmin() {
		return res, failure.Forbidden("caller does not own this reservation") // nolint:wrapcheck
	}

	if !model.CanTransition(reservation.Status, model.StatusCancelled) {
		return res, failure.Conflict(fmt.Sprintf("cannot cancel a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	if err = s.persistStatus(ctx, caller, &reservation, model.StatusCancelled, owns); err != nil {
		return res, err
	}

	restaurant, restErr := s.getRestaurant(ctx, reservation.RestaurantID)
	restaurantName := reservation.RestaurantID
	if restErr == nil {
		restaurantName = restaurant.Name
	}

	s.notifyStatusChange(ctx, reservation, restaurantName)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) persistStatus(ctx context.Context, caller gModel.Caller, reservation *model.Reservation, status string, byUser bool) error {
	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller.ID,
	}

	if byUser {
		fields[model.FieldIsCancelledByUser] = true
	}

	filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to update reservation status")

		return s.storeError(err)
	}

	reservation.Status = status
	reservation.IsCancelledByUser = reservation.IsCancelledByUser || byUser
	reservation.ModifiedAt = timezone.Now()
	reservation.ModifiedBy = caller.ID

	s.invalidate(ctx, *reservation)

	return nil
}

// notifyStatusChange delivers the status-change notifications. Failures
// are logged and swallowed so a flaky gateway cannot undo a persisted
// transition.
func (s *serviceImpl) notifyStatusChange(ctx context.Context, reservation model.Reservation, restaurantName string) {
	data := map[string]any{
		"customer_name":   reservation.CustomerName,
		"restaurant_name": restaurantName,
		"date":            reservation.Date.Format(constant.CalendarDateFormat),
		"time":            reservation.Time,
		"guests":          reservation.Guests,
	}

	switch reservation.Status {
	case model.StatusConfirmed:
		if err := s.notifier.SendEmail(ctx, reservation.CustomerEmail, "reservation-confirmed", data); err != nil {
			log.Warn().Err(err).Str("reservationID", reservation.ID).Msg("failed to send confirmation email")
		}

		s.pushToOwner(ctx, reservation, "Reservation confirmed",
			fmt.Sprintf("Your table at %s on %s at %s is confirmed.", restaurantName, reservation.Date.Format(constant.CalendarDateFormat), reservation.Time))
	case model.StatusCancelled:
		if err := s.notifier.SendEmail(ctx, reservation.CustomerEmail, "reservation-cancelled", data); err != nil {
			log.Warn().Err(err).Str("reservationID", reservation.ID).Msg("failed to send cancellation email")
		}
	}
}

// pushToOwner sends a push notification when the reservation belongs to
// a registered user with a device token on file.
func (s *serviceImpl) pushToOwner(ctx context.Context, reservation model.Reservation, title, body string) {
	if !reservation.UserID.Valid {
		return
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(reservation.UserID.String, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("userID", reservation.UserID.String).Msg("failed to look up reservation owner for push")

		return
	}

	if !user.FCMToken.Valid || user.FCMToken.String == "" {
		return
	}

	if err := s.notifier.SendPush(ctx, user.ID, title, body); err != nil {
		log.Warn().Err(err).Str("userID", user.ID).Msg("failed to send push notification")
	}
}
