package service

import (
	"context"
	"fmt"

	"github.com/ComfortN/restaurent-cms/infras/payment"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	"github.com/ComfortN/restaurent-cms/shared"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	"github.com/ComfortN/restaurent-cms/shared/failure"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CreatePaymentIntent opens a payment intent for a pending
// reservation's booking fee. The reservation keeps holding its seats
// while payment is in flight.
func (s *serviceImpl) CreatePaymentIntent(ctx context.Context, caller gModel.Caller, req dto.CreatePaymentRequest) (res dto.CreatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return res, err
	}

	owns := reservation.UserID.Valid && reservation.UserID.String == caller.ID
	if !owns && !caller.IsStaff() {
		return res, failure.Forbidden("caller does not own this reservation") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("cannot pay for a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	amount := int64(s.cfg.Reservation.FeeCents)

	intent, err := s.payment.CreateIntent(ctx, payment.CreateIntentRequest{
		Amount:   amount,
		Currency: "usd",
		Metadata: map[string]string{
			"reservation_id": reservation.ID,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	fields := map[string]any{
		model.FieldPaymentIntentID: intent.ID,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   caller.ID,
	}

	filter := shared.FilterByID(reservation.ID, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to attach payment intent")

		return res, s.storeError(err)
	}

	s.invalidate(ctx, reservation)

	return dto.CreatePaymentResponse{
		ReservationID: reservation.ID,
		IntentID:      intent.ID,
		ClientSecret:  intent.ClientSecret,
		AmountCents:   amount,
	}, nil
}

// ConfirmPayment verifies the intent with the provider and, on
// success, moves the reservation from pending to confirmed through the
// normal lifecycle path.
func (s *serviceImpl) ConfirmPayment(ctx context.Context, caller gModel.Caller, req dto.ConfirmPaymentRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return res, err
	}

	owns := reservation.UserID.Valid && reservation.UserID.String == caller.ID
	if !owns && !caller.IsStaff() {
		return res, failure.Forbidden("caller does not own this reservation") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("cannot confirm payment on a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	if !reservation.PaymentIntentID.Valid || reservation.PaymentIntentID.String != req.IntentID {
		return res, failure.BadRequestFromString("payment intent does not match this reservation") // nolint:wrapcheck
	}

	intent, err := s.payment.RetrieveIntent(ctx, req.IntentID)
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to retrieve payment intent")

		return res, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Status != payment.IntentStatusSucceeded {
		return res, failure.Conflict(fmt.Sprintf("payment has not completed, intent status is %s", intent.Status)) // nolint:wrapcheck
	}

	if err = s.persistStatus(ctx, caller, &reservation, model.StatusConfirmed, false); err != nil {
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
