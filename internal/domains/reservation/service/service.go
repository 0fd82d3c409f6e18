package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ComfortN/restaurent-cms/config"
	"github.com/ComfortN/restaurent-cms/infras/notifier"
	"github.com/ComfortN/restaurent-cms/infras/otel"
	"github.com/ComfortN/restaurent-cms/infras/payment"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/repository"
	restaurantModel "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
	restaurantRepo "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/repository"
	userRepo "github.com/ComfortN/restaurent-cms/internal/domains/user/repository"
	"github.com/ComfortN/restaurent-cms/shared"
	"github.com/ComfortN/restaurent-cms/shared/cache"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	gDto "github.com/ComfortN/restaurent-cms/shared/dto"
	"github.com/ComfortN/restaurent-cms/shared/failure"
	"github.com/ComfortN/restaurent-cms/shared/keyedmutex"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheAvailability      = "reservation:availability"
)

type Reservation interface {
	Create(ctx context.Context, caller gModel.Caller, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Availability(ctx context.Context, restaurantID, date string) (dto.AvailabilityResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, caller gModel.Caller, id, status string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, caller gModel.Caller, id string) (dto.ReservationResponse, error)
	CreatePaymentIntent(ctx context.Context, caller gModel.Caller, req dto.CreatePaymentRequest) (dto.CreatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, caller gModel.Caller, req dto.ConfirmPaymentRequest) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo           repository.Reservation
	restaurantRepo restaurantRepo.Restaurant
	userRepo       userRepo.User
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
	notifier       notifier.Notifier
	payment        payment.Gateway

	// Serializes concurrent admission attempts per (restaurant, date,
	// slot) key within this process; the store-level conditional insert
	// covers concurrent instances.
	slots *keyedmutex.KeyedMutex
}

func New(
	repo repository.Reservation,
	restaurantRepo restaurantRepo.Restaurant,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	notifier notifier.Notifier,
	payment payment.Gateway,
) Reservation {
	return &serviceImpl{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
		notifier:       notifier,
		payment:        payment,
		slots:          keyedmutex.New(),
	}
}

// Create admits a new reservation against current slot capacity.
// Checks run in a fixed order and the first failing one wins. Staff
// callers book directly into confirmed; customers start in pending
// until payment completes, holding their seats in the meantime.
func (s *serviceImpl) Create(ctx context.Context, caller gModel.Caller, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if missing := req.MissingFields(); len(missing) > 0 {
		return res, model.ErrValidation(missing) // nolint:wrapcheck
	}

	date, err := req.ParseDate()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if timezone.StartOfDay(date).Before(timezone.Today()) {
		return res, model.ErrPastDate() // nolint:wrapcheck
	}

	restaurant, err := s.getRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return res, err
	}

	window := restaurant.OperatingHours.ResolveHours(date)

	slot, ok := restaurant.CatalogFor(window, s.cfg.Reservation.DefaultSlotCapacity).Find(req.Time)
	if !ok {
		return res, model.ErrInvalidSlot(req.Time) // nolint:wrapcheck
	}

	slotTime, err := restaurantModel.ParseSlotTime(slot.Time)
	if err != nil || !window.Brackets(slotTime.Hour) {
		return res, model.ErrOutsideOperatingHours(slot.Time, window.Open, window.Close) // nolint:wrapcheck
	}

	// Persist under the catalog's own label so capacity sums bucket
	// consistently regardless of how the client spelled the time.
	req.Time = slot.Time

	status := model.StatusPending
	if caller.IsStaff() {
		status = model.StatusConfirmed
	}

	reservation := req.ToModel(date, status, caller)
	dayStart, dayEnd := timezone.DayRange(date)

	key := keyedmutex.Key(req.RestaurantID, reservation.Date.Format(constant.CalendarDateFormat), slot.Time)
	s.slots.Lock(key)
	defer s.slots.Unlock(key)

	storeCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Reservation.StoreTimeoutSeconds)*time.Second)
	defer cancel()

	booked, err := s.repo.SumGuests(storeCtx, req.RestaurantID, dayStart, dayEnd, slot.Time)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum booked guests")

		return res, s.storeError(err)
	}

	if booked+req.Guests > slot.Capacity {
		return res, model.ErrCapacityExceeded(slot.Capacity-booked, req.Guests) // nolint:wrapcheck
	}

	if req.Guests < 1 || req.Guests > slot.Capacity {
		return res, model.ErrGuestCount(req.Guests, slot.Capacity) // nolint:wrapcheck
	}

	if err = s.repo.InsertWithCapacity(storeCtx, reservation, slot.Capacity); err != nil {
		if failure.IsKind(err, model.KindCapacityExceeded) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to persist reservation")

		return res, s.storeError(err)
	}

	s.invalidate(ctx, reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if notifyErr := s.notifier.SendEmail(c, reservation.CustomerEmail, "reservation-received", map[string]any{
			"customer_name": reservation.CustomerName,
			"date":          reservation.Date.Format(constant.CalendarDateFormat),
			"time":          reservation.Time,
			"guests":        reservation.Guests,
			"status":        reservation.Status,
		}); notifyErr != nil {
			log.Warn().Err(notifyErr).Str("reservationID", reservation.ID).Msg("failed to send reservation received email")
		}
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getReservation(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) getRestaurant(ctx context.Context, id string) (restaurantModel.Restaurant, error) {
	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(id, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return restaurant, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return restaurant, failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	return restaurant, nil
}

// storeError maps timeouts and cancellations to a retryable transient
// error; anything else escalates as a server fault.
func (s *serviceImpl) storeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return model.ErrTransientStore(err) // nolint:wrapcheck
	}

	return fmt.Errorf("reservation store failure: %w", err)
}

func (s *serviceImpl) invalidate(ctx context.Context, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		availabilityKey := shared.BuildCacheKey(
			cacheAvailability,
			reservation.RestaurantID,
			reservation.Date.Format(constant.CalendarDateFormat),
		)
		if err := s.cache.Delete(c, availabilityKey); err != nil {
			log.Error().Err(err).Msg("failed to delete availability from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}
