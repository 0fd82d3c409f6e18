package service

import (
	"context"
	"fmt"

	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	restaurantModel "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
	"github.com/ComfortN/restaurent-cms/shared"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	"github.com/ComfortN/restaurent-cms/shared/failure"
	"github.com/ComfortN/restaurent-cms/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Availability computes the booked and remaining seats per slot for one
// restaurant and calendar date. The computation is read-only; repeated
// calls with no intervening writes return identical results.
func (s *serviceImpl) Availability(ctx context.Context, restaurantID, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.CalendarDateFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, restaurantID, day.Format(constant.CalendarDateFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	restaurant, err := s.getRestaurant(ctx, restaurantID)
	if err != nil {
		return res, err
	}

	window := restaurant.OperatingHours.ResolveHours(day)
	catalog := restaurant.CatalogFor(window, s.cfg.Reservation.DefaultSlotCapacity)

	dayStart, dayEnd := timezone.DayRange(day)

	reservations, err := s.repo.GetForDay(ctx, restaurantID, dayStart, dayEnd)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for day")

		return res, fmt.Errorf("failed to get reservations for day: %w", err)
	}

	// Bucket booked guests under the parsed slot time so "18:00" and
	// "6:00 PM" land in the same bucket; labels that cannot be parsed
	// bucket by raw string.
	booked := make(map[restaurantModel.SlotTime]int)
	bookedRaw := make(map[string]int)

	for _, reservation := range reservations {
		// Terminal rows hold no seats, whatever the store returned.
		if reservation.IsTerminal() {
			continue
		}

		parsed, parseErr := restaurantModel.ParseSlotTime(reservation.Time)
		if parseErr != nil {
			bookedRaw[reservation.Time] += reservation.Guests

			continue
		}

		booked[parsed] += reservation.Guests
	}

	res.Date = day.Format(constant.CalendarDateFormat)
	res.DayOfWeek = day.Weekday().String()
	res.OperatingHours = dto.OperatingHoursResponse{Open: window.Open, Close: window.Close}
	res.Availability = make(dto.SlotAvailabilityList, len(catalog))

	for i, slot := range catalog {
		count := bookedRaw[slot.Time]
		if parsed, parseErr := restaurantModel.ParseSlotTime(slot.Time); parseErr == nil {
			count = booked[parsed]
		}

		available := slot.Capacity - count
		if available < 0 {
			available = 0
		}

		res.Availability[i] = dto.SlotAvailability{
			Time:      slot.Time,
			Capacity:  slot.Capacity,
			Booked:    count,
			Available: available,
		}
	}

	res.Bookable = res.Availability.Bookable()

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}
