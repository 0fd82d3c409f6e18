package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	restaurantModel "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
)

func TestReservationService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.Availability(context.Background(), testRestaurantID, "not-a-date")

		assert.Error(t, err)
	})

	t.Run("cache hit skips computation", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Availability(context.Background(), testRestaurantID, testDate)

		assert.NoError(t, err)
	})

	t.Run("restaurant not found", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.restaurantRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(restaurantModel.Restaurant{}, nil)

		_, err := svc.Availability(context.Background(), testRestaurantID, testDate)

		assert.Error(t, err)
	})

	t.Run("booked counts bucket by parsed slot time", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.restaurantRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRestaurant(), nil)

		// One reservation stored with the display label and one with the
		// 24-hour spelling; both count against the same slot. The
		// cancelled and expired rows hold no seats even when the store
		// returns them.
		m.repo.EXPECT().
			GetForDay(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any()).
			Return([]model.Reservation{
				{Time: "6:00 PM", Guests: 4, Status: model.StatusConfirmed},
				{Time: "18:00", Guests: 2, Status: model.StatusPending},
				{Time: "6:00 PM", Guests: 10, Status: model.StatusCancelled},
				{Time: "6:00 PM", Guests: 8, Status: model.StatusExpired},
				{Time: "10:00 AM", Guests: 25, Status: model.StatusConfirmed},
			}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Availability(context.Background(), testRestaurantID, testDate)

		assert.NoError(t, err)
		assert.Equal(t, testDate, res.Date)
		assert.Equal(t, "Monday", res.DayOfWeek)
		assert.Equal(t, "10:00", res.OperatingHours.Open)
		assert.Equal(t, "21:00", res.OperatingHours.Close)
		assert.Len(t, res.Availability, 2)

		morning := res.Availability[0]
		assert.Equal(t, "10:00 AM", morning.Time)
		assert.Equal(t, 25, morning.Booked)
		// Overbooked slots clamp at zero instead of going negative.
		assert.Equal(t, 0, morning.Available)

		evening := res.Availability[1]
		assert.Equal(t, "6:00 PM", evening.Time)
		assert.Equal(t, 6, evening.Booked)
		assert.Equal(t, 14, evening.Available)

		// The full morning slot drops out of the bookable view.
		assert.Len(t, res.Bookable, 1)
		assert.Equal(t, "6:00 PM", res.Bookable[0].Time)
	})

	t.Run("empty day leaves every slot fully open", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		restaurant := testRestaurant()
		restaurant.TimeSlots = nil

		m.restaurantRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(restaurant, nil)

		m.repo.EXPECT().
			GetForDay(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any()).
			Return(nil, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Availability(context.Background(), testRestaurantID, testDate)

		assert.NoError(t, err)
		// Monday window 10:00-21:00 synthesizes eleven hourly slots.
		assert.Len(t, res.Availability, 11)
		assert.Len(t, res.Bookable, 11)

		for _, slot := range res.Availability {
			assert.Equal(t, 20, slot.Capacity)
			assert.Equal(t, 0, slot.Booked)
			assert.Equal(t, 20, slot.Available)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.restaurantRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRestaurant(), nil)

		m.repo.EXPECT().
			GetForDay(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Availability(context.Background(), testRestaurantID, testDate)

		assert.Error(t, err)
	})
}
