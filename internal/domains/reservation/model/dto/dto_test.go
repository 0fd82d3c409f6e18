package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
)

func TestCreateReservationRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateReservationRequest
		want []string
	}{
		{
			name: "complete request",
			req: dto.CreateReservationRequest{
				RestaurantID:        "9f0c8f3a-0000-0000-0000-000000000001",
				Date:                "2026-09-07",
				Time:                "6:00 PM",
				Guests:              4,
				CustomerName:        "Jordan Mokoena",
				CustomerEmail:       "jordan@example.com",
				CustomerPhoneNumber: "+27115550101",
			},
			want: []string{},
		},
		{
			name: "empty request reports every required field",
			req:  dto.CreateReservationRequest{},
			want: []string{
				"restaurant_id",
				"date",
				"time",
				"guests",
				"customer_name",
				"customer_email",
				"customer_phone_number",
			},
		},
		{
			name: "partially filled request",
			req: dto.CreateReservationRequest{
				RestaurantID:  "9f0c8f3a-0000-0000-0000-000000000001",
				Date:          "2026-09-07",
				Time:          "6:00 PM",
				CustomerName:  "Jordan Mokoena",
				CustomerEmail: "jordan@example.com",
			},
			want: []string{"guests", "customer_phone_number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.MissingFields())
		})
	}
}

func TestCreateReservationRequest_ParseDate(t *testing.T) {
	t.Run("valid calendar date", func(t *testing.T) {
		req := dto.CreateReservationRequest{Date: "2026-09-07"}

		date, err := req.ParseDate()

		assert.NoError(t, err)
		assert.Equal(t, 2026, date.Year())
		assert.Equal(t, "September", date.Month().String())
		assert.Equal(t, 7, date.Day())
	})

	t.Run("invalid format", func(t *testing.T) {
		req := dto.CreateReservationRequest{Date: "07/09/2026"}

		_, err := req.ParseDate()

		assert.Error(t, err)
	})
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		RestaurantID:        "9f0c8f3a-0000-0000-0000-000000000001",
		Date:                "2026-09-07",
		Time:                "6:00 PM",
		Guests:              4,
		CustomerName:        "Jordan Mokoena",
		CustomerEmail:       "jordan@example.com",
		CustomerPhoneNumber: "+27115550101",
	}

	date, err := req.ParseDate()
	assert.NoError(t, err)

	caller := gModel.Caller{ID: "caller-id"}

	reservation := req.ToModel(date, model.StatusPending, caller)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, req.RestaurantID, reservation.RestaurantID)
	assert.Equal(t, model.StatusPending, reservation.Status)
	assert.Equal(t, req.Guests, reservation.Guests)
	assert.True(t, reservation.UserID.Valid)
	assert.Equal(t, "caller-id", reservation.UserID.String)
	assert.Equal(t, "caller-id", reservation.CreatedBy)

	// Dates normalize to midnight regardless of when the request runs.
	assert.Equal(t, 0, reservation.Date.Hour())
	assert.Equal(t, 0, reservation.Date.Minute())
}

func TestCreateReservationRequest_ToModelGuestCaller(t *testing.T) {
	req := dto.CreateReservationRequest{
		RestaurantID:  "9f0c8f3a-0000-0000-0000-000000000001",
		Date:          "2026-09-07",
		Time:          "6:00 PM",
		Guests:        2,
		CustomerName:  "Walk In",
		CustomerEmail: "walkin@example.com",
	}

	date, err := req.ParseDate()
	assert.NoError(t, err)

	reservation := req.ToModel(date, model.StatusPending, gModel.Caller{})

	assert.False(t, reservation.UserID.Valid)
}

func TestSlotAvailabilityList_Bookable(t *testing.T) {
	slots := dto.SlotAvailabilityList{
		{Time: "10:00 AM", Capacity: 20, Booked: 20, Available: 0},
		{Time: "11:00 AM", Capacity: 20, Booked: 5, Available: 15},
		{Time: "12:00 PM", Capacity: 20, Booked: 0, Available: 20},
	}

	bookable := slots.Bookable()

	assert.Len(t, bookable, 2)
	assert.Equal(t, "11:00 AM", bookable[0].Time)
	assert.Equal(t, "12:00 PM", bookable[1].Time)
}
