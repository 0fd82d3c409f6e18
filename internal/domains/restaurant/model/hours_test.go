package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
)

func TestHoursWindow_OpenCloseHour(t *testing.T) {
	tests := []struct {
		name      string
		window    model.HoursWindow
		wantOpen  int
		wantClose int
	}{
		{
			name:      "well formed window",
			window:    model.HoursWindow{Open: "09:00", Close: "17:00"},
			wantOpen:  9,
			wantClose: 17,
		},
		{
			name:      "hour without minutes",
			window:    model.HoursWindow{Open: "9", Close: "17"},
			wantOpen:  9,
			wantClose: 17,
		},
		{
			name:      "malformed values resolve to defaults",
			window:    model.HoursWindow{Open: "nine", Close: "late"},
			wantOpen:  model.DefaultOpenHour,
			wantClose: model.DefaultCloseHour,
		},
		{
			name:      "out of range values resolve to defaults",
			window:    model.HoursWindow{Open: "-1:00", Close: "25:00"},
			wantOpen:  model.DefaultOpenHour,
			wantClose: model.DefaultCloseHour,
		},
		{
			name:      "empty window resolves to defaults",
			window:    model.HoursWindow{},
			wantOpen:  model.DefaultOpenHour,
			wantClose: model.DefaultCloseHour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOpen, tt.window.OpenHour())
			assert.Equal(t, tt.wantClose, tt.window.CloseHour())
		})
	}
}

func TestHoursWindow_Brackets(t *testing.T) {
	window := model.HoursWindow{Open: "10:00", Close: "13:00"}

	tests := []struct {
		name string
		hour int
		want bool
	}{
		{
			name: "before opening",
			hour: 9,
			want: false,
		},
		{
			name: "opening hour is inclusive",
			hour: 10,
			want: true,
		},
		{
			name: "inside window",
			hour: 12,
			want: true,
		},
		{
			name: "closing hour is exclusive",
			hour: 13,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Brackets(tt.hour))
		})
	}
}

func TestWeekdayKey(t *testing.T) {
	// 2026-09-07 is a Monday.
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "monday", model.WeekdayKey(monday))
	assert.Equal(t, "sunday", model.WeekdayKey(monday.AddDate(0, 0, -1)))
}

func TestWeekSchedule_ResolveHours(t *testing.T) {
	schedule := model.WeekSchedule{
		"monday": {Open: "10:00", Close: "13:00"},
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	t.Run("configured weekday", func(t *testing.T) {
		window := schedule.ResolveHours(monday)

		assert.Equal(t, "10:00", window.Open)
		assert.Equal(t, "13:00", window.Close)
	})

	t.Run("missing weekday resolves to default window", func(t *testing.T) {
		window := schedule.ResolveHours(tuesday)

		assert.Equal(t, model.DefaultOpenTime, window.Open)
		assert.Equal(t, model.DefaultCloseTime, window.Close)
	})

	t.Run("nil schedule resolves to default window", func(t *testing.T) {
		var empty model.WeekSchedule

		window := empty.ResolveHours(monday)

		assert.Equal(t, model.DefaultOpenTime, window.Open)
		assert.Equal(t, model.DefaultCloseTime, window.Close)
	})
}
