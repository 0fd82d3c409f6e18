package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
)

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    model.SlotTime
		wantErr bool
	}{
		{
			name:  "12-hour evening label",
			label: "6:00 PM",
			want:  model.SlotTime{Hour: 18, Minute: 0},
		},
		{
			name:  "12-hour morning label",
			label: "10:00 AM",
			want:  model.SlotTime{Hour: 10, Minute: 0},
		},
		{
			name:  "24-hour label",
			label: "18:00",
			want:  model.SlotTime{Hour: 18, Minute: 0},
		},
		{
			name:  "noon",
			label: "12:00 PM",
			want:  model.SlotTime{Hour: 12, Minute: 0},
		},
		{
			name:  "midnight",
			label: "12:00 AM",
			want:  model.SlotTime{Hour: 0, Minute: 0},
		},
		{
			name:  "half-hour label",
			label: "6:30 PM",
			want:  model.SlotTime{Hour: 18, Minute: 30},
		},
		{
			name:  "hour only without minutes",
			label: "18",
			want:  model.SlotTime{Hour: 18, Minute: 0},
		},
		{
			name:  "lowercase period with extra spacing",
			label: " 6:00 pm ",
			want:  model.SlotTime{Hour: 18, Minute: 0},
		},
		{
			name:    "empty label",
			label:   "",
			wantErr: true,
		},
		{
			name:    "out of range 24-hour value",
			label:   "25:00",
			wantErr: true,
		},
		{
			name:    "out of range 12-hour value",
			label:   "13:00 PM",
			wantErr: true,
		},
		{
			name:    "invalid minute",
			label:   "6:75 PM",
			wantErr: true,
		},
		{
			name:    "not a time at all",
			label:   "supper",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseSlotTime(tt.label)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSlotTime_Label(t *testing.T) {
	tests := []struct {
		name string
		time model.SlotTime
		want string
	}{
		{
			name: "morning",
			time: model.SlotTime{Hour: 10},
			want: "10:00 AM",
		},
		{
			name: "evening",
			time: model.SlotTime{Hour: 18},
			want: "6:00 PM",
		},
		{
			name: "noon",
			time: model.SlotTime{Hour: 12},
			want: "12:00 PM",
		},
		{
			name: "midnight",
			time: model.SlotTime{Hour: 0},
			want: "12:00 AM",
		},
		{
			name: "half hour",
			time: model.SlotTime{Hour: 18, Minute: 30},
			want: "6:30 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.time.Label())
		})
	}
}

func TestSlotList_Find(t *testing.T) {
	catalog := model.SlotList{
		{Time: "10:00 AM", Capacity: 20},
		{Time: "6:00 PM", Capacity: 15},
	}

	tests := []struct {
		name      string
		timeLabel string
		wantSlot  model.Slot
		wantFound bool
	}{
		{
			name:      "exact label match",
			timeLabel: "6:00 PM",
			wantSlot:  model.Slot{Time: "6:00 PM", Capacity: 15},
			wantFound: true,
		},
		{
			name:      "24-hour label matches 12-hour catalog entry",
			timeLabel: "18:00",
			wantSlot:  model.Slot{Time: "6:00 PM", Capacity: 15},
			wantFound: true,
		},
		{
			name:      "no such slot",
			timeLabel: "9:00 PM",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, found := catalog.Find(tt.timeLabel)

			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantSlot, slot)
			}
		})
	}
}

func TestSlotList_FindOpaqueLabel(t *testing.T) {
	catalog := model.SlotList{
		{Time: "brunch seating", Capacity: 12},
	}

	slot, found := catalog.Find("brunch seating")

	assert.True(t, found)
	assert.Equal(t, 12, slot.Capacity)
}

func TestSynthesizeSlots(t *testing.T) {
	tests := []struct {
		name       string
		window     model.HoursWindow
		capacity   int
		wantLabels []string
	}{
		{
			name:     "short monday window",
			window:   model.HoursWindow{Open: "10:00", Close: "13:00"},
			capacity: 20,
			wantLabels: []string{
				"10:00 AM",
				"11:00 AM",
				"12:00 PM",
			},
		},
		{
			name:     "evening window",
			window:   model.HoursWindow{Open: "17:00", Close: "20:00"},
			capacity: 10,
			wantLabels: []string{
				"5:00 PM",
				"6:00 PM",
				"7:00 PM",
			},
		},
		{
			name:     "inverted window falls back to fixed catalog",
			window:   model.HoursWindow{Open: "20:00", Close: "10:00"},
			capacity: 20,
			wantLabels: []string{
				"10:00 AM",
				"11:00 AM",
				"12:00 PM",
				"1:00 PM",
				"2:00 PM",
				"3:00 PM",
				"4:00 PM",
				"5:00 PM",
			},
		},
		{
			name:     "zero-width window falls back to fixed catalog",
			window:   model.HoursWindow{Open: "10:00", Close: "10:00"},
			capacity: 20,
			wantLabels: []string{
				"10:00 AM",
				"11:00 AM",
				"12:00 PM",
				"1:00 PM",
				"2:00 PM",
				"3:00 PM",
				"4:00 PM",
				"5:00 PM",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := model.SynthesizeSlots(tt.window, tt.capacity)

			labels := make([]string, 0, len(slots))
			for _, slot := range slots {
				assert.Equal(t, tt.capacity, slot.Capacity)
				labels = append(labels, slot.Time)
			}

			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestRestaurant_CatalogFor(t *testing.T) {
	window := model.HoursWindow{Open: "10:00", Close: "13:00"}

	t.Run("explicit slots returned verbatim", func(t *testing.T) {
		restaurant := model.Restaurant{
			TimeSlots: model.SlotList{
				{Time: "7:00 PM", Capacity: 4},
			},
		}

		catalog := restaurant.CatalogFor(window, 20)

		assert.Equal(t, restaurant.TimeSlots, catalog)
	})

	t.Run("empty catalog synthesized from window", func(t *testing.T) {
		restaurant := model.Restaurant{}

		catalog := restaurant.CatalogFor(window, 20)

		assert.Len(t, catalog, 3)
		assert.Equal(t, "10:00 AM", catalog[0].Time)
		assert.Equal(t, 20, catalog[0].Capacity)
	})
}
