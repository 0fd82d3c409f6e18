package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Fallback catalog window used when a schedule window is inverted or
	// degenerate: eight hourly slots from 10 AM through 5 PM.
	fallbackFirstHour = 10
	fallbackSlotCount = 8
)

// SlotTime is a parsed slot label. Labels arrive either in 12-hour
// display form ("6:00 PM") or 24-hour form ("18:00"); comparing parsed
// values instead of raw strings keeps generated and stored labels from
// silently diverging.
type SlotTime struct {
	Hour   int
	Minute int
}

// ParseSlotTime parses a slot label in 12-hour or 24-hour form.
func ParseSlotTime(label string) (SlotTime, error) {
	value := strings.TrimSpace(label)
	if value == "" {
		return SlotTime{}, fmt.Errorf("slot time is empty")
	}

	upper := strings.ToUpper(value)

	period := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		period = "AM"
	case strings.HasSuffix(upper, "PM"):
		period = "PM"
	}

	if period != "" {
		value = strings.TrimSpace(upper[:len(upper)-2])
	}

	hourPart, minutePart, hasMinute := strings.Cut(value, ":")

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return SlotTime{}, fmt.Errorf("invalid slot hour in %q", label)
	}

	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(strings.TrimSpace(minutePart))
		if err != nil || minute < 0 || minute > 59 {
			return SlotTime{}, fmt.Errorf("invalid slot minute in %q", label)
		}
	}

	if period != "" {
		if hour < 1 || hour > 12 {
			return SlotTime{}, fmt.Errorf("invalid 12-hour slot hour in %q", label)
		}

		if hour == 12 {
			hour = 0
		}

		if period == "PM" {
			hour += 12
		}
	} else if hour < 0 || hour > 23 {
		return SlotTime{}, fmt.Errorf("invalid 24-hour slot hour in %q", label)
	}

	return SlotTime{Hour: hour, Minute: minute}, nil
}

// Label renders the canonical 12-hour display form, e.g. "6:00 PM".
func (t SlotTime) Label() string {
	period := "AM"
	hour := t.Hour

	if hour >= 12 {
		period = "PM"
		hour -= 12
	}

	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, period)
}

// Slot is a bookable time window with a maximum guest capacity.
type Slot struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

// SlotList is a restaurant's ordered slot catalog, stored as a JSONB
// column.
type SlotList []Slot

// Find locates the slot whose label matches timeLabel. Labels are
// compared by parsed value when both sides parse, falling back to raw
// string equality for opaque labels.
func (l SlotList) Find(timeLabel string) (Slot, bool) {
	wanted, wantedErr := ParseSlotTime(timeLabel)

	for _, slot := range l {
		if slot.Time == timeLabel {
			return slot, true
		}

		if wantedErr != nil {
			continue
		}

		parsed, err := ParseSlotTime(slot.Time)
		if err == nil && parsed == wanted {
			return slot, true
		}
	}

	return Slot{}, false
}

func (l SlotList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot list: %w", err)
	}

	return data, nil
}

func (l *SlotList) Scan(src any) error {
	if src == nil {
		*l = SlotList{}

		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported scan type for slot list: %T", src)
	}

	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to unmarshal slot list: %w", err)
	}

	return nil
}

// SynthesizeSlots generates one slot per hour across the window, opening
// hour inclusive and closing hour exclusive, each with the given
// capacity. A degenerate window yields the fixed fallback catalog, so
// synthesis never fails.
func SynthesizeSlots(window HoursWindow, capacity int) SlotList {
	openHour := window.OpenHour()
	closeHour := window.CloseHour()

	if closeHour <= openHour {
		openHour = fallbackFirstHour
		closeHour = fallbackFirstHour + fallbackSlotCount
	}

	slots := make(SlotList, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		slots = append(slots, Slot{
			Time:     SlotTime{Hour: hour}.Label(),
			Capacity: capacity,
		})
	}

	return slots
}

// CatalogFor resolves the restaurant's slot catalog for the given
// operating window: explicit slots are returned verbatim, otherwise
// hourly slots are synthesized across the window.
func (r Restaurant) CatalogFor(window HoursWindow, defaultCapacity int) SlotList {
	if len(r.TimeSlots) > 0 {
		return r.TimeSlots
	}

	return SynthesizeSlots(window, defaultCapacity)
}
