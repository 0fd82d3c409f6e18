package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fallback window applied when a weekday has no configured hours or the
// configured strings cannot be parsed. Availability computation stays total.
const (
	DefaultOpenTime  = "10:00"
	DefaultCloseTime = "22:00"

	DefaultOpenHour  = 10
	DefaultCloseHour = 22
)

// HoursWindow is a single weekday's open/close bracket in 24-hour
// "HH:MM" form.
type HoursWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpenHour returns the window's opening hour. Malformed values resolve
// to the default opening hour instead of failing.
func (w HoursWindow) OpenHour() int {
	return parseHour(w.Open, DefaultOpenHour)
}

// CloseHour returns the window's closing hour. Malformed values resolve
// to the default closing hour instead of failing.
func (w HoursWindow) CloseHour() int {
	return parseHour(w.Close, DefaultCloseHour)
}

// Brackets reports whether hour falls inside the window, opening hour
// inclusive and closing hour exclusive.
func (w HoursWindow) Brackets(hour int) bool {
	return w.OpenHour() <= hour && hour < w.CloseHour()
}

func parseHour(value string, fallback int) int {
	head, _, found := strings.Cut(value, ":")
	if !found {
		head = value
	}

	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || hour < 0 || hour > 23 {
		return fallback
	}

	return hour
}

// WeekSchedule maps lowercase weekday names ("sunday".."saturday") to
// that day's operating window. Stored as a JSONB column.
type WeekSchedule map[string]HoursWindow

// WeekdayKey returns the schedule key for a calendar date's weekday.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// ResolveHours returns the operating window applicable to date. Weekdays
// missing from the schedule resolve to the 10:00-22:00 default window.
func (s WeekSchedule) ResolveHours(date time.Time) HoursWindow {
	if window, ok := s[WeekdayKey(date)]; ok {
		return window
	}

	return HoursWindow{Open: DefaultOpenTime, Close: DefaultCloseTime}
}

func (s WeekSchedule) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal week schedule: %w", err)
	}

	return data, nil
}

func (s *WeekSchedule) Scan(src any) error {
	if src == nil {
		*s = WeekSchedule{}

		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported scan type for week schedule: %T", src)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to unmarshal week schedule: %w", err)
	}

	return nil
}
