package timezone_test

import (
	"testing"
	"time"

	"github.com/ComfortN/restaurent-cms/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestStartOfDay(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2026-09-07")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	start := timezone.StartOfDay(parsed.Add(15 * time.Hour))

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay() returned %v, expected midnight", start)
	}

	if start.Day() != 7 {
		t.Errorf("StartOfDay() changed the calendar day to %d", start.Day())
	}
}

func TestDayRange(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2026-09-07")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	start, end := timezone.DayRange(parsed)

	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("DayRange() returned [%v, %v), expected a 24 hour span", start, end)
	}

	inside := start.Add(23 * time.Hour)
	if inside.Before(start) || !inside.Before(end) {
		t.Error("DayRange() does not cover the full calendar day")
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("Today() returned %v, expected midnight", today)
	}

	if timezone.Now().Before(today) {
		t.Error("Today() is in the future")
	}
}
