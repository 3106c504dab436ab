package timezone_test

import (
	"testing"
	"time"

	"dpbooking/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

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

func TestTimezoneParseMonth(t *testing.T) {
	parsed, err := timezone.Parse("2006-01", "2024-03")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if parsed.Year() != 2024 || parsed.Month() != time.March || parsed.Day() != 1 {
		t.Errorf("expected first day of March 2024, got %v", parsed)
	}

	if _, err := timezone.Parse("2006-01", "March 2024"); err == nil {
		t.Error("expected error for malformed month value")
	}
}
