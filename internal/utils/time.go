package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Clock supplies the current instant. Every function that needs "now" takes
// a Clock (or a day key derived from one) instead of reading the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// DayKey returns the canonical day key (YYYY-MM-DD) of t in t's own location.
// Two instants on the same local calendar day always share a key.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the day key for the clock's current instant.
func Today(c Clock) string {
	return DayKey(c.Now())
}

// ParseDay parses a day key into midnight UTC of that calendar day.
// Day arithmetic is done on these UTC midnights so that daylight-saving
// shifts in the user's zone cannot make a day 23 or 25 hours long.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", day, err)
	}
	return t, nil
}

// ValidDay reports whether s is a well-formed day key.
func ValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// AddDays shifts a day key by n calendar days. Invalid keys are returned unchanged.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return DayKey(t.AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// It returns 0 if either key is malformed.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return DayKey(t.AddDate(0, 0, -offset))
}

// Weekday returns the short weekday name for a day key ("Mon", "Tue", ...).
func Weekday(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NewClock returns a SystemClock for the named timezone.
func NewClock(timezone string) (Clock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
