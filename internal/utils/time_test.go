package utils

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "start of day",
			t:    time.Date(2026, 3, 8, 0, 0, 0, 0, ny),
			want: "2026-03-08",
		},
		{
			name: "end of day",
			t:    time.Date(2026, 3, 8, 23, 59, 59, 0, ny),
			want: "2026-03-08",
		},
		{
			name: "uses the instant's own location",
			t:    time.Date(2026, 3, 9, 2, 0, 0, 0, time.UTC).In(ny),
			want: "2026-03-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.t); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayKeyStableWithinDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2026-03-08 is a DST transition day in New York (23 hours long)
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	for h := 0; h < 23; h++ {
		ts := start.Add(time.Duration(h) * time.Hour)
		if got := DayKey(ts); got != "2026-03-08" {
			t.Fatalf("DayKey(%v) = %q, want 2026-03-08", ts, got)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2026-10-17", "2026-10-17", 0},
		{"one day", "2026-10-16", "2026-10-17", 1},
		{"backwards", "2026-10-17", "2026-10-07", -10},
		{"across DST change", "2026-03-01", "2026-03-15", 14},
		{"across month", "2026-01-30", "2026-02-02", 3},
		{"malformed", "2026/10/17", "2026-10-17", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2026-12-31", 1); got != "2027-01-01" {
		t.Errorf("AddDays() = %q, want 2027-01-01", got)
	}
	if got := AddDays("2026-03-01", -1); got != "2026-02-28" {
		t.Errorf("AddDays() = %q, want 2026-02-28", got)
	}
	if got := AddDays("garbage", 3); got != "garbage" {
		t.Errorf("AddDays() on malformed key = %q, want unchanged", got)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2026-10-12", "2026-10-12"}, // Monday
		{"2026-10-15", "2026-10-12"}, // Thursday
		{"2026-10-17", "2026-10-12"}, // Saturday
		{"2026-10-18", "2026-10-12"}, // Sunday stays in the week that began on Monday
		{"2026-10-19", "2026-10-19"}, // next Monday
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			if got := WeekStart(tt.day); got != tt.want {
				t.Errorf("WeekStart(%q) = %q, want %q", tt.day, got, tt.want)
			}
		})
	}
}

func TestWeekday(t *testing.T) {
	if got := Weekday("2026-10-17"); got != "Sat" {
		t.Errorf("Weekday() = %q, want Sat", got)
	}
	if got := Weekday("nope"); got != "" {
		t.Errorf("Weekday() on malformed key = %q, want empty", got)
	}
}

func TestClocks(t *testing.T) {
	fixed := FixedClock{T: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)}
	if got := Today(fixed); got != "2026-10-17" {
		t.Errorf("Today(FixedClock) = %q, want 2026-10-17", got)
	}

	c, err := NewClock("UTC")
	if err != nil {
		t.Fatalf("NewClock(UTC) error = %v", err)
	}
	if c.Now().Location().String() != "UTC" {
		t.Errorf("NewClock(UTC) location = %v, want UTC", c.Now().Location())
	}

	if _, err := NewClock("Invalid/Timezone"); err == nil {
		t.Error("NewClock(Invalid/Timezone) should fail")
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	got, err := ParseTimeToMinutes("20:15")
	if err != nil {
		t.Fatalf("ParseTimeToMinutes() error = %v", err)
	}
	if got != 20*60+15 {
		t.Errorf("ParseTimeToMinutes() = %d, want %d", got, 20*60+15)
	}
	if _, err := ParseTimeToMinutes("25:00"); err == nil {
		t.Error("ParseTimeToMinutes(25:00) should fail")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("UTC") {
		t.Error("ValidateTimezone() rejected a valid timezone")
	}
	if ValidateTimezone("not-a-timezone") {
		t.Error("ValidateTimezone() accepted an invalid timezone")
	}
}
