package chrono

import (
	"errors"
	"testing"
	"time"
)

func TestParseAPIDate_Valid(t *testing.T) {
	got, err := ParseAPIDate("15Jun2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseAPIDate_RoundTrip(t *testing.T) {
	// parse(format(d)) must equal startOfDay(d)
	d := time.Date(2021, time.March, 3, 17, 45, 12, 0, time.UTC)
	parsed, err := ParseAPIDate(FormatAPIDate(d))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(StartOfDay(d)) {
		t.Errorf("round trip broke: got %v, want %v", parsed, StartOfDay(d))
	}
}

func TestParseAPIDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2020-06-15", "32Jun2020", "15Junk2020", "garbage"} {
		if _, err := ParseAPIDate(s); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseAPIDate(%q): expected ErrInvalidFormat, got %v", s, err)
		}
	}
}

func TestEndOfDay_InclusiveBound(t *testing.T) {
	day := time.Date(2020, time.June, 15, 9, 0, 0, 0, time.UTC)
	end := EndOfDay(day)
	if !end.After(time.Date(2020, time.June, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end of day too early: %v", end)
	}
	if !end.Before(time.Date(2020, time.June, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end of day spilled into next day: %v", end)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2020, time.June, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDisplayDate(d); got != "2020.06.05" {
		t.Errorf("got %q, want %q", got, "2020.06.05")
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h0m"},
		{450, "7h30m"},
		{1441, "24h1m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
