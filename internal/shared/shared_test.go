package shared

import (
	"testing"
	"time"
)

func TestDurationFromMicros(t *testing.T) {
	tc := []struct {
		name   string
		micros int64
		want   time.Duration
	}{
		{name: "zero", micros: 0, want: 0},
		{name: "whole seconds", micros: 5_000_000, want: 5 * time.Second},
		{name: "sub-second remainder", micros: 5_543_210, want: 5*time.Second + 543*time.Millisecond + 210*time.Microsecond},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationFromMicros(tt.micros)
			if got != tt.want {
				t.Errorf("DurationFromMicros(%d) = %v, want %v", tt.micros, got, tt.want)
			}
			if DurationMicros(got) != tt.micros {
				t.Errorf("DurationMicros(%v) = %d, want %d", got, DurationMicros(got), tt.micros)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0:00"},
		{name: "negative clamps to zero", d: -time.Second, want: "0:00"},
		{name: "under a minute", d: 42 * time.Second, want: "0:42"},
		{name: "minutes and seconds", d: 4*time.Minute + 3*time.Second, want: "4:03"},
		{name: "rounds sub-second parts", d: 2*time.Minute + 59*time.Second + 600*time.Millisecond, want: "3:00"},
		{name: "past the hour", d: time.Hour + 2*time.Minute + 5*time.Second, want: "1:02:05"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("generated ids should not be empty")
	}
	if a == b {
		t.Error("generated ids should be unique")
	}
}
