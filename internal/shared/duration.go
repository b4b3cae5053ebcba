package shared

import (
	"fmt"
	"time"
)

// DurationFromMicros converts an MPRIS microsecond length into a [time.Duration].
// Track lengths cross the wire as int64 microseconds.
func DurationFromMicros(micros int64) time.Duration {
	return time.Duration(micros) * time.Microsecond
}

// DurationMicros converts a [time.Duration] back to wire microseconds.
func DurationMicros(d time.Duration) int64 {
	return d.Microseconds()
}

// FormatDuration renders a track length as m:ss, or h:mm:ss past the hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
