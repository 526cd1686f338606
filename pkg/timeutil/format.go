// Package timeutil formats durations for debug output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d in the compact style used by debug loggers:
// "850ns", "12µs", "3ms", "1.2s", "2m5s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Truncate(time.Second).String()
	}
}
