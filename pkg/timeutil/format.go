// Package timeutil holds small duration helpers shared by the logger and CLI.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d compactly: "850µs", "12ms", "1.4s", "2m3s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
