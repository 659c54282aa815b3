// Package timecode formats elapsed-seconds values for human-readable
// timecodes and SRT subtitle timing lines.
package timecode

import (
	"fmt"
	"math"
)

// Format renders seconds as MM:SS, or HH:MM:SS once the value reaches an hour.
// Negative input is clamped to zero.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatSRT renders seconds as HH:MM:SS,mmm per the SRT convention
// (comma decimal separator, three-digit milliseconds).
func FormatSRT(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int(math.Round(seconds * 1000))
	hours := totalMillis / 3600000
	minutes := (totalMillis % 3600000) / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
