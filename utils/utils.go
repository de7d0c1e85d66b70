package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/logrusorgru/aurora"
)

// Success formats a message highlighted as a successful outcome.
func Success(format string, args ...interface{}) string {
	return aurora.Green(fmt.Sprintf(format, args...)).String()
}

// Failure formats a message highlighted as an error.
func Failure(format string, args ...interface{}) string {
	return aurora.Red(fmt.Sprintf(format, args...)).String()
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 1.0 {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(remainingSeconds))
	}
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dh:%dm:%ds",
		int64(d.Hours()), int64(remainingMinutes), int64(remainingSeconds))
}
