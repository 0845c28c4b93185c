// Package timeutil provides time formatting utilities for Tally.
//
// Counter events are stored as Unix milliseconds (int64), the same unit
// written to data.json. This package handles conversion to human-readable
// formats for the TUI and summary reports.
package timeutil

import (
	"fmt"
	"time"
)

// FromMilli converts a Unix millisecond timestamp to time.Time.
func FromMilli(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ToMilli converts a time.Time to Unix milliseconds.
func ToMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// FormatTimestamp formats a Unix millisecond timestamp for display
// on a counter card. Format: "HH:MM:SS.mmm"
func FormatTimestamp(ms int64) string {
	return FromMilli(ms).Format("15:04:05.000")
}

// FormatTimestampFull formats a Unix millisecond timestamp with date.
// Format: "2006-01-02 15:04:05.000"
func FormatTimestampFull(ms int64) string {
	return FromMilli(ms).Format("2006-01-02 15:04:05.000")
}

// FormatDuration formats a duration in milliseconds to a human-readable string.
// Examples: "1.2s", "450ms", "2m 15.3s"
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remaining := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}

// RelativeTime returns a human-readable relative time string.
// Examples: "just now", "5s ago", "2m ago", "1h ago"
func RelativeTime(ms int64, now time.Time) string {
	diff := now.Sub(FromMilli(ms))

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
