// Package datetime provides date and time display helpers.
// All timestamps are stored and transmitted in UTC using RFC3339.
package datetime

import (
	"fmt"
	"time"
)

// TimeAgo renders the elapsed time since t as the tracker UI shows it,
// e.g. "Just now", "5 minutes ago", "2 days ago".
func TimeAgo(t time.Time) string {
	return TimeAgoAt(t, time.Now())
}

// TimeAgoAt is TimeAgo against an explicit reference instant.
func TimeAgoAt(t, now time.Time) string {
	diff := now.Sub(t)

	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return pluralAgo(minutes, "minute")
	case hours < 24:
		return pluralAgo(hours, "hour")
	case days < 30:
		return pluralAgo(days, "day")
	default:
		return pluralAgo(days/30, "month")
	}
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
