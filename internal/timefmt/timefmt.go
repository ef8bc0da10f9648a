package timefmt

import (
	"fmt"
	"time"
)

// Age describes how long before reference t happened, coarsely: "just now",
// "5 min ago", "3 hours ago", "2 days ago", then a calendar date. A zero
// reference means time.Now().
func Age(t, reference time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	diff := reference.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "min") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour") + " ago"
	case diff < 14*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day") + " ago"
	}
	t = t.In(reference.Location())
	if t.Year() == reference.Year() {
		return "on " + t.Format("Jan 2")
	}
	return "on " + t.Format("Jan 2 2006")
}

func plural(n int, unit string) string {
	if n == 1 || unit == "min" {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
