package timefmt

import (
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	loc := time.FixedZone("Test", -8*3600)
	ref := time.Date(2025, time.December, 5, 15, 0, 0, 0, loc)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"seconds", ref.Add(-3 * time.Second), "just now"},
		{"future", ref.Add(10 * time.Second), "just now"},
		{"minute", ref.Add(-time.Minute), "1 min ago"},
		{"minutes", ref.Add(-42 * time.Minute), "42 min ago"},
		{"hour", ref.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", ref.Add(-5 * time.Hour), "5 hours ago"},
		{"day", ref.Add(-30 * time.Hour), "1 day ago"},
		{"days", ref.Add(-4 * 24 * time.Hour), "4 days ago"},
		{"sameYear", ref.AddDate(0, -2, 0), "on Oct 5"},
		{"differentYear", time.Date(2023, time.January, 2, 15, 0, 0, 0, loc), "on Jan 2 2023"},
		{"unknown", time.Time{}, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Age(tc.ts, ref); got != tc.want {
				t.Fatalf("Age(%s) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}
