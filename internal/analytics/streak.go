package analytics

import (
	"sort"
	"time"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// Streak counts consecutive calendar days with at least one entry, ending at
// today or yesterday. The result depends only on the set of distinct dates:
// duplicates and input order do not matter.
func Streak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(dates))
	var days []time.Time
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		t, err := time.Parse(internal.DateFormat, d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	// daysBetween normalizes both sides to their own calendar day, so the
	// caller's time zone is respected.
	if daysBetween(days[0], today) > 1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		if daysBetween(days[i+1], days[i]) == 1 {
			streak++
		} else {
			break
		}
	}
	return streak
}

// EntryDates extracts the date column, preserving order.
func EntryDates(entries []internal.Entry) []string {
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	return dates
}

func daysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}
