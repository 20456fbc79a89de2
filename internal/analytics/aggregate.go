package analytics

import (
	"time"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// Averages holds the four running means over a window of entries.
type Averages struct {
	Mood    float64
	Energy  float64
	Anxiety float64
	Sleep   float64
}

func Means(entries []internal.Entry) Averages {
	if len(entries) == 0 {
		return Averages{}
	}
	var a Averages
	for _, e := range entries {
		a.Mood += float64(e.Mood)
		a.Energy += float64(e.Energy)
		a.Anxiety += float64(e.Anxiety)
		a.Sleep += e.SleepHours
	}
	n := float64(len(entries))
	a.Mood /= n
	a.Energy /= n
	a.Anxiety /= n
	a.Sleep /= n
	return a
}

// WithinDays filters entries to those dated within the last n days of today.
func WithinDays(entries []internal.Entry, n int, today time.Time) []internal.Entry {
	cutoff := today.AddDate(0, 0, -n)
	var out []internal.Entry
	for _, e := range entries {
		d, err := time.Parse(internal.DateFormat, e.Date)
		if err != nil {
			continue
		}
		if !d.Before(cutoff.Truncate(24 * time.Hour)) {
			out = append(out, e)
		}
	}
	return out
}

// BestWorstByMood picks the entries with the highest and lowest mood.
// Ties go to the first occurrence in the supplied order.
func BestWorstByMood(entries []internal.Entry) (best, worst internal.Entry) {
	best, worst = entries[0], entries[0]
	for _, e := range entries[1:] {
		if e.Mood > best.Mood {
			best = e
		}
		if e.Mood < worst.Mood {
			worst = e
		}
	}
	return best, worst
}
