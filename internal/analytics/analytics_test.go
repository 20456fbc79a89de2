package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(internal.DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestStreakConsecutiveEndingYesterday(t *testing.T) {
	today := day(t, "2024-03-10")
	dates := []string{"2024-03-09", "2024-03-08", "2024-03-07"}

	assert.Equal(t, 3, Streak(dates, today))
}

func TestStreakOnlyToday(t *testing.T) {
	today := day(t, "2024-03-10")

	assert.Equal(t, 1, Streak([]string{"2024-03-10"}, today))
}

func TestStreakBrokenByGap(t *testing.T) {
	today := day(t, "2024-03-10")

	// Newest entry is two days old, so the streak is dead.
	assert.Equal(t, 0, Streak([]string{"2024-03-08", "2024-03-07"}, today))

	// A gap inside the run stops the count.
	dates := []string{"2024-03-10", "2024-03-09", "2024-03-07", "2024-03-06"}
	assert.Equal(t, 2, Streak(dates, today))
}

func TestStreakRespectsCallerTimeZone(t *testing.T) {
	// Just past midnight in UTC+3: it is already 2024-03-10 locally, so a
	// newest entry of 2024-03-08 is two calendar days old and the streak is
	// dead, even though UTC still reads 2024-03-09.
	zone := time.FixedZone("UTC+3", 3*60*60)
	today := time.Date(2024, 3, 10, 0, 30, 0, 0, zone)

	assert.Equal(t, 0, Streak([]string{"2024-03-08", "2024-03-07"}, today))
	assert.Equal(t, 2, Streak([]string{"2024-03-09", "2024-03-08"}, today))
}

func TestStreakOrderAndDuplicateInvariance(t *testing.T) {
	today := day(t, "2024-03-10")
	sorted := []string{"2024-03-10", "2024-03-09", "2024-03-08"}
	shuffled := []string{"2024-03-08", "2024-03-10", "2024-03-09", "2024-03-09", "2024-03-08"}

	assert.Equal(t, Streak(sorted, today), Streak(shuffled, today))
}

func TestStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, time.Now()))
}

func TestMeans(t *testing.T) {
	entries := []internal.Entry{
		{Mood: 8, Energy: 6, Anxiety: 2, SleepHours: 8},
		{Mood: 4, Energy: 4, Anxiety: 6, SleepHours: 6},
	}

	avg := Means(entries)
	assert.InDelta(t, 6.0, avg.Mood, 0.001)
	assert.InDelta(t, 5.0, avg.Energy, 0.001)
	assert.InDelta(t, 4.0, avg.Anxiety, 0.001)
	assert.InDelta(t, 7.0, avg.Sleep, 0.001)
}

func TestMeansEmpty(t *testing.T) {
	assert.Equal(t, Averages{}, Means(nil))
}

func TestWithinDays(t *testing.T) {
	today := day(t, "2024-03-10")
	entries := []internal.Entry{
		{Date: "2024-03-10"},
		{Date: "2024-03-05"},
		{Date: "2024-02-01"},
	}

	recent := WithinDays(entries, 7, today)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-03-10", recent[0].Date)
	assert.Equal(t, "2024-03-05", recent[1].Date)
}

func TestBestWorstByMoodTiesGoFirst(t *testing.T) {
	entries := []internal.Entry{
		{Date: "2024-03-10", Mood: 9},
		{Date: "2024-03-09", Mood: 9},
		{Date: "2024-03-08", Mood: 2},
		{Date: "2024-03-07", Mood: 2},
	}

	best, worst := BestWorstByMood(entries)
	assert.Equal(t, "2024-03-10", best.Date)
	assert.Equal(t, "2024-03-08", worst.Date)
}

func TestInsightsTiers(t *testing.T) {
	assert.Contains(t, Insights(nil), "No data yet")

	one := []internal.Entry{{Date: "2024-03-10", Mood: 8, Energy: 7, Anxiety: 2, SleepHours: 8}}
	assert.Contains(t, Insights(one), "1 entry")

	two := append(one, internal.Entry{Date: "2024-03-09", Mood: 5, Energy: 5, Anxiety: 4, SleepHours: 7})
	out := Insights(two)
	assert.Contains(t, out, "2 entries")
	assert.Contains(t, out, "mood is up by 3")
}

func TestInsightsFullTier(t *testing.T) {
	entries := []internal.Entry{
		{Date: "2024-03-10", Mood: 9, Energy: 8, Anxiety: 2, SleepHours: 8},
		{Date: "2024-03-09", Mood: 6, Energy: 6, Anxiety: 4, SleepHours: 7},
		{Date: "2024-03-08", Mood: 3, Energy: 4, Anxiety: 6, SleepHours: 6},
	}

	out := Insights(entries)
	assert.Contains(t, out, "Statistics (3 entries)")
	assert.Contains(t, out, "Best day:* 2024-03-10")
	assert.Contains(t, out, "Hardest day:* 2024-03-08")
	assert.False(t, strings.Contains(out, "By weekday"), "weekday section needs 5 entries")
	assert.False(t, strings.Contains(out, "Trend"), "trend section needs 7 entries")
}

func TestInsightsTrendImproving(t *testing.T) {
	// Newest first. Recent three average 9, oldest three average 3.
	entries := []internal.Entry{
		{Date: "2024-03-10", Mood: 9, SleepHours: 7},
		{Date: "2024-03-09", Mood: 9, SleepHours: 7},
		{Date: "2024-03-08", Mood: 9, SleepHours: 7},
		{Date: "2024-03-07", Mood: 6, SleepHours: 7},
		{Date: "2024-03-06", Mood: 3, SleepHours: 7},
		{Date: "2024-03-05", Mood: 3, SleepHours: 7},
		{Date: "2024-03-04", Mood: 3, SleepHours: 7},
	}

	out := Insights(entries)
	assert.Contains(t, out, "By weekday")
	assert.Contains(t, out, "improving")
}
