package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// Thresholds for the optional insight sections.
const (
	weekdayMinEntries = 5
	trendMinEntries   = 7
	trendSampleSize   = 3
)

// Insights builds the narrative self-report analysis. Entries must be newest
// first, one per date (the Store's ListEntries order). The level of detail
// grows with the number of entries: 0, 1, 2 and 3+ get distinct tiers.
func Insights(entries []internal.Entry) string {
	switch len(entries) {
	case 0:
		return "📊 *No data yet*\n\nStart tracking how you feel via *Record entry*. " +
			"The more entries you add, the more precise the analysis gets! 🌱"
	case 1:
		return singleEntryInsights(entries[0])
	case 2:
		return twoEntryInsights(entries)
	default:
		return fullInsights(entries)
	}
}

func singleEntryInsights(e internal.Entry) string {
	var tips []string

	switch {
	case e.Mood >= 8:
		tips = append(tips, "🌟 Great mood! Try to remember what made this day work and repeat it.")
	case e.Mood >= 5:
		tips = append(tips, "😊 Decent mood. Adding a favourite activity to your day could lift it further.")
	default:
		tips = append(tips, "😔 Mood below average. Maybe today was just a hard day — tomorrow can be better.")
	}
	switch {
	case e.Energy >= 8:
		tips = append(tips, "⚡ You are full of energy — a good time for the important stuff.")
	case e.Energy >= 5:
		tips = append(tips, "⚡ Enough energy for the day. A short walk can top it up.")
	default:
		tips = append(tips, "⚡ Low on energy. Consider taking a proper rest.")
	}
	switch {
	case e.Anxiety >= 7:
		tips = append(tips, "😰 Anxiety is high. Try slow breathing: in for 4 counts, out for 6.")
	case e.Anxiety >= 4:
		tips = append(tips, "😐 Moderate anxiety. Calm music or a cup of herbal tea may help.")
	default:
		tips = append(tips, "😌 Anxiety is low — you are handling stress well.")
	}
	switch {
	case e.SleepHours >= 8:
		tips = append(tips, "😴 Well rested! 8+ hours of sleep helps you recover.")
	case e.SleepHours >= 6:
		tips = append(tips, "😴 Sleep is okay; aim for 7-8 hours for better recovery.")
	default:
		tips = append(tips, "😴 Not much sleep. Try going to bed earlier tonight.")
	}

	return fmt.Sprintf(
		"📊 *Your statistics (1 entry)*\n\n"+
			"📅 Entry for %s:\n"+
			"😊 Mood: %d/10\n⚡ Energy: %d/10\n😰 Anxiety: %d/10\n😴 Sleep: %.1f h\n\n"+
			"💡 *Today's reading:*\n• %s\n\n"+
			"🌟 Keep tracking — richer analysis unlocks after a few more days.",
		e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours,
		strings.Join(tips, "\n• "))
}

func twoEntryInsights(entries []internal.Entry) string {
	newer, older := entries[0], entries[1]
	avg := Means(entries)

	var changes []string
	if d := newer.Mood - older.Mood; d > 0 {
		changes = append(changes, fmt.Sprintf("mood is up by %d", d))
	} else if d < 0 {
		changes = append(changes, fmt.Sprintf("mood is down by %d", -d))
	}
	if d := newer.Energy - older.Energy; d > 0 {
		changes = append(changes, fmt.Sprintf("energy is up by %d", d))
	} else if d < 0 {
		changes = append(changes, fmt.Sprintf("energy is down by %d", -d))
	}
	comparison := "both days look about the same"
	if len(changes) > 0 {
		comparison = strings.Join(changes, " and ")
	}

	return fmt.Sprintf(
		"📊 *Your statistics (2 entries)*\n\n"+
			"😊 Mood: %.1f/10\n⚡ Energy: %.1f/10\n😰 Anxiety: %.1f/10\n😴 Sleep: %.1f h\n\n"+
			"📈 *Change:* %s\n\n"+
			"🌟 Add a few more entries for the full analysis!",
		avg.Mood, avg.Energy, avg.Anxiety, avg.Sleep, comparison)
}

func fullInsights(entries []internal.Entry) string {
	avg := Means(entries)
	best, worst := BestWorstByMood(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 *Your well-being analysis*\n\n")
	fmt.Fprintf(&b, "📊 *Statistics (%d entries)*\n", len(entries))
	fmt.Fprintf(&b, "😊 Mood: %.1f/10\n", avg.Mood)
	fmt.Fprintf(&b, "⚡ Energy: %.1f/10\n", avg.Energy)
	fmt.Fprintf(&b, "😰 Anxiety: %.1f/10\n", avg.Anxiety)
	fmt.Fprintf(&b, "😴 Sleep: %.1f h\n\n", avg.Sleep)
	fmt.Fprintf(&b, "🌟 *Best day:* %s (mood %d/10)\n", best.Date, best.Mood)
	fmt.Fprintf(&b, "😔 *Hardest day:* %s (mood %d/10)\n", worst.Date, worst.Mood)

	if len(entries) >= weekdayMinEntries {
		if day, ok := hardestWeekday(entries); ok {
			fmt.Fprintf(&b, "\n📅 *By weekday*\n")
			fmt.Fprintf(&b, "   • Lowest average mood: %s\n", day)
		}
	}

	b.WriteString("\n😴 *Sleep*\n")
	switch {
	case avg.Sleep < 6:
		b.WriteString("   • Under 6 hours on average — that is not enough.\n")
		b.WriteString("   💡 Try moving bedtime 30-40 minutes earlier.\n")
	case avg.Sleep < 7:
		b.WriteString("   • Around 6 hours — decent, with room to improve.\n")
	case avg.Sleep <= 9:
		b.WriteString("   • Solid sleep duration. Keep it up!\n")
	default:
		b.WriteString("   • Over 9 hours on average — sleep quality may be the real issue.\n")
	}

	b.WriteString("\n😰 *Anxiety*\n")
	switch {
	case avg.Anxiety > 7:
		b.WriteString("   • High anxiety levels.\n")
		b.WriteString("   💡 Breathing exercises and short daily walks help.\n")
	case avg.Anxiety > 5:
		b.WriteString("   • Moderate anxiety.\n")
	default:
		b.WriteString("   • Low anxiety — you are coping well with stress.\n")
	}

	if len(entries) >= trendMinEntries {
		recent := meanMood(entries[:trendSampleSize])
		oldest := meanMood(entries[len(entries)-trendSampleSize:])
		b.WriteString("\n📊 *Trend*\n")
		switch {
		case recent > oldest+1:
			b.WriteString("   📈 Your mood has been improving lately. Keep going!\n")
		case recent < oldest-1:
			b.WriteString("   📉 Your mood has been slipping lately.\n   💡 Give yourself some time to rest.\n")
		default:
			b.WriteString("   ➡️ Your mood has been stable lately.\n")
		}
	}

	return b.String()
}

// hardestWeekday returns the weekday with the lowest mean mood.
func hardestWeekday(entries []internal.Entry) (string, bool) {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, e := range entries {
		d, err := time.Parse(internal.DateFormat, e.Date)
		if err != nil {
			continue
		}
		sums[d.Weekday()] += float64(e.Mood)
		counts[d.Weekday()]++
	}
	if len(counts) == 0 {
		return "", false
	}
	var worst time.Weekday
	worstMean := 11.0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		mean := sums[wd] / float64(counts[wd])
		if mean < worstMean {
			worstMean = mean
			worst = wd
		}
	}
	return worst.String(), true
}

func meanMood(entries []internal.Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += float64(e.Mood)
	}
	return sum / float64(len(entries))
}
