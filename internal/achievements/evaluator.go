package achievements

import (
	"context"
	"time"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/analytics"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

// Evaluator awards achievements after entry commits. Each type is awarded at
// most once per user; the unique index in storage backs that up even if two
// commits race.
type Evaluator struct {
	store  storage.Store
	logger internal.Logger
	now    func() time.Time
}

func NewEvaluator(store storage.Store, logger internal.Logger) *Evaluator {
	return &Evaluator{store: store, logger: logger, now: time.Now}
}

// Evaluate checks the whole catalog against the user's current history and
// persists any newly earned achievements. It returns the new unlocks in
// catalog order. A persistence failure for one type is logged and skipped so
// the remaining types still get their chance.
func (e *Evaluator) Evaluate(ctx context.Context, userID int64) ([]Achievement, error) {
	entries, err := e.store.ListEntries(ctx, userID, historyWindowDays)
	if err != nil {
		return nil, err
	}
	unlockedTypes, err := e.store.ListUnlockedAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[Type]bool, len(unlockedTypes))
	for _, t := range unlockedTypes {
		unlocked[Type(t)] = true
	}

	today := e.now()
	total := len(entries)
	streak := analytics.Streak(analytics.EntryDates(entries), today)

	recent := analytics.WithinDays(entries, rateWindowDays, today)
	var rates analytics.Averages
	rateSampleOK := len(recent) >= minRateEntries
	if rateSampleOK {
		rates = analytics.Means(recent)
	}

	qualifies := func(t Type) bool {
		switch t {
		case TypeFirstEntry:
			return total >= 1
		case TypeTotal10:
			return total >= 10
		case TypeTotal50:
			return total >= 50
		case TypeStreak3:
			return streak >= 3
		case TypeStreak7:
			return streak >= 7
		case TypeStreak30:
			return streak >= 30
		case TypeMoodMaster:
			return rateSampleOK && rates.Mood >= 8
		case TypeSleepKing:
			// Healthy band, not a maximum: oversleeping does not qualify.
			return rateSampleOK && rates.Sleep >= 7 && rates.Sleep <= 9
		case TypeEnergyBoost:
			return rateSampleOK && rates.Energy >= 8
		case TypeCalmMind:
			return rateSampleOK && rates.Anxiety <= 4
		default:
			return false
		}
	}

	var awarded []Achievement
	for _, a := range Catalog {
		if unlocked[a.Type] || !qualifies(a.Type) {
			continue
		}
		if err := e.store.InsertAchievementUnlock(ctx, userID, string(a.Type)); err != nil {
			e.logger.Errorf("persist achievement %s for user %d: %v", a.Type, userID, err)
			continue
		}
		awarded = append(awarded, a)
	}
	return awarded, nil
}

// Unlocked returns the user's earned achievements in catalog order, plus the
// catalog size for progress display.
func (e *Evaluator) Unlocked(ctx context.Context, userID int64) ([]Achievement, int, error) {
	types, err := e.store.ListUnlockedAchievements(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	have := make(map[Type]bool, len(types))
	for _, t := range types {
		have[Type(t)] = true
	}
	var out []Achievement
	for _, a := range Catalog {
		if have[a.Type] {
			out = append(out, a)
		}
	}
	return out, len(Catalog), nil
}
