package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store, err := storage.NewMemorySQLite(internal.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ev := achievements.NewEvaluator(store, internal.NopLogger{})
	return New(store, ev, internal.NopLogger{}), store
}

func TestCommitEntryCreatesUserAndAwardsFirstEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Username: "alice",
		Mood: 7, Energy: 6, Anxiety: 3, SleepHours: 7.5,
		Tags: []string{"sport"}, Note: "gym day",
	})
	require.NoError(t, err)
	require.Len(t, res.Awarded, 1)
	assert.Equal(t, achievements.TypeFirstEntry, res.Awarded[0].Type)

	stats, err := svc.Stats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 1, stats.Streak)
	assert.InDelta(t, 7.0, stats.Averages.Mood, 0.001)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, []string{"sport"}, stats.Recent[0].Tags)
}

func TestCommitEntryRejectsOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Mood: 11, Energy: 5, Anxiety: 5, SleepHours: 7,
	})
	assert.Error(t, err)

	_, err = svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 0.5,
	})
	assert.Error(t, err)
}

func TestCommitTwiceSameDayKeepsOneEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Mood: 4, Energy: 4, Anxiety: 4, SleepHours: 6,
		Tags: []string{"work", "stress"},
	})
	require.NoError(t, err)

	res, err := svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Mood: 8, Energy: 7, Anxiety: 2, SleepHours: 8,
		Tags: []string{"rest"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Awarded, "no new achievements on overwrite")

	stats, err := svc.Stats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 8, stats.Recent[0].Mood)
	assert.Equal(t, []string{"rest"}, stats.Recent[0].Tags)
}

func TestHasEntryToday(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	has, err := svc.HasEntryToday(ctx, 42)
	require.NoError(t, err)
	assert.False(t, has, "unknown user has no entry")

	_, err = svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	})
	require.NoError(t, err)

	has, err = svc.HasEntryToday(ctx, 42)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestStatsUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Stats(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEraseUserRemovesHistoryAndRecreates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CommitEntry(ctx, CommitEntryRequest{
		TelegramID: 42, Username: "alice",
		Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	})
	require.NoError(t, err)

	require.NoError(t, svc.EraseUser(ctx, 42, "alice"))

	stats, err := svc.Stats(ctx, 42)
	require.NoError(t, err, "user row is recreated by erase")
	assert.Equal(t, 0, stats.TotalEntries)

	unlocked, _, err := svc.Achievements(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestStreakAcrossDays(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, 42, "alice"))
	user, err := store.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		date := time.Now().AddDate(0, 0, -i).Format(internal.DateFormat)
		_, err := store.ReplaceEntry(ctx, &internal.Entry{
			UserID: user.ID, Date: date, Mood: 6, Energy: 6, Anxiety: 4, SleepHours: 7,
		}, nil)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Streak)
}
