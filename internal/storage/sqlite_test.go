package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewMemorySQLite(internal.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createUser(t *testing.T, s *SQLiteStorage, telegramID int64) int64 {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, telegramID, "tester"))
	u, err := s.GetUserByTelegramID(ctx, telegramID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID
}

func today(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(internal.DateFormat)
}

func TestCreateUserIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, 42, "alice"))
	require.NoError(t, s.CreateUser(ctx, 42, "alice"))

	u, err := s.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}

func TestGetUserMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)
	u, err := s.GetUserByTelegramID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestReplaceEntryKeepsOnePerDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)
	date := today(0)

	_, err := s.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: date, Mood: 4, Energy: 4, Anxiety: 6, SleepHours: 6,
	}, []string{"work", "stress"})
	require.NoError(t, err)

	_, err = s.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: date, Mood: 8, Energy: 7, Anxiety: 2, SleepHours: 8,
	}, []string{"rest"})
	require.NoError(t, err)

	entries, err := s.ListEntries(ctx, userID, 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 8, entries[0].Mood)
	assert.Equal(t, []string{"rest"}, entries[0].Tags, "old tag links must be gone")
}

func TestHasEntryForDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	has, err := s.HasEntryForDate(ctx, userID, today(0))
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: today(0), Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	}, nil)
	require.NoError(t, err)

	has, err = s.HasEntryForDate(ctx, userID, today(0))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestListEntriesNewestFirstWithinWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	for _, offset := range []int{0, -1, -2, -40} {
		_, err := s.ReplaceEntry(ctx, &internal.Entry{
			UserID: userID, Date: today(offset), Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
		}, nil)
		require.NoError(t, err)
	}

	entries, err := s.ListEntries(ctx, userID, 30)
	require.NoError(t, err)
	require.Len(t, entries, 3, "the 40-day-old entry is outside the window")
	assert.Equal(t, today(0), entries[0].Date)
	assert.Equal(t, today(-2), entries[2].Date)
}

func TestDeleteEntryRemovesTagLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	id, err := s.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: today(0), Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	}, []string{"sport"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(ctx, id))

	entries, err := s.ListEntries(ctx, userID, 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAchievementUnlockIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	require.NoError(t, s.InsertAchievementUnlock(ctx, userID, "first_entry"))
	require.NoError(t, s.InsertAchievementUnlock(ctx, userID, "first_entry"))

	types, err := s.ListUnlockedAchievements(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_entry"}, types)
}

func TestReminderConfigRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	require.NoError(t, s.SetReminderTime(ctx, userID, "09:30"))
	require.NoError(t, s.SetReminderNote(ctx, userID, "drink water"))

	cfg, err := s.GetReminder(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "09:30", cfg.Time)
	assert.Equal(t, "drink water", cfg.Note)
	assert.True(t, cfg.Enabled)

	list, err := s.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(42), list[0].TelegramID)

	require.NoError(t, s.DisableReminder(ctx, userID))

	cfg, err = s.GetReminder(ctx, userID)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	list, err = s.ListReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEraseUserDataCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := createUser(t, s, 42)

	_, err := s.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: today(0), Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	}, []string{"sport"})
	require.NoError(t, err)
	require.NoError(t, s.InsertAchievementUnlock(ctx, userID, "first_entry"))
	require.NoError(t, s.SetReminderTime(ctx, userID, "09:00"))

	require.NoError(t, s.EraseUserData(ctx, 42))

	u, err := s.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	// Erasing an unknown account is a no-op.
	require.NoError(t, s.EraseUserData(ctx, 42))
}
