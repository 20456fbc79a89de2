package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

type recordingChannel struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingChannel) SendText(telegramID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingChannel) SendImage(int64, []byte, string) error           { return nil }
func (r *recordingChannel) SendDocument(int64, string, []byte, string) error { return nil }

func newTestScheduler(t *testing.T) (*Scheduler, storage.Store, *recordingChannel) {
	t.Helper()
	store, err := storage.NewMemorySQLite(internal.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ch := &recordingChannel{}
	sched := NewScheduler(store, ch, internal.NopLogger{})
	t.Cleanup(sched.Shutdown)
	return sched, store, ch
}

func seedUser(t *testing.T, store storage.Store, telegramID int64) int64 {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, telegramID, "tester"))
	user, err := store.GetUserByTelegramID(ctx, telegramID)
	require.NoError(t, err)
	return user.ID
}

func TestNextFireSameDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)
	got := nextFire(now, 9, 0)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), got)
}

func TestNextFireRollsToTomorrow(t *testing.T) {
	// Configured for 09:00, current time 09:05: next fire is tomorrow 09:00.
	now := time.Date(2024, 3, 10, 9, 5, 0, 0, time.UTC)
	got := nextFire(now, 9, 0)
	assert.Equal(t, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC), got)
}

func TestNextFireExactMinuteRolls(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	got := nextFire(now, 9, 0)
	assert.Equal(t, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC), got)
}

func TestParseTime(t *testing.T) {
	h, m, err := ParseTime("21:30")
	require.NoError(t, err)
	assert.Equal(t, 21, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"25:00", "9:70", "morning", ""} {
		_, _, err := ParseTime(bad)
		assert.Error(t, err, "%q must be rejected", bad)
	}
}

func TestSetReplacesExistingLoop(t *testing.T) {
	sched, store, _ := newTestScheduler(t)
	ctx := context.Background()
	userID := seedUser(t, store, 42)

	require.NoError(t, sched.Set(ctx, userID, 42, "09:00"))
	require.NoError(t, sched.Set(ctx, userID, 42, "21:00"))
	assert.Equal(t, 1, sched.Active(), "second Set must replace, not add")

	cfg, err := store.GetReminder(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "21:00", cfg.Time)
	assert.True(t, cfg.Enabled)
}

func TestStopDisables(t *testing.T) {
	sched, store, _ := newTestScheduler(t)
	ctx := context.Background()
	userID := seedUser(t, store, 42)

	require.NoError(t, sched.Set(ctx, userID, 42, "09:00"))
	require.NoError(t, sched.Stop(ctx, userID))
	assert.Equal(t, 0, sched.Active())

	cfg, err := store.GetReminder(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Time)
}

func TestRestoreStartsEnabledLoops(t *testing.T) {
	sched, store, _ := newTestScheduler(t)
	ctx := context.Background()

	first := seedUser(t, store, 42)
	second := seedUser(t, store, 43)
	third := seedUser(t, store, 44)

	require.NoError(t, store.SetReminderTime(ctx, first, "09:00"))
	require.NoError(t, store.SetReminderTime(ctx, second, "21:00"))
	require.NoError(t, store.SetReminderTime(ctx, third, "12:00"))
	require.NoError(t, store.DisableReminder(ctx, third))

	require.NoError(t, sched.Restore(ctx))
	assert.Equal(t, 2, sched.Active(), "only enabled reminders restart")
}

func TestSetRejectsBadTime(t *testing.T) {
	sched, store, _ := newTestScheduler(t)
	userID := seedUser(t, store, 42)

	err := sched.Set(context.Background(), userID, 42, "25:99")
	assert.Error(t, err)
	assert.Equal(t, 0, sched.Active())
}

func TestFireSendsEvenWhenEntryExists(t *testing.T) {
	sched, store, ch := newTestScheduler(t)
	ctx := context.Background()
	userID := seedUser(t, store, 42)

	// The existing-entry check is informational; the nudge still goes out.
	_, err := store.ReplaceEntry(ctx, &internal.Entry{
		UserID: userID, Date: time.Now().Format(internal.DateFormat),
		Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 7,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetReminderTime(ctx, userID, "09:00"))

	sched.fire(ctx, internal.ReminderConfig{UserID: userID, TelegramID: 42, Time: "09:00"}, internal.NopLogger{})

	ch.mu.Lock()
	defer ch.mu.Unlock()
	require.Len(t, ch.texts, 1)
	assert.Contains(t, ch.texts[0], "Time to record")
}

func TestGreetingByHour(t *testing.T) {
	assert.Contains(t, greeting(8), "morning")
	assert.Contains(t, greeting(14), "afternoon")
	assert.Contains(t, greeting(20), "evening")
	assert.Contains(t, greeting(2), "night")
}
