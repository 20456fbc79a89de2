package storage

import (
	"context"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// Store is the record-store contract the bot and API depend on. Every write
// is an atomic unit scoped to one user; ReplaceEntry is the only multi-step
// unit and must be transactional in the backend.
type Store interface {
	// CreateUser registers a telegram user. Idempotent.
	CreateUser(ctx context.Context, telegramID int64, username string) error
	// GetUserByTelegramID returns (nil, nil) when the user does not exist.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*internal.User, error)

	HasEntryForDate(ctx context.Context, userID int64, date string) (bool, error)
	InsertEntry(ctx context.Context, e *internal.Entry) (int64, error)
	AttachTags(ctx context.Context, entryID int64, tags []string) error
	// DeleteEntry removes an entry together with its tag links.
	DeleteEntry(ctx context.Context, entryID int64) error
	// ReplaceEntry deletes any existing entries for (e.UserID, e.Date), then
	// inserts e with its tags, all in one transaction.
	ReplaceEntry(ctx context.Context, e *internal.Entry, tags []string) (int64, error)
	// ListEntries returns entries with tags for the last lookbackDays calendar
	// days, newest first, at most one entry per date (newest wins).
	ListEntries(ctx context.Context, userID int64, lookbackDays int) ([]internal.Entry, error)

	ListUnlockedAchievements(ctx context.Context, userID int64) ([]string, error)
	// InsertAchievementUnlock is idempotent per (user, type).
	InsertAchievementUnlock(ctx context.Context, userID int64, achievementType string) error

	SetReminderTime(ctx context.Context, userID int64, hhmm string) error
	SetReminderNote(ctx context.Context, userID int64, note string) error
	DisableReminder(ctx context.Context, userID int64) error
	GetReminder(ctx context.Context, userID int64) (*internal.ReminderConfig, error)
	// ListReminders returns configs with Enabled=true and a non-empty time.
	ListReminders(ctx context.Context) ([]internal.ReminderConfig, error)

	// EraseUserData cascades: tag links, entries, unlocks, reminder config,
	// the user row itself.
	EraseUserData(ctx context.Context, telegramID int64) error

	Close() error
}
