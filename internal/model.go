package internal

import "time"

// DateFormat is the canonical day-granularity key used everywhere an entry
// date is stored or compared.
const DateFormat = "2006-01-02"

type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is one day's structured self-report. There is at most one
// authoritative entry per (user, date); a newer entry for the same date
// replaces the old one.
type Entry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Date       string    `json:"date"` // DateFormat
	Mood       int       `json:"mood"`
	Energy     int       `json:"energy"`
	Anxiety    int       `json:"anxiety"`
	SleepHours float64   `json:"sleep_hours"`
	Note       string    `json:"note,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AchievementUnlock records that a user earned one achievement type.
// Unique per (user, type); never removed except by full data erasure.
type AchievementUnlock struct {
	UserID   int64     `json:"user_id"`
	Type     string    `json:"type"`
	EarnedAt time.Time `json:"earned_at"`
}

// ReminderConfig is the persisted shape of a user's daily reminder. The live
// timer is ephemeral and rebuilt from this at process start.
type ReminderConfig struct {
	UserID     int64  `json:"user_id"`
	TelegramID int64  `json:"telegram_id"`
	Time       string `json:"time,omitempty"` // "HH:MM", empty when unset
	Note       string `json:"note,omitempty"`
	Enabled    bool   `json:"enabled"`
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
