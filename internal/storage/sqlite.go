package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

const sqliteSchemaVersion = 1

// SQLiteStorage is the default embedded backend. One connection, WAL mode,
// foreign keys on.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(dbPath string, logger internal.Logger) (*SQLiteStorage, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStorage{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemorySQLite creates an in-memory store for testing.
func NewMemorySQLite(logger internal.Logger) (*SQLiteStorage, error) {
	return NewSQLiteStorage(":memory:", logger)
}

func (s *SQLiteStorage) Close() error { return s.db.Close() }

func (s *SQLiteStorage) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteSchemaVersion {
		return nil
	}
	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion))
	return err
}

func (s *SQLiteStorage) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS users (
		user_id              INTEGER PRIMARY KEY AUTOINCREMENT,
		telegram_id          INTEGER NOT NULL UNIQUE,
		username             TEXT NOT NULL DEFAULT '',
		reminder_time        TEXT,
		reminder_note        TEXT,
		notification_enabled INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(user_id),
		date        TEXT NOT NULL,
		mood        INTEGER NOT NULL,
		energy      INTEGER NOT NULL,
		anxiety     INTEGER NOT NULL,
		sleep_hours REAL NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries(user_id, date);

	CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS entry_tags (
		entry_id INTEGER NOT NULL REFERENCES entries(id),
		tag_id   INTEGER NOT NULL REFERENCES tags(id)
	);

	CREATE INDEX IF NOT EXISTS idx_entry_tags_entry ON entry_tags(entry_id);

	CREATE TABLE IF NOT EXISTS user_achievements (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id          INTEGER NOT NULL REFERENCES users(user_id),
		achievement_type TEXT NOT NULL,
		earned_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		UNIQUE(user_id, achievement_type)
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteStorage) CreateUser(ctx context.Context, telegramID int64, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (telegram_id, username) VALUES (?, ?)`,
		telegramID, username)
	if err != nil {
		s.logger.Errorf("failed to create user %d: %v", telegramID, err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) GetUserByTelegramID(ctx context.Context, telegramID int64) (*internal.User, error) {
	var u internal.User
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, telegram_id, username, created_at FROM users WHERE telegram_id = ?`,
		telegramID,
	).Scan(&u.ID, &u.TelegramID, &u.Username, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorf("failed to query user %d: %v", telegramID, err)
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func (s *SQLiteStorage) HasEntryForDate(ctx context.Context, userID int64, date string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = ? AND date = ?`,
		userID, date,
	).Scan(&n)
	if err != nil {
		s.logger.Errorf("failed to check entry for date %s: %v", date, err)
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStorage) InsertEntry(ctx context.Context, e *internal.Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, date, mood, energy, anxiety, sleep_hours, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Note)
	if err != nil {
		s.logger.Errorf("failed to insert entry: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStorage) AttachTags(ctx context.Context, entryID int64, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := attachTagsTx(ctx, tx, entryID, tags); err != nil {
		s.logger.Errorf("failed to attach tags to entry %d: %v", entryID, err)
		return err
	}
	return tx.Commit()
}

func attachTagsTx(ctx context.Context, tx *sql.Tx, entryID int64, tags []string) error {
	for _, name := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
			return err
		}
		var tagID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`, entryID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStorage) DeleteEntry(ctx context.Context, entryID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, entryID); err != nil {
		s.logger.Errorf("failed to delete tag links for entry %d: %v", entryID, err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entryID); err != nil {
		s.logger.Errorf("failed to delete entry %d: %v", entryID, err)
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStorage) ReplaceEntry(ctx context.Context, e *internal.Entry, tags []string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entry_tags WHERE entry_id IN (SELECT id FROM entries WHERE user_id = ? AND date = ?)`,
		e.UserID, e.Date); err != nil {
		s.logger.Errorf("failed to clear old tag links for %s: %v", e.Date, err)
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entries WHERE user_id = ? AND date = ?`, e.UserID, e.Date); err != nil {
		s.logger.Errorf("failed to delete old entry for %s: %v", e.Date, err)
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO entries (user_id, date, mood, energy, anxiety, sleep_hours, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Note)
	if err != nil {
		s.logger.Errorf("failed to insert replacement entry: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := attachTagsTx(ctx, tx, id, tags); err != nil {
		s.logger.Errorf("failed to attach tags to entry %d: %v", id, err)
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLiteStorage) ListEntries(ctx context.Context, userID int64, lookbackDays int) ([]internal.Entry, error) {
	cutoff := time.Now().AddDate(0, 0, -lookbackDays).Format(internal.DateFormat)
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.date, e.mood, e.energy, e.anxiety, e.sleep_hours, e.note, e.created_at,
		        COALESCE(GROUP_CONCAT(t.name), '')
		 FROM entries e
		 LEFT JOIN entry_tags et ON et.entry_id = e.id
		 LEFT JOIN tags t ON t.id = et.tag_id
		 WHERE e.user_id = ? AND e.date >= ?
		   AND e.id = (SELECT MAX(id) FROM entries d WHERE d.user_id = e.user_id AND d.date = e.date)
		 GROUP BY e.id
		 ORDER BY e.date DESC`,
		userID, cutoff)
	if err != nil {
		s.logger.Errorf("failed to query entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.Entry
	for rows.Next() {
		var e internal.Entry
		var createdAt, tagList string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Mood, &e.Energy, &e.Anxiety,
			&e.SleepHours, &e.Note, &createdAt, &tagList); err != nil {
			s.logger.Errorf("failed to scan entry: %v", err)
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if tagList != "" {
			e.Tags = strings.Split(tagList, ",")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStorage) ListUnlockedAchievements(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_type FROM user_achievements WHERE user_id = ? ORDER BY earned_at DESC`,
		userID)
	if err != nil {
		s.logger.Errorf("failed to query achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *SQLiteStorage) InsertAchievementUnlock(ctx context.Context, userID int64, achievementType string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_achievements (user_id, achievement_type) VALUES (?, ?)`,
		userID, achievementType)
	if err != nil {
		s.logger.Errorf("failed to insert unlock %s: %v", achievementType, err)
	}
	return err
}

func (s *SQLiteStorage) SetReminderTime(ctx context.Context, userID int64, hhmm string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET reminder_time = ?, notification_enabled = 1 WHERE user_id = ?`,
		hhmm, userID)
	if err != nil {
		s.logger.Errorf("failed to set reminder time: %v", err)
	}
	return err
}

func (s *SQLiteStorage) SetReminderNote(ctx context.Context, userID int64, note string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET reminder_note = ? WHERE user_id = ?`, note, userID)
	if err != nil {
		s.logger.Errorf("failed to set reminder note: %v", err)
	}
	return err
}

func (s *SQLiteStorage) DisableReminder(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET notification_enabled = 0, reminder_time = NULL, reminder_note = NULL WHERE user_id = ?`,
		userID)
	if err != nil {
		s.logger.Errorf("failed to disable reminder: %v", err)
	}
	return err
}

func (s *SQLiteStorage) GetReminder(ctx context.Context, userID int64) (*internal.ReminderConfig, error) {
	var r internal.ReminderConfig
	var t, note sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, telegram_id, reminder_time, reminder_note, notification_enabled
		 FROM users WHERE user_id = ?`, userID,
	).Scan(&r.UserID, &r.TelegramID, &t, &note, &r.Enabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorf("failed to query reminder config: %v", err)
		return nil, err
	}
	r.Time = t.String
	r.Note = note.String
	return &r, nil
}

func (s *SQLiteStorage) ListReminders(ctx context.Context) ([]internal.ReminderConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, telegram_id, reminder_time, reminder_note
		 FROM users WHERE notification_enabled = 1 AND reminder_time IS NOT NULL`)
	if err != nil {
		s.logger.Errorf("failed to query reminder configs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var configs []internal.ReminderConfig
	for rows.Next() {
		var r internal.ReminderConfig
		var note sql.NullString
		if err := rows.Scan(&r.UserID, &r.TelegramID, &r.Time, &note); err != nil {
			return nil, err
		}
		r.Note = note.String
		r.Enabled = true
		configs = append(configs, r)
	}
	return configs, rows.Err()
}

func (s *SQLiteStorage) EraseUserData(ctx context.Context, telegramID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE telegram_id = ?`, telegramID).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	stmts := []string{
		`DELETE FROM entry_tags WHERE entry_id IN (SELECT id FROM entries WHERE user_id = ?)`,
		`DELETE FROM entries WHERE user_id = ?`,
		`DELETE FROM user_achievements WHERE user_id = ?`,
		`DELETE FROM users WHERE user_id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
			s.logger.Errorf("failed to erase data for user %d: %v", telegramID, err)
			return err
		}
	}
	return tx.Commit()
}

var _ Store = (*SQLiteStorage)(nil)
