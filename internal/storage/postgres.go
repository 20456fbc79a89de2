package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	s := &PostgresStorage{pool: pool, logger: logger}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) initSchema(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS users (
		user_id              BIGSERIAL PRIMARY KEY,
		telegram_id          BIGINT NOT NULL UNIQUE,
		username             TEXT NOT NULL DEFAULT '',
		reminder_time        TEXT,
		reminder_note        TEXT,
		notification_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS entries (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(user_id),
		date        TEXT NOT NULL,
		mood        INT NOT NULL,
		energy      INT NOT NULL,
		anxiety     INT NOT NULL,
		sleep_hours DOUBLE PRECISION NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries(user_id, date);
	CREATE TABLE IF NOT EXISTS tags (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS entry_tags (
		entry_id BIGINT NOT NULL REFERENCES entries(id),
		tag_id   BIGINT NOT NULL REFERENCES tags(id)
	);
	CREATE TABLE IF NOT EXISTS user_achievements (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL REFERENCES users(user_id),
		achievement_type TEXT NOT NULL,
		earned_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE(user_id, achievement_type)
	);
	`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		p.logger.Errorf("failed to init postgres schema: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) CreateUser(ctx context.Context, telegramID int64, username string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (telegram_id, username) VALUES ($1, $2) ON CONFLICT (telegram_id) DO NOTHING`,
		telegramID, username)
	if err != nil {
		p.logger.Errorf("failed to create user %d: %v", telegramID, err)
	}
	return err
}

func (p *PostgresStorage) GetUserByTelegramID(ctx context.Context, telegramID int64) (*internal.User, error) {
	var u internal.User
	err := p.pool.QueryRow(ctx,
		`SELECT user_id, telegram_id, username, created_at FROM users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&u.ID, &u.TelegramID, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		p.logger.Errorf("failed to query user %d: %v", telegramID, err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) HasEntryForDate(ctx context.Context, userID int64, date string) (bool, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&n)
	if err != nil {
		p.logger.Errorf("failed to check entry for date %s: %v", date, err)
		return false, err
	}
	return n > 0, nil
}

func (p *PostgresStorage) InsertEntry(ctx context.Context, e *internal.Entry) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx,
		`INSERT INTO entries (user_id, date, mood, energy, anxiety, sleep_hours, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.UserID, e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Note,
	).Scan(&id)
	if err != nil {
		p.logger.Errorf("failed to insert entry: %v", err)
		return 0, err
	}
	return id, nil
}

func (p *PostgresStorage) AttachTags(ctx context.Context, entryID int64, tags []string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := p.attachTagsTx(ctx, tx, entryID, tags); err != nil {
		p.logger.Errorf("failed to attach tags to entry %d: %v", entryID, err)
		return err
	}
	return tx.Commit(ctx)
}

func (p *PostgresStorage) attachTagsTx(ctx context.Context, tx pgx.Tx, entryID int64, tags []string) error {
	for _, name := range tags {
		if _, err := tx.Exec(ctx,
			`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
		var tagID int64
		if err := tx.QueryRow(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO entry_tags (entry_id, tag_id) VALUES ($1, $2)`, entryID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresStorage) DeleteEntry(ctx context.Context, entryID int64) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if _, err := tx.Exec(ctx, `DELETE FROM entry_tags WHERE entry_id = $1`, entryID); err != nil {
		p.logger.Errorf("failed to delete tag links for entry %d: %v", entryID, err)
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE id = $1`, entryID); err != nil {
		p.logger.Errorf("failed to delete entry %d: %v", entryID, err)
		return err
	}
	return tx.Commit(ctx)
}

func (p *PostgresStorage) ReplaceEntry(ctx context.Context, e *internal.Entry, tags []string) (int64, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM entry_tags WHERE entry_id IN (SELECT id FROM entries WHERE user_id = $1 AND date = $2)`,
		e.UserID, e.Date); err != nil {
		p.logger.Errorf("failed to clear old tag links for %s: %v", e.Date, err)
		return 0, err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM entries WHERE user_id = $1 AND date = $2`, e.UserID, e.Date); err != nil {
		p.logger.Errorf("failed to delete old entry for %s: %v", e.Date, err)
		return 0, err
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO entries (user_id, date, mood, energy, anxiety, sleep_hours, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.UserID, e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours, e.Note,
	).Scan(&id)
	if err != nil {
		p.logger.Errorf("failed to insert replacement entry: %v", err)
		return 0, err
	}
	if err := p.attachTagsTx(ctx, tx, id, tags); err != nil {
		p.logger.Errorf("failed to attach tags to entry %d: %v", id, err)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *PostgresStorage) ListEntries(ctx context.Context, userID int64, lookbackDays int) ([]internal.Entry, error) {
	cutoff := time.Now().AddDate(0, 0, -lookbackDays).Format(internal.DateFormat)
	rows, err := p.pool.Query(ctx,
		`SELECT e.id, e.user_id, e.date, e.mood, e.energy, e.anxiety, e.sleep_hours, e.note, e.created_at,
		        COALESCE(string_agg(t.name, ','), '')
		 FROM entries e
		 LEFT JOIN entry_tags et ON et.entry_id = e.id
		 LEFT JOIN tags t ON t.id = et.tag_id
		 WHERE e.user_id = $1 AND e.date >= $2
		   AND e.id = (SELECT MAX(id) FROM entries d WHERE d.user_id = e.user_id AND d.date = e.date)
		 GROUP BY e.id
		 ORDER BY e.date DESC`,
		userID, cutoff)
	if err != nil {
		p.logger.Errorf("failed to query entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.Entry
	for rows.Next() {
		var e internal.Entry
		var tagList string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Mood, &e.Energy, &e.Anxiety,
			&e.SleepHours, &e.Note, &e.CreatedAt, &tagList); err != nil {
			p.logger.Errorf("failed to scan entry: %v", err)
			return nil, err
		}
		if tagList != "" {
			e.Tags = strings.Split(tagList, ",")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgresStorage) ListUnlockedAchievements(ctx context.Context, userID int64) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT achievement_type FROM user_achievements WHERE user_id = $1 ORDER BY earned_at DESC`,
		userID)
	if err != nil {
		p.logger.Errorf("failed to query achievements: %v", err)
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

func (p *PostgresStorage) InsertAchievementUnlock(ctx context.Context, userID int64, achievementType string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_type) VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_type) DO NOTHING`,
		userID, achievementType)
	if err != nil {
		p.logger.Errorf("failed to insert unlock %s: %v", achievementType, err)
	}
	return err
}

func (p *PostgresStorage) SetReminderTime(ctx context.Context, userID int64, hhmm string) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET reminder_time = $1, notification_enabled = TRUE WHERE user_id = $2`,
		hhmm, userID)
	if err != nil {
		p.logger.Errorf("failed to set reminder time: %v", err)
	}
	return err
}

func (p *PostgresStorage) SetReminderNote(ctx context.Context, userID int64, note string) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET reminder_note = $1 WHERE user_id = $2`, note, userID)
	if err != nil {
		p.logger.Errorf("failed to set reminder note: %v", err)
	}
	return err
}

func (p *PostgresStorage) DisableReminder(ctx context.Context, userID int64) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET notification_enabled = FALSE, reminder_time = NULL, reminder_note = NULL
		 WHERE user_id = $1`, userID)
	if err != nil {
		p.logger.Errorf("failed to disable reminder: %v", err)
	}
	return err
}

func (p *PostgresStorage) GetReminder(ctx context.Context, userID int64) (*internal.ReminderConfig, error) {
	var r internal.ReminderConfig
	var t, note *string
	err := p.pool.QueryRow(ctx,
		`SELECT user_id, telegram_id, reminder_time, reminder_note, notification_enabled
		 FROM users WHERE user_id = $1`, userID,
	).Scan(&r.UserID, &r.TelegramID, &t, &note, &r.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		p.logger.Errorf("failed to query reminder config: %v", err)
		return nil, err
	}
	if t != nil {
		r.Time = *t
	}
	if note != nil {
		r.Note = *note
	}
	return &r, nil
}

func (p *PostgresStorage) ListReminders(ctx context.Context) ([]internal.ReminderConfig, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT user_id, telegram_id, reminder_time, reminder_note
		 FROM users WHERE notification_enabled AND reminder_time IS NOT NULL`)
	if err != nil {
		p.logger.Errorf("failed to query reminder configs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var configs []internal.ReminderConfig
	for rows.Next() {
		var r internal.ReminderConfig
		var note *string
		if err := rows.Scan(&r.UserID, &r.TelegramID, &r.Time, &note); err != nil {
			return nil, err
		}
		if note != nil {
			r.Note = *note
		}
		r.Enabled = true
		configs = append(configs, r)
	}
	return configs, rows.Err()
}

func (p *PostgresStorage) EraseUserData(ctx context.Context, telegramID int64) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM users WHERE telegram_id = $1`, telegramID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	stmts := []string{
		`DELETE FROM entry_tags WHERE entry_id IN (SELECT id FROM entries WHERE user_id = $1)`,
		`DELETE FROM entries WHERE user_id = $1`,
		`DELETE FROM user_achievements WHERE user_id = $1`,
		`DELETE FROM users WHERE user_id = $1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt, userID); err != nil {
			p.logger.Errorf("failed to erase data for user %d: %v", telegramID, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

var _ Store = (*PostgresStorage)(nil)
