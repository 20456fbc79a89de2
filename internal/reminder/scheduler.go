package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/notify"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

// Scheduler owns one timer loop per user with an enabled daily reminder.
// Setting a new time cancels the previous loop before the replacement starts,
// so a user never has two pending reminders.
type Scheduler struct {
	mu      sync.Mutex
	cancels map[int64]context.CancelFunc

	store   storage.Store
	channel notify.Channel
	logger  internal.Logger
	now     func() time.Time
}

func NewScheduler(store storage.Store, channel notify.Channel, logger internal.Logger) *Scheduler {
	return &Scheduler{
		cancels: make(map[int64]context.CancelFunc),
		store:   store,
		channel: channel,
		logger:  logger,
		now:     time.Now,
	}
}

// ParseTime validates an HH:MM string in 24-hour format.
func ParseTime(hhmm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	return t.Hour(), t.Minute(), nil
}

// Set persists the reminder time and (re)starts the user's loop.
func (s *Scheduler) Set(ctx context.Context, userID, telegramID int64, hhmm string) error {
	hour, minute, err := ParseTime(hhmm)
	if err != nil {
		return err
	}
	if err := s.store.SetReminderTime(ctx, userID, hhmm); err != nil {
		return err
	}
	s.start(internal.ReminderConfig{
		UserID: userID, TelegramID: telegramID, Time: hhmm, Enabled: true,
	}, hour, minute)
	s.logger.Infof("reminder set for user %d at %s", userID, hhmm)
	return nil
}

// SetNote updates the custom reminder text without touching the timer.
func (s *Scheduler) SetNote(ctx context.Context, userID int64, note string) error {
	return s.store.SetReminderNote(ctx, userID, note)
}

// Stop cancels the loop and disables the reminder in storage.
func (s *Scheduler) Stop(ctx context.Context, userID int64) error {
	s.cancel(userID)
	if err := s.store.DisableReminder(ctx, userID); err != nil {
		return err
	}
	s.logger.Infof("reminder disabled for user %d", userID)
	return nil
}

// Restore starts loops for every enabled reminder in storage. Called once at
// process start so reminders survive restarts.
func (s *Scheduler) Restore(ctx context.Context) error {
	configs, err := s.store.ListReminders(ctx)
	if err != nil {
		return err
	}
	for _, cfg := range configs {
		hour, minute, err := ParseTime(cfg.Time)
		if err != nil {
			s.logger.Warnf("skipping reminder for user %d: %v", cfg.UserID, err)
			continue
		}
		s.start(cfg, hour, minute)
	}
	s.logger.Infof("restored %d reminders", len(configs))
	return nil
}

// Shutdown cancels every running loop.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
}

// Active reports how many loops are currently running.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancels)
}

func (s *Scheduler) start(cfg internal.ReminderConfig, hour, minute int) {
	s.mu.Lock()
	if old, ok := s.cancels[cfg.UserID]; ok {
		old()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[cfg.UserID] = cancel
	s.mu.Unlock()

	go s.run(ctx, cfg, hour, minute)
}

func (s *Scheduler) cancel(userID int64) {
	s.mu.Lock()
	if c, ok := s.cancels[userID]; ok {
		c()
		delete(s.cancels, userID)
	}
	s.mu.Unlock()
}

func (s *Scheduler) run(ctx context.Context, cfg internal.ReminderConfig, hour, minute int) {
	log := s.logger.With("user_id", cfg.UserID)
	for {
		wait := nextFire(s.now(), hour, minute).Sub(s.now())
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(ctx, cfg, log)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, cfg internal.ReminderConfig, log internal.Logger) {
	// Re-read the note so edits made after the loop started are honoured.
	note := cfg.Note
	if current, err := s.store.GetReminder(ctx, cfg.UserID); err == nil && current != nil {
		if !current.Enabled {
			return
		}
		note = current.Note
	}

	// Informational only: the reminder is sent either way.
	today := s.now().Format(internal.DateFormat)
	if has, err := s.store.HasEntryForDate(ctx, cfg.UserID, today); err == nil && has {
		log.Infof("reminder firing although entry for %s already exists", today)
	}

	text := fmt.Sprintf("%s\n\n⏰ Time to record how your day went!", greeting(s.now().Hour()))
	if note != "" {
		text += fmt.Sprintf("\n\n📌 Your note: %s", note)
	}
	if err := s.channel.SendText(cfg.TelegramID, text); err != nil {
		log.Errorf("reminder delivery to %d failed: %v", cfg.TelegramID, err)
	}
}

// nextFire returns today's hour:minute if it is still ahead, otherwise the
// same wall-clock time tomorrow.
func nextFire(now time.Time, hour, minute int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "🌅 Good morning!"
	case hour >= 12 && hour < 18:
		return "☀️ Good afternoon!"
	case hour >= 18 && hour < 23:
		return "🌆 Good evening!"
	default:
		return "🌙 Good night!"
	}
}
