package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/achievements"
	"github.com/itgubeeva-pixel/carecloud/internal/storage"
)

var ErrUserNotFound = internal.NewAppError(404, "user not found")

// Service implements the journal operations shared by the bot and the HTTP
// API. All methods are safe for concurrent use.
type Service struct {
	store     storage.Store
	evaluator *achievements.Evaluator
	validate  *validator.Validate
	logger    internal.Logger
	now       func() time.Time
}

func New(store storage.Store, evaluator *achievements.Evaluator, logger internal.Logger) *Service {
	return &Service{
		store:     store,
		evaluator: evaluator,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// CommitEntryRequest carries one finished dialog. Bounds repeat the dialog's
// own checks so a commit is valid regardless of which surface produced it.
type CommitEntryRequest struct {
	TelegramID int64   `validate:"required"`
	Username   string
	Mood       int     `validate:"gte=1,lte=10"`
	Energy     int     `validate:"gte=1,lte=10"`
	Anxiety    int     `validate:"gte=1,lte=10"`
	SleepHours float64 `validate:"gte=1,lte=12"`
	Tags       []string
	Note       string
}

// CommitResult is what the bot announces back to the user.
type CommitResult struct {
	Entry   internal.Entry
	Awarded []achievements.Achievement
}

// CommitEntry persists today's entry, replacing any existing one for the same
// date, then runs the achievement evaluation. A failed evaluation does not
// roll the entry back; it is logged and the commit still succeeds.
func (s *Service) CommitEntry(ctx context.Context, req CommitEntryRequest) (*CommitResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate entry: %w", err)
	}

	if err := s.store.CreateUser(ctx, req.TelegramID, req.Username); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	entry := internal.Entry{
		UserID:     user.ID,
		Date:       s.now().Format(internal.DateFormat),
		Mood:       req.Mood,
		Energy:     req.Energy,
		Anxiety:    req.Anxiety,
		SleepHours: req.SleepHours,
		Note:       req.Note,
		Tags:       req.Tags,
	}
	id, err := s.store.ReplaceEntry(ctx, &entry, req.Tags)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	awarded, err := s.evaluator.Evaluate(ctx, user.ID)
	if err != nil {
		s.logger.Errorf("achievement evaluation for user %d: %v", user.ID, err)
		awarded = nil
	}
	return &CommitResult{Entry: entry, Awarded: awarded}, nil
}

// HasEntryToday tells the dialog whether to ask for overwrite confirmation.
func (s *Service) HasEntryToday(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		return false, err
	}
	return s.store.HasEntryForDate(ctx, user.ID, s.now().Format(internal.DateFormat))
}

// RegisterUser makes sure the user row exists, for /start.
func (s *Service) RegisterUser(ctx context.Context, telegramID int64, username string) (*internal.User, error) {
	if err := s.store.CreateUser(ctx, telegramID, username); err != nil {
		return nil, err
	}
	return s.store.GetUserByTelegramID(ctx, telegramID)
}

// EraseUser deletes everything stored for the telegram account and recreates
// a fresh user row so the bot keeps working immediately afterwards.
func (s *Service) EraseUser(ctx context.Context, telegramID int64, username string) error {
	if err := s.store.EraseUserData(ctx, telegramID); err != nil {
		return err
	}
	return s.store.CreateUser(ctx, telegramID, username)
}

// Reminder returns the user's reminder configuration, nil when the user or
// config is unknown.
func (s *Service) Reminder(ctx context.Context, telegramID int64) (*internal.ReminderConfig, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		return nil, err
	}
	return s.store.GetReminder(ctx, user.ID)
}

// Achievements returns the user's unlocked achievements plus the catalog size.
func (s *Service) Achievements(ctx context.Context, telegramID int64) ([]achievements.Achievement, int, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, len(achievements.Catalog), nil
	}
	return s.evaluator.Unlocked(ctx, user.ID)
}
