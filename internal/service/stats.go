package service

import (
	"context"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/analytics"
)

// Windows for the statistics projection.
const (
	statsLookbackDays = 365
	recentEntryLimit  = 10
)

// Stats is the read-only projection served to both the bot and the HTTP API.
type Stats struct {
	TotalEntries int
	Averages     analytics.Averages
	Streak       int
	Insights     string
	Recent       []internal.Entry
}

// Stats computes the projection over the last year of entries. It returns
// ErrUserNotFound for telegram accounts the bot has never seen.
func (s *Service) Stats(ctx context.Context, telegramID int64) (*Stats, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	entries, err := s.store.ListEntries(ctx, user.ID, statsLookbackDays)
	if err != nil {
		return nil, err
	}

	recent := entries
	if len(recent) > recentEntryLimit {
		recent = recent[:recentEntryLimit]
	}

	return &Stats{
		TotalEntries: len(entries),
		Averages:     analytics.Means(entries),
		Streak:       analytics.Streak(analytics.EntryDates(entries), s.now()),
		Insights:     analytics.Insights(entries),
		Recent:       recent,
	}, nil
}

// Entries exposes the raw window for charts and exports.
func (s *Service) Entries(ctx context.Context, telegramID int64, lookbackDays int) ([]internal.Entry, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.store.ListEntries(ctx, user.ID, lookbackDays)
}
