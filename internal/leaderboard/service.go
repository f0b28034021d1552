package leaderboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/novaxiii/agency-backend/internal/logger"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
)

// Service loads records and users from the stores and runs the aggregations.
// It holds no state of its own.
type Service struct {
	performance repository.PerformanceStore
	accounts    repository.AccountStore
	now         func() time.Time
}

func NewService(performance repository.PerformanceStore, accounts repository.AccountStore) *Service {
	return &Service{performance: performance, accounts: accounts, now: time.Now}
}

// WithClock replaces the clock used to resolve the default week.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Window resolves the request bounds against the service clock.
func (s *Service) Window(startDate, endDate string) (model.Window, error) {
	return ResolveWindow(startDate, endDate, s.now())
}

// load lit les performances et les utilisateurs en parallèle.
func (s *Service) load(ctx context.Context, window model.Window) ([]model.PerformanceRecord, []model.User, error) {
	var records []model.PerformanceRecord
	var users []model.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.performance.QueryAll(gctx, window)
		if err != nil {
			return fmt.Errorf("query performances: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = s.accounts.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return records, users, nil
}

func run[T any](ctx context.Context, s *Service, name, startDate, endDate string,
	agg func(model.Window, []model.PerformanceRecord, []model.User) ([]T, int)) ([]T, error) {
	window, err := s.Window(startDate, endDate)
	if err != nil {
		return nil, err
	}
	records, users, err := s.load(ctx, window)
	if err != nil {
		return nil, err
	}
	out, orphans := agg(window, records, users)
	if orphans > 0 {
		logger.Warning("%s: %d group(s) dropped, user not found", name, orphans)
	}
	return out, nil
}

// Leaderboard returns the ranked totals for the requested window, highest
// net ALP first.
func (s *Service) Leaderboard(ctx context.Context, startDate, endDate string) ([]model.LeaderboardEntry, error) {
	return run(ctx, s, "leaderboard", startDate, endDate, Aggregate)
}

func (s *Service) ConversionRates(ctx context.Context, startDate, endDate string) ([]model.ConversionRates, error) {
	return run(ctx, s, "conversion", startDate, endDate, Conversion)
}

func (s *Service) ReferralEfficiency(ctx context.Context, startDate, endDate string) ([]model.ReferralEfficiency, error) {
	return run(ctx, s, "referrals", startDate, endDate, Referrals)
}

func (s *Service) MonthlyALP(ctx context.Context, startDate, endDate string) ([]model.MonthlyALP, error) {
	return run(ctx, s, "monthly-alp", startDate, endDate, Monthly)
}
