package report

import (
	"context"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/brecholab/brecho-backend/internal/modules/item"
)

// Service exposes the shop reports. All of them are pure reads.
type Service interface {
	StockSummary(ctx context.Context) (*StockSummary, error)
	SalesSummary(ctx context.Context, start, end string) (*SalesSummary, error)
	SellThrough(ctx context.Context, start, end string) (*SellThrough, error)
	SlowMovers(ctx context.Context, minDays, limit int) ([]SlowMover, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) StockSummary(ctx context.Context) (*StockSummary, error) {
	return s.repo.StockSummary(ctx)
}

func (s *service) SalesSummary(ctx context.Context, start, end string) (*SalesSummary, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	return s.repo.SalesSummary(ctx, start, end)
}

func (s *service) SellThrough(ctx context.Context, start, end string) (*SellThrough, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	return s.repo.SellThrough(ctx, start, end)
}

func (s *service) SlowMovers(ctx context.Context, minDays, limit int) ([]SlowMover, error) {
	if minDays <= 0 {
		minDays = 90
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.SlowMovers(ctx, s.now(), minDays, limit)
}

func validatePeriod(start, end string) error {
	from, err := time.Parse(item.DateLayout, start)
	if err != nil {
		return apperror.Invalid("start", "must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(item.DateLayout, end)
	if err != nil {
		return apperror.Invalid("end", "must be a YYYY-MM-DD date")
	}
	if to.Before(from) {
		return apperror.Invalid("end", "must not be before start")
	}
	return nil
}
