package payout

import (
	"context"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/brecholab/brecho-backend/internal/modules/consignor"
	"github.com/brecholab/brecho-backend/internal/modules/item"
	"github.com/google/uuid"
)

// Service defines payout business logic.
type Service interface {
	// Compute is a pure report of what each consignor is owed for the
	// period. It never writes and is safe to call repeatedly.
	Compute(ctx context.Context, start, end string) ([]PayoutRow, error)
	// ClosePeriod materialises one settlement record per payout row.
	ClosePeriod(ctx context.Context, start, end string) ([]*Settlement, error)
	MarkPaid(ctx context.Context, id string) (*Settlement, error)
	ListSettlements(ctx context.Context, consignorID string) ([]*Settlement, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Compute(ctx context.Context, start, end string) ([]PayoutRow, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	aggs, err := s.repo.AggregateNet(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]PayoutRow, 0, len(aggs))
	for _, a := range aggs {
		percent := consignor.DefaultPercent
		if a.Percent != nil {
			percent = *a.Percent
		}
		consignorValue, shopValue := Split(a.TotalNet, percent)
		rows = append(rows, PayoutRow{
			ConsignorID:    a.ConsignorID,
			Name:           a.Name,
			PixKey:         a.PixKey,
			Percent:        percent,
			TotalNet:       a.TotalNet,
			Qty:            a.Qty,
			ConsignorValue: consignorValue,
			ShopValue:      shopValue,
		})
	}
	return rows, nil
}

func (s *service) ClosePeriod(ctx context.Context, start, end string) ([]*Settlement, error) {
	rows, err := s.Compute(ctx, start, end)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*Settlement, 0, len(rows))
	for _, row := range rows {
		st := &Settlement{
			ID:             uuid.New(),
			ConsignorID:    row.ConsignorID,
			PeriodStart:    start,
			PeriodEnd:      end,
			Qty:            row.Qty,
			TotalNet:       row.TotalNet,
			Percent:        row.Percent,
			ConsignorValue: row.ConsignorValue,
			ShopValue:      row.ShopValue,
			CreatedAt:      now,
		}
		if err := s.repo.CreateSettlement(ctx, st); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *service) MarkPaid(ctx context.Context, id string) (*Settlement, error) {
	paidAt := s.now()
	if err := s.repo.MarkPaid(ctx, id, paidAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return s.repo.GetSettlement(ctx, id)
}

func (s *service) ListSettlements(ctx context.Context, consignorID string) ([]*Settlement, error) {
	return s.repo.ListSettlements(ctx, consignorID)
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
