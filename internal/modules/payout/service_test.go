package payout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	aggregates  []Aggregate
	settlements map[string]*Settlement
}

func newFakeRepo(aggs ...Aggregate) *fakeRepo {
	return &fakeRepo{aggregates: aggs, settlements: map[string]*Settlement{}}
}

func (f *fakeRepo) AggregateNet(_ context.Context, _, _ string) ([]Aggregate, error) {
	return f.aggregates, nil
}

func (f *fakeRepo) CreateSettlement(_ context.Context, s *Settlement) error {
	cp := *s
	f.settlements[s.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) GetSettlement(_ context.Context, id string) (*Settlement, error) {
	s, ok := f.settlements[id]
	if !ok {
		return nil, apperror.NotFound("settlement", id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) ListSettlements(_ context.Context, consignorID string) ([]*Settlement, error) {
	var out []*Settlement
	for _, s := range f.settlements {
		if consignorID != "" && s.ConsignorID != consignorID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) MarkPaid(_ context.Context, id string, paidAt string) error {
	s, ok := f.settlements[id]
	if !ok {
		return apperror.NotFound("settlement", id)
	}
	ts, err := time.Parse(time.RFC3339, paidAt)
	if err != nil {
		return err
	}
	s.PaidAt = &ts
	return nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)
}

func newTestService(repo Repository) *service {
	return &service{repo: repo, now: fixedClock}
}

func TestSplit_PartsSumToRoundedTotal(t *testing.T) {
	cases := []struct {
		total, percent float64
		wantConsignor  float64
		wantShop       float64
	}{
		{100, 0.5, 50, 50},
		{99.99, 0.5, 50.00, 49.99},
		{10.01, 0.5, 5.01, 5.00},
		{33.33, 0.4, 13.33, 20.00},
		{0.01, 0.5, 0.01, 0.00},
		{75.50, 0, 0, 75.50},
		{75.50, 1, 75.50, 0},
	}
	for _, tc := range cases {
		cv, sv := Split(tc.total, tc.percent)
		if cv != tc.wantConsignor || sv != tc.wantShop {
			t.Errorf("Split(%v, %v) = (%v, %v), want (%v, %v)",
				tc.total, tc.percent, cv, sv, tc.wantConsignor, tc.wantShop)
		}
		sum := decimal.NewFromFloat(cv).Add(decimal.NewFromFloat(sv))
		want := decimal.NewFromFloat(tc.total).Round(2)
		if !sum.Equal(want) {
			t.Errorf("Split(%v, %v) parts sum to %s, want %s", tc.total, tc.percent, sum, want)
		}
	}
}

func TestCompute_DefaultsPercent(t *testing.T) {
	agreed := 0.6
	repo := newFakeRepo(
		Aggregate{ConsignorID: "C0001", Name: "Ana", TotalNet: 200, Qty: 4, Percent: &agreed},
		Aggregate{ConsignorID: "C0002", Name: "Bia", TotalNet: 80, Qty: 2}, // no agreed percentage
	)
	svc := newTestService(repo)

	rows, err := svc.Compute(context.Background(), "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Percent != 0.6 || rows[0].ConsignorValue != 120 || rows[0].ShopValue != 80 {
		t.Fatalf("agreed split wrong: %+v", rows[0])
	}
	if rows[1].Percent != 0.5 || rows[1].ConsignorValue != 40 || rows[1].ShopValue != 40 {
		t.Fatalf("default split wrong: %+v", rows[1])
	}
}

func TestCompute_PeriodValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name, start, end string
	}{
		{"bad start", "01/08/2025", "2025-08-31"},
		{"bad end", "2025-08-01", "yesterday"},
		{"end before start", "2025-08-31", "2025-08-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Compute(ctx, tc.start, tc.end); !apperror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestClosePeriodAndMarkPaid(t *testing.T) {
	repo := newFakeRepo(
		Aggregate{ConsignorID: "C0001", Name: "Ana", TotalNet: 99.99, Qty: 3},
	)
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.ClosePeriod(ctx, "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("ClosePeriod: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("settlements = %d, want 1", len(created))
	}
	st := created[0]
	if st.ConsignorValue != 50.00 || st.ShopValue != 49.99 {
		t.Fatalf("split = (%v, %v), want (50.00, 49.99)", st.ConsignorValue, st.ShopValue)
	}
	if st.PaidAt != nil {
		t.Fatal("new settlement must not be paid")
	}

	paid, err := svc.MarkPaid(ctx, st.ID.String())
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatal("PaidAt not stamped")
	}

	if _, err := svc.MarkPaid(ctx, "no-such-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompute_EmptyPeriod(t *testing.T) {
	svc := newTestService(newFakeRepo())
	rows, err := svc.Compute(context.Background(), "2025-08-01", "2025-08-31")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
