package report

import (
	"context"
	"time"
)

// Repository defines the read-only queries behind the shop reports.
type Repository interface {
	StockSummary(ctx context.Context) (*StockSummary, error)
	SalesSummary(ctx context.Context, start, end string) (*SalesSummary, error)
	SellThrough(ctx context.Context, start, end string) (*SellThrough, error)
	SlowMovers(ctx context.Context, asOf time.Time, minDays, limit int) ([]SlowMover, error)
}
