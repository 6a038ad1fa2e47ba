package payout

import "context"

// Repository defines data access for payout aggregation and settlements.
type Repository interface {
	// AggregateNet sums net sale value per consignor over [start, end],
	// skipping sales with no consignor, largest total first.
	AggregateNet(ctx context.Context, start, end string) ([]Aggregate, error)
	CreateSettlement(ctx context.Context, s *Settlement) error
	GetSettlement(ctx context.Context, id string) (*Settlement, error)
	ListSettlements(ctx context.Context, consignorID string) ([]*Settlement, error)
	// MarkPaid stamps the settlement; apperror.ErrNotFound when absent.
	MarkPaid(ctx context.Context, id string, paidAt string) error
}
