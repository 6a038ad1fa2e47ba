package automation

import "context"

// Repository defines the item access the markdown schedule needs.
type Repository interface {
	// ListUnsold returns every active item not yet sold.
	ListUnsold(ctx context.Context) ([]Candidate, error)
	// ApplyStages writes the planned promotions in one transaction.
	ApplyStages(ctx context.Context, changes []StageChange) error
}
