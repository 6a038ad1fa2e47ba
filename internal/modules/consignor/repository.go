package consignor

import "context"

// Repository defines data access for consignors.
type Repository interface {
	// Upsert fully replaces the row identified by c.ID (last write wins).
	Upsert(ctx context.Context, c *Consignor) error
	// CreateWithNextID allocates the next C#### identifier and inserts the
	// row in one transaction, writing the allocated ID back onto c.
	CreateWithNextID(ctx context.Context, c *Consignor) error
	GetByID(ctx context.Context, id string) (*Consignor, error)
	List(ctx context.Context, activeOnly bool) ([]*Consignor, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// MaxID returns the highest existing C#### identifier, "" when none.
	MaxID(ctx context.Context) (string, error)
}
