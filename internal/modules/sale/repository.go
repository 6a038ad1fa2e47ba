package sale

import "context"

// Repository defines data access for sales.
type Repository interface {
	// Record resolves the item, copies its consignor onto s, inserts the
	// sale (allocating the next V{monthToken}### when s.ID is blank) and
	// marks the item sold — all inside one transaction. When the SKU does
	// not exist it reports apperror.ErrNotFound and nothing is written.
	Record(ctx context.Context, s *Sale, monthToken string) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, f Filter) ([]*Sale, error)
	Delete(ctx context.Context, id string) error
	// MaxID returns the highest sale id of the given month token, "" when none.
	MaxID(ctx context.Context, monthToken string) (string, error)
}
