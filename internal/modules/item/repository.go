package item

import "context"

// Repository defines data access for items.
type Repository interface {
	// Upsert fully replaces the row identified by i.SKU.
	Upsert(ctx context.Context, i *Item) error
	// CreateWithNextSKU allocates the next BH-<month>-#### for the given
	// month token and inserts in one transaction, writing the SKU onto i.
	CreateWithNextSKU(ctx context.Context, i *Item, monthToken string) error
	GetBySKU(ctx context.Context, sku string) (*Item, error)
	List(ctx context.Context, f Filter) ([]*Item, error)
	Delete(ctx context.Context, sku string) error
	// Reopen clears the sale fields, returning the item to stock.
	// Reports apperror.ErrNotFound when the SKU does not exist.
	Reopen(ctx context.Context, sku string) error
	// MaxSKU returns the highest SKU of the given month token, "" when none.
	// Prior months are never consulted; the sequence resets monthly.
	MaxSKU(ctx context.Context, monthToken string) (string, error)
}
