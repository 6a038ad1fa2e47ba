package auth

import "context"

// Repository defines data access for operator accounts.
type Repository interface {
	Create(ctx context.Context, o *Operator) error
	GetByEmail(ctx context.Context, email string) (*Operator, error)
	Count(ctx context.Context) (int, error)
}
