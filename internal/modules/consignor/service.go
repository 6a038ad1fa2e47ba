package consignor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

// Service defines consignor ledger business logic.
type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*Consignor, error)
	Get(ctx context.Context, id string) (*Consignor, error)
	List(ctx context.Context, activeOnly bool) ([]*Consignor, error)
	// Deactivate and Delete are idempotent; an unknown id is a no-op.
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// NextID previews the identifier the next insert would allocate.
	NextID(ctx context.Context) (string, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*Consignor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Invalid("name", "is required")
	}
	if req.Percent != nil && (*req.Percent < 0 || *req.Percent > 1) {
		return nil, apperror.Invalid("percent", "must be between 0 and 1")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	c := &Consignor{
		ID:       strings.TrimSpace(req.ID),
		Name:     strings.TrimSpace(req.Name),
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
		PixKey:   req.PixKey,
		Percent:  req.Percent,
		Notes:    req.Notes,
		Active:   active,
	}

	var err error
	if c.ID == "" {
		err = s.repo.CreateWithNextID(ctx, c)
	} else {
		err = s.repo.Upsert(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Consignor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Consignor, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) NextID(ctx context.Context) (string, error) {
	last, err := s.repo.MaxID(ctx)
	if err != nil {
		return "", err
	}
	return nextID(last), nil
}

// nextID returns the numeric successor of the highest C#### identifier.
// An empty or unparsable last value restarts the sequence at C0001.
func nextID(last string) string {
	if strings.HasPrefix(last, "C") {
		if n, err := strconv.Atoi(last[1:]); err == nil {
			return fmt.Sprintf("C%04d", n+1)
		}
	}
	return "C0001"
}
