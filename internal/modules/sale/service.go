package sale

import (
	"context"
	"strings"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/brecholab/brecho-backend/internal/modules/item"
)

// Service defines sale recording business logic.
type Service interface {
	// Record validates the sale and commits it together with the item's
	// sold state. A SKU unknown to the item store is rejected whole.
	Record(ctx context.Context, req RecordRequest) (*Sale, error)
	Get(ctx context.Context, id string) (*Sale, error)
	History(ctx context.Context, f Filter) ([]*Sale, error)
	// Delete is idempotent and never reverts the item's sold state;
	// that correction is the item module's explicit Reopen.
	Delete(ctx context.Context, id string) error
	// NextID previews the identifier the next record would allocate.
	NextID(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, req RecordRequest) (*Sale, error) {
	if strings.TrimSpace(req.SKU) == "" {
		return nil, apperror.Invalid("sku", "is required")
	}
	if req.SalePrice <= 0 {
		return nil, apperror.Invalid("sale_price", "must be greater than zero")
	}
	if req.DiscountValue < 0 {
		return nil, apperror.Invalid("discount_value", "cannot be negative")
	}
	if req.DiscountValue > req.SalePrice {
		return nil, apperror.Invalid("discount_value", "cannot exceed sale_price")
	}

	if req.Date == "" {
		req.Date = s.now().Format(item.DateLayout)
	}
	if _, err := time.Parse(item.DateLayout, req.Date); err != nil {
		return nil, apperror.Invalid("date", "must be a YYYY-MM-DD date")
	}

	sale := &Sale{
		ID:               strings.TrimSpace(req.ID),
		Date:             req.Date,
		SKU:              strings.TrimSpace(req.SKU),
		SalePrice:        req.SalePrice,
		DiscountValue:    req.DiscountValue,
		Channel:          req.Channel,
		CustomerName:     req.CustomerName,
		CustomerWhatsApp: req.CustomerWhatsApp,
		PaymentMethod:    req.PaymentMethod,
		Notes:            req.Notes,
	}
	if err := s.repo.Record(ctx, sale, s.monthToken()); err != nil {
		return nil, err
	}
	sale.NetValue = Net(sale.SalePrice, sale.DiscountValue)
	return sale, nil
}

func (s *service) Get(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) History(ctx context.Context, f Filter) ([]*Sale, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) NextID(ctx context.Context) (string, error) {
	token := s.monthToken()
	last, err := s.repo.MaxID(ctx, token)
	if err != nil {
		return "", err
	}
	return nextID(last, token), nil
}

func (s *service) monthToken() string {
	return s.now().Format("0601")
}
