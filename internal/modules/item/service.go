package item

import (
	"context"
	"strings"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

// Service defines item record business logic.
type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*Item, error)
	Get(ctx context.Context, sku string) (*Item, error)
	List(ctx context.Context, f Filter) ([]*Item, error)
	// Delete is idempotent; an unknown SKU is a no-op.
	Delete(ctx context.Context, sku string) error
	// Reopen is the explicit correction path that returns a sold item to
	// stock. Deleting a sale never does this implicitly.
	Reopen(ctx context.Context, sku string) (*Item, error)
	// NextSKU previews the SKU the next insert would allocate this month.
	NextSKU(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*Item, error) {
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperror.Invalid("category", "is required")
	}
	if req.ListPrice <= 0 {
		return nil, apperror.Invalid("list_price", "must be greater than zero")
	}
	if req.MarkdownStage < 0 || req.MarkdownStage > MaxStage {
		return nil, apperror.Invalid("markdown_stage", "must be between 0 and 3")
	}

	acquisition := AcquisitionType(strings.ToLower(strings.TrimSpace(req.AcquisitionType)))
	if acquisition == "" {
		acquisition = AcquisitionConsignment
		if req.ConsignorID == nil {
			acquisition = AcquisitionDonation
		}
	}
	if !acquisition.Valid() {
		return nil, apperror.Invalid("acquisition_type", "must be consignment, donation or purchase")
	}

	today := s.now().Format(DateLayout)
	if req.AcquiredAt == "" {
		req.AcquiredAt = today
	}
	if req.ListedAt == "" {
		req.ListedAt = today
	}
	for _, d := range []struct{ field, value string }{
		{"acquired_at", req.AcquiredAt},
		{"listed_at", req.ListedAt},
	} {
		if _, err := time.Parse(DateLayout, d.value); err != nil {
			return nil, apperror.Invalid(d.field, "must be a YYYY-MM-DD date")
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	i := &Item{
		SKU:             strings.TrimSpace(req.SKU),
		ConsignorID:     req.ConsignorID,
		AcquisitionType: acquisition,
		Category:        strings.TrimSpace(req.Category),
		Subcategory:     req.Subcategory,
		Brand:           req.Brand,
		Gender:          req.Gender,
		Size:            req.Size,
		Fit:             req.Fit,
		Color:           req.Color,
		Fabric:          req.Fabric,
		Condition:       req.Condition,
		Flaws:           req.Flaws,
		Bust:            req.Bust,
		Waist:           req.Waist,
		Length:          req.Length,
		Cost:            req.Cost,
		ListPrice:       req.ListPrice,
		MarkdownStage:   req.MarkdownStage,
		AcquiredAt:      req.AcquiredAt,
		ListedAt:        req.ListedAt,
		ChannelListed:   req.ChannelListed,
		PhotosURL:       req.PhotosURL,
		Notes:           req.Notes,
		Active:          active,
	}

	var err error
	if i.SKU == "" {
		err = s.repo.CreateWithNextSKU(ctx, i, s.monthToken())
	} else {
		err = s.repo.Upsert(ctx, i)
	}
	if err != nil {
		return nil, err
	}
	i.CurrentPrice = CurrentPrice(i.ListPrice, i.MarkdownStage)
	return i, nil
}

func (s *service) Get(ctx context.Context, sku string) (*Item, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *service) List(ctx context.Context, f Filter) ([]*Item, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Delete(ctx context.Context, sku string) error {
	return s.repo.Delete(ctx, sku)
}

func (s *service) Reopen(ctx context.Context, sku string) (*Item, error) {
	if err := s.repo.Reopen(ctx, sku); err != nil {
		return nil, err
	}
	return s.repo.GetBySKU(ctx, sku)
}

func (s *service) NextSKU(ctx context.Context) (string, error) {
	token := s.monthToken()
	last, err := s.repo.MaxSKU(ctx, token)
	if err != nil {
		return "", err
	}
	return nextSKU(last, token), nil
}

// monthToken is the YYMM fragment SKUs are scoped by.
func (s *service) monthToken() string {
	return s.now().Format("0601")
}
