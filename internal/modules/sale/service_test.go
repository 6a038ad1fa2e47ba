package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

// fakeRepo mirrors the transactional contract: Record resolves the item,
// copies its consignor and flips it sold, or writes nothing at all.
type fakeRepo struct {
	itemConsignor map[string]*string // sku -> consignor, entry present = item exists
	soldSKUs      map[string]bool
	sales         map[string]*Sale
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		itemConsignor: map[string]*string{},
		soldSKUs:      map[string]bool{},
		sales:         map[string]*Sale{},
	}
}

func (f *fakeRepo) Record(ctx context.Context, s *Sale, monthToken string) error {
	cid, ok := f.itemConsignor[s.SKU]
	if !ok {
		return apperror.NotFound("item", s.SKU)
	}
	s.ConsignorID = cid
	if s.ID == "" {
		last, _ := f.MaxID(ctx, monthToken)
		s.ID = nextID(last, monthToken)
	}
	cp := *s
	f.sales[s.ID] = &cp
	f.soldSKUs[s.SKU] = true
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, apperror.NotFound("sale", id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ Filter) ([]*Sale, error) { return nil, nil }

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeRepo) MaxID(_ context.Context, monthToken string) (string, error) {
	var max string
	prefix := "V" + monthToken
	for id := range f.sales {
		if len(id) > len(prefix) && id[:len(prefix)] == prefix && id > max {
			max = id
		}
	}
	return max, nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.August, 15, 14, 0, 0, 0, time.UTC)
}

func newTestService(repo Repository) *service {
	return &service{repo: repo, now: fixedClock}
}

func TestNet(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{100, 0, 100},
		{100, 10, 90},
		{19.99, 5.50, 14.49},
		{0.30, 0.10, 0.20}, // classic float subtraction trap
	}
	for _, tc := range cases {
		if got := Net(tc.price, tc.discount); got != tc.want {
			t.Errorf("Net(%v, %v) = %v, want %v", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestRecord_AllocatesMonthScopedID(t *testing.T) {
	repo := newFakeRepo()
	cid := "C0003"
	repo.itemConsignor["BH-2508-0001"] = &cid
	repo.itemConsignor["BH-2508-0002"] = &cid
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Record(ctx, RecordRequest{SKU: "BH-2508-0001", SalePrice: 40})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID != "V2508001" {
		t.Fatalf("id = %s, want V2508001", first.ID)
	}
	second, _ := svc.Record(ctx, RecordRequest{SKU: "BH-2508-0002", SalePrice: 25})
	if second.ID != "V2508002" {
		t.Fatalf("id = %s, want V2508002", second.ID)
	}
	if first.Date != "2025-08-15" {
		t.Fatalf("date not defaulted to today: %s", first.Date)
	}
}

func TestRecord_CopiesConsignorFromItem(t *testing.T) {
	repo := newFakeRepo()
	cid := "C0042"
	repo.itemConsignor["BH-2508-0009"] = &cid
	repo.itemConsignor["BH-2508-0010"] = nil // donated item
	svc := newTestService(repo)
	ctx := context.Background()

	consigned, err := svc.Record(ctx, RecordRequest{SKU: "BH-2508-0009", SalePrice: 60, DiscountValue: 6})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if consigned.ConsignorID == nil || *consigned.ConsignorID != "C0042" {
		t.Fatalf("consignor not copied onto sale: %+v", consigned.ConsignorID)
	}
	if consigned.NetValue != 54 {
		t.Fatalf("NetValue = %v, want 54", consigned.NetValue)
	}

	donated, err := svc.Record(ctx, RecordRequest{SKU: "BH-2508-0010", SalePrice: 15})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if donated.ConsignorID != nil {
		t.Fatalf("donated sale should carry no consignor, got %v", *donated.ConsignorID)
	}
}

func TestRecord_UnknownSKUWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Record(context.Background(), RecordRequest{SKU: "BH-2508-0404", SalePrice: 30})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.sales) != 0 {
		t.Fatalf("sale was written despite the rejection: %d rows", len(repo.sales))
	}
	if len(repo.soldSKUs) != 0 {
		t.Fatal("item state changed despite the rejection")
	}
}

func TestRecord_Validation(t *testing.T) {
	repo := newFakeRepo()
	repo.itemConsignor["BH-2508-0001"] = nil
	svc := newTestService(repo)
	ctx := context.Background()

	cases := []struct {
		name string
		req  RecordRequest
	}{
		{"missing sku", RecordRequest{SalePrice: 10}},
		{"zero price", RecordRequest{SKU: "BH-2508-0001"}},
		{"negative discount", RecordRequest{SKU: "BH-2508-0001", SalePrice: 10, DiscountValue: -1}},
		{"discount above price", RecordRequest{SKU: "BH-2508-0001", SalePrice: 10, DiscountValue: 11}},
		{"bad date", RecordRequest{SKU: "BH-2508-0001", SalePrice: 10, Date: "15/08/2025"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, tc.req); !apperror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.sales) != 0 {
				t.Fatal("invalid request reached the store")
			}
		})
	}
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	svc := newTestService(newFakeRepo())
	if err := svc.Delete(context.Background(), "V2508999"); err != nil {
		t.Fatalf("Delete of unknown id should be a no-op, got %v", err)
	}
}
