package consignor

import (
	"context"
	"testing"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

type fakeRepo struct {
	rows map[string]*Consignor
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[string]*Consignor{}} }

func (f *fakeRepo) Upsert(_ context.Context, c *Consignor) error {
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeRepo) CreateWithNextID(ctx context.Context, c *Consignor) error {
	last, _ := f.MaxID(ctx)
	c.ID = nextID(last)
	return f.Upsert(ctx, c)
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Consignor, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("consignor", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, activeOnly bool) ([]*Consignor, error) {
	var out []*Consignor
	for _, c := range f.rows {
		if activeOnly && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Deactivate(_ context.Context, id string) error {
	if c, ok := f.rows[id]; ok {
		c.Active = false
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) MaxID(_ context.Context) (string, error) {
	var max string
	for id := range f.rows {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func TestNextID(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"", "C0001"},
		{"C0001", "C0002"},
		{"C0042", "C0043"},
		{"C9999", "C10000"},
		{"garbage", "C0001"},
	}
	for _, tc := range cases {
		if got := nextID(tc.last); got != tc.want {
			t.Errorf("nextID(%q) = %s, want %s", tc.last, got, tc.want)
		}
	}
}

func TestUpsert_AllocatesSequentialIDs(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	a, err := svc.Upsert(ctx, UpsertRequest{Name: "Ana"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if a.ID != "C0001" {
		t.Fatalf("first id = %s, want C0001", a.ID)
	}
	b, _ := svc.Upsert(ctx, UpsertRequest{Name: "Bia"})
	if b.ID != "C0002" {
		t.Fatalf("second id = %s, want C0002", b.ID)
	}
	if !a.Active {
		t.Fatal("active should default to true")
	}
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, UpsertRequest{Name: "  "}); !apperror.IsValidation(err) {
		t.Fatalf("blank name: expected validation error, got %v", err)
	}
	for _, pct := range []float64{-0.1, 1.01} {
		p := pct
		if _, err := svc.Upsert(ctx, UpsertRequest{Name: "Ana", Percent: &p}); !apperror.IsValidation(err) {
			t.Fatalf("percent %v: expected validation error, got %v", pct, err)
		}
	}
	// boundary values are accepted
	for _, pct := range []float64{0, 1} {
		p := pct
		if _, err := svc.Upsert(ctx, UpsertRequest{Name: "Ana", Percent: &p}); err != nil {
			t.Fatalf("percent %v: unexpected error %v", pct, err)
		}
	}
}

func TestUpsert_ExplicitIDReplaces(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, UpsertRequest{ID: "C0007", Name: "Carla"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	pct := 0.6
	if _, err := svc.Upsert(ctx, UpsertRequest{ID: "C0007", Name: "Carla M.", Percent: &pct}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := svc.Get(ctx, "C0007")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Carla M." || got.Percent == nil || *got.Percent != 0.6 {
		t.Fatalf("replace did not take: %+v", got)
	}
	// the sequence continues past the explicit id
	next, _ := svc.NextID(ctx)
	if next != "C0008" {
		t.Fatalf("NextID = %s, want C0008", next)
	}
}

func TestDeleteAndDeactivate_UnknownIDIsNoOp(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if err := svc.Delete(ctx, "C9999"); err != nil {
		t.Fatalf("Delete of unknown id should be a no-op, got %v", err)
	}
	if err := svc.Deactivate(ctx, "C9999"); err != nil {
		t.Fatalf("Deactivate of unknown id should be a no-op, got %v", err)
	}
}

func TestGet_Unknown(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Get(context.Background(), "C0001"); err == nil {
		t.Fatal("expected not-found error")
	}
}
