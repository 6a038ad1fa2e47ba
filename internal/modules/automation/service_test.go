package automation

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	candidates []Candidate
	applied    [][]StageChange
}

func (f *fakeRepo) ListUnsold(_ context.Context) ([]Candidate, error) {
	return f.candidates, nil
}

func (f *fakeRepo) ApplyStages(_ context.Context, changes []StageChange) error {
	f.applied = append(f.applied, changes)
	for _, ch := range changes {
		for i := range f.candidates {
			if f.candidates[i].SKU == ch.SKU && ch.ToStage > f.candidates[i].MarkdownStage {
				f.candidates[i].MarkdownStage = ch.ToStage
			}
		}
	}
	return nil
}

func TestTargetStage(t *testing.T) {
	cases := []struct {
		days, want int
	}{
		{0, 0},
		{30, 0},
		{31, 1},
		{60, 1},
		{61, 2},
		{90, 2},
		{91, 3},
		{400, 3},
	}
	for _, tc := range cases {
		if got := TargetStage(tc.days); got != tc.want {
			t.Errorf("TargetStage(%d) = %d, want %d", tc.days, got, tc.want)
		}
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRun_PromotesByShelfTime(t *testing.T) {
	asOf := date("2025-08-15")
	repo := &fakeRepo{candidates: []Candidate{
		{SKU: "BH-2508-0001", MarkdownStage: 0, ListedAt: "2025-08-10"}, // 5 days, stays
		{SKU: "BH-2507-0001", MarkdownStage: 0, ListedAt: "2025-07-01"}, // 45 days -> 1
		{SKU: "BH-2506-0001", MarkdownStage: 1, ListedAt: "2025-06-01"}, // 75 days -> 2
		{SKU: "BH-2505-0001", MarkdownStage: 0, ListedAt: "2025-05-12"}, // 95 days -> 3, skipping stages
		{SKU: "BH-2504-0001", MarkdownStage: 3, ListedAt: "2025-04-01"}, // already at the floor
		{SKU: "BH-2503-0001", MarkdownStage: 0, ListedAt: ""},           // no usable date
	}}
	svc := NewService(repo)

	counts, err := svc.Run(context.Background(), asOf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Counts{Stage1: 1, Stage2: 1, Stage3: 1}
	if counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
	if counts.Total() != 3 {
		t.Fatalf("Total = %d, want 3", counts.Total())
	}
	for _, c := range repo.candidates {
		if c.SKU == "BH-2505-0001" && c.MarkdownStage != 3 {
			t.Fatalf("95-day item ended at stage %d, want 3", c.MarkdownStage)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	asOf := date("2025-08-15")
	repo := &fakeRepo{candidates: []Candidate{
		{SKU: "BH-2507-0001", MarkdownStage: 0, ListedAt: "2025-07-01"},
		{SKU: "BH-2505-0001", MarkdownStage: 0, ListedAt: "2025-05-01"},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Run(ctx, asOf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.Total() != 2 {
		t.Fatalf("first run moved %d, want 2", first.Total())
	}
	second, err := svc.Run(ctx, asOf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if second.Total() != 0 {
		t.Fatalf("second run moved %d, want 0", second.Total())
	}
}

func TestRun_NeverDemotes(t *testing.T) {
	// manually deepened item listed only 40 days ago stays at stage 2
	asOf := date("2025-08-15")
	repo := &fakeRepo{candidates: []Candidate{
		{SKU: "BH-2507-0002", MarkdownStage: 2, ListedAt: "2025-07-06"},
	}}
	svc := NewService(repo)

	counts, err := svc.Run(context.Background(), asOf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counts.Total() != 0 {
		t.Fatalf("run demoted or re-promoted: %+v", counts)
	}
	if repo.candidates[0].MarkdownStage != 2 {
		t.Fatalf("stage changed to %d", repo.candidates[0].MarkdownStage)
	}
}

func TestPending_DoesNotApply(t *testing.T) {
	asOf := date("2025-08-15")
	repo := &fakeRepo{candidates: []Candidate{
		{SKU: "BH-2506-0003", MarkdownStage: 0, ListedAt: "2025-06-01"},
	}}
	svc := NewService(repo)

	changes, err := svc.Pending(context.Background(), asOf)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("pending = %d changes, want 1", len(changes))
	}
	ch := changes[0]
	if ch.FromStage != 0 || ch.ToStage != 2 || ch.ElapsedDays != 75 {
		t.Fatalf("unexpected change %+v", ch)
	}
	if len(repo.applied) != 0 {
		t.Fatal("Pending must not write")
	}
	if repo.candidates[0].MarkdownStage != 0 {
		t.Fatal("Pending changed item state")
	}
}
