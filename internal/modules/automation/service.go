package automation

import (
	"context"
	"time"

	"github.com/brecholab/brecho-backend/internal/logger"
	"github.com/brecholab/brecho-backend/internal/modules/item"
)

// Service runs the time-based markdown schedule as a batch operation.
type Service interface {
	// Run promotes every active unsold item to the stage its shelf time
	// calls for and reports how many items landed in each stage. Running
	// it again immediately changes nothing.
	Run(ctx context.Context, asOf time.Time) (Counts, error)
	// Pending lists the promotions a run would make, without applying them.
	Pending(ctx context.Context, asOf time.Time) ([]StageChange, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// TargetStage maps time on the shelf to the stage an item should be at:
// over 30 days 10% off, over 60 days 25% off, over 90 days 40% off.
// An item idle 95 days belongs at stage 3 no matter where it starts.
func TargetStage(elapsedDays int) int {
	switch {
	case elapsedDays > 90:
		return 3
	case elapsedDays > 60:
		return 2
	case elapsedDays > 30:
		return 1
	}
	return 0
}

func (s *service) Run(ctx context.Context, asOf time.Time) (Counts, error) {
	changes, err := s.plan(ctx, asOf)
	if err != nil {
		return Counts{}, err
	}
	if err := s.repo.ApplyStages(ctx, changes); err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, ch := range changes {
		switch ch.ToStage {
		case 1:
			counts.Stage1++
		case 2:
			counts.Stage2++
		case 3:
			counts.Stage3++
		}
	}
	logger.WithModule("automation").WithField("moved", counts.Total()).
		Info("markdown schedule applied")
	return counts, nil
}

func (s *service) Pending(ctx context.Context, asOf time.Time) ([]StageChange, error) {
	return s.plan(ctx, asOf)
}

func (s *service) plan(ctx context.Context, asOf time.Time) ([]StageChange, error) {
	candidates, err := s.repo.ListUnsold(ctx)
	if err != nil {
		return nil, err
	}
	changes := make([]StageChange, 0)
	for _, c := range candidates {
		listed, err := time.Parse(item.DateLayout, c.ListedAt)
		if err != nil {
			// items with no usable listing date never age into a markdown
			continue
		}
		elapsed := daysBetween(listed, asOf)
		target := TargetStage(elapsed)
		if target > c.MarkdownStage {
			changes = append(changes, StageChange{
				SKU:         c.SKU,
				FromStage:   c.MarkdownStage,
				ToStage:     target,
				ElapsedDays: elapsed,
			})
		}
	}
	return changes, nil
}

// daysBetween counts whole calendar days from listed to asOf.
func daysBetween(listed, asOf time.Time) int {
	listed = listed.Truncate(24 * time.Hour)
	asOf = asOf.Truncate(24 * time.Hour)
	return int(asOf.Sub(listed).Hours() / 24)
}
