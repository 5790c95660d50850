package override

import (
	"context"
	"fmt"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
)

// IntervalsOverlap reports whether the closed date intervals [s1, e1] and
// [s2, e2] intersect: s1 <= e2 && s2 <= e1.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// OverlapGuard rejects exceptions whose date range collides with an existing
// exception for the same scope and entity.
type OverlapGuard struct {
	exceptionRepo override.ScheduleExceptionRepository
}

func NewOverlapGuard(exceptionRepo override.ScheduleExceptionRepository) *OverlapGuard {
	return &OverlapGuard{exceptionRepo: exceptionRepo}
}

// HasOverlap returns true when another exception for (scope) intersects
// [startDate, endDate]. excludeID skips the record being updated.
func (g *OverlapGuard) HasOverlap(ctx context.Context, scope override.Scope, startDate, endDate time.Time, excludeID *string, companyID string) (bool, error) {
	existing, err := g.exceptionRepo.FindOverlapping(ctx, scope, startDate, endDate, excludeID, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to find overlapping exceptions: %w", err)
	}
	return len(existing) > 0, nil
}
