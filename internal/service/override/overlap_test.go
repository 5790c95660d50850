package override

import (
	"context"
	"testing"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalsOverlap(t *testing.T) {
	d := func(day int) time.Time { return utcDate(2026, time.March, day) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", d(2), d(6), d(2), d(6), true},
		{"contained", d(2), d(6), d(3), d(4), true},
		{"partial front", d(2), d(6), d(1), d(3), true},
		{"partial back", d(2), d(6), d(5), d(9), true},
		{"touching endpoints", d(2), d(6), d(6), d(9), true},
		{"single day inside", d(2), d(6), d(4), d(4), true},
		{"disjoint before", d(2), d(6), d(7), d(9), false},
		{"disjoint after", d(7), d(9), d(2), d(6), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IntervalsOverlap(c.s1, c.e1, c.s2, c.e2))
		})
	}
}

func TestOverlapGuard(t *testing.T) {
	scope := override.Scope{Kind: override.ScopeUser, EntityID: "user-1"}
	existing := override.ScheduleException{
		ID:        "exc-1",
		CompanyID: "co-1",
		Scope:     scope,
		StartDate: utcDate(2026, time.March, 2),
		EndDate:   utcDate(2026, time.March, 6),
		IsDayOff:  true,
	}
	guard := NewOverlapGuard(&fakeExceptionRepo{exceptions: []override.ScheduleException{existing}})
	ctx := context.Background()

	overlap, err := guard.HasOverlap(ctx, scope, utcDate(2026, time.March, 5), utcDate(2026, time.March, 10), nil, "co-1")
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = guard.HasOverlap(ctx, scope, utcDate(2026, time.March, 7), utcDate(2026, time.March, 10), nil, "co-1")
	require.NoError(t, err)
	assert.False(t, overlap)

	// A different scope never collides.
	other := override.Scope{Kind: override.ScopeUser, EntityID: "user-2"}
	overlap, err = guard.HasOverlap(ctx, other, utcDate(2026, time.March, 2), utcDate(2026, time.March, 6), nil, "co-1")
	require.NoError(t, err)
	assert.False(t, overlap)

	// Updating the record itself must not collide with its own span.
	excludeID := "exc-1"
	overlap, err = guard.HasOverlap(ctx, scope, utcDate(2026, time.March, 2), utcDate(2026, time.March, 6), &excludeID, "co-1")
	require.NoError(t, err)
	assert.False(t, overlap)
}
