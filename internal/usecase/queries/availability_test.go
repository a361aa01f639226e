//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra/memstore"
	"availability-engine/internal/usecase/queries"
	"availability-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func window(t *testing.T, from, to string) slot.TimeRange {
	t.Helper()
	r, err := slot.NewTimeRange(date(from), date(to))
	require.NoError(t, err)
	return r
}

func seed(t *testing.T, store *memstore.Store, slots ...*slot.Slot) {
	t.Helper()
	for _, s := range slots {
		_, err := store.Slots().Create(context.Background(), s)
		require.NoError(t, err)
	}
}

func TestAvailabilityQueries_IsAvailable(t *testing.T) {
	ctx := context.Background()
	guide := party.Ref{ID: uuid.New(), Type: party.TypeGuide}

	testCases := []struct {
		name   string
		slots  func() []*slot.Slot
		query  [2]string
		expect bool
	}{
		{
			name:   "success: no slots is available",
			slots:  func() []*slot.Slot { return nil },
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: true,
		},
		{
			name: "success: blocked slot inside range",
			slots: func() []*slot.Slot {
				return []*slot.Slot{builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-11").MustBuild()}
			},
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: false,
		},
		{
			name: "success: unavailable slot blocks too",
			slots: func() []*slot.Slot {
				return []*slot.Slot{builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-12").WithStatus(slot.StatusUnavailable).MustBuild()}
			},
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: false,
		},
		{
			name: "success: available slot keeps the owner open",
			slots: func() []*slot.Slot {
				return []*slot.Slot{builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-11").WithStatus(slot.StatusAvailable).MustBuild()}
			},
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: true,
		},
		{
			name: "success: slot ending at range start does not block",
			slots: func() []*slot.Slot {
				return []*slot.Slot{builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-09").MustBuild()}
			},
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: true,
		},
		{
			name: "success: same owner id under another role is ignored",
			slots: func() []*slot.Slot {
				return []*slot.Slot{builder.NewSlotBuilder().WithOwner(party.Ref{ID: guide.ID, Type: party.TypeTransport}).WithDay("2025-07-11").MustBuild()}
			},
			query:  [2]string{"2025-07-10", "2025-07-13"},
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			seed(t, store, tc.slots()...)
			q := queries.NewAvailabilityQueries(store.Slots())

			got, err := q.IsAvailable(ctx, guide.ID, guide.Type, window(t, tc.query[0], tc.query[1]))
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestAvailabilityQueries_ListBlockingOwners(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	q := queries.NewAvailabilityQueries(store.Slots())

	busy := party.Ref{ID: uuid.New(), Type: party.TypeGuide}
	open := party.Ref{ID: uuid.New(), Type: party.TypeTransport}
	later := party.Ref{ID: uuid.New(), Type: party.TypeGuide}
	seed(t, store,
		builder.NewSlotBuilder().WithOwner(busy).WithDay("2025-07-10").MustBuild(),
		builder.NewSlotBuilder().WithOwner(open).WithDay("2025-07-10").WithStatus(slot.StatusAvailable).MustBuild(),
		builder.NewSlotBuilder().WithOwner(later).WithDay("2025-07-20").MustBuild(),
	)

	t.Run("success: only intersecting blockers are returned", func(t *testing.T) {
		got, err := q.ListBlockingOwners(ctx, []uuid.UUID{busy.ID, open.ID, later.ID, busy.ID, uuid.Nil}, window(t, "2025-07-10", "2025-07-11"))
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]struct{}{busy.ID: {}}, got)
	})

	t.Run("success: empty input", func(t *testing.T) {
		got, err := q.ListBlockingOwners(ctx, nil, window(t, "2025-07-10", "2025-07-11"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAvailabilityQueries_Calendar(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	q := queries.NewAvailabilityQueries(store.Slots())
	guide := party.Ref{ID: uuid.New(), Type: party.TypeGuide}

	seed(t, store,
		builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-11").MustBuild(),
		builder.NewSlotBuilder().WithOwner(guide).WithDay("2025-07-12").WithStatus(slot.StatusAvailable).MustBuild(),
	)

	dates, err := hold.NewDateRange(date("2025-07-10"), date("2025-07-12"))
	require.NoError(t, err)

	days, err := q.Calendar(ctx, guide.ID, guide.Type, dates)
	require.NoError(t, err)
	want := []slot.DayStatus{
		{Day: date("2025-07-10"), Status: slot.StatusAvailable},
		{Day: date("2025-07-11"), Status: slot.StatusBlocked, Explicit: true},
		{Day: date("2025-07-12"), Status: slot.StatusAvailable, Explicit: true},
	}
	if diff := cmp.Diff(want, days); diff != "" {
		t.Errorf("calendar mismatch (-want +got):\n%s", diff)
	}
}
