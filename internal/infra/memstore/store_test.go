//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"
	"availability-engine/internal/infra/memstore"
	"availability-engine/internal/usecase/shared"
	"availability-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_CreateDedupe(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	ref := uuid.New()

	materialized := func() *slot.Slot {
		return builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.Source = slot.SourceHold
			b.SourceRef = &ref
		}).MustBuild()
	}

	created, err := store.Slots().Create(ctx, materialized())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.Slots().Create(ctx, materialized())
	require.NoError(t, err)
	assert.False(t, created, "same source and start must be skipped")

	list, err := store.Slots().ListBySourceRef(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.Slots().Delete(ctx, list[0].ID()))
	created, err = store.Slots().Create(ctx, materialized())
	require.NoError(t, err)
	assert.True(t, created, "deleting frees the dedupe key")
}

func TestSlotRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	s := builder.NewSlotBuilder().MustBuild()
	_, err := store.Slots().Create(ctx, s)
	require.NoError(t, err)

	a, err := store.Slots().FindByID(ctx, s.ID())
	require.NoError(t, err)
	b, err := store.Slots().FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.ID(), b.ID())
}

func TestHoldRepository_Transition(t *testing.T) {
	ctx := context.Background()
	hb := builder.NewHoldBuilder()

	t.Run("success: pending hold accepts", func(t *testing.T) {
		store := memstore.New()
		h, err := hb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Holds().Create(ctx, h))

		tr, err := h.Respond(hb.Holdee, hold.DecisionAccept, "ok", hb.Now.Add(time.Hour))
		require.NoError(t, err)
		got, err := store.Holds().Transition(ctx, tr)
		require.NoError(t, err)
		assert.Equal(t, hold.StatusAccepted, got.Status())
		assert.NotNil(t, got.RespondedAt())
	})

	t.Run("error: second transition is rejected", func(t *testing.T) {
		store := memstore.New()
		h, err := hb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Holds().Create(ctx, h))

		tr, err := h.Respond(hb.Holdee, hold.DecisionAccept, "", hb.Now.Add(time.Hour))
		require.NoError(t, err)
		_, err = store.Holds().Transition(ctx, tr)
		require.NoError(t, err)

		cancel, err := h.Cancel(hb.Requester, hold.CancelByEither, hb.Now.Add(time.Hour))
		require.NoError(t, err)
		_, err = store.Holds().Transition(ctx, cancel)
		require.ErrorIs(t, err, shared.ErrTransitionRejected)
	})

	t.Run("error: expiry guard", func(t *testing.T) {
		store := memstore.New()
		h, err := hb.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, store.Holds().Create(ctx, h))

		tr, err := h.Respond(hb.Holdee, hold.DecisionDecline, "", hb.Now.Add(time.Hour))
		require.NoError(t, err)
		late := h.ExpiresAt()
		tr.NotExpiredAt = &late

		_, err = store.Holds().Transition(ctx, tr)
		require.ErrorIs(t, err, shared.ErrTransitionRejected)

		stored, err := store.Holds().FindByID(ctx, h.ID())
		require.NoError(t, err)
		assert.Equal(t, hold.StatusPending, stored.Status())
	})

	t.Run("error: unknown hold", func(t *testing.T) {
		store := memstore.New()
		_, err := store.Holds().Transition(ctx, hold.Transition{HoldID: uuid.New(), To: hold.StatusCancelled})
		var repoErr infra.RepositoryError
		require.ErrorAs(t, err, &repoErr)
		assert.Equal(t, infra.KindNotFound, repoErr.Kind)
	})
}

func TestHoldRepository_ConcurrentTransitions(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hb := builder.NewHoldBuilder()
	h, err := hb.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Holds().Create(ctx, h))

	now := hb.Now.Add(time.Hour)
	accept, err := h.Respond(hb.Holdee, hold.DecisionAccept, "", now)
	require.NoError(t, err)
	cancel, err := h.Cancel(hb.Requester, hold.CancelByEither, now)
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		tr := accept
		if i%2 == 1 {
			tr = cancel
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Holds().Transition(ctx, tr); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestHoldRepository_ExpirePending(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	hb := builder.NewHoldBuilder()

	stale, err := hb.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Holds().Create(ctx, stale))

	fresh, err := builder.NewHoldBuilder().With(func(b *builder.HoldBuilder) {
		b.Now = hb.Now.Add(24 * time.Hour)
	}).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Holds().Create(ctx, fresh))

	expired, err := store.Holds().ExpirePending(ctx, stale.ExpiresAt())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID(), expired[0].ID())
	assert.Equal(t, hold.StatusExpired, expired[0].Status())

	again, err := store.Holds().ExpirePending(ctx, stale.ExpiresAt())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestHoldRepository_ListDirection(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	guide := party.Ref{ID: uuid.New(), Type: party.TypeGuide}

	received, err := builder.NewHoldBuilder().With(func(b *builder.HoldBuilder) { b.Holdee = guide }).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, store.Holds().Create(ctx, received))

	testCases := []struct {
		name      string
		direction shared.Direction
		want      int
	}{
		{name: "success: incoming", direction: shared.DirectionIncoming, want: 1},
		{name: "success: outgoing", direction: shared.DirectionOutgoing, want: 0},
		{name: "success: all", direction: shared.DirectionAll, want: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := store.Holds().List(ctx, shared.HoldFilter{Party: guide, Direction: tc.direction})
			require.NoError(t, err)
			assert.Len(t, list, tc.want)
		})
	}
}

func TestUnitOfWork_Nested(t *testing.T) {
	store := memstore.New()
	uow := store.UnitOfWork()

	calls := 0
	err := uow.Within(context.Background(), func(ctx context.Context) error {
		calls++
		return uow.Within(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
