//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCommands(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	input := commands.CreateSlotInput{StartsAt: day, EndsAt: day.Add(24 * time.Hour), Status: slot.StatusBlocked}

	t.Run("success: provider creates and deletes a manual slot", func(t *testing.T) {
		f := newFixture(t)
		s, err := f.slotCmds.Create(ctx, f.guide, input)
		require.NoError(t, err)
		assert.Equal(t, slot.SourceManual, s.Source())
		assert.Equal(t, f.guide.ID, s.OwnerID())

		require.NoError(t, f.slotCmds.Delete(ctx, f.guide, s.ID()))
		_, err = f.store.Slots().FindByID(ctx, s.ID())
		require.Error(t, err)
	})

	t.Run("error: agency cannot own slots", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.slotCmds.Create(ctx, f.agency, input)
		require.ErrorIs(t, err, errs.ErrNotParty)
	})

	t.Run("error: invalid status", func(t *testing.T) {
		f := newFixture(t)
		in := input
		in.Status = "maybe"
		_, err := f.slotCmds.Create(ctx, f.guide, in)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("error: other owner cannot delete", func(t *testing.T) {
		f := newFixture(t)
		s, err := f.slotCmds.Create(ctx, f.guide, input)
		require.NoError(t, err)

		err = f.slotCmds.Delete(ctx, f.transport, s.ID())
		require.ErrorIs(t, err, errs.ErrNotParty)
	})

	t.Run("error: materialized slots cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		h, err := f.holds.Request(ctx, f.agency, f.holdInput("2025-07-10", "2025-07-10", ""))
		require.NoError(t, err)
		result, err := f.holds.Respond(ctx, f.guide, h.ID(), hold.DecisionAccept, "")
		require.NoError(t, err)
		require.Len(t, result.Slots, 1)

		err = f.slotCmds.Delete(ctx, f.guide, result.Slots[0].ID())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("error: unknown slot", func(t *testing.T) {
		f := newFixture(t)
		err := f.slotCmds.Delete(ctx, f.guide, uuid.New())
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}
