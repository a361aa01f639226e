package commands

import (
	"context"
	"log/slog"
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/commands/slot_mock.go -package=commandsmock

type CreateSlotInput struct {
	StartsAt time.Time
	EndsAt   time.Time
	Status   slot.Status
	Capacity *int
}

type SlotCommands interface {
	Create(ctx context.Context, actor party.Ref, in CreateSlotInput) (*slot.Slot, error)
	Delete(ctx context.Context, actor party.Ref, slotID uuid.UUID) error
}

type slotCommandsImpl struct {
	slots  shared.SlotRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewSlotCommands(slots shared.SlotRepository, clock clock.Clock, logger *slog.Logger) SlotCommands {
	return &slotCommandsImpl{
		slots:  slots,
		clock:  clock,
		logger: logger,
	}
}

// Create stores a manual slot for the acting provider. Overlap with existing slots is allowed.
func (c *slotCommandsImpl) Create(ctx context.Context, actor party.Ref, in CreateSlotInput) (*slot.Slot, error) {
	if !actor.Type.IsProvider() {
		return nil, errs.WithKind(errs.Wrap(party.ErrNotProvider, "slot owner"), errs.ErrNotParty)
	}

	r, err := slot.NewTimeRange(in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid slot range"), errs.ErrValidation)
	}

	s, err := slot.NewSlot(slot.Params{
		OwnerID:   actor.ID,
		OwnerRole: actor.Type,
		Range:     r,
		Status:    in.Status,
		Source:    slot.SourceManual,
		Capacity:  in.Capacity,
	}, c.clock.Now())
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid slot"), errs.ErrValidation)
	}

	if _, err := c.slots.Create(ctx, s); err != nil {
		return nil, translateRepoErr(err, "slot")
	}

	c.logger.Info("slot created", "slot_id", s.ID(), "owner_id", s.OwnerID(), "status", s.Status())
	return s, nil
}

// Delete removes a manual slot. Slots materialized from holds or bookings stay in place.
func (c *slotCommandsImpl) Delete(ctx context.Context, actor party.Ref, slotID uuid.UUID) error {
	s, err := c.slots.FindByID(ctx, slotID)
	if err != nil {
		return translateRepoErr(err, "slot")
	}
	if s.OwnerID() != actor.ID || s.OwnerRole() != actor.Type {
		return errs.WithKind(errs.New("slot belongs to another owner"), errs.ErrNotParty)
	}
	if !s.IsManual() {
		return errs.InvalidState("only manual slots can be deleted")
	}

	if err := c.slots.Delete(ctx, slotID); err != nil {
		return translateRepoErr(err, "slot")
	}

	c.logger.Info("slot deleted", "slot_id", slotID, "owner_id", actor.ID)
	return nil
}
