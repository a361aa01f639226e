package queries

import (
	"context"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/queries/slot_mock.go -package=queriesmock

type SlotQueries interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, role party.Type) ([]*slot.Slot, error)
}

type slotQueriesImpl struct {
	slots shared.SlotRepository
}

func NewSlotQueries(slots shared.SlotRepository) SlotQueries {
	return &slotQueriesImpl{slots: slots}
}

func (q *slotQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, role party.Type) ([]*slot.Slot, error) {
	found, err := q.slots.ListByOwner(ctx, ownerID, role)
	if err != nil {
		return nil, translateReadErr(err, "slot")
	}
	return found, nil
}
