package queries

import (
	"context"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=hold.go -destination=../../../tests/mock/queries/hold_mock.go -package=queriesmock

type HoldListParams struct {
	Direction shared.Direction
	Status    *hold.Status
	Limit     int
}

type HoldQueries interface {
	Get(ctx context.Context, actor party.Ref, id uuid.UUID) (*hold.Hold, error)
	List(ctx context.Context, actor party.Ref, params HoldListParams) ([]*hold.Hold, error)
}

type holdQueriesImpl struct {
	holds shared.HoldRepository
}

func NewHoldQueries(holds shared.HoldRepository) HoldQueries {
	return &holdQueriesImpl{holds: holds}
}

// Get returns the hold only to its holdee or requester.
func (q *holdQueriesImpl) Get(ctx context.Context, actor party.Ref, id uuid.UUID) (*hold.Hold, error) {
	h, err := q.holds.FindByID(ctx, id)
	if err != nil {
		return nil, translateReadErr(err, "hold")
	}
	if !h.IsParty(actor) {
		return nil, errs.WithKind(errs.New("hold belongs to other parties"), errs.ErrNotParty)
	}
	return h, nil
}

func (q *holdQueriesImpl) List(ctx context.Context, actor party.Ref, params HoldListParams) ([]*hold.Hold, error) {
	direction := params.Direction
	if direction == "" {
		direction = shared.DirectionAll
	}
	if !direction.IsValid() {
		return nil, errs.Validation("unknown direction " + string(direction))
	}

	found, err := q.holds.List(ctx, shared.HoldFilter{
		Party:     actor,
		Direction: direction,
		Status:    params.Status,
		Limit:     clampLimit(params.Limit),
	})
	if err != nil {
		return nil, translateReadErr(err, "hold")
	}
	return found, nil
}
