package queries

import (
	"context"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

var tracer = otel.Tracer("availability-engine/usecase/queries")

// MaxBlockingOwners bounds one directory filtering call.
const MaxBlockingOwners = 500

// AvailabilityQueries answers "is this provider free" with the default-open rule:
// no slot means available, any intersecting blocked or unavailable slot means not.
type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, ownerID uuid.UUID, role party.Type, r slot.TimeRange) (bool, error)
	ListBlockingOwners(ctx context.Context, ownerIDs []uuid.UUID, r slot.TimeRange) (map[uuid.UUID]struct{}, error)
	Calendar(ctx context.Context, ownerID uuid.UUID, role party.Type, dates hold.DateRange) ([]slot.DayStatus, error)
}

type availabilityQueriesImpl struct {
	slots shared.SlotRepository
}

func NewAvailabilityQueries(slots shared.SlotRepository) AvailabilityQueries {
	return &availabilityQueriesImpl{slots: slots}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, ownerID uuid.UUID, role party.Type, r slot.TimeRange) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityQueries.IsAvailable", trace.WithAttributes(
		attribute.String("owner.id", ownerID.String()),
	))
	defer func() { shared.FinishSpan(span, err) }()

	found, err := q.ownerSlots(ctx, ownerID, role, r)
	if err != nil {
		return false, err
	}
	return !slot.BlocksRange(found, r), nil
}

func (q *availabilityQueriesImpl) ListBlockingOwners(ctx context.Context, ownerIDs []uuid.UUID, r slot.TimeRange) (_ map[uuid.UUID]struct{}, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityQueries.ListBlockingOwners", trace.WithAttributes(
		attribute.Int("owners", len(ownerIDs)),
	))
	defer func() { shared.FinishSpan(span, err) }()

	ids := dedupe(ownerIDs)
	if len(ids) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	found, err := q.slots.ListOverlapping(ctx, ids, r)
	if err != nil {
		return nil, translateReadErr(err, "slot")
	}
	return slot.BlockingOwners(found, r), nil
}

func (q *availabilityQueriesImpl) Calendar(ctx context.Context, ownerID uuid.UUID, role party.Type, dates hold.DateRange) (_ []slot.DayStatus, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityQueries.Calendar", trace.WithAttributes(
		attribute.String("owner.id", ownerID.String()),
		attribute.Int("days", len(dates.Days())),
	))
	defer func() { shared.FinishSpan(span, err) }()

	found, err := q.ownerSlots(ctx, ownerID, role, dates.TimeRange())
	if err != nil {
		return nil, err
	}
	return slot.ResolveDays(found, dates.Days()), nil
}

func (q *availabilityQueriesImpl) ownerSlots(ctx context.Context, ownerID uuid.UUID, role party.Type, r slot.TimeRange) ([]*slot.Slot, error) {
	found, err := q.slots.ListOverlapping(ctx, []uuid.UUID{ownerID}, r)
	if err != nil {
		return nil, translateReadErr(err, "slot")
	}
	var out []*slot.Slot
	for _, s := range found {
		if s.OwnerRole() == role {
			out = append(out, s)
		}
	}
	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
