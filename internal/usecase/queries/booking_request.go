package queries

import (
	"context"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking_request.go -destination=../../../tests/mock/queries/booking_request_mock.go -package=queriesmock

type BookingRequestListParams struct {
	Direction shared.Direction
	Status    *bookingrequest.Status
	Limit     int
}

type BookingRequestQueries interface {
	Get(ctx context.Context, actor party.Ref, id uuid.UUID) (*bookingrequest.BookingRequest, error)
	List(ctx context.Context, actor party.Ref, params BookingRequestListParams) ([]*bookingrequest.BookingRequest, error)
}

type bookingRequestQueriesImpl struct {
	requests shared.BookingRequestRepository
}

func NewBookingRequestQueries(requests shared.BookingRequestRepository) BookingRequestQueries {
	return &bookingRequestQueriesImpl{requests: requests}
}

func (q *bookingRequestQueriesImpl) Get(ctx context.Context, actor party.Ref, id uuid.UUID) (*bookingrequest.BookingRequest, error) {
	b, err := q.requests.FindByID(ctx, id)
	if err != nil {
		return nil, translateReadErr(err, "booking request")
	}
	if !b.IsParty(actor) {
		return nil, errs.WithKind(errs.New("booking request belongs to other parties"), errs.ErrNotParty)
	}
	return b, nil
}

func (q *bookingRequestQueriesImpl) List(ctx context.Context, actor party.Ref, params BookingRequestListParams) ([]*bookingrequest.BookingRequest, error) {
	direction := params.Direction
	if direction == "" {
		direction = shared.DirectionAll
	}
	if !direction.IsValid() {
		return nil, errs.Validation("unknown direction " + string(direction))
	}

	found, err := q.requests.List(ctx, shared.BookingRequestFilter{
		Party:     actor,
		Direction: direction,
		Status:    params.Status,
		Limit:     clampLimit(params.Limit),
	})
	if err != nil {
		return nil, translateReadErr(err, "booking request")
	}
	return found, nil
}
