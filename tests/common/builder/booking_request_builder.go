//go:build unit || e2e

package builder

import (
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	reqdto "availability-engine/internal/handler/dto/request"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingRequestBuilder struct {
	Requester party.Ref
	Target    party.Ref
	StartsAt  time.Time
	EndsAt    time.Time
	JobRef    *string
	Message   string
	Now       time.Time
}

func NewBookingRequestBuilder() *BookingRequestBuilder {
	jobRef := "JOB-2025-0042"
	return &BookingRequestBuilder{
		Requester: party.Ref{ID: uuid.New(), Type: party.TypeDMC},
		Target:    party.Ref{ID: uuid.New(), Type: party.TypeTransport},
		StartsAt:  time.Date(2025, 8, 5, 8, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2025, 8, 5, 18, 0, 0, 0, time.UTC),
		JobRef:    &jobRef,
		Message:   "Airport transfer for 12 guests",
		Now:       time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingRequestBuilder) With(mutate func(*BookingRequestBuilder)) *BookingRequestBuilder {
	mutate(b)
	return b
}

func (b *BookingRequestBuilder) BuildDomain() (*bookingrequest.BookingRequest, error) {
	window, err := slot.NewTimeRange(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	return bookingrequest.NewBookingRequest(b.Requester, b.Target, window, b.JobRef, b.Message, b.Now)
}

func (b *BookingRequestBuilder) BuildInput() commands.RequestBookingInput {
	return commands.RequestBookingInput{
		Target:   b.Target,
		StartsAt: b.StartsAt,
		EndsAt:   b.EndsAt,
		JobRef:   b.JobRef,
		Message:  b.Message,
	}
}

func (b *BookingRequestBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequestRequest {
	return reqdto.CreateBookingRequestRequest{
		TargetID:   b.Target.ID,
		TargetRole: b.Target.Type.String(),
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		JobRef:     b.JobRef,
		Message:    b.Message,
	}
}
