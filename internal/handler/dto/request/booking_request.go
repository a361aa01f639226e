package request

import (
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequestRequest struct {
	TargetID   uuid.UUID `json:"targetId" binding:"required"`
	TargetRole string    `json:"targetRole" binding:"required"`
	StartsAt   time.Time `json:"startsAt" binding:"required"`
	EndsAt     time.Time `json:"endsAt" binding:"required"`
	JobRef     *string   `json:"jobRef,omitempty"`
	Message    string    `json:"message"`
}

func (r CreateBookingRequestRequest) ToInput() (commands.RequestBookingInput, error) {
	role, err := party.NewProviderRole(r.TargetRole)
	if err != nil {
		return commands.RequestBookingInput{}, err
	}
	return commands.RequestBookingInput{
		Target:   party.Ref{ID: r.TargetID, Type: role},
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		JobRef:   r.JobRef,
		Message:  r.Message,
	}, nil
}
