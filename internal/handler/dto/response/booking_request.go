package response

import (
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	RequesterID     uuid.UUID  `json:"requesterId"`
	RequesterRole   string     `json:"requesterRole"`
	TargetID        uuid.UUID  `json:"targetId"`
	TargetRole      string     `json:"targetRole"`
	JobRef          *string    `json:"jobRef,omitempty"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          time.Time  `json:"endsAt"`
	Status          string     `json:"status"`
	Message         string     `json:"message,omitempty"`
	ResponseMessage string     `json:"responseMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
}

type RespondBookingRequestResponse struct {
	Request      *BookingRequestResponse `json:"request"`
	Slot         *SlotResponse           `json:"slot,omitempty"`
	MissingDays  []string                `json:"missingDays,omitempty"`
	PartialError string                  `json:"partialError,omitempty"`
}

func FromBookingRequest(b *bookingrequest.BookingRequest) *BookingRequestResponse {
	return &BookingRequestResponse{
		ID:              b.ID(),
		RequesterID:     b.Requester().ID,
		RequesterRole:   b.Requester().Type.String(),
		TargetID:        b.Target().ID,
		TargetRole:      b.Target().Type.String(),
		JobRef:          b.JobRef(),
		StartsAt:        b.Window().Start(),
		EndsAt:          b.Window().End(),
		Status:          b.Status().String(),
		Message:         b.Message(),
		ResponseMessage: b.ResponseMessage(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
		RespondedAt:     b.RespondedAt(),
	}
}

func FromBookingRequests(bs []*bookingrequest.BookingRequest) []*BookingRequestResponse {
	out := make([]*BookingRequestResponse, len(bs))
	for i, b := range bs {
		out[i] = FromBookingRequest(b)
	}
	return out
}

func FromRespondBookingResult(r *commands.RespondBookingResult) *RespondBookingRequestResponse {
	out := &RespondBookingRequestResponse{
		Request:     FromBookingRequest(r.Request),
		MissingDays: formatDays(r.MissingDays),
	}
	if r.Slot != nil {
		out.Slot = FromSlot(r.Slot)
	}
	if err := r.Partial(); err != nil {
		out.PartialError = err.Error()
	}
	return out
}
