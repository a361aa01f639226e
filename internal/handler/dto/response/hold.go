package response

import (
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoldResponse struct {
	ID              uuid.UUID  `json:"id"`
	HoldeeID        uuid.UUID  `json:"holdeeId"`
	HoldeeType      string     `json:"holdeeType"`
	RequesterID     uuid.UUID  `json:"requesterId"`
	RequesterType   string     `json:"requesterType"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	Status          string     `json:"status"`
	RequestMessage  string     `json:"requestMessage,omitempty"`
	ResponseMessage string     `json:"responseMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// RespondHoldResponse carries the answered hold plus any days that could not be blocked.
type RespondHoldResponse struct {
	Hold         *HoldResponse   `json:"hold"`
	Slots        []*SlotResponse `json:"slots,omitempty"`
	MissingDays  []string        `json:"missingDays,omitempty"`
	PartialError string          `json:"partialError,omitempty"`
}

func FromHold(h *hold.Hold) *HoldResponse {
	return &HoldResponse{
		ID:              h.ID(),
		HoldeeID:        h.Holdee().ID,
		HoldeeType:      h.Holdee().Type.String(),
		RequesterID:     h.Requester().ID,
		RequesterType:   h.Requester().Type.String(),
		StartDate:       h.Dates().Start().Format(time.DateOnly),
		EndDate:         h.Dates().End().Format(time.DateOnly),
		Status:          h.Status().String(),
		RequestMessage:  h.RequestMessage(),
		ResponseMessage: h.ResponseMessage(),
		CreatedAt:       h.CreatedAt(),
		ExpiresAt:       h.ExpiresAt(),
		RespondedAt:     h.RespondedAt(),
		UpdatedAt:       h.UpdatedAt(),
	}
}

func FromHolds(hs []*hold.Hold) []*HoldResponse {
	out := make([]*HoldResponse, len(hs))
	for i, h := range hs {
		out[i] = FromHold(h)
	}
	return out
}

func FromRespondHoldResult(r *commands.RespondHoldResult) *RespondHoldResponse {
	out := &RespondHoldResponse{
		Hold:        FromHold(r.Hold),
		Slots:       FromSlots(r.Slots),
		MissingDays: formatDays(r.MissingDays),
	}
	if err := r.Partial(); err != nil {
		out.PartialError = err.Error()
	}
	return out
}

func formatDays(days []time.Time) []string {
	if len(days) == 0 {
		return nil
	}
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}
