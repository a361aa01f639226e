package response

import (
	"time"

	"availability-engine/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	OwnerRole string     `json:"ownerRole"`
	StartsAt  time.Time  `json:"startsAt"`
	EndsAt    time.Time  `json:"endsAt"`
	Status    string     `json:"status"`
	Source    string     `json:"source"`
	SourceRef *uuid.UUID `json:"sourceRef,omitempty"`
	Capacity  *int       `json:"capacity,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func FromSlot(s *slot.Slot) *SlotResponse {
	return &SlotResponse{
		ID:        s.ID(),
		OwnerID:   s.OwnerID(),
		OwnerRole: s.OwnerRole().String(),
		StartsAt:  s.TimeRange().Start(),
		EndsAt:    s.TimeRange().End(),
		Status:    s.Status().String(),
		Source:    s.Source().String(),
		SourceRef: s.SourceRef(),
		Capacity:  s.Capacity(),
		CreatedAt: s.CreatedAt(),
	}
}

func FromSlots(ss []*slot.Slot) []*SlotResponse {
	out := make([]*SlotResponse, len(ss))
	for i, s := range ss {
		out[i] = FromSlot(s)
	}
	return out
}
