package request

import (
	"time"

	"availability-engine/internal/domain/slot"
	"availability-engine/internal/usecase/commands"
)

type CreateSlotRequest struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	Status   string    `json:"status" binding:"required,oneof=available blocked unavailable"`
	Capacity *int      `json:"capacity,omitempty"`
}

func (r CreateSlotRequest) ToInput() commands.CreateSlotInput {
	return commands.CreateSlotInput{
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Status:   slot.Status(r.Status),
		Capacity: r.Capacity,
	}
}

type OwnerQuery struct {
	OwnerID string `form:"ownerId" binding:"required,uuid"`
	Role    string `form:"role" binding:"required"`
}
