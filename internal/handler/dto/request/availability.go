package request

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityQuery struct {
	OwnerID string    `form:"ownerId" binding:"required,uuid"`
	Role    string    `form:"role" binding:"required"`
	Start   time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End     time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CalendarQuery struct {
	OwnerID string `form:"ownerId" binding:"required,uuid"`
	Role    string `form:"role" binding:"required"`
	From    string `form:"from" binding:"required"`
	To      string `form:"to" binding:"required"`
}

type BlockingOwnersRequest struct {
	OwnerIDs []uuid.UUID `json:"ownerIds" binding:"required"`
	StartsAt time.Time   `json:"startsAt" binding:"required"`
	EndsAt   time.Time   `json:"endsAt" binding:"required"`
}
