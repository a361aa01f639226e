package request

import (
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	HoldeeID   uuid.UUID `json:"holdeeId" binding:"required"`
	HoldeeType string    `json:"holdeeType" binding:"required"`
	StartDate  string    `json:"startDate" binding:"required"`
	EndDate    string    `json:"endDate" binding:"required"`
	Message    string    `json:"message"`
}

func (r CreateHoldRequest) ToInput() (commands.RequestHoldInput, error) {
	holdeeType, err := party.NewType(r.HoldeeType)
	if err != nil {
		return commands.RequestHoldInput{}, err
	}
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return commands.RequestHoldInput{}, err
	}
	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return commands.RequestHoldInput{}, err
	}
	return commands.RequestHoldInput{
		Holdee:    party.Ref{ID: r.HoldeeID, Type: holdeeType},
		StartDate: start,
		EndDate:   end,
		Message:   r.Message,
	}, nil
}

// RespondRequest answers a hold or a booking request.
type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted declined"`
	Message  string `json:"message"`
}

type ListQuery struct {
	Direction string `form:"direction"`
	Status    string `form:"status"`
	Limit     int    `form:"limit"`
}
