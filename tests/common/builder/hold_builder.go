//go:build unit || e2e

package builder

import (
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	reqdto "availability-engine/internal/handler/dto/request"
	"availability-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type HoldBuilder struct {
	Holdee    party.Ref
	Requester party.Ref
	StartDate time.Time
	EndDate   time.Time
	Message   string
	Now       time.Time
	TTL       time.Duration
}

func NewHoldBuilder() *HoldBuilder {
	return &HoldBuilder{
		Holdee:    party.Ref{ID: uuid.New(), Type: party.TypeGuide},
		Requester: party.Ref{ID: uuid.New(), Type: party.TypeAgency},
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Message:   "Tentative hold for a walking tour",
		Now:       time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC),
		TTL:       48 * time.Hour,
	}
}

func (b *HoldBuilder) With(mutate func(*HoldBuilder)) *HoldBuilder {
	mutate(b)
	return b
}

func (b *HoldBuilder) WithDates(start, end string) *HoldBuilder {
	b.StartDate = mustDate(start)
	b.EndDate = mustDate(end)
	return b
}

// Build methods
func (b *HoldBuilder) BuildDomain() (*hold.Hold, error) {
	dates, err := hold.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	return hold.NewHold(b.Holdee, b.Requester, dates, b.Message, b.Now, b.TTL)
}

func (b *HoldBuilder) BuildInput() commands.RequestHoldInput {
	return commands.RequestHoldInput{
		Holdee:    b.Holdee,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Message:   b.Message,
	}
}

func (b *HoldBuilder) BuildCreateRequestDTO() reqdto.CreateHoldRequest {
	return reqdto.CreateHoldRequest{
		HoldeeID:   b.Holdee.ID,
		HoldeeType: b.Holdee.Type.String(),
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		Message:    b.Message,
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}
