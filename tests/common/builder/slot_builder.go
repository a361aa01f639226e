//go:build unit || e2e

package builder

import (
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	reqdto "availability-engine/internal/handler/dto/request"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	OwnerID   uuid.UUID
	OwnerRole party.Type
	StartsAt  time.Time
	EndsAt    time.Time
	Status    slot.Status
	Source    slot.Source
	SourceRef *uuid.UUID
	Capacity  *int
	Now       time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		OwnerID:   uuid.New(),
		OwnerRole: party.TypeGuide,
		StartsAt:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
		Status:    slot.StatusBlocked,
		Source:    slot.SourceManual,
		Now:       time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithOwner(ref party.Ref) *SlotBuilder {
	b.OwnerID = ref.ID
	b.OwnerRole = ref.Type
	return b
}

// WithDay covers one whole UTC day given as YYYY-MM-DD.
func (b *SlotBuilder) WithDay(day string) *SlotBuilder {
	b.StartsAt = mustDate(day)
	b.EndsAt = b.StartsAt.AddDate(0, 0, 1)
	return b
}

func (b *SlotBuilder) WithStatus(s slot.Status) *SlotBuilder {
	b.Status = s
	return b
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	r, err := slot.NewTimeRange(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	return slot.NewSlot(slot.Params{
		OwnerID:   b.OwnerID,
		OwnerRole: b.OwnerRole,
		Range:     r,
		Status:    b.Status,
		Source:    b.Source,
		SourceRef: b.SourceRef,
		Capacity:  b.Capacity,
	}, b.Now)
}

// MustBuild is for fixtures where the builder defaults are known to be valid.
func (b *SlotBuilder) MustBuild() *slot.Slot {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	return reqdto.CreateSlotRequest{
		StartsAt: b.StartsAt,
		EndsAt:   b.EndsAt,
		Status:   b.Status.String(),
		Capacity: b.Capacity,
	}
}
