package slot

import (
	"errors"
	"time"

	"availability-engine/internal/domain/party"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid slot status")
	ErrInvalidSource    = errors.New("invalid slot source")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrMissingOwner     = errors.New("slot owner is required")
	ErrMissingSourceRef = errors.New("materialized slot requires a source reference")
)

type Slot struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	ownerRole party.Type
	timeRange TimeRange
	status    Status
	source    Source
	sourceRef *uuid.UUID
	capacity  *int
	createdAt time.Time
	updatedAt time.Time
}

type Params struct {
	OwnerID   uuid.UUID
	OwnerRole party.Type
	Range     TimeRange
	Status    Status
	Source    Source
	SourceRef *uuid.UUID
	Capacity  *int
}

func NewSlot(p Params, now time.Time) (*Slot, error) {
	if p.OwnerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if !p.OwnerRole.IsProvider() {
		return nil, party.ErrNotProvider
	}
	if p.Range.IsZero() {
		return nil, ErrInvalidRange
	}
	if !p.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if !p.Source.IsValid() {
		return nil, ErrInvalidSource
	}
	if p.Source != SourceManual && p.SourceRef == nil {
		return nil, ErrMissingSourceRef
	}
	if p.Capacity != nil && *p.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Slot{
		id:        uuid.New(),
		ownerID:   p.OwnerID,
		ownerRole: p.OwnerRole,
		timeRange: p.Range,
		status:    p.Status,
		source:    p.Source,
		sourceRef: p.SourceRef,
		capacity:  p.Capacity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSlot(
	id, ownerID uuid.UUID,
	ownerRole party.Type,
	timeRange TimeRange,
	status Status,
	source Source,
	sourceRef *uuid.UUID,
	capacity *int,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:        id,
		ownerID:   ownerID,
		ownerRole: ownerRole,
		timeRange: timeRange,
		status:    status,
		source:    source,
		sourceRef: sourceRef,
		capacity:  capacity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// IsManual reports whether the owner entered the slot directly. Only manual slots may be deleted.
func (s *Slot) IsManual() bool {
	return s.source == SourceManual
}

func (s *Slot) Blocks(r TimeRange) bool {
	return s.status.Blocks() && s.timeRange.Overlaps(r)
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) OwnerID() uuid.UUID    { return s.ownerID }
func (s *Slot) OwnerRole() party.Type { return s.ownerRole }
func (s *Slot) TimeRange() TimeRange  { return s.timeRange }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) Source() Source        { return s.source }
func (s *Slot) SourceRef() *uuid.UUID { return s.sourceRef }
func (s *Slot) Capacity() *int        { return s.capacity }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }
