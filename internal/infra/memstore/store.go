// Package memstore keeps slots, holds, booking requests and parties in process memory.
// It backs the engine when STORE_DRIVER=memory and the usecase tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"

	"github.com/google/uuid"
)

// Store guards every table with one RWMutex, so each repository call is atomic on its own.
type Store struct {
	mu       sync.RWMutex
	slots    map[uuid.UUID]*slot.Slot
	holds    map[uuid.UUID]*hold.Hold
	requests map[uuid.UUID]*bookingrequest.BookingRequest
	parties  map[uuid.UUID]party.Account

	// slotKeys enforces one materialized slot per source record and start instant.
	slotKeys map[slotKey]uuid.UUID

	txMu sync.Mutex
}

type slotKey struct {
	ref   uuid.UUID
	start int64
}

func New() *Store {
	return &Store{
		slots:    make(map[uuid.UUID]*slot.Slot),
		holds:    make(map[uuid.UUID]*hold.Hold),
		requests: make(map[uuid.UUID]*bookingrequest.BookingRequest),
		parties:  make(map[uuid.UUID]party.Account),
		slotKeys: make(map[slotKey]uuid.UUID),
	}
}

func (s *Store) Slots() *SlotRepository { return &SlotRepository{store: s} }

func (s *Store) Holds() *HoldRepository { return &HoldRepository{store: s} }

func (s *Store) BookingRequests() *BookingRequestRepository {
	return &BookingRequestRepository{store: s}
}

func (s *Store) Parties() *PartyDirectory { return &PartyDirectory{store: s} }

type txKey struct{}

// UnitOfWork serializes Within blocks so a read-then-write sequence sees no interleaved writer.
// Nested calls join the outer block.
type UnitOfWork struct {
	store *Store
}

func (s *Store) UnitOfWork() *UnitOfWork { return &UnitOfWork{store: s} }

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func cloneSlot(s *slot.Slot) *slot.Slot {
	var ref *uuid.UUID
	if s.SourceRef() != nil {
		v := *s.SourceRef()
		ref = &v
	}
	var capacity *int
	if s.Capacity() != nil {
		v := *s.Capacity()
		capacity = &v
	}
	return slot.ReconstructSlot(s.ID(), s.OwnerID(), s.OwnerRole(), s.TimeRange(), s.Status(), s.Source(),
		ref, capacity, s.CreatedAt(), s.UpdatedAt())
}

func cloneHold(h *hold.Hold) *hold.Hold {
	var respondedAt = h.RespondedAt()
	if respondedAt != nil {
		v := *respondedAt
		respondedAt = &v
	}
	return hold.ReconstructHold(h.ID(), h.Holdee(), h.Requester(), h.Dates(), h.Status(),
		h.RequestMessage(), h.ResponseMessage(), h.CreatedAt(), h.ExpiresAt(), respondedAt, h.UpdatedAt())
}

func cloneRequest(b *bookingrequest.BookingRequest) *bookingrequest.BookingRequest {
	var jobRef = b.JobRef()
	if jobRef != nil {
		v := *jobRef
		jobRef = &v
	}
	var respondedAt = b.RespondedAt()
	if respondedAt != nil {
		v := *respondedAt
		respondedAt = &v
	}
	return bookingrequest.ReconstructBookingRequest(b.ID(), b.Requester(), b.Target(), jobRef, b.Window(),
		b.Status(), b.Message(), b.ResponseMessage(), b.CreatedAt(), b.UpdatedAt(), respondedAt)
}

func sortSlots(out []*slot.Slot) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].TimeRange().Start(), out[j].TimeRange().Start()
		if a.Equal(b) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return a.Before(b)
	})
}
