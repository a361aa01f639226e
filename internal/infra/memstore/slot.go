package memstore

import (
	"context"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"

	"github.com/google/uuid"
)

type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) Create(_ context.Context, s *slot.Slot) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.slots[s.ID()]; ok {
		return false, infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	if ref := s.SourceRef(); ref != nil {
		key := slotKey{ref: *ref, start: s.TimeRange().Start().UnixNano()}
		if _, ok := r.store.slotKeys[key]; ok {
			return false, nil
		}
		r.store.slotKeys[key] = s.ID()
	}
	r.store.slots[s.ID()] = cloneSlot(s)
	return true, nil
}

func (r *SlotRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.slots[id]
	if !ok {
		return infra.NewNotFound("slot not found")
	}
	if ref := s.SourceRef(); ref != nil {
		delete(r.store.slotKeys, slotKey{ref: *ref, start: s.TimeRange().Start().UnixNano()})
	}
	delete(r.store.slots, id)
	return nil
}

func (r *SlotRepository) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.slots[id]
	if !ok {
		return nil, infra.NewNotFound("slot not found")
	}
	return cloneSlot(s), nil
}

func (r *SlotRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, role party.Type) ([]*slot.Slot, error) {
	return r.filter(func(s *slot.Slot) bool {
		return s.OwnerID() == ownerID && s.OwnerRole() == role
	}), nil
}

func (r *SlotRepository) ListOverlapping(_ context.Context, ownerIDs []uuid.UUID, tr slot.TimeRange) ([]*slot.Slot, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	owners := make(map[uuid.UUID]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}
	return r.filter(func(s *slot.Slot) bool {
		_, ok := owners[s.OwnerID()]
		return ok && s.TimeRange().Overlaps(tr)
	}), nil
}

func (r *SlotRepository) ListBySourceRef(_ context.Context, ref uuid.UUID) ([]*slot.Slot, error) {
	return r.filter(func(s *slot.Slot) bool {
		return s.SourceRef() != nil && *s.SourceRef() == ref
	}), nil
}

func (r *SlotRepository) filter(keep func(*slot.Slot) bool) []*slot.Slot {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*slot.Slot
	for _, s := range r.store.slots {
		if keep(s) {
			out = append(out, cloneSlot(s))
		}
	}
	sortSlots(out)
	return out
}
