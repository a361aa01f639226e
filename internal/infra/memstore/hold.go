package memstore

import (
	"context"
	"sort"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoldRepository struct {
	store *Store
}

func (r *HoldRepository) Create(_ context.Context, h *hold.Hold) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.holds[h.ID()]; ok {
		return infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	r.store.holds[h.ID()] = cloneHold(h)
	return nil
}

func (r *HoldRepository) FindByID(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	h, ok := r.store.holds[id]
	if !ok {
		return nil, infra.NewNotFound("hold not found")
	}
	return cloneHold(h), nil
}

func (r *HoldRepository) List(_ context.Context, f shared.HoldFilter) ([]*hold.Hold, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*hold.Hold
	for _, h := range r.store.holds {
		incoming := h.Holdee().Equal(f.Party)
		outgoing := h.Requester().Equal(f.Party)
		switch f.Direction {
		case shared.DirectionIncoming:
			outgoing = false
		case shared.DirectionOutgoing:
			incoming = false
		}
		if !incoming && !outgoing {
			continue
		}
		if f.Status != nil && h.Status() != *f.Status {
			continue
		}
		out = append(out, cloneHold(h))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Transition checks and applies under the write lock, which makes it the compare-and-set.
func (r *HoldRepository) Transition(_ context.Context, t hold.Transition) (*hold.Hold, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	h, ok := r.store.holds[t.HoldID]
	if !ok {
		return nil, infra.NewNotFound("hold not found")
	}
	if h.Status() != hold.StatusPending {
		return nil, shared.ErrTransitionRejected
	}
	if t.NotExpiredAt != nil && h.IsExpiredAt(*t.NotExpiredAt) {
		return nil, shared.ErrTransitionRejected
	}
	next := cloneHold(h)
	if err := next.Apply(t); err != nil {
		return nil, shared.ErrTransitionRejected
	}
	r.store.holds[t.HoldID] = next
	return cloneHold(next), nil
}

func (r *HoldRepository) ExpirePending(_ context.Context, now time.Time) ([]*hold.Hold, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*hold.Hold
	for id, h := range r.store.holds {
		t, ok := h.Expire(now)
		if !ok {
			continue
		}
		next := cloneHold(h)
		if err := next.Apply(t); err != nil {
			continue
		}
		r.store.holds[id] = next
		out = append(out, cloneHold(next))
	}
	return out, nil
}

func (r *HoldRepository) ListUnderMaterialized(_ context.Context, limit int) ([]*hold.Hold, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, s := range r.store.slots {
		if s.Source() == slot.SourceHold && s.SourceRef() != nil {
			counts[*s.SourceRef()]++
		}
	}

	var out []*hold.Hold
	for _, h := range r.store.holds {
		if h.Status() == hold.StatusAccepted && counts[h.ID()] < h.Dates().Len() {
			out = append(out, cloneHold(h))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt().Before(out[j].UpdatedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
