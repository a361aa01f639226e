package memstore

import (
	"context"
	"sort"
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRequestRepository struct {
	store *Store
}

func (r *BookingRequestRepository) Create(_ context.Context, b *bookingrequest.BookingRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.requests[b.ID()]; ok {
		return infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	r.store.requests[b.ID()] = cloneRequest(b)
	return nil
}

func (r *BookingRequestRepository) FindByID(_ context.Context, id uuid.UUID) (*bookingrequest.BookingRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.requests[id]
	if !ok {
		return nil, infra.NewNotFound("booking request not found")
	}
	return cloneRequest(b), nil
}

func (r *BookingRequestRepository) List(_ context.Context, f shared.BookingRequestFilter) ([]*bookingrequest.BookingRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*bookingrequest.BookingRequest
	for _, b := range r.store.requests {
		incoming := b.Target().Equal(f.Party)
		outgoing := b.Requester().Equal(f.Party)
		switch f.Direction {
		case shared.DirectionIncoming:
			outgoing = false
		case shared.DirectionOutgoing:
			incoming = false
		}
		if !incoming && !outgoing {
			continue
		}
		if f.Status != nil && b.Status() != *f.Status {
			continue
		}
		out = append(out, cloneRequest(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *BookingRequestRepository) Transition(_ context.Context, t bookingrequest.Transition) (*bookingrequest.BookingRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.requests[t.RequestID]
	if !ok {
		return nil, infra.NewNotFound("booking request not found")
	}
	if b.Status() != bookingrequest.StatusPending {
		return nil, shared.ErrTransitionRejected
	}
	next := cloneRequest(b)
	if err := next.Apply(t); err != nil {
		return nil, shared.ErrTransitionRejected
	}
	r.store.requests[t.RequestID] = next
	return cloneRequest(next), nil
}

func (r *BookingRequestRepository) ExpireStale(_ context.Context, now time.Time) ([]*bookingrequest.BookingRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*bookingrequest.BookingRequest
	for id, b := range r.store.requests {
		t, ok := b.Expire(now)
		if !ok {
			continue
		}
		next := cloneRequest(b)
		if err := next.Apply(t); err != nil {
			continue
		}
		r.store.requests[id] = next
		out = append(out, cloneRequest(next))
	}
	return out, nil
}

func (r *BookingRequestRepository) ListUnmaterialized(_ context.Context, limit int) ([]*bookingrequest.BookingRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	materialized := make(map[uuid.UUID]bool)
	for _, s := range r.store.slots {
		if s.Source() == slot.SourceBooking && s.SourceRef() != nil {
			materialized[*s.SourceRef()] = true
		}
	}

	var out []*bookingrequest.BookingRequest
	for _, b := range r.store.requests {
		if b.Status() == bookingrequest.StatusAccepted && !materialized[b.ID()] {
			out = append(out, cloneRequest(b))
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
