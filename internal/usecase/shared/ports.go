package shared

import (
	"context"
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotRepository interface {
	// Create returns false when a materialized slot for the same source and start already exists.
	Create(ctx context.Context, s *slot.Slot) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, role party.Type) ([]*slot.Slot, error)
	ListOverlapping(ctx context.Context, ownerIDs []uuid.UUID, r slot.TimeRange) ([]*slot.Slot, error)
	ListBySourceRef(ctx context.Context, ref uuid.UUID) ([]*slot.Slot, error)
}

type HoldFilter struct {
	Party     party.Ref
	Direction Direction
	Status    *hold.Status
	Limit     int
}

type HoldRepository interface {
	Create(ctx context.Context, h *hold.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	List(ctx context.Context, f HoldFilter) ([]*hold.Hold, error)
	// Transition applies t atomically. It returns an infra NOT_FOUND error when the hold is
	// missing and ErrTransitionRejected when the guard no longer holds.
	Transition(ctx context.Context, t hold.Transition) (*hold.Hold, error)
	// ExpirePending moves every pending hold with expires_at <= now to expired and returns them.
	ExpirePending(ctx context.Context, now time.Time) ([]*hold.Hold, error)
	// ListUnderMaterialized returns accepted holds that have fewer hold slots than days.
	ListUnderMaterialized(ctx context.Context, limit int) ([]*hold.Hold, error)
}

type BookingRequestFilter struct {
	Party     party.Ref
	Direction Direction
	Status    *bookingrequest.Status
	Limit     int
}

type BookingRequestRepository interface {
	Create(ctx context.Context, b *bookingrequest.BookingRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*bookingrequest.BookingRequest, error)
	List(ctx context.Context, f BookingRequestFilter) ([]*bookingrequest.BookingRequest, error)
	Transition(ctx context.Context, t bookingrequest.Transition) (*bookingrequest.BookingRequest, error)
	// ExpireStale moves every pending request whose window started at or before now to expired.
	ExpireStale(ctx context.Context, now time.Time) ([]*bookingrequest.BookingRequest, error)
	// ListUnmaterialized returns accepted requests that have no booking slot yet.
	ListUnmaterialized(ctx context.Context, limit int) ([]*bookingrequest.BookingRequest, error)
}

// PartyDirectory resolves parties against the external account directory.
type PartyDirectory interface {
	Resolve(ctx context.Context, ref party.Ref) (*party.Account, error)
}

// Notifier delivers notification events. Implementations may fail; callers dispatch best-effort.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}

// Locker grants a lease on key for at most ttl. ok is false when another holder owns it.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}
