package response

import (
	"sort"
	"time"

	"availability-engine/internal/domain/slot"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	OwnerID   uuid.UUID `json:"ownerId"`
	Role      string    `json:"role"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Available bool      `json:"available"`
}

type CalendarDay struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Explicit bool   `json:"explicit"`
}

type CalendarResponse struct {
	OwnerID uuid.UUID     `json:"ownerId"`
	Role    string        `json:"role"`
	Days    []CalendarDay `json:"days"`
}

type BlockingOwnersResponse struct {
	OwnerIDs []uuid.UUID `json:"ownerIds"`
}

func FromDayStatuses(ownerID uuid.UUID, role string, days []slot.DayStatus) *CalendarResponse {
	out := make([]CalendarDay, len(days))
	for i, d := range days {
		out[i] = CalendarDay{
			Date:     d.Day.Format(time.DateOnly),
			Status:   d.Status.String(),
			Explicit: d.Explicit,
		}
	}
	return &CalendarResponse{OwnerID: ownerID, Role: role, Days: out}
}

// FromOwnerSet renders the set in a stable order.
func FromOwnerSet(set map[uuid.UUID]struct{}) *BlockingOwnersResponse {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return &BlockingOwnersResponse{OwnerIDs: ids}
}
