package slot

import (
	"time"

	"github.com/google/uuid"
)

// BlocksRange reports whether any blocked or unavailable slot intersects r.
// Available slots never mask a blocking one.
func BlocksRange(slots []*Slot, r TimeRange) bool {
	for _, s := range slots {
		if s.Blocks(r) {
			return true
		}
	}
	return false
}

// BlockingOwners returns the owners that have at least one blocking slot intersecting r.
func BlockingOwners(slots []*Slot, r TimeRange) map[uuid.UUID]struct{} {
	owners := make(map[uuid.UUID]struct{})
	for _, s := range slots {
		if s.Blocks(r) {
			owners[s.ownerID] = struct{}{}
		}
	}
	return owners
}

// DayStatus is the resolved state of one calendar day.
type DayStatus struct {
	Day    time.Time
	Status Status
	// Explicit is false when no slot touches the day and the default-open rule applied.
	Explicit bool
}

// precedence orders statuses so that blocked dominates unavailable which dominates available.
var precedence = map[Status]int{
	StatusAvailable:   1,
	StatusUnavailable: 2,
	StatusBlocked:     3,
}

// ResolveDays resolves each day in days (UTC midnights) against slots.
func ResolveDays(slots []*Slot, days []time.Time) []DayStatus {
	out := make([]DayStatus, 0, len(days))
	for _, day := range days {
		dayRange := TimeRange{start: day, end: day.AddDate(0, 0, 1)}
		resolved := DayStatus{Day: day, Status: StatusAvailable}
		for _, s := range slots {
			if !s.timeRange.Overlaps(dayRange) {
				continue
			}
			if !resolved.Explicit || precedence[s.status] > precedence[resolved.Status] {
				resolved.Status = s.status
				resolved.Explicit = true
			}
		}
		out = append(out, resolved)
	}
	return out
}
