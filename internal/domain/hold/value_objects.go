package hold

import (
	"time"

	"availability-engine/internal/domain/slot"
)

// MaxDays bounds how many calendar days a single hold may cover.
const MaxDays = 366

// DateRange is an inclusive span of UTC calendar dates.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := TruncateDay(start), TruncateDay(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	if int(e.Sub(s).Hours()/24)+1 > MaxDays {
		return DateRange{}, ErrDateRangeTooLong
	}
	return DateRange{start: s, end: e}, nil
}

// TruncateDay returns the UTC midnight of t's calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Days lists every date in the range, start and end included.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) Len() int {
	if r.start.IsZero() {
		return 0
	}
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// TimeRange is the half-open instant span covered by the dates.
func (r DateRange) TimeRange() slot.TimeRange {
	tr, _ := slot.NewTimeRange(r.start, r.end.AddDate(0, 0, 1))
	return tr
}

// DayRange is the half-open span of one calendar day.
func DayRange(day time.Time) slot.TimeRange {
	d := TruncateDay(day)
	tr, _ := slot.NewTimeRange(d, d.AddDate(0, 0, 1))
	return tr
}

// ReconstructDateRange rebuilds a stored range without re-validating its length.
func ReconstructDateRange(start, end time.Time) DateRange {
	return DateRange{start: TruncateDay(start), end: TruncateDay(end)}
}
