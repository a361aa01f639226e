package slot

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end time must be after start time")

// TimeRange is a half-open interval [start, end) in UTC.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.start.Before(o.end) && o.start.Before(r.end)
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}
