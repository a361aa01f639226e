package slot

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBlocked     Status = "blocked"
	StatusUnavailable Status = "unavailable"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBlocked, StatusUnavailable:
		return true
	default:
		return false
	}
}

// Blocks reports whether a slot with this status makes its owner unavailable.
func (s Status) Blocks() bool {
	return s == StatusBlocked || s == StatusUnavailable
}

type Source string

const (
	SourceManual  Source = "manual"
	SourceHold    Source = "hold"
	SourceBooking Source = "booking"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceHold, SourceBooking:
		return true
	default:
		return false
	}
}
