package hold

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// CanTransition encodes the hold state machine: pending moves to any terminal state, terminal states never move.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

// Decision is the holdee's answer.
type Decision string

const (
	DecisionAccept  Decision = "accepted"
	DecisionDecline Decision = "declined"
)

func NewDecision(s string) (Decision, error) {
	d := Decision(s)
	switch d {
	case DecisionAccept, DecisionDecline:
		return d, nil
	default:
		return "", ErrInvalidDecision
	}
}

func (d Decision) Status() Status {
	if d == DecisionAccept {
		return StatusAccepted
	}
	return StatusDeclined
}

// CancelPolicy selects which party may cancel a pending hold.
type CancelPolicy string

const (
	CancelByRequester CancelPolicy = "requester"
	CancelByHoldee    CancelPolicy = "holdee"
	CancelByEither    CancelPolicy = "either"
)

var ErrInvalidCancelPolicy = errors.New("invalid cancel policy")

func NewCancelPolicy(s string) (CancelPolicy, error) {
	p := CancelPolicy(s)
	switch p {
	case CancelByRequester, CancelByHoldee, CancelByEither:
		return p, nil
	default:
		return "", ErrInvalidCancelPolicy
	}
}
