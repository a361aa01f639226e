package bookingrequest

import "errors"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

var ErrInvalidStatus = errors.New("invalid booking request status")

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusExpired:
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

func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

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
