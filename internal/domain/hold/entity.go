package hold

import (
	"errors"
	"strings"
	"time"

	"availability-engine/internal/domain/party"

	"github.com/google/uuid"
)

const MaxMessageLength = 2000

var (
	ErrInvalidStatus     = errors.New("invalid hold status")
	ErrInvalidDecision   = errors.New("decision must be accepted or declined")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
	ErrDateRangeTooLong  = errors.New("date range is too long")
	ErrHoldeeNotProvider = errors.New("holdee must own a calendar")
	ErrSelfHold          = errors.New("requester and holdee must differ")
	ErrMessageTooLong    = errors.New("message is too long")
	ErrInvalidTTL        = errors.New("hold ttl must be positive")

	ErrNotPending   = errors.New("hold is no longer pending")
	ErrExpired      = errors.New("hold has expired")
	ErrNotHoldee    = errors.New("only the holdee may respond")
	ErrCancelDenied = errors.New("party may not cancel this hold")
	ErrNotHoldParty = errors.New("party is not part of this hold")
)

type Hold struct {
	id              uuid.UUID
	holdee          party.Ref
	requester       party.Ref
	dates           DateRange
	status          Status
	requestMessage  string
	responseMessage string
	createdAt       time.Time
	expiresAt       time.Time
	respondedAt     *time.Time
	updatedAt       time.Time
}

func NewHold(holdee, requester party.Ref, dates DateRange, message string, now time.Time, ttl time.Duration) (*Hold, error) {
	if err := holdee.Validate(); err != nil {
		return nil, err
	}
	if err := requester.Validate(); err != nil {
		return nil, err
	}
	if !holdee.Type.IsProvider() {
		return nil, ErrHoldeeNotProvider
	}
	if holdee.ID == requester.ID {
		return nil, ErrSelfHold
	}
	if dates.Len() == 0 {
		return nil, ErrInvalidDateRange
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	msg := strings.TrimSpace(message)
	if len(msg) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	now = now.UTC()
	return &Hold{
		id:             uuid.New(),
		holdee:         holdee,
		requester:      requester,
		dates:          dates,
		status:         StatusPending,
		requestMessage: msg,
		createdAt:      now,
		expiresAt:      now.Add(ttl),
		updatedAt:      now,
	}, nil
}

func ReconstructHold(
	id uuid.UUID,
	holdee, requester party.Ref,
	dates DateRange,
	status Status,
	requestMessage, responseMessage string,
	createdAt, expiresAt time.Time,
	respondedAt *time.Time,
	updatedAt time.Time,
) *Hold {
	return &Hold{
		id:              id,
		holdee:          holdee,
		requester:       requester,
		dates:           dates,
		status:          status,
		requestMessage:  requestMessage,
		responseMessage: responseMessage,
		createdAt:       createdAt,
		expiresAt:       expiresAt,
		respondedAt:     respondedAt,
		updatedAt:       updatedAt,
	}
}

// Transition is a guarded status change. Stores apply it only while the hold is still pending
// and, when NotExpiredAt is set, only while expires_at is after that instant.
type Transition struct {
	HoldID          uuid.UUID
	To              Status
	At              time.Time
	ResponseMessage *string
	NotExpiredAt    *time.Time
}

// IsExpiredAt compares against expiresAt directly, independent of whether a sweep has run.
func (h *Hold) IsExpiredAt(now time.Time) bool {
	return !now.Before(h.expiresAt)
}

func (h *Hold) IsParty(p party.Ref) bool {
	return h.holdee.Equal(p) || h.requester.Equal(p)
}

func (h *Hold) Respond(actor party.Ref, decision Decision, message string, now time.Time) (Transition, error) {
	if !h.holdee.Equal(actor) {
		return Transition{}, ErrNotHoldee
	}
	if h.status != StatusPending {
		return Transition{}, ErrNotPending
	}
	if h.IsExpiredAt(now) {
		return Transition{}, ErrExpired
	}
	msg := strings.TrimSpace(message)
	if len(msg) > MaxMessageLength {
		return Transition{}, ErrMessageTooLong
	}
	at := now.UTC()
	return Transition{
		HoldID:          h.id,
		To:              decision.Status(),
		At:              at,
		ResponseMessage: &msg,
		NotExpiredAt:    &at,
	}, nil
}

func (h *Hold) Cancel(actor party.Ref, policy CancelPolicy, now time.Time) (Transition, error) {
	if !h.IsParty(actor) {
		return Transition{}, ErrNotHoldParty
	}
	if !policy.allows(h, actor) {
		return Transition{}, ErrCancelDenied
	}
	if h.status != StatusPending {
		return Transition{}, ErrNotPending
	}
	if h.IsExpiredAt(now) {
		return Transition{}, ErrExpired
	}
	at := now.UTC()
	return Transition{
		HoldID:       h.id,
		To:           StatusCancelled,
		At:           at,
		NotExpiredAt: &at,
	}, nil
}

// Expire returns the sweep transition when the hold is pending and past expiresAt.
func (h *Hold) Expire(now time.Time) (Transition, bool) {
	if h.status != StatusPending || !h.IsExpiredAt(now) {
		return Transition{}, false
	}
	return Transition{HoldID: h.id, To: StatusExpired, At: now.UTC()}, true
}

// Apply mutates the in-memory hold. Callers must have checked the guard.
func (h *Hold) Apply(t Transition) error {
	if !CanTransition(h.status, t.To) {
		return ErrNotPending
	}
	h.status = t.To
	h.updatedAt = t.At
	if t.To == StatusAccepted || t.To == StatusDeclined {
		at := t.At
		h.respondedAt = &at
	}
	if t.ResponseMessage != nil {
		h.responseMessage = *t.ResponseMessage
	}
	return nil
}

func (p CancelPolicy) allows(h *Hold, actor party.Ref) bool {
	switch p {
	case CancelByRequester:
		return h.requester.Equal(actor)
	case CancelByHoldee:
		return h.holdee.Equal(actor)
	case CancelByEither:
		return h.IsParty(actor)
	default:
		return false
	}
}

func (h *Hold) ID() uuid.UUID           { return h.id }
func (h *Hold) Holdee() party.Ref       { return h.holdee }
func (h *Hold) Requester() party.Ref    { return h.requester }
func (h *Hold) Dates() DateRange        { return h.dates }
func (h *Hold) Status() Status          { return h.status }
func (h *Hold) RequestMessage() string  { return h.requestMessage }
func (h *Hold) ResponseMessage() string { return h.responseMessage }
func (h *Hold) CreatedAt() time.Time    { return h.createdAt }
func (h *Hold) ExpiresAt() time.Time    { return h.expiresAt }
func (h *Hold) RespondedAt() *time.Time { return h.respondedAt }
func (h *Hold) UpdatedAt() time.Time    { return h.updatedAt }
