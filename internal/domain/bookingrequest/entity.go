package bookingrequest

import (
	"errors"
	"strings"
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"

	"github.com/google/uuid"
)

const (
	MaxMessageLength = 2000
	MaxJobRefLength  = 128
)

var (
	ErrInvalidDecision   = errors.New("decision must be accepted or declined")
	ErrTargetNotProvider = errors.New("target must own a calendar")
	ErrSelfRequest       = errors.New("requester and target must differ")
	ErrMessageTooLong    = errors.New("message is too long")
	ErrJobRefTooLong     = errors.New("job reference is too long")
	ErrWindowInPast      = errors.New("window must start in the future")

	ErrNotPending = errors.New("booking request is no longer pending")
	ErrNotTarget  = errors.New("only the target may respond")
	ErrNotParty   = errors.New("party is not part of this booking request")
)

type BookingRequest struct {
	id              uuid.UUID
	requester       party.Ref
	target          party.Ref
	jobRef          *string
	window          slot.TimeRange
	status          Status
	message         string
	responseMessage string
	createdAt       time.Time
	updatedAt       time.Time
	respondedAt     *time.Time
}

func NewBookingRequest(requester, target party.Ref, window slot.TimeRange, jobRef *string, message string, now time.Time) (*BookingRequest, error) {
	if err := requester.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !target.Type.IsProvider() {
		return nil, ErrTargetNotProvider
	}
	if requester.ID == target.ID {
		return nil, ErrSelfRequest
	}
	if window.IsZero() {
		return nil, slot.ErrInvalidRange
	}
	if !window.Start().After(now) {
		return nil, ErrWindowInPast
	}
	msg := strings.TrimSpace(message)
	if len(msg) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	var ref *string
	if jobRef != nil {
		trimmed := strings.TrimSpace(*jobRef)
		if len(trimmed) > MaxJobRefLength {
			return nil, ErrJobRefTooLong
		}
		if trimmed != "" {
			ref = &trimmed
		}
	}

	now = now.UTC()
	return &BookingRequest{
		id:        uuid.New(),
		requester: requester,
		target:    target,
		jobRef:    ref,
		window:    window,
		status:    StatusPending,
		message:   msg,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBookingRequest(
	id uuid.UUID,
	requester, target party.Ref,
	jobRef *string,
	window slot.TimeRange,
	status Status,
	message, responseMessage string,
	createdAt, updatedAt time.Time,
	respondedAt *time.Time,
) *BookingRequest {
	return &BookingRequest{
		id:              id,
		requester:       requester,
		target:          target,
		jobRef:          jobRef,
		window:          window,
		status:          status,
		message:         message,
		responseMessage: responseMessage,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		respondedAt:     respondedAt,
	}
}

// Transition is applied by stores only while the request is still pending.
type Transition struct {
	RequestID       uuid.UUID
	To              Status
	At              time.Time
	ResponseMessage *string
}

// IsStale reports whether the requested window has already started. A stale request can no
// longer be answered and is expired by the sweep.
func (b *BookingRequest) IsStale(now time.Time) bool {
	return !now.Before(b.window.Start())
}

func (b *BookingRequest) IsParty(p party.Ref) bool {
	return b.requester.Equal(p) || b.target.Equal(p)
}

func (b *BookingRequest) Respond(actor party.Ref, decision Decision, message string, now time.Time) (Transition, error) {
	if !b.target.Equal(actor) {
		return Transition{}, ErrNotTarget
	}
	if b.status != StatusPending {
		return Transition{}, ErrNotPending
	}
	msg := strings.TrimSpace(message)
	if len(msg) > MaxMessageLength {
		return Transition{}, ErrMessageTooLong
	}
	return Transition{
		RequestID:       b.id,
		To:              decision.Status(),
		At:              now.UTC(),
		ResponseMessage: &msg,
	}, nil
}

func (b *BookingRequest) Expire(now time.Time) (Transition, bool) {
	if b.status != StatusPending || !b.IsStale(now) {
		return Transition{}, false
	}
	return Transition{RequestID: b.id, To: StatusExpired, At: now.UTC()}, true
}

func (b *BookingRequest) Apply(t Transition) error {
	if !CanTransition(b.status, t.To) {
		return ErrNotPending
	}
	b.status = t.To
	b.updatedAt = t.At
	if t.To == StatusAccepted || t.To == StatusDeclined {
		at := t.At
		b.respondedAt = &at
	}
	if t.ResponseMessage != nil {
		b.responseMessage = *t.ResponseMessage
	}
	return nil
}

func (b *BookingRequest) ID() uuid.UUID           { return b.id }
func (b *BookingRequest) Requester() party.Ref    { return b.requester }
func (b *BookingRequest) Target() party.Ref       { return b.target }
func (b *BookingRequest) JobRef() *string         { return b.jobRef }
func (b *BookingRequest) Window() slot.TimeRange  { return b.window }
func (b *BookingRequest) Status() Status          { return b.status }
func (b *BookingRequest) Message() string         { return b.message }
func (b *BookingRequest) ResponseMessage() string { return b.responseMessage }
func (b *BookingRequest) CreatedAt() time.Time    { return b.createdAt }
func (b *BookingRequest) UpdatedAt() time.Time    { return b.updatedAt }
func (b *BookingRequest) RespondedAt() *time.Time { return b.respondedAt }
