package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTransitionRejected is returned by stores when a conditional transition matched no row.
var ErrTransitionRejected = errors.New("transition rejected: record is no longer pending")

type Direction string

const (
	// DirectionIncoming lists records where the party is the holdee or target.
	DirectionIncoming Direction = "incoming"
	// DirectionOutgoing lists records where the party is the requester.
	DirectionOutgoing Direction = "outgoing"
	DirectionAll      Direction = "all"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionIncoming, DirectionOutgoing, DirectionAll:
		return true
	default:
		return false
	}
}

type EventType string

const (
	EventHoldRequested           EventType = "hold.requested"
	EventHoldAccepted            EventType = "hold.accepted"
	EventHoldDeclined            EventType = "hold.declined"
	EventHoldCancelled           EventType = "hold.cancelled"
	EventHoldExpired             EventType = "hold.expired"
	EventBookingRequestRequested EventType = "booking_request.requested"
	EventBookingRequestAccepted  EventType = "booking_request.accepted"
	EventBookingRequestDeclined  EventType = "booking_request.declined"
	EventBookingRequestExpired   EventType = "booking_request.expired"
)

// NotificationEvent is consumed by the external email dispatcher.
type NotificationEvent struct {
	Type             EventType  `json:"type"`
	HoldID           *uuid.UUID `json:"holdId,omitempty"`
	BookingRequestID *uuid.UUID `json:"bookingRequestId,omitempty"`
	HoldeeName       string     `json:"holdeeName"`
	RequesterName    string     `json:"requesterName"`
	RecipientEmail   string     `json:"recipientEmail,omitempty"`
	StartDate        string     `json:"startDate"`
	EndDate          string     `json:"endDate"`
	Message          *string    `json:"message,omitempty"`
	OccurredAt       time.Time  `json:"occurredAt"`
}

// Key partitions events of one record together.
func (e NotificationEvent) Key() string {
	switch {
	case e.HoldID != nil:
		return e.HoldID.String()
	case e.BookingRequestID != nil:
		return e.BookingRequestID.String()
	default:
		return string(e.Type)
	}
}
