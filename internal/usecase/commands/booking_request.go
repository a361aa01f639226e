package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=booking_request.go -destination=../../../tests/mock/commands/booking_request_mock.go -package=commandsmock

type RequestBookingInput struct {
	Target   party.Ref
	StartsAt time.Time
	EndsAt   time.Time
	JobRef   *string
	Message  string
}

type RespondBookingResult struct {
	Request *bookingrequest.BookingRequest
	Slot    *slot.Slot
	// MissingDays is set when the blocking slot could not be written.
	MissingDays []time.Time
	cause       error
}

func (r *RespondBookingResult) Partial() error {
	if len(r.MissingDays) == 0 {
		return nil
	}
	return &errs.PartialFailureError{MissingDays: r.MissingDays, Cause: r.cause}
}

type BookingRequestCommands interface {
	Request(ctx context.Context, actor party.Ref, in RequestBookingInput) (*bookingrequest.BookingRequest, error)
	Respond(ctx context.Context, actor party.Ref, requestID uuid.UUID, decision bookingrequest.Decision, message string) (*RespondBookingResult, error)
	SweepStale(ctx context.Context, now time.Time) (int, error)
	ReconcileMaterialization(ctx context.Context, limit int) (int, error)
}

type bookingRequestCommandsImpl struct {
	uow        shared.UnitOfWork
	requests   shared.BookingRequestRepository
	slots      shared.SlotRepository
	directory  shared.PartyDirectory
	dispatcher *shared.Dispatcher
	clock      clock.Clock
	policy     Policy
	logger     *slog.Logger
}

func NewBookingRequestCommands(
	uow shared.UnitOfWork,
	requests shared.BookingRequestRepository,
	slots shared.SlotRepository,
	directory shared.PartyDirectory,
	dispatcher *shared.Dispatcher,
	clock clock.Clock,
	policy Policy,
	logger *slog.Logger,
) BookingRequestCommands {
	return &bookingRequestCommandsImpl{
		uow:        uow,
		requests:   requests,
		slots:      slots,
		directory:  directory,
		dispatcher: dispatcher,
		clock:      clock,
		policy:     policy,
		logger:     logger,
	}
}

func (c *bookingRequestCommandsImpl) Request(ctx context.Context, actor party.Ref, in RequestBookingInput) (_ *bookingrequest.BookingRequest, err error) {
	ctx, span := tracer.Start(ctx, "BookingRequestCommands.Request", trace.WithAttributes(
		attribute.String("target.id", in.Target.ID.String()),
		attribute.String("requester.id", actor.ID.String()),
	))
	defer func() { shared.FinishSpan(span, err) }()

	window, err := slot.NewTimeRange(in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid booking window"), errs.ErrValidation)
	}

	target, err := resolveParty(ctx, c.directory, in.Target)
	if err != nil {
		return nil, err
	}
	requester, err := resolveParty(ctx, c.directory, actor)
	if err != nil {
		return nil, err
	}

	b, err := bookingrequest.NewBookingRequest(actor, in.Target, window, in.JobRef, in.Message, c.clock.Now())
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid booking request"), errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context) error {
		if c.policy.Overlap == OverlapRejectUnavailable {
			blocked, err := providerBlocked(ctx, c.slots, in.Target, window)
			if err != nil {
				return err
			}
			if blocked {
				return errs.InvalidState("provider is unavailable for the requested window")
			}
		}
		if err := c.requests.Create(ctx, b); err != nil {
			return translateRepoErr(err, "booking request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking request created",
		"booking_request_id", b.ID(),
		"target_id", b.Target().ID,
		"requester_id", b.Requester().ID)

	c.dispatcher.Dispatch(ctx, bookingEvent(shared.EventBookingRequestRequested, b, target, requester, target.Email, b.Message(), c.clock.Now()))
	return b, nil
}

// Respond expires a stale request instead of answering it. The window start is the request's only
// expiry signal so it is evaluated here, before the conditional transition.
func (c *bookingRequestCommandsImpl) Respond(ctx context.Context, actor party.Ref, requestID uuid.UUID, decision bookingrequest.Decision, message string) (_ *RespondBookingResult, err error) {
	ctx, span := tracer.Start(ctx, "BookingRequestCommands.Respond", trace.WithAttributes(
		attribute.String("booking_request.id", requestID.String()),
		attribute.String("decision", string(decision)),
	))
	defer func() { shared.FinishSpan(span, err) }()

	if _, err := bookingrequest.NewDecision(string(decision)); err != nil {
		return nil, errs.WithKind(err, errs.ErrValidation)
	}

	current, err := c.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, translateRepoErr(err, "booking request")
	}
	if !current.Target().Equal(actor) {
		return nil, classifyBookingErr(bookingrequest.ErrNotTarget)
	}

	now := c.clock.Now()
	if t, stale := current.Expire(now); stale {
		expired, err := c.requests.Transition(ctx, t)
		switch {
		case err == nil:
			c.logger.Info("booking request expired on respond", "booking_request_id", requestID)
			c.notify(ctx, shared.EventBookingRequestExpired, expired, "")
		case !errors.Is(err, shared.ErrTransitionRejected):
			c.logger.Warn("failed to expire stale booking request", "booking_request_id", requestID, "error", err.Error())
		}
		return nil, errs.InvalidState("booking request window has already started")
	}

	t, err := current.Respond(actor, decision, message, now)
	if err != nil {
		return nil, classifyBookingErr(err)
	}

	updated, err := c.requests.Transition(ctx, t)
	if err != nil {
		return nil, translateRepoErr(err, "booking request")
	}

	result := &RespondBookingResult{Request: updated}
	if updated.Status() == bookingrequest.StatusAccepted {
		s, err := c.materialize(ctx, updated)
		if err != nil {
			result.MissingDays = []time.Time{updated.Window().Start()}
			result.cause = err
			c.logger.Warn("booking request accepted without slot",
				"booking_request_id", updated.ID(),
				"error", err.Error())
		}
		result.Slot = s
	}

	c.logger.Info("booking request answered", "booking_request_id", updated.ID(), "status", updated.Status())

	eventType := shared.EventBookingRequestDeclined
	if updated.Status() == bookingrequest.StatusAccepted {
		eventType = shared.EventBookingRequestAccepted
	}
	c.notify(ctx, eventType, updated, updated.ResponseMessage())

	return result, nil
}

func (c *bookingRequestCommandsImpl) SweepStale(ctx context.Context, now time.Time) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "BookingRequestCommands.SweepStale")
	defer func() { shared.FinishSpan(span, err) }()

	expired, err := c.requests.ExpireStale(ctx, now)
	if err != nil {
		return 0, translateRepoErr(err, "booking request")
	}
	span.SetAttributes(attribute.Int("booking_requests.expired", len(expired)))

	for _, b := range expired {
		c.notify(ctx, shared.EventBookingRequestExpired, b, "")
	}
	return len(expired), nil
}

func (c *bookingRequestCommandsImpl) ReconcileMaterialization(ctx context.Context, limit int) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "BookingRequestCommands.ReconcileMaterialization")
	defer func() { shared.FinishSpan(span, err) }()

	pending, err := c.requests.ListUnmaterialized(ctx, limit)
	if err != nil {
		return 0, translateRepoErr(err, "booking request")
	}

	repaired := 0
	for _, b := range pending {
		if _, err := c.materialize(ctx, b); err != nil {
			c.logger.Warn("booking request still missing slot", "booking_request_id", b.ID(), "error", err.Error())
			continue
		}
		repaired++
	}
	return repaired, nil
}

// materialize returns nil without error when the slot already existed.
func (c *bookingRequestCommandsImpl) materialize(ctx context.Context, b *bookingrequest.BookingRequest) (*slot.Slot, error) {
	ref := b.ID()
	s, err := slot.NewSlot(slot.Params{
		OwnerID:   b.Target().ID,
		OwnerRole: b.Target().Type,
		Range:     b.Window(),
		Status:    slot.StatusBlocked,
		Source:    slot.SourceBooking,
		SourceRef: &ref,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}
	inserted, err := c.slots.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	return s, nil
}

func (c *bookingRequestCommandsImpl) notify(ctx context.Context, eventType shared.EventType, b *bookingrequest.BookingRequest, message string) {
	target, err := c.directory.Resolve(ctx, b.Target())
	if err != nil {
		c.logger.Warn("notification skipped: target lookup failed", "booking_request_id", b.ID(), "error", err.Error())
		return
	}
	requester, err := c.directory.Resolve(ctx, b.Requester())
	if err != nil {
		c.logger.Warn("notification skipped: requester lookup failed", "booking_request_id", b.ID(), "error", err.Error())
		return
	}
	c.dispatcher.Dispatch(ctx, bookingEvent(eventType, b, target, requester, requester.Email, message, c.clock.Now()))
}

func bookingEvent(eventType shared.EventType, b *bookingrequest.BookingRequest, target, requester *party.Account, email, message string, now time.Time) shared.NotificationEvent {
	id := b.ID()
	return shared.NotificationEvent{
		Type:             eventType,
		BookingRequestID: &id,
		HoldeeName:       target.DisplayName,
		RequesterName:    requester.DisplayName,
		RecipientEmail:   email,
		StartDate:        b.Window().Start().Format(time.RFC3339),
		EndDate:          b.Window().End().Format(time.RFC3339),
		Message:          optionalMessage(message),
		OccurredAt:       now,
	}
}

func classifyBookingErr(err error) error {
	switch {
	case errors.Is(err, bookingrequest.ErrNotTarget), errors.Is(err, bookingrequest.ErrNotParty):
		return errs.WithKind(errs.Wrap(err, "booking request action denied"), errs.ErrNotParty)
	case errors.Is(err, bookingrequest.ErrNotPending):
		return errs.WithKind(errs.Wrap(err, "booking request transition rejected"), errs.ErrInvalidState)
	default:
		return errs.WithKind(errs.Wrap(err, "invalid booking request action"), errs.ErrValidation)
	}
}
