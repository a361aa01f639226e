package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/pkg/clock"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=hold.go -destination=../../../tests/mock/commands/hold_mock.go -package=commandsmock

type RequestHoldInput struct {
	Holdee    party.Ref
	StartDate time.Time
	EndDate   time.Time
	Message   string
}

type RespondHoldResult struct {
	Hold *hold.Hold
	// Slots holds the slots written by this call. Days that already had a slot are not repeated.
	Slots       []*slot.Slot
	MissingDays []time.Time
	cause       error
}

// Partial returns a *errs.PartialFailureError when some days could not be materialized.
func (r *RespondHoldResult) Partial() error {
	if len(r.MissingDays) == 0 {
		return nil
	}
	return &errs.PartialFailureError{MissingDays: r.MissingDays, Cause: r.cause}
}

type HoldCommands interface {
	Request(ctx context.Context, actor party.Ref, in RequestHoldInput) (*hold.Hold, error)
	Respond(ctx context.Context, actor party.Ref, holdID uuid.UUID, decision hold.Decision, message string) (*RespondHoldResult, error)
	Cancel(ctx context.Context, actor party.Ref, holdID uuid.UUID) (*hold.Hold, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	ReconcileMaterialization(ctx context.Context, limit int) (int, error)
}

type holdCommandsImpl struct {
	uow        shared.UnitOfWork
	holds      shared.HoldRepository
	slots      shared.SlotRepository
	directory  shared.PartyDirectory
	dispatcher *shared.Dispatcher
	clock      clock.Clock
	policy     Policy
	logger     *slog.Logger
}

func NewHoldCommands(
	uow shared.UnitOfWork,
	holds shared.HoldRepository,
	slots shared.SlotRepository,
	directory shared.PartyDirectory,
	dispatcher *shared.Dispatcher,
	clock clock.Clock,
	policy Policy,
	logger *slog.Logger,
) HoldCommands {
	return &holdCommandsImpl{
		uow:        uow,
		holds:      holds,
		slots:      slots,
		directory:  directory,
		dispatcher: dispatcher,
		clock:      clock,
		policy:     policy,
		logger:     logger,
	}
}

func (c *holdCommandsImpl) Request(ctx context.Context, actor party.Ref, in RequestHoldInput) (_ *hold.Hold, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.Request", trace.WithAttributes(
		attribute.String("holdee.id", in.Holdee.ID.String()),
		attribute.String("requester.id", actor.ID.String()),
	))
	defer func() { shared.FinishSpan(span, err) }()

	dates, err := hold.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid hold dates"), errs.ErrValidation)
	}

	holdee, err := resolveParty(ctx, c.directory, in.Holdee)
	if err != nil {
		return nil, err
	}
	requester, err := resolveParty(ctx, c.directory, actor)
	if err != nil {
		return nil, err
	}

	h, err := hold.NewHold(in.Holdee, actor, dates, in.Message, c.clock.Now(), c.policy.HoldTTL)
	if err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid hold"), errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context) error {
		if c.policy.Overlap == OverlapRejectUnavailable {
			blocked, err := providerBlocked(ctx, c.slots, in.Holdee, dates.TimeRange())
			if err != nil {
				return err
			}
			if blocked {
				return errs.InvalidState("provider is unavailable for the requested dates")
			}
		}
		if err := c.holds.Create(ctx, h); err != nil {
			return translateRepoErr(err, "hold")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("hold requested",
		"hold_id", h.ID(),
		"holdee_id", h.Holdee().ID,
		"requester_id", h.Requester().ID,
		"expires_at", h.ExpiresAt())

	c.dispatcher.Dispatch(ctx, holdEvent(shared.EventHoldRequested, h, holdee, requester, holdee.Email, h.RequestMessage(), c.clock.Now()))
	return h, nil
}

func (c *holdCommandsImpl) Respond(ctx context.Context, actor party.Ref, holdID uuid.UUID, decision hold.Decision, message string) (_ *RespondHoldResult, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.Respond", trace.WithAttributes(
		attribute.String("hold.id", holdID.String()),
		attribute.String("decision", string(decision)),
	))
	defer func() { shared.FinishSpan(span, err) }()

	if _, err := hold.NewDecision(string(decision)); err != nil {
		return nil, errs.WithKind(err, errs.ErrValidation)
	}

	current, err := c.holds.FindByID(ctx, holdID)
	if err != nil {
		return nil, translateRepoErr(err, "hold")
	}

	now := c.clock.Now()
	t, err := current.Respond(actor, decision, message, now)
	if err != nil {
		return nil, classifyHoldErr(err)
	}

	updated, err := c.holds.Transition(ctx, t)
	if err != nil {
		return nil, translateRepoErr(err, "hold")
	}

	result := &RespondHoldResult{Hold: updated}
	if updated.Status() == hold.StatusAccepted {
		result.Slots, result.MissingDays, result.cause = c.materialize(ctx, updated)
		if len(result.MissingDays) > 0 {
			c.logger.Warn("hold accepted with missing slots",
				"hold_id", updated.ID(),
				"missing_days", len(result.MissingDays),
				"error", result.Partial().Error())
		}
	}

	c.logger.Info("hold answered", "hold_id", updated.ID(), "status", updated.Status())

	eventType := shared.EventHoldDeclined
	if updated.Status() == hold.StatusAccepted {
		eventType = shared.EventHoldAccepted
	}
	c.notifyParties(ctx, eventType, updated, toRequester, updated.ResponseMessage())

	return result, nil
}

func (c *holdCommandsImpl) Cancel(ctx context.Context, actor party.Ref, holdID uuid.UUID) (_ *hold.Hold, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.Cancel", trace.WithAttributes(
		attribute.String("hold.id", holdID.String()),
	))
	defer func() { shared.FinishSpan(span, err) }()

	current, err := c.holds.FindByID(ctx, holdID)
	if err != nil {
		return nil, translateRepoErr(err, "hold")
	}

	t, err := current.Cancel(actor, c.policy.CancelPolicy, c.clock.Now())
	if err != nil {
		return nil, classifyHoldErr(err)
	}

	updated, err := c.holds.Transition(ctx, t)
	if err != nil {
		return nil, translateRepoErr(err, "hold")
	}

	c.logger.Info("hold cancelled", "hold_id", updated.ID(), "by", actor.ID)

	recipient := toHoldee
	if updated.Holdee().Equal(actor) {
		recipient = toRequester
	}
	c.notifyParties(ctx, shared.EventHoldCancelled, updated, recipient, "")
	return updated, nil
}

// SweepExpired is safe to run concurrently: the store expires rows with one conditional update,
// so a hold already expired or answered is never counted twice.
func (c *holdCommandsImpl) SweepExpired(ctx context.Context, now time.Time) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.SweepExpired")
	defer func() { shared.FinishSpan(span, err) }()

	expired, err := c.holds.ExpirePending(ctx, now)
	if err != nil {
		return 0, translateRepoErr(err, "hold")
	}
	span.SetAttributes(attribute.Int("holds.expired", len(expired)))

	for _, h := range expired {
		c.notifyParties(ctx, shared.EventHoldExpired, h, toRequester, "")
	}
	return len(expired), nil
}

// ReconcileMaterialization retries slot creation for accepted holds with missing days.
// It returns the number of holds that are now fully materialized.
func (c *holdCommandsImpl) ReconcileMaterialization(ctx context.Context, limit int) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "HoldCommands.ReconcileMaterialization")
	defer func() { shared.FinishSpan(span, err) }()

	pending, err := c.holds.ListUnderMaterialized(ctx, limit)
	if err != nil {
		return 0, translateRepoErr(err, "hold")
	}

	repaired := 0
	for _, h := range pending {
		_, missing, cause := c.materialize(ctx, h)
		if len(missing) > 0 {
			c.logger.Warn("hold still missing slots",
				"hold_id", h.ID(),
				"missing_days", len(missing),
				"error", errorString(cause))
			continue
		}
		repaired++
	}
	return repaired, nil
}

// materialize writes one blocked slot per day. Existing slots for the same day are skipped by the store.
func (c *holdCommandsImpl) materialize(ctx context.Context, h *hold.Hold) ([]*slot.Slot, []time.Time, error) {
	ref := h.ID()
	now := c.clock.Now()

	var (
		created []*slot.Slot
		missing []time.Time
		cause   error
	)
	for _, day := range h.Dates().Days() {
		s, err := slot.NewSlot(slot.Params{
			OwnerID:   h.Holdee().ID,
			OwnerRole: h.Holdee().Type,
			Range:     hold.DayRange(day),
			Status:    slot.StatusBlocked,
			Source:    slot.SourceHold,
			SourceRef: &ref,
		}, now)
		if err == nil {
			var inserted bool
			inserted, err = c.slots.Create(ctx, s)
			if err == nil {
				if inserted {
					created = append(created, s)
				}
				continue
			}
		}
		missing = append(missing, day)
		if cause == nil {
			cause = err
		}
	}
	return created, missing, cause
}

type recipient int

const (
	toHoldee recipient = iota
	toRequester
)

func (c *holdCommandsImpl) notifyParties(ctx context.Context, eventType shared.EventType, h *hold.Hold, to recipient, message string) {
	holdee, err := c.directory.Resolve(ctx, h.Holdee())
	if err != nil {
		c.logger.Warn("notification skipped: holdee lookup failed", "hold_id", h.ID(), "error", err.Error())
		return
	}
	requester, err := c.directory.Resolve(ctx, h.Requester())
	if err != nil {
		c.logger.Warn("notification skipped: requester lookup failed", "hold_id", h.ID(), "error", err.Error())
		return
	}
	email := requester.Email
	if to == toHoldee {
		email = holdee.Email
	}
	c.dispatcher.Dispatch(ctx, holdEvent(eventType, h, holdee, requester, email, message, c.clock.Now()))
}

func holdEvent(eventType shared.EventType, h *hold.Hold, holdee, requester *party.Account, email, message string, now time.Time) shared.NotificationEvent {
	id := h.ID()
	return shared.NotificationEvent{
		Type:           eventType,
		HoldID:         &id,
		HoldeeName:     holdee.DisplayName,
		RequesterName:  requester.DisplayName,
		RecipientEmail: email,
		StartDate:      h.Dates().Start().Format(time.DateOnly),
		EndDate:        h.Dates().End().Format(time.DateOnly),
		Message:        optionalMessage(message),
		OccurredAt:     now,
	}
}

func classifyHoldErr(err error) error {
	switch {
	case errors.Is(err, hold.ErrNotHoldee),
		errors.Is(err, hold.ErrNotHoldParty),
		errors.Is(err, hold.ErrCancelDenied):
		return errs.WithKind(errs.Wrap(err, "hold action denied"), errs.ErrNotParty)
	case errors.Is(err, hold.ErrNotPending), errors.Is(err, hold.ErrExpired):
		return errs.WithKind(errs.Wrap(err, "hold transition rejected"), errs.ErrInvalidState)
	default:
		return errs.WithKind(errs.Wrap(err, "invalid hold action"), errs.ErrValidation)
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
