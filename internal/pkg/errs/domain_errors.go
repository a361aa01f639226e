package errs

import (
	"fmt"
	"strings"
	"time"
)

// Sentinels shared by every usecase. Handlers map them to transport codes.
var (
	ErrValidation   = New("validation error")
	ErrNotFound     = New("not found")
	ErrInvalidState = New("invalid state")
	ErrForbidden    = New("forbidden")

	// ErrNotParty is also an ErrInvalidState so callers matching only the
	// state taxonomy still see the transition as rejected.
	ErrNotParty = WithKind(New("acting party is not allowed to perform this action"), ErrInvalidState)
)

// kindError attaches a sentinel to err while keeping err's message and stack. Mark is not
// used for kinds because its marks are only visible to cockroachdb's Is; the kinds must
// satisfy the standard errors.Is that gin handlers and testify's ErrorIs call.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string   { return e.err.Error() }
func (e *kindError) Unwrap() []error { return []error{e.err, e.kind} }

// WithKind classifies err so errors.Is(err, kind) holds.
func WithKind(err, kind error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// PartialFailureError reports a materialization batch where some days could
// not be written. The owning transition stays committed.
type PartialFailureError struct {
	MissingDays []time.Time
	Cause       error
}

func (e *PartialFailureError) Error() string {
	days := make([]string, len(e.MissingDays))
	for i, d := range e.MissingDays {
		days[i] = d.Format(time.DateOnly)
	}
	msg := fmt.Sprintf("partial failure: %d day(s) not materialized [%s]", len(days), strings.Join(days, ","))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// Validation builds an ErrValidation carrying msg.
func Validation(msg string) error {
	return WithKind(New(msg), ErrValidation)
}

// NotFound builds an ErrNotFound for the named entity.
func NotFound(entity string) error {
	return WithKind(New(entity+" not found"), ErrNotFound)
}

// InvalidState builds an ErrInvalidState carrying msg.
func InvalidState(msg string) error {
	return WithKind(New(msg), ErrInvalidState)
}
