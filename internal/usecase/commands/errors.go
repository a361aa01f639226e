package commands

import (
	"errors"

	"availability-engine/internal/infra"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("availability-engine/usecase/commands")

// translateRepoErr lifts repository failures into the usecase taxonomy.
func translateRepoErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.WithKind(errs.Wrap(err, entity+" not found"), errs.ErrNotFound)
	case errors.Is(err, shared.ErrTransitionRejected):
		return errs.WithKind(errs.Wrap(err, entity+" is no longer pending"), errs.ErrInvalidState)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.WithKind(errs.Wrap(err, entity+" references an unknown party"), errs.ErrNotFound)
	default:
		return errs.Wrap(err, entity+" store failure")
	}
}
