package queries

import (
	"errors"

	"availability-engine/internal/infra"
	"availability-engine/internal/pkg/errs"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

func translateReadErr(err error, entity string) error {
	var repoErr infra.RepositoryError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &repoErr) && repoErr.Kind == infra.KindNotFound:
		return errs.WithKind(errs.Wrap(err, entity+" not found"), errs.ErrNotFound)
	default:
		return errs.Wrap(err, entity+" read failure")
	}
}
