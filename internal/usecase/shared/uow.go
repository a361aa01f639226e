package shared

import (
	"context"
)

type UnitOfWork interface {
	// Within runs fn in a write transaction carried by ctx. Repositories called with that ctx join it.
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}
