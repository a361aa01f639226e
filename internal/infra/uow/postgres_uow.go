package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"availability-engine/internal/infra/db"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Deadlocks can show up when a response and the sweeper touch the same hold and slots in
// different orders. Serialization failures only happen if a caller raises the isolation level.
var retryableCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
}

type retryPolicy struct {
	attempts int
	base     time.Duration
}

var defaultRetry = retryPolicy{attempts: 4, base: 100 * time.Millisecond}

// backoff doubles per attempt and adds up to 20% jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.base << attempt
	return d + rand.N(d/5+1)
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	retry  retryPolicy
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, retry: defaultRetry, logger: logger}
}

// Within joins an outer transaction when ctx already carries one, so a hold transition and its
// slot materialization commit together.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := db.Conn(ctx, nil).(pgx.Tx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt < u.retry.attempts; attempt++ {
		if attempt > 0 {
			wait := u.retry.backoff(attempt - 1)
			u.logger.WarnContext(ctx, "retrying transaction", "attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = u.once(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}

	u.logger.ErrorContext(ctx, "transaction failed after max retries", "attempts", u.retry.attempts, "error", err)
	return errs.Mark(err, errMaxRetriesExceeded)
}

// once runs fn in a single READ COMMITTED transaction. The conditional UPDATEs in the
// repositories make that level sufficient.
func (u *PostgresUoW) once(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err := fn(db.WithTx(ctx, tx)); err != nil {
		u.rollback(ctx, tx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		u.rollback(ctx, tx)
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func (u *PostgresUoW) rollback(ctx context.Context, tx pgx.Tx) {
	// Rollback must run even when ctx is already cancelled.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.WarnContext(ctx, "rollback failed", "error", err)
	}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && retryableCodes[pgErr.Code]
}
