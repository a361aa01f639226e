package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"availability-engine/internal/domain/bookingrequest"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"
	"availability-engine/internal/infra/db"
	"availability-engine/internal/pkg/ptr"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingRequestColumns = `id, requester_id, requester_role, target_id, target_role, job_ref, starts_at, ends_at,
status, message, response_message, created_at, updated_at, responded_at`

type BookingRequestRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBookingRequestRepository(pool *pgxpool.Pool, logger *slog.Logger) *BookingRequestRepository {
	return &BookingRequestRepository{pool: pool, logger: logger}
}

func (r *BookingRequestRepository) Create(ctx context.Context, b *bookingrequest.BookingRequest) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
INSERT INTO booking_requests (`+bookingRequestColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID(),
		b.Requester().ID, b.Requester().Type.String(),
		b.Target().ID, b.Target().Type.String(),
		ptr.StringToPgtype(b.JobRef()),
		b.Window().Start(), b.Window().End(),
		b.Status().String(),
		b.Message(), b.ResponseMessage(),
		b.CreatedAt(), b.UpdatedAt(),
		ptr.TimeToPgtype(b.RespondedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to create booking request", err)
	}
	return nil
}

func (r *BookingRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingrequest.BookingRequest, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+bookingRequestColumns+` FROM booking_requests WHERE id = $1`, id)
	b, err := scanBookingRequest(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to find booking request", err)
	}
	return b, nil
}

func (r *BookingRequestRepository) List(ctx context.Context, f shared.BookingRequestFilter) ([]*bookingrequest.BookingRequest, error) {
	var status pgtype.Text
	if f.Status != nil {
		status = pgtype.Text{String: f.Status.String(), Valid: true}
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+bookingRequestColumns+`
FROM booking_requests
WHERE (
    ($3::text IN ('incoming', 'all') AND target_id = $1 AND target_role = $2)
 OR ($3::text IN ('outgoing', 'all') AND requester_id = $1 AND requester_role = $2)
)
  AND ($4::text IS NULL OR status = $4)
ORDER BY created_at DESC, id
LIMIT $5`,
		f.Party.ID, f.Party.Type.String(), string(f.Direction), status, f.Limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list booking requests", err)
	}
	return r.collect(rows)
}

func (r *BookingRequestRepository) Transition(ctx context.Context, t bookingrequest.Transition) (*bookingrequest.BookingRequest, error) {
	conn := db.Conn(ctx, r.pool)
	row := conn.QueryRow(ctx, `
UPDATE booking_requests
SET status = $2::text,
    updated_at = $3,
    responded_at = CASE WHEN $2::text IN ('accepted', 'declined') THEN $3 ELSE responded_at END,
    response_message = COALESCE($4::text, response_message)
WHERE id = $1 AND status = 'pending'
RETURNING `+bookingRequestColumns,
		t.RequestID, t.To.String(), t.At, ptr.StringToPgtype(t.ResponseMessage),
	)
	b, err := scanBookingRequest(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to transition booking request", err)
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM booking_requests WHERE id = $1)`, t.RequestID).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check booking request", err)
	}
	if !exists {
		return nil, infra.NewNotFound("booking request not found")
	}
	return nil, shared.ErrTransitionRejected
}

func (r *BookingRequestRepository) ExpireStale(ctx context.Context, now time.Time) ([]*bookingrequest.BookingRequest, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
UPDATE booking_requests
SET status = 'expired', updated_at = $1
WHERE status = 'pending' AND starts_at <= $1
RETURNING `+bookingRequestColumns, now)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to expire booking requests", err)
	}
	return r.collect(rows)
}

func (r *BookingRequestRepository) ListUnmaterialized(ctx context.Context, limit int) ([]*bookingrequest.BookingRequest, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+bookingRequestColumns+`
FROM booking_requests b
WHERE b.status = 'accepted'
  AND NOT EXISTS (SELECT 1 FROM slots s WHERE s.source = 'booking' AND s.source_ref = b.id)
ORDER BY b.updated_at
LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list unmaterialized booking requests", err)
	}
	return r.collect(rows)
}

func (r *BookingRequestRepository) collect(rows pgx.Rows) ([]*bookingrequest.BookingRequest, error) {
	defer rows.Close()
	var out []*bookingrequest.BookingRequest
	for rows.Next() {
		b, err := scanBookingRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking request", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate booking requests", err)
	}
	return out, nil
}

func scanBookingRequest(row pgx.Row) (*bookingrequest.BookingRequest, error) {
	var (
		id, requesterID, targetID   uuid.UUID
		requesterRole, targetRole   string
		jobRef                      pgtype.Text
		startsAt, endsAt            time.Time
		status, message, responseMs string
		createdAt, updatedAt        time.Time
		respondedAt                 pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &requesterID, &requesterRole, &targetID, &targetRole, &jobRef,
		&startsAt, &endsAt, &status, &message, &responseMs,
		&createdAt, &updatedAt, &respondedAt,
	); err != nil {
		return nil, err
	}
	window, err := slot.NewTimeRange(startsAt.UTC(), endsAt.UTC())
	if err != nil {
		return nil, err
	}
	return bookingrequest.ReconstructBookingRequest(
		id,
		party.Ref{ID: requesterID, Type: party.Type(requesterRole)},
		party.Ref{ID: targetID, Type: party.Type(targetRole)},
		ptr.StringFromPgtype(jobRef),
		window,
		bookingrequest.Status(status),
		message, responseMs,
		createdAt.UTC(), updatedAt.UTC(),
		ptr.TimeFromPgtype(respondedAt),
	), nil
}
