package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	"availability-engine/internal/infra"
	"availability-engine/internal/infra/db"
	"availability-engine/internal/pkg/ptr"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const holdColumns = `id, holdee_id, holdee_type, requester_id, requester_type, start_date, end_date, status,
request_message, response_message, created_at, expires_at, responded_at, updated_at`

type HoldRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewHoldRepository(pool *pgxpool.Pool, logger *slog.Logger) *HoldRepository {
	return &HoldRepository{pool: pool, logger: logger}
}

func (r *HoldRepository) Create(ctx context.Context, h *hold.Hold) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
INSERT INTO holds (`+holdColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		h.ID(),
		h.Holdee().ID, h.Holdee().Type.String(),
		h.Requester().ID, h.Requester().Type.String(),
		h.Dates().Start(), h.Dates().End(),
		h.Status().String(),
		h.RequestMessage(), h.ResponseMessage(),
		h.CreatedAt(), h.ExpiresAt(),
		ptr.TimeToPgtype(h.RespondedAt()),
		h.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+holdColumns+` FROM holds WHERE id = $1`, id)
	h, err := scanHold(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to find hold", err)
	}
	return h, nil
}

func (r *HoldRepository) List(ctx context.Context, f shared.HoldFilter) ([]*hold.Hold, error) {
	var status pgtype.Text
	if f.Status != nil {
		status = pgtype.Text{String: f.Status.String(), Valid: true}
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+holdColumns+`
FROM holds
WHERE (
    ($3::text IN ('incoming', 'all') AND holdee_id = $1 AND holdee_type = $2)
 OR ($3::text IN ('outgoing', 'all') AND requester_id = $1 AND requester_type = $2)
)
  AND ($4::text IS NULL OR status = $4)
ORDER BY created_at DESC, id
LIMIT $5`,
		f.Party.ID, f.Party.Type.String(), string(f.Direction), status, f.Limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list holds", err)
	}
	return r.collect(rows)
}

// Transition is the compare-and-set for hold status. The row is updated only while it is still
// pending and, when requested, not yet past its expiry.
func (r *HoldRepository) Transition(ctx context.Context, t hold.Transition) (*hold.Hold, error) {
	conn := db.Conn(ctx, r.pool)
	row := conn.QueryRow(ctx, `
UPDATE holds
SET status = $2::text,
    updated_at = $3,
    responded_at = CASE WHEN $2::text IN ('accepted', 'declined') THEN $3 ELSE responded_at END,
    response_message = COALESCE($4::text, response_message)
WHERE id = $1
  AND status = 'pending'
  AND ($5::timestamptz IS NULL OR expires_at > $5::timestamptz)
RETURNING `+holdColumns,
		t.HoldID, t.To.String(), t.At,
		ptr.StringToPgtype(t.ResponseMessage),
		ptr.TimeToPgtype(t.NotExpiredAt),
	)
	h, err := scanHold(row)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to transition hold", err)
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holds WHERE id = $1)`, t.HoldID).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check hold", err)
	}
	if !exists {
		return nil, infra.NewNotFound("hold not found")
	}
	return nil, shared.ErrTransitionRejected
}

func (r *HoldRepository) ExpirePending(ctx context.Context, now time.Time) ([]*hold.Hold, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
UPDATE holds
SET status = 'expired', updated_at = $1
WHERE status = 'pending' AND expires_at <= $1
RETURNING `+holdColumns, now)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to expire holds", err)
	}
	return r.collect(rows)
}

func (r *HoldRepository) ListUnderMaterialized(ctx context.Context, limit int) ([]*hold.Hold, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+holdColumns+`
FROM holds h
WHERE h.status = 'accepted'
  AND (SELECT count(*) FROM slots s WHERE s.source = 'hold' AND s.source_ref = h.id)
      < (h.end_date - h.start_date + 1)
ORDER BY h.updated_at
LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list under-materialized holds", err)
	}
	return r.collect(rows)
}

func (r *HoldRepository) collect(rows pgx.Rows) ([]*hold.Hold, error) {
	defer rows.Close()
	var out []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan hold", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate holds", err)
	}
	return out, nil
}

func scanHold(row pgx.Row) (*hold.Hold, error) {
	var (
		id, holdeeID, requesterID uuid.UUID
		holdeeType, requesterType string
		startDate, endDate        time.Time
		status                    string
		requestMsg, responseMsg   string
		createdAt, expiresAt      time.Time
		respondedAt               pgtype.Timestamptz
		updatedAt                 time.Time
	)
	if err := row.Scan(
		&id, &holdeeID, &holdeeType, &requesterID, &requesterType,
		&startDate, &endDate, &status,
		&requestMsg, &responseMsg,
		&createdAt, &expiresAt, &respondedAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	return hold.ReconstructHold(
		id,
		party.Ref{ID: holdeeID, Type: party.Type(holdeeType)},
		party.Ref{ID: requesterID, Type: party.Type(requesterType)},
		hold.ReconstructDateRange(startDate, endDate),
		hold.Status(status),
		requestMsg, responseMsg,
		createdAt.UTC(), expiresAt.UTC(),
		ptr.TimeFromPgtype(respondedAt),
		updatedAt.UTC(),
	), nil
}
