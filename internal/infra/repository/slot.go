package repository

import (
	"context"
	"log/slog"
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/infra"
	"availability-engine/internal/infra/db"
	"availability-engine/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `id, owner_id, owner_role, start_time, end_time, status, source, source_ref, capacity, created_at, updated_at`

type SlotRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSlotRepository(pool *pgxpool.Pool, logger *slog.Logger) *SlotRepository {
	return &SlotRepository{pool: pool, logger: logger}
}

// Create ignores a duplicate materialized slot for the same source record and start instant.
func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) (bool, error) {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `
INSERT INTO slots (`+slotColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (source_ref, start_time) WHERE source_ref IS NOT NULL DO NOTHING`,
		s.ID(), s.OwnerID(), s.OwnerRole().String(),
		s.TimeRange().Start(), s.TimeRange().End(),
		s.Status().String(), s.Source().String(),
		s.SourceRef(), ptr.IntToPgtype(s.Capacity()),
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to create slot", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("slot not found")
	}
	return nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row := db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
	s, err := scanSlot(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to find slot", err)
	}
	return s, nil
}

func (r *SlotRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, role party.Type) ([]*slot.Slot, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+slotColumns+`
FROM slots
WHERE owner_id = $1 AND owner_role = $2
ORDER BY start_time, id`, ownerID, role.String())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list slots", err)
	}
	return r.collect(rows)
}

// ListOverlapping uses half-open intersection: start_time < end AND end_time > start.
func (r *SlotRepository) ListOverlapping(ctx context.Context, ownerIDs []uuid.UUID, tr slot.TimeRange) ([]*slot.Slot, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(ownerIDs))
	for i, id := range ownerIDs {
		ids[i] = id.String()
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+slotColumns+`
FROM slots
WHERE owner_id = ANY($1::uuid[])
  AND start_time < $3
  AND end_time > $2
ORDER BY owner_id, start_time`, ids, tr.Start(), tr.End())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list overlapping slots", err)
	}
	return r.collect(rows)
}

func (r *SlotRepository) ListBySourceRef(ctx context.Context, ref uuid.UUID) ([]*slot.Slot, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `
SELECT `+slotColumns+`
FROM slots
WHERE source_ref = $1
ORDER BY start_time`, ref)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list slots by source", err)
	}
	return r.collect(rows)
}

func (r *SlotRepository) collect(rows pgx.Rows) ([]*slot.Slot, error) {
	defer rows.Close()
	var out []*slot.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan slot", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate slots", err)
	}
	return out, nil
}

func scanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		id, ownerID            uuid.UUID
		ownerRole, status, src string
		start, end             time.Time
		sourceRef              *uuid.UUID
		capacity               pgtype.Int4
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &ownerID, &ownerRole, &start, &end, &status, &src, &sourceRef, &capacity, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	tr, err := slot.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	return slot.ReconstructSlot(
		id, ownerID,
		party.Type(ownerRole),
		tr,
		slot.Status(status),
		slot.Source(src),
		sourceRef,
		ptr.IntFromPgtype(capacity),
		createdAt.UTC(), updatedAt.UTC(),
	), nil
}
