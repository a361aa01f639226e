package repository

import (
	"context"
	"log/slog"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/infra"
	"availability-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PartyRepository is the Postgres-backed party directory.
type PartyRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPartyRepository(pool *pgxpool.Pool, logger *slog.Logger) *PartyRepository {
	return &PartyRepository{pool: pool, logger: logger}
}

// Resolve returns NOT_FOUND when the id is unknown or registered under a different type.
func (r *PartyRepository) Resolve(ctx context.Context, ref party.Ref) (*party.Account, error) {
	var (
		id          uuid.UUID
		partyType   string
		displayName string
		email       string
	)
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
SELECT id, party_type, display_name, email
FROM parties
WHERE id = $1 AND party_type = $2`, ref.ID, ref.Type.String()).
		Scan(&id, &partyType, &displayName, &email)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to resolve party", err)
	}
	return &party.Account{
		ID:          id,
		Type:        party.Type(partyType),
		DisplayName: displayName,
		Email:       email,
	}, nil
}

func (r *PartyRepository) Upsert(ctx context.Context, acct party.Account) error {
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
INSERT INTO parties (id, party_type, display_name, email)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET party_type = EXCLUDED.party_type,
    display_name = EXCLUDED.display_name,
    email = EXCLUDED.email,
    updated_at = NOW()`,
		acct.ID, acct.Type.String(), acct.DisplayName, acct.Email)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to upsert party", err)
	}
	return nil
}
