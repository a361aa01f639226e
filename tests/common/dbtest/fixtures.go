//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"availability-engine/internal/domain/party"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestParty registers a directory entry so holds and booking requests can reference it.
func CreateTestParty(t *testing.T, db DBLike, partyType party.Type, displayName string) party.Ref {
	t.Helper()

	id := uuid.New()
	email := strings.ToLower(strings.ReplaceAll(displayName, " ", ".")) + "@example.com"
	_, err := db.Exec(context.Background(),
		"INSERT INTO parties (id, party_type, display_name, email) VALUES ($1, $2, $3, $4)",
		id, partyType.String(), displayName, email)
	require.NoError(t, err)

	return party.Ref{ID: id, Type: partyType}
}

// CountSlots returns how many slots were materialized from the given hold or booking request.
func CountSlots(t *testing.T, db DBLike, sourceRef uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM slots WHERE source_ref = $1", sourceRef).Scan(&n)
	require.NoError(t, err)
	return n
}

// ForceHoldExpiry moves expires_at into the past so the sweep picks the hold up.
func ForceHoldExpiry(t *testing.T, db DBLike, holdID uuid.UUID, at time.Time) {
	t.Helper()

	tag, err := db.Exec(context.Background(), "UPDATE holds SET expires_at = $2 WHERE id = $1", holdID, at)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
}

// inserts the parties every scenario starts from
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO parties (id, party_type, display_name, email) VALUES
		    ('00000000-0000-0000-0000-00000000a001', 'agency', 'Default Agency', 'agency@example.com'),
		    ('00000000-0000-0000-0000-00000000d001', 'dmc', 'Default DMC', 'dmc@example.com')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
