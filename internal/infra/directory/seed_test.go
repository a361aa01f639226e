//go:build unit

package directory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/infra/directory"
	"availability-engine/internal/infra/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
parties:
  - id: 6f1c1a2e-9a51-4b0e-9d4a-2d3b7c9e0a01
    type: guide
    display_name: Aiko Tanaka
    email: aiko@example.com
  - id: 6f1c1a2e-9a51-4b0e-9d4a-2d3b7c9e0a02
    type: agency
    display_name: Sakura Travel
`

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr string
	}{
		{name: "success: two parties", input: seedYAML, want: 2},
		{name: "success: empty file", input: "", want: 0},
		{
			name:    "error: bad id",
			input:   "parties:\n  - id: nope\n    type: guide\n    display_name: X\n",
			wantErr: "invalid id",
		},
		{
			name:    "error: unknown type",
			input:   "parties:\n  - id: 6f1c1a2e-9a51-4b0e-9d4a-2d3b7c9e0a01\n    type: hotel\n    display_name: X\n",
			wantErr: "party 0",
		},
		{
			name:    "error: missing name",
			input:   "parties:\n  - id: 6f1c1a2e-9a51-4b0e-9d4a-2d3b7c9e0a01\n    type: guide\n",
			wantErr: "display_name is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := directory.Parse([]byte(tc.input))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	n, err := directory.Load(ctx, "", store.Parties())
	require.NoError(t, err)
	assert.Zero(t, n)

	path := filepath.Join(t.TempDir(), "parties.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	n, err = directory.Load(ctx, path, store.Parties())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	acct, err := store.Parties().Resolve(ctx, party.Ref{
		ID:   uuid.MustParse("6f1c1a2e-9a51-4b0e-9d4a-2d3b7c9e0a01"),
		Type: party.TypeGuide,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aiko Tanaka", acct.DisplayName)
}
