//go:build unit

package commands_test

import (
	"testing"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*config.HoldConfig)
		wantErr string
		is      error
	}{
		{
			name:   "success: test defaults",
			modify: func(*config.HoldConfig) {},
		},
		{
			name:    "error: unknown cancel policy",
			modify:  func(c *config.HoldConfig) { c.CancelPolicy = "nobody" },
			wantErr: "HOLD_CANCEL_POLICY",
			is:      hold.ErrInvalidCancelPolicy,
		},
		{
			name:    "error: unknown overlap policy",
			modify:  func(c *config.HoldConfig) { c.OverlapPolicy = "strict" },
			wantErr: `REQUEST_OVERLAP_POLICY: unknown value "strict"`,
		},
		{
			name:    "error: non-positive ttl",
			modify:  func(c *config.HoldConfig) { c.TTL = 0 },
			wantErr: "HOLD_TTL must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tc.modify(&cfg.Hold)

			p, err := commands.NewPolicy(cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, commands.Policy{
					HoldTTL:      48 * time.Hour,
					CancelPolicy: hold.CancelByEither,
					Overlap:      commands.OverlapAdvisory,
				}, p)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}
