package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memearena/arena/internal/arena"
	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/store/schema"
)

func buildValidatorConfig() *schema.ArenaConfig {
	return &schema.ArenaConfig{
		MinContribution: 100_000_000,    // 0.1 SOL
		MaxContribution: 1_000_000_000,  // 1 SOL
		TotalFundLimit:  10_000_000_000, // 10 SOL
	}
}

func TestValidateContribution(t *testing.T) {
	tests := []struct {
		name               string
		totalContributions int64
		amount             int64
		wantRemaining      int64
		wantErr            error
	}{
		{
			name:               "accepts amount within bounds",
			totalContributions: 0,
			amount:             500_000_000,
			wantRemaining:      9_500_000_000,
		},
		{
			name:               "accepts exact minimum",
			totalContributions: 0,
			amount:             100_000_000,
			wantRemaining:      9_900_000_000,
		},
		{
			name:               "accepts exact maximum",
			totalContributions: 0,
			amount:             1_000_000_000,
			wantRemaining:      9_000_000_000,
		},
		{
			name:               "rejects when fund limit already reached",
			totalContributions: 10_000_000_000,
			amount:             100_000_000,
			wantErr:            domain.ErrFundLimitReached,
		},
		{
			name:               "rejects when totals overshoot the limit",
			totalContributions: 11_000_000_000,
			amount:             100_000_000,
			wantErr:            domain.ErrFundLimitReached,
		},
		{
			name:               "rejects amount above remaining capacity",
			totalContributions: 9_950_000_000,
			amount:             100_000_000,
			wantErr:            domain.ErrExceedsRemainingCapacity,
		},
		{
			name:               "rejects amount below minimum",
			totalContributions: 0,
			amount:             50_000_000,
			wantErr:            domain.ErrBelowMinContribution,
		},
		{
			name:               "rejects amount above maximum",
			totalContributions: 0,
			amount:             1_500_000_000,
			wantErr:            domain.ErrExceedsMaxContribution,
		},
		{
			name: "remaining capacity wins over the per-user maximum",
			// 0.5 SOL left; 0.8 SOL is under the per-user maximum but over capacity
			totalContributions: 9_500_000_000,
			amount:             800_000_000,
			wantErr:            domain.ErrExceedsRemainingCapacity,
		},
		{
			name:               "accepts draining the last capacity exactly",
			totalContributions: 9_800_000_000,
			amount:             200_000_000,
			wantRemaining:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildValidatorConfig()
			session := &schema.ArenaSession{
				Status:             domain.StatusContributing,
				TotalContributions: tt.totalContributions,
			}

			remaining, err := arena.ValidateContribution(cfg, session, tt.amount)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestValidateContribution_ErrorMessagesCarrySolAmounts(t *testing.T) {
	cfg := buildValidatorConfig()

	t.Run("remaining capacity error names the remaining SOL", func(t *testing.T) {
		session := &schema.ArenaSession{TotalContributions: 9_500_000_000}
		_, err := arena.ValidateContribution(cfg, session, 2_000_000_000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0.5 SOL")
	})

	t.Run("minimum error names the configured minimum", func(t *testing.T) {
		session := &schema.ArenaSession{TotalContributions: 0}
		_, err := arena.ValidateContribution(cfg, session, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0.1 SOL")
	})

	t.Run("maximum error names the effective maximum", func(t *testing.T) {
		session := &schema.ArenaSession{TotalContributions: 0}
		_, err := arena.ValidateContribution(cfg, session, 1_100_000_000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 SOL")
	})
}

func TestValidateContribution_UsesLiveConfigLimits(t *testing.T) {
	// Operators can tighten the fund limit mid-session; the validator must read
	// the current configuration, not the session snapshot
	cfg := buildValidatorConfig()
	cfg.TotalFundLimit = 1_000_000_000

	session := &schema.ArenaSession{
		TotalContributions: 900_000_000,
		Config: domain.SessionConfig{
			TotalFundLimit: 10_000_000_000,
		},
	}

	_, err := arena.ValidateContribution(cfg, session, 500_000_000)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExceedsRemainingCapacity)
}
