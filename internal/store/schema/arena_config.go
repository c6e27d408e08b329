package schema

import (
	"time"
)

// ArenaConfig represents the arena_configs table - the single global configuration
// row. Sessions snapshot these values at creation; the validator reads the fund
// limits live.
type ArenaConfig struct {
	// ID is the internal database primary key (exactly one row is expected)
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MaxMemes is the maximum number of memes per session
	MaxMemes int `gorm:"column:max_memes;not null"`
	// VotingThreshold is the vote count that triggers the last voting window
	VotingThreshold int64 `gorm:"column:voting_threshold;not null"`
	// VotingTimeLimit is the last voting window duration in seconds
	VotingTimeLimit int64 `gorm:"column:voting_time_limit;not null"`
	// ContributeTimeLimit is the contribution window duration in seconds
	ContributeTimeLimit int64 `gorm:"column:contribute_time_limit;not null"`
	// NextSessionDelay is the delay before a new session starts, in seconds
	NextSessionDelay int64 `gorm:"column:next_session_delay;not null"`
	// MinContribution is the minimum single contribution in lamports
	MinContribution int64 `gorm:"column:min_contribution;not null"`
	// MaxContribution is the maximum single contribution in lamports
	MaxContribution int64 `gorm:"column:max_contribution;not null"`
	// TotalFundLimit is the per-session contribution capacity in lamports
	TotalFundLimit int64 `gorm:"column:total_fund_limit;not null"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ArenaConfig model
func (ArenaConfig) TableName() string {
	return "arena_configs"
}
