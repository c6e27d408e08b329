package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/memearena/arena/internal/domain"
)

// ArenaSession represents the arena_sessions table - one row per competition round.
// The Active flag carries a partial unique index so the database, not the
// application, enforces that at most one session is in a non-completed phase.
type ArenaSession struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Status is the current lifecycle phase
	Status domain.SessionStatus `gorm:"column:status;not null;type:text;index"`
	// Active is true while the session is in voting, last_voting, or contributing.
	// The partial unique index rejects a second active session at insert time.
	Active bool `gorm:"column:active;not null;default:false;uniqueIndex:uniq_active_session,where:active = true"`

	// StartTime is when the session opened for voting
	StartTime time.Time `gorm:"column:start_time;not null"`
	// EndTime is when the session reached completed
	EndTime *time.Time `gorm:"column:end_time"`
	// VotingEndTime is the scheduled end of the last voting window
	VotingEndTime *time.Time `gorm:"column:voting_end_time"`
	// ContributeEndTime is the scheduled end of the contribution window
	ContributeEndTime *time.Time `gorm:"column:contribute_end_time"`
	// NextSessionStartTime is when the follow-up session is scheduled to start
	NextSessionStartTime *time.Time `gorm:"column:next_session_start_time"`
	// ClaimAvailableTime is when contributors may claim tokens, registry end plus grace
	ClaimAvailableTime *time.Time `gorm:"column:claim_available_time"`

	// Config is the configuration snapshot taken at session creation
	Config domain.SessionConfig `gorm:"embedded"`

	// WinnerMemeID references the winning meme once last voting has closed
	WinnerMemeID *uint64 `gorm:"column:winner_meme_id"`
	// TotalContributions is the running sum of accepted contribution amounts in lamports
	TotalContributions int64 `gorm:"column:total_contributions;not null;default:0"`
	// ContributorCount is the number of distinct contributors
	ContributorCount int64 `gorm:"column:contributor_count;not null;default:0"`
	// RemainingContributions is the capacity left after the latest accepted contribution
	RemainingContributions *int64 `gorm:"column:remaining_contributions"`

	// TokenMintAddress is set once token creation succeeds
	TokenMintAddress *string `gorm:"column:token_mint_address;type:text"`
	// TokenCreateTx is the transaction signature of the token creation
	TokenCreateTx *string `gorm:"column:token_create_tx;type:text"`
	// InitialVaultTokens is the vault token balance read right after creation
	InitialVaultTokens *string `gorm:"column:initial_vault_tokens;type:text"`
	// WinnerTokenMeta is the token metadata sent to the funding gateway
	WinnerTokenMeta datatypes.JSON `gorm:"column:winner_token_meta;type:jsonb"`

	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Memes         []Meme         `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Votes         []Vote         `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Contributions []Contribution `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ArenaSession model
func (ArenaSession) TableName() string {
	return "arena_sessions"
}
