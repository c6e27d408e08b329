package store

import (
	"context"
	"time"

	"github.com/memearena/arena/internal/store/schema"
)

// CreateMemeInput holds the fields for creating a meme
type CreateMemeInput struct {
	SessionID     uint64
	Name          string
	Ticker        string
	Description   string
	ImageURL      string
	MemeProgramID string
	IsFromNews    bool
}

// CreateVoteInput holds the fields for casting a vote
type CreateVoteInput struct {
	SessionID    uint64
	MemeID       uint64
	VoterAddress string
	VoterIP      string
	Now          time.Time
}

// VoteResult is the outcome of a vote insert
type VoteResult struct {
	// Meme is the target meme with its post-increment vote count
	Meme *schema.Meme
	// ThresholdReached is true when this vote pushed the meme to the session's
	// voting threshold while the session was still in the voting phase
	ThresholdReached bool
}

// BeginContributingInput holds the fields for the last_voting -> contributing transition
type BeginContributingInput struct {
	SessionID            uint64
	WinnerMemeID         uint64
	ContributeEndTime    time.Time
	NextSessionStartTime time.Time
	ClaimAvailableTime   time.Time
	WinnerTokenMeta      []byte
}

// CompleteSessionInput holds the fields for the contributing -> completed transition
type CompleteSessionInput struct {
	SessionID            uint64
	EndTime              time.Time
	TokenMintAddress     string
	TokenCreateTx        string
	InitialVaultTokens   string
	NextSessionStartTime time.Time
}

// CreateContributionInput holds the fields for creating a contribution
type CreateContributionInput struct {
	SessionID          uint64
	MemeID             uint64
	ContributorAddress string
	ContributorIP      string
	Amount             int64
	Now                time.Time
}

// ContributionResult is the outcome of a contribution insert
type ContributionResult struct {
	Contribution *schema.Contribution
	// Session carries the recomputed aggregates
	Session *schema.ArenaSession
}

// ContributionValidator is re-evaluated inside the contribution transaction against
// the row-locked session, so two concurrent contributions cannot both pass against a
// stale remaining amount. It returns the capacity remaining after the contribution.
type ContributionValidator func(session *schema.ArenaSession) (remainingAfter int64, err error)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetConfig retrieves the global arena configuration row
	GetConfig(ctx context.Context) (*schema.ArenaConfig, error)
	// UpdateConfig updates the global arena configuration row. Running sessions
	// keep their snapshot; only fund limits apply live.
	UpdateConfig(ctx context.Context, cfg *schema.ArenaConfig) error

	// CreateSession inserts a new session; the partial unique index on active
	// sessions rejects it with domain.ErrActiveSessionExists if one is running
	CreateSession(ctx context.Context, session *schema.ArenaSession) error
	// GetSessionByID retrieves a session by its ID
	GetSessionByID(ctx context.Context, sessionID uint64) (*schema.ArenaSession, error)
	// GetActiveSession retrieves the currently active session, nil if none
	GetActiveSession(ctx context.Context) (*schema.ArenaSession, error)
	// GetLatestSession retrieves the most recently created session, nil if none
	GetLatestSession(ctx context.Context) (*schema.ArenaSession, error)

	// GetMemeByID retrieves a meme by its ID, nil if absent
	GetMemeByID(ctx context.Context, memeID uint64) (*schema.Meme, error)
	// GetSessionMemes retrieves all memes of a session ordered by vote count
	GetSessionMemes(ctx context.Context, sessionID uint64) ([]schema.Meme, error)
	// GetTopMeme retrieves the meme with the highest vote count in a session
	GetTopMeme(ctx context.Context, sessionID uint64) (*schema.Meme, error)
	// CreateMeme validates phase and capacity under a session row lock and inserts the meme
	CreateMeme(ctx context.Context, input CreateMemeInput) (*schema.Meme, error)

	// CreateVote inserts a vote and increments the meme's vote count in one transaction
	CreateVote(ctx context.Context, input CreateVoteInput) (*VoteResult, error)

	// MarkLastVoting advances voting -> last_voting; returns false if the session
	// was not in the voting phase (idempotent no-op)
	MarkLastVoting(ctx context.Context, sessionID uint64, votingEndTime time.Time) (bool, error)
	// BeginContributing advances last_voting -> contributing and marks the winner;
	// returns false if the session was not in the last voting phase
	BeginContributing(ctx context.Context, input BeginContributingInput) (bool, error)
	// CompleteSession advances contributing -> completed and releases the active
	// slot; returns false if the session was not in the contributing phase
	CompleteSession(ctx context.Context, input CompleteSessionInput) (bool, error)

	// CreateContribution re-validates under a session row lock, inserts the
	// contribution, and recomputes the session aggregates in one transaction
	CreateContribution(ctx context.Context, input CreateContributionInput, validate ContributionValidator) (*ContributionResult, error)
	// HasContribution checks whether the contributor or IP already contributed to the meme
	HasContribution(ctx context.Context, memeID uint64, contributorAddress, contributorIP string) (bool, error)
	// MarkContributionClaimed annotates a contribution once tokens were claimed off-chain
	MarkContributionClaimed(ctx context.Context, contributionID uint64, signature string, claimedAt time.Time) error

	// GetStalledSessions retrieves active sessions whose phase deadline elapsed more
	// than grace ago without the corresponding transition
	GetStalledSessions(ctx context.Context, now time.Time, grace time.Duration) ([]schema.ArenaSession, error)
}
