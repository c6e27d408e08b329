package dto

import (
	"encoding/json"
	"time"

	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/store/schema"
)

// SessionResponse represents an arena session
type SessionResponse struct {
	ID                     uint64               `json:"id"`
	Status                 domain.SessionStatus `json:"status"`
	Active                 bool                 `json:"active"`
	StartTime              time.Time            `json:"start_time"`
	EndTime                *time.Time           `json:"end_time,omitempty"`
	VotingEndTime          *time.Time           `json:"voting_end_time,omitempty"`
	ContributeEndTime      *time.Time           `json:"contribute_end_time,omitempty"`
	NextSessionStartTime   *time.Time           `json:"next_session_start_time,omitempty"`
	ClaimAvailableTime     *time.Time           `json:"claim_available_time,omitempty"`
	MaxMemes               int                  `json:"max_memes"`
	VotingThreshold        int64                `json:"voting_threshold"`
	WinnerMemeID           *uint64              `json:"winner_meme_id,omitempty"`
	TotalContributions     int64                `json:"total_contributions"`
	TotalContributionsSol  string               `json:"total_contributions_sol"`
	ContributorCount       int64                `json:"contributor_count"`
	RemainingContributions *int64               `json:"remaining_contributions,omitempty"`
	TokenMintAddress       *string              `json:"token_mint_address,omitempty"`
	TokenCreateTx          *string              `json:"token_create_tx,omitempty"`
	InitialVaultTokens     *string              `json:"initial_vault_tokens,omitempty"`
	WinnerTokenMeta        json.RawMessage      `json:"winner_token_meta,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`

	// Memes is included on session detail responses
	Memes []MemeResponse `json:"memes,omitempty"`
}

// MemeResponse represents a candidate meme
type MemeResponse struct {
	ID            uint64    `json:"id"`
	SessionID     uint64    `json:"session_id"`
	Name          string    `json:"name"`
	Ticker        string    `json:"ticker"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	TotalVotes    int64     `json:"total_votes"`
	IsWinner      bool      `json:"is_winner"`
	MemeProgramID string    `json:"meme_program_id"`
	IsFromNews    bool      `json:"is_from_news"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContributionResponse represents an accepted contribution
type ContributionResponse struct {
	ID                 uint64     `json:"id"`
	SessionID          uint64     `json:"session_id"`
	MemeID             uint64     `json:"meme_id"`
	ContributorAddress string     `json:"contributor_address"`
	Amount             int64      `json:"amount"`
	AmountSol          string     `json:"amount_sol"`
	IsTokensClaimed    bool       `json:"is_tokens_claimed"`
	ClaimSignature     *string    `json:"claim_signature,omitempty"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// EligibilityResponse is the result of a contribution eligibility check
type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

// CreateMemeRequest is the body for submitting a meme
type CreateMemeRequest struct {
	Name          string `json:"name" binding:"required"`
	Ticker        string `json:"ticker" binding:"required"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	MemeProgramID string `json:"meme_program_id"`
	IsFromNews    bool   `json:"is_from_news"`
}

// CastVoteRequest is the body for casting a vote
type CastVoteRequest struct {
	SessionID    uint64 `json:"session_id" binding:"required"`
	MemeID       uint64 `json:"meme_id" binding:"required"`
	VoterAddress string `json:"voter_address" binding:"required"`
}

// ContributeRequest is the body for submitting a contribution
type ContributeRequest struct {
	MemeID             uint64 `json:"meme_id" binding:"required"`
	ContributorAddress string `json:"contributor_address" binding:"required"`
	// Amount is in lamports
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ClaimRequest is the body for annotating a claimed contribution
type ClaimRequest struct {
	ClaimSignature string `json:"claim_signature" binding:"required"`
}

// ConfigResponse represents the global arena configuration
type ConfigResponse struct {
	MaxMemes            int       `json:"max_memes"`
	VotingThreshold     int64     `json:"voting_threshold"`
	VotingTimeLimit     int64     `json:"voting_time_limit"`
	ContributeTimeLimit int64     `json:"contribute_time_limit"`
	NextSessionDelay    int64     `json:"next_session_delay"`
	MinContribution     int64     `json:"min_contribution"`
	MinContributionSol  string    `json:"min_contribution_sol"`
	MaxContribution     int64     `json:"max_contribution"`
	MaxContributionSol  string    `json:"max_contribution_sol"`
	TotalFundLimit      int64     `json:"total_fund_limit"`
	TotalFundLimitSol   string    `json:"total_fund_limit_sol"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UpdateConfigRequest is the body for updating the global arena configuration.
// New values take effect with the next session; only fund limits apply to the
// one in flight.
type UpdateConfigRequest struct {
	MaxMemes            int   `json:"max_memes" binding:"required,gt=0"`
	VotingThreshold     int64 `json:"voting_threshold" binding:"required,gt=0"`
	VotingTimeLimit     int64 `json:"voting_time_limit" binding:"required,gt=0"`
	ContributeTimeLimit int64 `json:"contribute_time_limit" binding:"required,gt=0"`
	NextSessionDelay    int64 `json:"next_session_delay" binding:"required,gt=0"`
	MinContribution     int64 `json:"min_contribution" binding:"required,gt=0"`
	MaxContribution     int64 `json:"max_contribution" binding:"required,gtefield=MinContribution"`
	TotalFundLimit      int64 `json:"total_fund_limit" binding:"required,gtefield=MaxContribution"`
}

// NewSessionResponse wraps the session created by an operator or callback
type NewSessionResponse struct {
	Session *SessionResponse `json:"session,omitempty"`
	Created bool             `json:"created"`
}

// FromSession maps a session row to its response
func FromSession(s *schema.ArenaSession) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:                     s.ID,
		Status:                 s.Status,
		Active:                 s.Active,
		StartTime:              s.StartTime,
		EndTime:                s.EndTime,
		VotingEndTime:          s.VotingEndTime,
		ContributeEndTime:      s.ContributeEndTime,
		NextSessionStartTime:   s.NextSessionStartTime,
		ClaimAvailableTime:     s.ClaimAvailableTime,
		MaxMemes:               s.Config.MaxMemes,
		VotingThreshold:        s.Config.VotingThreshold,
		WinnerMemeID:           s.WinnerMemeID,
		TotalContributions:     s.TotalContributions,
		TotalContributionsSol:  domain.SolString(s.TotalContributions),
		ContributorCount:       s.ContributorCount,
		RemainingContributions: s.RemainingContributions,
		TokenMintAddress:       s.TokenMintAddress,
		TokenCreateTx:          s.TokenCreateTx,
		InitialVaultTokens:     s.InitialVaultTokens,
		WinnerTokenMeta:        json.RawMessage(s.WinnerTokenMeta),
		CreatedAt:              s.CreatedAt,
	}
}

// FromMeme maps a meme row to its response
func FromMeme(m *schema.Meme) *MemeResponse {
	if m == nil {
		return nil
	}
	return &MemeResponse{
		ID:            m.ID,
		SessionID:     m.SessionID,
		Name:          m.Name,
		Ticker:        m.Ticker,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		TotalVotes:    m.TotalVotes,
		IsWinner:      m.IsWinner,
		MemeProgramID: m.MemeProgramID,
		IsFromNews:    m.IsFromNews,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMemes maps meme rows to responses
func FromMemes(memes []schema.Meme) []MemeResponse {
	out := make([]MemeResponse, 0, len(memes))
	for i := range memes {
		out = append(out, *FromMeme(&memes[i]))
	}
	return out
}

// FromConfig maps the configuration row to its response
func FromConfig(cfg *schema.ArenaConfig) *ConfigResponse {
	if cfg == nil {
		return nil
	}
	return &ConfigResponse{
		MaxMemes:            cfg.MaxMemes,
		VotingThreshold:     cfg.VotingThreshold,
		VotingTimeLimit:     cfg.VotingTimeLimit,
		ContributeTimeLimit: cfg.ContributeTimeLimit,
		NextSessionDelay:    cfg.NextSessionDelay,
		MinContribution:     cfg.MinContribution,
		MinContributionSol:  domain.SolString(cfg.MinContribution),
		MaxContribution:     cfg.MaxContribution,
		MaxContributionSol:  domain.SolString(cfg.MaxContribution),
		TotalFundLimit:      cfg.TotalFundLimit,
		TotalFundLimitSol:   domain.SolString(cfg.TotalFundLimit),
		UpdatedAt:           cfg.UpdatedAt,
	}
}

// FromContribution maps a contribution row to its response
func FromContribution(c *schema.Contribution) *ContributionResponse {
	if c == nil {
		return nil
	}
	return &ContributionResponse{
		ID:                 c.ID,
		SessionID:          c.SessionID,
		MemeID:             c.MemeID,
		ContributorAddress: c.ContributorAddress,
		Amount:             c.Amount,
		AmountSol:          domain.SolString(c.Amount),
		IsTokensClaimed:    c.IsTokensClaimed,
		ClaimSignature:     c.ClaimSignature,
		ClaimedAt:          c.ClaimedAt,
		CreatedAt:          c.CreatedAt,
	}
}
