package domain

import (
	"strconv"
	"strings"
	"time"
)

// SessionStatus represents the lifecycle phase of an arena session
type SessionStatus string

const (
	// StatusVoting is the initial phase: memes collect votes until one reaches the threshold
	StatusVoting SessionStatus = "voting"
	// StatusLastVoting is the time-boxed final voting window entered when the threshold is reached
	StatusLastVoting SessionStatus = "last_voting"
	// StatusContributing is the funding window for the winning meme
	StatusContributing SessionStatus = "contributing"
	// StatusCompleted is the terminal phase after the token has been created
	StatusCompleted SessionStatus = "completed"
)

// Active reports whether the status counts toward the single-active-session invariant
func (s SessionStatus) Active() bool {
	switch s {
	case StatusVoting, StatusLastVoting, StatusContributing:
		return true
	default:
		return false
	}
}

// LamportsPerSol is the number of lamports in one SOL
const LamportsPerSol int64 = 1_000_000_000

// SessionConfig is the immutable configuration snapshot taken when a session is
// created. Later changes to the global configuration do not affect a running session.
type SessionConfig struct {
	// MaxMemes is the maximum number of memes allowed in the session
	MaxMemes int `gorm:"column:max_memes;not null" json:"max_memes"`
	// VotingThreshold is the vote count on a single meme that triggers the last voting window
	VotingThreshold int64 `gorm:"column:voting_threshold;not null" json:"voting_threshold"`
	// VotingTimeLimit is the duration of the last voting window, in seconds
	VotingTimeLimit int64 `gorm:"column:voting_time_limit;not null" json:"voting_time_limit"`
	// ContributeTimeLimit is the duration of the contribution window, in seconds
	ContributeTimeLimit int64 `gorm:"column:contribute_time_limit;not null" json:"contribute_time_limit"`
	// NextSessionDelay is the delay before the next session starts after completion, in seconds
	NextSessionDelay int64 `gorm:"column:next_session_delay;not null" json:"next_session_delay"`
	// TotalFundLimit is the total contribution capacity of the session in lamports
	TotalFundLimit int64 `gorm:"column:total_fund_limit;not null" json:"total_fund_limit"`
}

// EventType identifies a broadcast event published on a state transition
type EventType string

const (
	EventNewSession             EventType = "new-session"
	EventNewMeme                EventType = "new-meme"
	EventMemeVoteUpdate         EventType = "meme-vote-update"
	EventVotingThresholdReached EventType = "voting-threshold-reached"
	EventContributingStarted    EventType = "contributing-started"
	EventNewContribution        EventType = "new-contribution"
	EventTokenCreationStarted   EventType = "token-creation-started"
	EventContributingEnded      EventType = "contributing-ended"
)

// ArenaEvent is a broadcast event delivered to all connected observers.
// Delivery is fire-and-forget; no subscriber is guaranteed to receive it.
type ArenaEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// Type is the event type (e.g., "new-session")
	Type EventType `json:"type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data interface{} `json:"data"`
}

// TokenMetadata describes the token minted for the winning meme
type TokenMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// SolString formats a lamport amount as a human-readable SOL string
// (e.g., 1500000000 -> "1.5", 2000000000 -> "2")
func SolString(lamports int64) string {
	whole := lamports / LamportsPerSol
	frac := lamports % LamportsPerSol
	if frac < 0 {
		frac = -frac
	}
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}

	fracStr := strings.TrimRight(strconv.FormatInt(frac+LamportsPerSol, 10)[1:], "0")
	return strconv.FormatInt(whole, 10) + "." + fracStr
}
