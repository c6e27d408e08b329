package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memearena/arena/internal/adapter"
	"github.com/memearena/arena/internal/broadcast"
	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/gateway"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/scheduler"
	"github.com/memearena/arena/internal/store"
	"github.com/memearena/arena/internal/store/schema"
)

// Callback actions carried in scheduled callback payloads
const (
	ActionVotingEnd     = "voting-end"
	ActionContributeEnd = "contribute-end"
	ActionNextSession   = "next-session"
)

// CallbackConfig holds the callback URLs handed to the external scheduler and
// the grace buffer added to the registry end time before claims open
type CallbackConfig struct {
	VotingEndURL     string
	ContributeEndURL string
	NextSessionURL   string
	ClaimGrace       time.Duration
}

// CreateMemeParams holds the fields for submitting a meme
type CreateMemeParams struct {
	Name        string
	Ticker      string
	Description string
	ImageURL    string
	// MemeProgramID is the caller-supplied on-chain identifier; generated when empty
	MemeProgramID string
	IsFromNews    bool
}

// CastVoteParams holds the fields for casting a vote
type CastVoteParams struct {
	SessionID    uint64
	MemeID       uint64
	VoterAddress string
	VoterIP      string
}

// ContributeParams holds the fields for submitting a contribution
type ContributeParams struct {
	MemeID             uint64
	ContributorAddress string
	ContributorIP      string
	// Amount is in lamports
	Amount int64
}

// Machine drives arena sessions through their lifecycle: Voting -> LastVoting ->
// Contributing -> Completed, then cyclically a fresh Voting session. Every
// transition re-checks the expected pre-transition status, so a duplicate
// callback delivery is a silent no-op.
type Machine struct {
	store       store.Store
	scheduler   scheduler.Scheduler
	gateway     gateway.TokenGateway
	broadcaster broadcast.Broadcaster
	clock       adapter.Clock
	jsonUtil    adapter.JSON
	callbacks   CallbackConfig
}

// NewMachine creates a new arena state machine
func NewMachine(
	st store.Store,
	sched scheduler.Scheduler,
	gw gateway.TokenGateway,
	bc broadcast.Broadcaster,
	clock adapter.Clock,
	jsonUtil adapter.JSON,
	callbacks CallbackConfig,
) *Machine {
	return &Machine{
		store:       st,
		scheduler:   sched,
		gateway:     gw,
		broadcaster: bc,
		clock:       clock,
		jsonUtil:    jsonUtil,
		callbacks:   callbacks,
	}
}

// broadcastEvent publishes fire-and-forget; a failed publish must never fail or
// roll back the transition that triggered it
func (m *Machine) broadcastEvent(ctx context.Context, eventType domain.EventType, data interface{}) {
	if err := m.broadcaster.Publish(ctx, eventType, data); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to broadcast event"), zap.String("type", string(eventType)))
	}
}

// StartNewSession creates a fresh voting session with a snapshot of the current
// global configuration. The store's active-session constraint rejects it with
// domain.ErrActiveSessionExists when a session is already running.
func (m *Machine) StartNewSession(ctx context.Context) (*schema.ArenaSession, error) {
	cfg, err := m.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	session := &schema.ArenaSession{
		Status:    domain.StatusVoting,
		Active:    true,
		StartTime: m.clock.Now(),
		Config: domain.SessionConfig{
			MaxMemes:            cfg.MaxMemes,
			VotingThreshold:     cfg.VotingThreshold,
			VotingTimeLimit:     cfg.VotingTimeLimit,
			ContributeTimeLimit: cfg.ContributeTimeLimit,
			NextSessionDelay:    cfg.NextSessionDelay,
			TotalFundLimit:      cfg.TotalFundLimit,
		},
	}

	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "started new arena session", zap.Uint64("session_id", session.ID))
	m.broadcastEvent(ctx, domain.EventNewSession, session)

	return session, nil
}

// StartNewSessionIfNone creates a new session only when no session is active.
// Used by the next-session callback and the reconciliation sweeper; a duplicate
// delivery finds the active session and no-ops.
func (m *Machine) StartNewSessionIfNone(ctx context.Context) (*schema.ArenaSession, error) {
	active, err := m.store.GetActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, nil
	}

	session, err := m.StartNewSession(ctx)
	if err != nil {
		// Lost the race to a concurrent trigger; the session exists either way
		if err == domain.ErrActiveSessionExists {
			return nil, nil
		}
		return nil, err
	}

	return session, nil
}

// CreateMeme submits a meme to the active session. Creation is permitted during
// voting, and during contributing for news-sourced backfill entries.
func (m *Machine) CreateMeme(ctx context.Context, params CreateMemeParams) (*schema.Meme, error) {
	session, err := m.store.GetActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	memeProgramID := params.MemeProgramID
	if memeProgramID == "" {
		memeProgramID = uuid.NewString()
	}

	meme, err := m.store.CreateMeme(ctx, store.CreateMemeInput{
		SessionID:     session.ID,
		Name:          params.Name,
		Ticker:        params.Ticker,
		Description:   params.Description,
		ImageURL:      params.ImageURL,
		MemeProgramID: memeProgramID,
		IsFromNews:    params.IsFromNews,
	})
	if err != nil {
		return nil, err
	}

	m.broadcastEvent(ctx, domain.EventNewMeme, meme)

	return meme, nil
}

// CastVote records a vote for a meme and returns the meme with its updated
// count. When the vote pushes the meme to the session's voting threshold, the
// last voting window is started.
func (m *Machine) CastVote(ctx context.Context, params CastVoteParams) (*schema.Meme, error) {
	result, err := m.store.CreateVote(ctx, store.CreateVoteInput{
		SessionID:    params.SessionID,
		MemeID:       params.MemeID,
		VoterAddress: params.VoterAddress,
		VoterIP:      params.VoterIP,
		Now:          m.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	m.broadcastEvent(ctx, domain.EventMemeVoteUpdate, result.Meme)

	if result.ThresholdReached {
		if err := m.StartLastVoting(ctx, params.SessionID); err != nil {
			// The vote itself is committed; the stalled transition is picked up
			// by the reconciliation sweeper
			logger.ErrorCtx(ctx, err,
				zap.String("message", "failed to start last voting window"),
				zap.Uint64("session_id", params.SessionID))
		}
	}

	return result.Meme, nil
}

// StartLastVoting schedules the voting-end callback and advances the session to
// last_voting. Only sessions still in the voting phase advance; anything else
// is a no-op so the threshold trigger cannot fire twice.
func (m *Machine) StartLastVoting(ctx context.Context, sessionID uint64) error {
	session, err := m.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.StatusVoting {
		return nil
	}

	// External scheduling happens first; if it fails the session stays in
	// voting and the trigger can fire again
	res, err := m.scheduler.Schedule(ctx, scheduler.ScheduleRequest{
		CallbackURL: m.callbacks.VotingEndURL,
		Action:      ActionVotingEnd,
		SessionID:   sessionID,
		Delay:       time.Duration(session.Config.VotingTimeLimit) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to schedule voting-end callback: %w", err)
	}

	advanced, err := m.store.MarkLastVoting(ctx, sessionID, res.ScheduledAt)
	if err != nil {
		return err
	}
	if !advanced {
		return nil
	}

	logger.InfoCtx(ctx, "last voting window started",
		zap.Uint64("session_id", sessionID), zap.Time("voting_end_time", res.ScheduledAt))

	session.Status = domain.StatusLastVoting
	session.VotingEndTime = &res.ScheduledAt
	m.broadcastEvent(ctx, domain.EventVotingThresholdReached, session)

	return nil
}

// StartContributing handles the voting-end callback: picks the winner, opens
// the funding registry, schedules the contribute-end callback, and advances the
// session to contributing. A delivery against a session past last_voting no-ops.
func (m *Machine) StartContributing(ctx context.Context, sessionID uint64) error {
	session, err := m.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.StatusLastVoting {
		logger.InfoCtx(ctx, "skipping voting-end callback, session already advanced",
			zap.Uint64("session_id", sessionID), zap.String("status", string(session.Status)))
		return nil
	}

	winner, err := m.store.GetTopMeme(ctx, sessionID)
	if err != nil {
		return err
	}
	if winner == nil {
		return domain.ErrWinnerNotFound
	}

	metadata := domain.TokenMetadata{
		Name:        winner.Name,
		Symbol:      winner.Ticker,
		Description: winner.Description,
		ImageURL:    winner.ImageURL,
	}

	contributeWindow := time.Duration(session.Config.ContributeTimeLimit) * time.Second

	// Gateway and scheduler calls precede the store commit; a failure here
	// leaves the session in last_voting, safe to retry
	registry, err := m.gateway.CreateFundingRegistry(ctx, gateway.CreateRegistryInput{
		SessionID:     sessionID,
		MemeProgramID: winner.MemeProgramID,
		Metadata:      metadata,
		FundLimit:     session.Config.TotalFundLimit,
		EndTime:       m.clock.Now().Add(contributeWindow),
	})
	if err != nil {
		return fmt.Errorf("failed to create funding registry: %w", err)
	}

	res, err := m.scheduler.Schedule(ctx, scheduler.ScheduleRequest{
		CallbackURL: m.callbacks.ContributeEndURL,
		Action:      ActionContributeEnd,
		SessionID:   sessionID,
		Delay:       contributeWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to schedule contribute-end callback: %w", err)
	}

	contributeEndTime := res.ScheduledAt
	nextSessionStartTime := contributeEndTime.Add(time.Duration(session.Config.NextSessionDelay) * time.Second)

	claimAvailableTime := registry.ClaimAvailableTime
	if claimAvailableTime.IsZero() {
		claimAvailableTime = contributeEndTime
	}
	claimAvailableTime = claimAvailableTime.Add(m.callbacks.ClaimGrace)

	metaJSON, err := m.jsonUtil.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal token metadata: %w", err)
	}

	advanced, err := m.store.BeginContributing(ctx, store.BeginContributingInput{
		SessionID:            sessionID,
		WinnerMemeID:         winner.ID,
		ContributeEndTime:    contributeEndTime,
		NextSessionStartTime: nextSessionStartTime,
		ClaimAvailableTime:   claimAvailableTime,
		WinnerTokenMeta:      metaJSON,
	})
	if err != nil {
		return err
	}
	if !advanced {
		return nil
	}

	logger.InfoCtx(ctx, "contribution window started",
		zap.Uint64("session_id", sessionID),
		zap.Uint64("winner_meme_id", winner.ID),
		zap.Time("contribute_end_time", contributeEndTime))

	updated, err := m.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	winner.IsWinner = true
	m.broadcastEvent(ctx, domain.EventContributingStarted, map[string]interface{}{
		"session": updated,
		"winner":  winner,
	})

	return nil
}

// Contribute records a contribution to the winning meme. The amount bounds are
// re-validated inside the store transaction against the row-locked session.
func (m *Machine) Contribute(ctx context.Context, params ContributeParams) (*store.ContributionResult, error) {
	cfg, err := m.store.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	session, err := m.store.GetActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	result, err := m.store.CreateContribution(ctx, store.CreateContributionInput{
		SessionID:          session.ID,
		MemeID:             params.MemeID,
		ContributorAddress: params.ContributorAddress,
		ContributorIP:      params.ContributorIP,
		Amount:             params.Amount,
		Now:                m.clock.Now(),
	}, func(locked *schema.ArenaSession) (int64, error) {
		return ValidateContribution(cfg, locked, params.Amount)
	})
	if err != nil {
		return nil, err
	}

	m.broadcastEvent(ctx, domain.EventNewContribution, map[string]interface{}{
		"contribution": result.Contribution,
		"session":      result.Session,
	})

	return result, nil
}

// EndContributing handles the contribute-end callback: finalizes token creation
// through the gateway, schedules the next-session callback, and completes the
// session. A delivery against an already completed session no-ops.
func (m *Machine) EndContributing(ctx context.Context, sessionID uint64) error {
	session, err := m.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != domain.StatusContributing {
		logger.InfoCtx(ctx, "skipping contribute-end callback, session already advanced",
			zap.Uint64("session_id", sessionID), zap.String("status", string(session.Status)))
		return nil
	}
	if session.WinnerMemeID == nil {
		return domain.ErrWinnerNotFound
	}

	winner, err := m.store.GetMemeByID(ctx, *session.WinnerMemeID)
	if err != nil {
		return err
	}
	if winner == nil {
		return domain.ErrWinnerNotFound
	}

	// Token creation can be slow; tell observers it started before the call
	m.broadcastEvent(ctx, domain.EventTokenCreationStarted, session)

	creation, err := m.gateway.StartToken(ctx, gateway.StartTokenInput{
		SessionID:     sessionID,
		MemeProgramID: winner.MemeProgramID,
		Metadata: domain.TokenMetadata{
			Name:        winner.Name,
			Symbol:      winner.Ticker,
			Description: winner.Description,
			ImageURL:    winner.ImageURL,
		},
	})
	if err != nil {
		// Session stays in contributing; the callback delivery is retryable
		return fmt.Errorf("failed to start token creation: %w", err)
	}

	vaultBalance, err := m.gateway.GetVaultBalance(ctx, creation.MintAddress)
	if err != nil {
		return fmt.Errorf("failed to read vault balance: %w", err)
	}

	res, err := m.scheduler.Schedule(ctx, scheduler.ScheduleRequest{
		CallbackURL: m.callbacks.NextSessionURL,
		Action:      ActionNextSession,
		SessionID:   sessionID,
		Delay:       time.Duration(session.Config.NextSessionDelay) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to schedule next-session callback: %w", err)
	}

	advanced, err := m.store.CompleteSession(ctx, store.CompleteSessionInput{
		SessionID:            sessionID,
		EndTime:              m.clock.Now(),
		TokenMintAddress:     creation.MintAddress,
		TokenCreateTx:        creation.TxSignature,
		InitialVaultTokens:   vaultBalance,
		NextSessionStartTime: res.ScheduledAt,
	})
	if err != nil {
		return err
	}
	if !advanced {
		return nil
	}

	logger.InfoCtx(ctx, "arena session completed",
		zap.Uint64("session_id", sessionID),
		zap.String("token_mint_address", creation.MintAddress),
		zap.Time("next_session_start_time", res.ScheduledAt))

	completed, err := m.store.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	m.broadcastEvent(ctx, domain.EventContributingEnded, map[string]interface{}{
		"session": completed,
		"winner":  winner,
	})

	return nil
}

// CheckContributionEligibility is an advisory read-only predicate; the
// authoritative checks run again inside the contribution transaction
func (m *Machine) CheckContributionEligibility(ctx context.Context, memeID uint64, contributorAddress, contributorIP string) (bool, error) {
	session, err := m.store.GetActiveSession(ctx)
	if err != nil {
		return false, err
	}
	if session == nil || session.Status != domain.StatusContributing {
		return false, nil
	}
	if session.ContributeEndTime == nil || !m.clock.Now().Before(*session.ContributeEndTime) {
		return false, nil
	}

	exists, err := m.store.HasContribution(ctx, memeID, contributorAddress, contributorIP)
	if err != nil {
		return false, err
	}

	return !exists, nil
}

// MarkContributionClaimed annotates a contribution after the contributor claimed
// tokens off-chain
func (m *Machine) MarkContributionClaimed(ctx context.Context, contributionID uint64, claimSignature string) error {
	return m.store.MarkContributionClaimed(ctx, contributionID, claimSignature, m.clock.Now())
}
