package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memearena/arena/internal/api/rest/dto"
	"github.com/memearena/arena/internal/arena"
	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/scheduler"
	"github.com/memearena/arena/internal/store"
	"github.com/memearena/arena/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetCurrentSession retrieves the active session with its memes
	// GET /api/v1/sessions/current
	GetCurrentSession(c *gin.Context)

	// GetSession retrieves a session by ID with its memes
	// GET /api/v1/sessions/:id
	GetSession(c *gin.Context)

	// GetSessionMemes retrieves a session's memes ordered by vote count
	// GET /api/v1/sessions/:id/memes
	GetSessionMemes(c *gin.Context)

	// StartSession creates a new voting session (requires API key authentication)
	// POST /api/v1/sessions
	StartSession(c *gin.Context)

	// CreateMeme submits a meme to the active session (requires authentication)
	// POST /api/v1/memes
	CreateMeme(c *gin.Context)

	// CastVote records a vote for a meme
	// POST /api/v1/votes
	CastVote(c *gin.Context)

	// Contribute submits a contribution to the winning meme (requires authentication)
	// POST /api/v1/contributions
	Contribute(c *gin.Context)

	// CheckEligibility is the advisory pre-contribution check
	// GET /api/v1/contributions/eligibility?meme_id=<id>&contributor=<address>
	CheckEligibility(c *gin.Context)

	// ClaimContribution annotates a contribution as claimed (requires API key authentication)
	// POST /api/v1/contributions/:id/claim
	ClaimContribution(c *gin.Context)

	// HandleCallback processes a scheduled callback delivery (signature-verified)
	// POST /api/v1/callbacks
	HandleCallback(c *gin.Context)

	// GetArenaConfig retrieves the global arena configuration (requires API key authentication)
	// GET /api/v1/config
	GetArenaConfig(c *gin.Context)

	// UpdateArenaConfig updates the global arena configuration (requires API key authentication)
	// PUT /api/v1/config
	UpdateArenaConfig(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	machine *arena.Machine
	store   store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(machine *arena.Machine, st store.Store) Handler {
	return &handler{
		machine: machine,
		store:   st,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCurrentSession retrieves the active session with its memes
func (h *handler) GetCurrentSession(c *gin.Context) {
	session, err := h.store.GetActiveSession(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to load session")
		return
	}
	if session == nil {
		// Fall back to the latest session so clients can render the
		// between-sessions state
		session, err = h.store.GetLatestSession(c.Request.Context())
		if err != nil {
			respondInternalError(c, err, "Failed to load session")
			return
		}
		if session == nil {
			respondNotFound(c, "No arena session exists")
			return
		}
	}

	h.respondSessionWithMemes(c, session)
}

// GetSession retrieves a session by ID with its memes
func (h *handler) GetSession(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.store.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.respondSessionWithMemes(c, session)
}

func (h *handler) respondSessionWithMemes(c *gin.Context, session *schema.ArenaSession) {
	memes, err := h.store.GetSessionMemes(c.Request.Context(), session.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to load session memes")
		return
	}

	resp := dto.FromSession(session)
	resp.Memes = dto.FromMemes(memes)
	c.JSON(http.StatusOK, resp)
}

// GetSessionMemes retrieves a session's memes ordered by vote count
func (h *handler) GetSessionMemes(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid session ID")
		return
	}

	memes, err := h.store.GetSessionMemes(c.Request.Context(), sessionID)
	if err != nil {
		respondInternalError(c, err, "Failed to load session memes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromMemes(memes)})
}

// StartSession creates a new voting session
func (h *handler) StartSession(c *gin.Context) {
	session, err := h.machine.StartNewSession(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse{
		Session: dto.FromSession(session),
		Created: true,
	})
}

// CreateMeme submits a meme to the active session
func (h *handler) CreateMeme(c *gin.Context) {
	var req dto.CreateMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	meme, err := h.machine.CreateMeme(c.Request.Context(), arena.CreateMemeParams{
		Name:          req.Name,
		Ticker:        req.Ticker,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		MemeProgramID: req.MemeProgramID,
		IsFromNews:    req.IsFromNews,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMeme(meme))
}

// CastVote records a vote for a meme
func (h *handler) CastVote(c *gin.Context) {
	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	meme, err := h.machine.CastVote(c.Request.Context(), arena.CastVoteParams{
		SessionID:    req.SessionID,
		MemeID:       req.MemeID,
		VoterAddress: req.VoterAddress,
		VoterIP:      c.ClientIP(),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMeme(meme))
}

// Contribute submits a contribution to the winning meme
func (h *handler) Contribute(c *gin.Context) {
	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.machine.Contribute(c.Request.Context(), arena.ContributeParams{
		MemeID:             req.MemeID,
		ContributorAddress: req.ContributorAddress,
		ContributorIP:      c.ClientIP(),
		Amount:             req.Amount,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"contribution": dto.FromContribution(result.Contribution),
		"session":      dto.FromSession(result.Session),
	})
}

// CheckEligibility is the advisory pre-contribution check
func (h *handler) CheckEligibility(c *gin.Context) {
	memeID, err := strconv.ParseUint(c.Query("meme_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid meme_id")
		return
	}
	contributor := c.Query("contributor")
	if contributor == "" {
		respondBadRequest(c, "contributor is required")
		return
	}

	eligible, err := h.machine.CheckContributionEligibility(c.Request.Context(), memeID, contributor, c.ClientIP())
	if err != nil {
		respondInternalError(c, err, "Failed to check eligibility")
		return
	}

	c.JSON(http.StatusOK, dto.EligibilityResponse{Eligible: eligible})
}

// ClaimContribution annotates a contribution as claimed
func (h *handler) ClaimContribution(c *gin.Context) {
	contributionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid contribution ID")
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.machine.MarkContributionClaimed(c.Request.Context(), contributionID, req.ClaimSignature); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetArenaConfig retrieves the global arena configuration
func (h *handler) GetArenaConfig(c *gin.Context) {
	cfg, err := h.store.GetConfig(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromConfig(cfg))
}

// UpdateArenaConfig updates the global arena configuration. The running
// session keeps its snapshot; only the fund limits apply to it live.
func (h *handler) UpdateArenaConfig(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	cfg, err := h.store.GetConfig(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	cfg.MaxMemes = req.MaxMemes
	cfg.VotingThreshold = req.VotingThreshold
	cfg.VotingTimeLimit = req.VotingTimeLimit
	cfg.ContributeTimeLimit = req.ContributeTimeLimit
	cfg.NextSessionDelay = req.NextSessionDelay
	cfg.MinContribution = req.MinContribution
	cfg.MaxContribution = req.MaxContribution
	cfg.TotalFundLimit = req.TotalFundLimit

	if err := h.store.UpdateConfig(c.Request.Context(), cfg); err != nil {
		respondDomainError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "arena configuration updated",
		zap.Int("max_memes", cfg.MaxMemes),
		zap.Int64("voting_threshold", cfg.VotingThreshold),
		zap.Int64("total_fund_limit", cfg.TotalFundLimit))

	updated, err := h.store.GetConfig(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromConfig(updated))
}

// HandleCallback processes a scheduled callback delivery. A callback against a
// session that already advanced is a success, not an error.
func (h *handler) HandleCallback(c *gin.Context) {
	var payload scheduler.CallbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	logger.InfoCtx(c.Request.Context(), "scheduled callback received",
		zap.String("callback_id", payload.CallbackID),
		zap.String("action", payload.Action),
		zap.Uint64("session_id", payload.SessionID))

	var err error
	switch payload.Action {
	case arena.ActionVotingEnd:
		err = h.machine.StartContributing(c.Request.Context(), payload.SessionID)
	case arena.ActionContributeEnd:
		err = h.machine.EndContributing(c.Request.Context(), payload.SessionID)
	case arena.ActionNextSession:
		_, err = h.machine.StartNewSessionIfNone(c.Request.Context())
	default:
		respondBadRequest(c, "Unknown callback action", payload.Action)
		return
	}

	if err != nil {
		if err == domain.ErrSessionNotFound {
			respondDomainError(c, err)
			return
		}
		// Retryable by the scheduler's at-least-once delivery
		respondInternalError(c, err, "Callback processing failed",
			zap.String("action", payload.Action),
			zap.Uint64("session_id", payload.SessionID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
