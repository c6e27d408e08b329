package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance.
// The gorm connection must be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetConfig retrieves the global arena configuration row
func (s *pgStore) GetConfig(ctx context.Context) (*schema.ArenaConfig, error) {
	var cfg schema.ArenaConfig
	err := s.db.WithContext(ctx).Order("id ASC").First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get arena config: %w", err)
	}
	return &cfg, nil
}

// UpdateConfig updates the global configuration row in place
func (s *pgStore) UpdateConfig(ctx context.Context, cfg *schema.ArenaConfig) error {
	res := s.db.WithContext(ctx).Model(&schema.ArenaConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{
			"max_memes":             cfg.MaxMemes,
			"voting_threshold":      cfg.VotingThreshold,
			"voting_time_limit":     cfg.VotingTimeLimit,
			"contribute_time_limit": cfg.ContributeTimeLimit,
			"next_session_delay":    cfg.NextSessionDelay,
			"min_contribution":      cfg.MinContribution,
			"max_contribution":      cfg.MaxContribution,
			"total_fund_limit":      cfg.TotalFundLimit,
			"updated_at":            gorm.Expr("now()"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update arena config: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConfigNotFound
	}
	return nil
}

// CreateSession inserts a new session row. The partial unique index on active
// sessions is the authoritative single-active-session defense: a concurrent insert
// loses with a duplicate key error, surfaced as domain.ErrActiveSessionExists.
func (s *pgStore) CreateSession(ctx context.Context, session *schema.ArenaSession) error {
	err := s.db.WithContext(ctx).Create(session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrActiveSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByID retrieves a session by its ID
func (s *pgStore) GetSessionByID(ctx context.Context, sessionID uint64) (*schema.ArenaSession, error) {
	var session schema.ArenaSession
	err := s.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// GetActiveSession retrieves the currently active session, nil if none
func (s *pgStore) GetActiveSession(ctx context.Context) (*schema.ArenaSession, error) {
	var session schema.ArenaSession
	err := s.db.WithContext(ctx).Where("active = ?", true).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return &session, nil
}

// GetLatestSession retrieves the most recently created session, nil if none
func (s *pgStore) GetLatestSession(ctx context.Context) (*schema.ArenaSession, error) {
	var session schema.ArenaSession
	err := s.db.WithContext(ctx).Order("id DESC").First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	return &session, nil
}

// GetMemeByID retrieves a meme by its ID, nil if absent
func (s *pgStore) GetMemeByID(ctx context.Context, memeID uint64) (*schema.Meme, error) {
	var meme schema.Meme
	err := s.db.WithContext(ctx).Where("id = ?", memeID).First(&meme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meme: %w", err)
	}
	return &meme, nil
}

// GetSessionMemes retrieves all memes of a session ordered by vote count descending
func (s *pgStore) GetSessionMemes(ctx context.Context, sessionID uint64) ([]schema.Meme, error) {
	var memes []schema.Meme
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("total_votes DESC, id ASC").
		Find(&memes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get session memes: %w", err)
	}
	return memes, nil
}

// GetTopMeme retrieves the meme with the highest vote count in a session.
// Ties break on the lower ID (the earlier entry).
func (s *pgStore) GetTopMeme(ctx context.Context, sessionID uint64) (*schema.Meme, error) {
	var meme schema.Meme
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("total_votes DESC, id ASC").
		First(&meme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get top meme: %w", err)
	}
	return &meme, nil
}

// CreateMeme inserts a meme after validating phase and capacity under a session
// row lock, so two concurrent creations cannot both pass the capacity check
func (s *pgStore) CreateMeme(ctx context.Context, input CreateMemeInput) (*schema.Meme, error) {
	var meme schema.Meme

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the session row so the meme count below stays stable
		var session schema.ArenaSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.SessionID).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}

		if session.Status != domain.StatusVoting && session.Status != domain.StatusContributing {
			return domain.ErrInvalidSessionState
		}

		var count int64
		if err := tx.Model(&schema.Meme{}).Where("session_id = ?", input.SessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count session memes: %w", err)
		}
		if count >= int64(session.Config.MaxMemes) {
			return domain.ErrMemeCapacityExceeded
		}

		meme = schema.Meme{
			SessionID:     input.SessionID,
			Name:          input.Name,
			Ticker:        input.Ticker,
			Description:   input.Description,
			ImageURL:      input.ImageURL,
			MemeProgramID: input.MemeProgramID,
			IsFromNews:    input.IsFromNews,
		}
		if err := tx.Create(&meme).Error; err != nil {
			return fmt.Errorf("failed to create meme: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &meme, nil
}

// CreateVote inserts a vote row and increments the meme's vote counter in a single
// transaction. The compound unique indexes reject duplicates; ON CONFLICT DO
// NOTHING leaves ID zero, which maps to domain.ErrDuplicateVote.
func (s *pgStore) CreateVote(ctx context.Context, input CreateVoteInput) (*VoteResult, error) {
	var result VoteResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session schema.ArenaSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.SessionID).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}

		if session.Status != domain.StatusVoting && session.Status != domain.StatusLastVoting {
			return domain.ErrInvalidSessionState
		}

		// Once the last voting deadline passes the winner may already be under
		// selection; late votes must not shift the ranking
		if session.Status == domain.StatusLastVoting &&
			session.VotingEndTime != nil && input.Now.After(*session.VotingEndTime) {
			return domain.ErrVotingPeriodEnded
		}

		var meme schema.Meme
		err = tx.Where("id = ? AND session_id = ?", input.MemeID, input.SessionID).First(&meme).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemeNotFound
			}
			return fmt.Errorf("failed to get meme: %w", err)
		}

		vote := schema.Vote{
			SessionID:    input.SessionID,
			MemeID:       input.MemeID,
			VoterAddress: input.VoterAddress,
			VoterIP:      input.VoterIP,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to create vote: %w", err)
		}

		// ID stays zero when either unique index matched an existing vote
		if vote.ID == 0 {
			return domain.ErrDuplicateVote
		}

		if err := tx.Model(&schema.Meme{}).
			Where("id = ?", input.MemeID).
			Update("total_votes", gorm.Expr("total_votes + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment vote count: %w", err)
		}

		if err := tx.Where("id = ?", input.MemeID).First(&meme).Error; err != nil {
			return fmt.Errorf("failed to reload meme: %w", err)
		}

		result.Meme = &meme
		// At-or-above, not equality: if the last voting window failed to start
		// on the threshold vote, the next vote must re-fire the trigger. The
		// status guard on the transition keeps duplicates harmless.
		result.ThresholdReached = session.Status == domain.StatusVoting &&
			meme.TotalVotes >= session.Config.VotingThreshold

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// MarkLastVoting advances voting -> last_voting with a conditional update. A zero
// row count means another trigger already advanced the session; callers treat that
// as a no-op.
func (s *pgStore) MarkLastVoting(ctx context.Context, sessionID uint64, votingEndTime time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&schema.ArenaSession{}).
		Where("id = ? AND status = ?", sessionID, domain.StatusVoting).
		Updates(map[string]interface{}{
			"status":          domain.StatusLastVoting,
			"voting_end_time": votingEndTime,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark last voting: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// BeginContributing advances last_voting -> contributing, marks the winner, and
// resets the contribution aggregates, all in one transaction
func (s *pgStore) BeginContributing(ctx context.Context, input BeginContributingInput) (bool, error) {
	advanced := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schema.ArenaSession{}).
			Where("id = ? AND status = ?", input.SessionID, domain.StatusLastVoting).
			Updates(map[string]interface{}{
				"status":                  domain.StatusContributing,
				"winner_meme_id":          input.WinnerMemeID,
				"contribute_end_time":     input.ContributeEndTime,
				"next_session_start_time": input.NextSessionStartTime,
				"claim_available_time":    input.ClaimAvailableTime,
				"total_contributions":     0,
				"contributor_count":       0,
				"winner_token_meta":       input.WinnerTokenMeta,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to begin contributing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Already advanced by a duplicate callback delivery
			return nil
		}

		if err := tx.Model(&schema.Meme{}).
			Where("id = ?", input.WinnerMemeID).
			Update("is_winner", true).Error; err != nil {
			return fmt.Errorf("failed to mark winner meme: %w", err)
		}

		advanced = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return advanced, nil
}

// CompleteSession advances contributing -> completed and releases the active-session
// slot so a new session may be created
func (s *pgStore) CompleteSession(ctx context.Context, input CompleteSessionInput) (bool, error) {
	res := s.db.WithContext(ctx).Model(&schema.ArenaSession{}).
		Where("id = ? AND status = ?", input.SessionID, domain.StatusContributing).
		Updates(map[string]interface{}{
			"status":                  domain.StatusCompleted,
			"active":                  false,
			"end_time":                input.EndTime,
			"token_mint_address":      input.TokenMintAddress,
			"token_create_tx":         input.TokenCreateTx,
			"initial_vault_tokens":    input.InitialVaultTokens,
			"next_session_start_time": input.NextSessionStartTime,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to complete session: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CreateContribution re-validates the amount against the row-locked session,
// inserts the contribution, and recomputes the session aggregates, all in one
// transaction so concurrent contributions serialize on the session row.
func (s *pgStore) CreateContribution(ctx context.Context, input CreateContributionInput, validate ContributionValidator) (*ContributionResult, error) {
	var result ContributionResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session schema.ArenaSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.SessionID).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}

		if session.Status != domain.StatusContributing {
			return domain.ErrInvalidSessionState
		}
		if session.ContributeEndTime == nil || !input.Now.Before(*session.ContributeEndTime) {
			return domain.ErrContributionPeriodEnded
		}

		var meme schema.Meme
		err = tx.Where("id = ? AND session_id = ?", input.MemeID, input.SessionID).First(&meme).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemeNotFound
			}
			return fmt.Errorf("failed to get meme: %w", err)
		}
		if !meme.IsWinner {
			return domain.ErrInvalidSessionState
		}

		remainingAfter, err := validate(&session)
		if err != nil {
			return err
		}

		contribution := schema.Contribution{
			SessionID:          input.SessionID,
			MemeID:             input.MemeID,
			ContributorAddress: input.ContributorAddress,
			ContributorIP:      input.ContributorIP,
			Amount:             input.Amount,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&contribution).Error; err != nil {
			return fmt.Errorf("failed to create contribution: %w", err)
		}
		if contribution.ID == 0 {
			return domain.ErrDuplicateContribution
		}

		// Recompute aggregates from the rows so the counters can never drift
		var totals struct {
			Total int64
			Count int64
		}
		err = tx.Model(&schema.Contribution{}).
			Select("COALESCE(SUM(amount), 0) AS total, COUNT(DISTINCT contributor_address) AS count").
			Where("session_id = ?", input.SessionID).
			Scan(&totals).Error
		if err != nil {
			return fmt.Errorf("failed to recompute contribution totals: %w", err)
		}

		if err := tx.Model(&schema.ArenaSession{}).
			Where("id = ?", input.SessionID).
			Updates(map[string]interface{}{
				"total_contributions":     totals.Total,
				"contributor_count":       totals.Count,
				"remaining_contributions": remainingAfter,
			}).Error; err != nil {
			return fmt.Errorf("failed to update session aggregates: %w", err)
		}

		if err := tx.Where("id = ?", input.SessionID).First(&session).Error; err != nil {
			return fmt.Errorf("failed to reload session: %w", err)
		}

		result.Contribution = &contribution
		result.Session = &session
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// HasContribution checks whether the contributor or IP already contributed to the meme
func (s *pgStore) HasContribution(ctx context.Context, memeID uint64, contributorAddress, contributorIP string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Contribution{}).
		Where("meme_id = ? AND (contributor_address = ? OR contributor_ip = ?)", memeID, contributorAddress, contributorIP).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check contribution: %w", err)
	}
	return count > 0, nil
}

// MarkContributionClaimed annotates a contribution once tokens were claimed off-chain
func (s *pgStore) MarkContributionClaimed(ctx context.Context, contributionID uint64, signature string, claimedAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&schema.Contribution{}).
		Where("id = ? AND is_tokens_claimed = ?", contributionID, false).
		Updates(map[string]interface{}{
			"is_tokens_claimed": true,
			"claim_signature":   signature,
			"claimed_at":        claimedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark contribution claimed: %w", res.Error)
	}
	return nil
}

// GetStalledSessions retrieves active sessions whose phase deadline elapsed more
// than grace ago without the corresponding transition firing. Voting sessions
// count as stalled once a meme sits at the threshold: that means the last
// voting window failed to start and no deadline exists to expire.
func (s *pgStore) GetStalledSessions(ctx context.Context, now time.Time, grace time.Duration) ([]schema.ArenaSession, error) {
	cutoff := now.Add(-grace)

	var sessions []schema.ArenaSession
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where(
			s.db.Where("status = ? AND voting_end_time < ?", domain.StatusLastVoting, cutoff).
				Or("status = ? AND contribute_end_time < ?", domain.StatusContributing, cutoff).
				Or("status = ? AND EXISTS (SELECT 1 FROM memes WHERE memes.session_id = arena_sessions.id AND memes.total_votes >= arena_sessions.voting_threshold)",
					domain.StatusVoting),
		).
		Order("id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get stalled sessions: %w", err)
	}
	return sessions, nil
}
