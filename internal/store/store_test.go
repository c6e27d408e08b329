package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func testSessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		MaxMemes:            5,
		VotingThreshold:     3,
		VotingTimeLimit:     300,
		ContributeTimeLimit: 3600,
		NextSessionDelay:    600,
		TotalFundLimit:      10_000_000_000,
	}
}

// createVotingSession inserts an active session in the voting phase
func createVotingSession(t *testing.T, store Store) *schema.ArenaSession {
	session := &schema.ArenaSession{
		Status:    domain.StatusVoting,
		Active:    true,
		StartTime: time.Now().UTC(),
		Config:    testSessionConfig(),
	}
	require.NoError(t, store.CreateSession(context.Background(), session))
	require.NotZero(t, session.ID)
	return session
}

// createMeme inserts a meme into the session
func createMeme(t *testing.T, store Store, sessionID uint64, name string) *schema.Meme {
	meme, err := store.CreateMeme(context.Background(), CreateMemeInput{
		SessionID:     sessionID,
		Name:          name,
		Ticker:        name,
		MemeProgramID: fmt.Sprintf("prog-%d-%s", sessionID, name),
	})
	require.NoError(t, err)
	require.NotZero(t, meme.ID)
	return meme
}

// advanceToContributing drives a voting session to the contributing phase with
// the given meme as winner
func advanceToContributing(t *testing.T, store Store, sessionID, winnerMemeID uint64, contributeEnd time.Time) {
	ctx := context.Background()

	advanced, err := store.MarkLastVoting(ctx, sessionID, time.Now().UTC().Add(5*time.Minute))
	require.NoError(t, err)
	require.True(t, advanced)

	advanced, err = store.BeginContributing(ctx, BeginContributingInput{
		SessionID:            sessionID,
		WinnerMemeID:         winnerMemeID,
		ContributeEndTime:    contributeEnd,
		NextSessionStartTime: contributeEnd.Add(10 * time.Minute),
		ClaimAvailableTime:   contributeEnd.Add(15 * time.Minute),
		WinnerTokenMeta:      []byte(`{"name":"test"}`),
	})
	require.NoError(t, err)
	require.True(t, advanced)
}

// acceptAll is a contribution validator that never rejects
func acceptAll(session *schema.ArenaSession) (int64, error) {
	return 0, nil
}

// =============================================================================
// Test: Config
// =============================================================================

func testGetConfig(t *testing.T, store Store) {
	cfg, err := store.GetConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Values seeded by the test harness
	assert.Equal(t, 5, cfg.MaxMemes)
	assert.Equal(t, int64(3), cfg.VotingThreshold)
	assert.Equal(t, int64(10_000_000_000), cfg.TotalFundLimit)
}

func testUpdateConfig(t *testing.T, store Store) {
	ctx := context.Background()

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// The config row survives table resets, so put the seeded values back for
	// the rest of the suite
	original := *cfg
	defer func() {
		require.NoError(t, store.UpdateConfig(ctx, &original))
	}()

	t.Run("updates the configuration row", func(t *testing.T) {
		cfg.MaxMemes = 8
		cfg.VotingThreshold = 7
		cfg.TotalFundLimit = 20_000_000_000
		require.NoError(t, store.UpdateConfig(ctx, cfg))

		updated, err := store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8, updated.MaxMemes)
		assert.Equal(t, int64(7), updated.VotingThreshold)
		assert.Equal(t, int64(20_000_000_000), updated.TotalFundLimit)
		assert.False(t, updated.UpdatedAt.Before(original.UpdatedAt))
	})

	t.Run("rejects an unknown config row", func(t *testing.T) {
		missing := *cfg
		missing.ID = cfg.ID + 1000
		err := store.UpdateConfig(ctx, &missing)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}

// =============================================================================
// Test: Sessions
// =============================================================================

func testCreateSession(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates and retrieves a session", func(t *testing.T) {
		session := createVotingSession(t, store)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusVoting, got.Status)
		assert.True(t, got.Active)
		assert.Equal(t, int64(3), got.Config.VotingThreshold)

		active, err := store.GetActiveSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, session.ID, active.ID)
	})

	t.Run("rejects a second active session", func(t *testing.T) {
		err := store.CreateSession(ctx, &schema.ArenaSession{
			Status:    domain.StatusVoting,
			Active:    true,
			StartTime: time.Now().UTC(),
			Config:    testSessionConfig(),
		})
		assert.ErrorIs(t, err, domain.ErrActiveSessionExists)
	})

	t.Run("allows inactive sessions alongside the active one", func(t *testing.T) {
		endTime := time.Now().UTC()
		err := store.CreateSession(ctx, &schema.ArenaSession{
			Status:    domain.StatusCompleted,
			Active:    false,
			StartTime: endTime.Add(-time.Hour),
			EndTime:   &endTime,
			Config:    testSessionConfig(),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown session ID maps to not found", func(t *testing.T) {
		_, err := store.GetSessionByID(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func testGetLatestSession(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil when no session exists", func(t *testing.T) {
		latest, err := store.GetLatestSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, latest)

		active, err := store.GetActiveSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("returns the most recent session", func(t *testing.T) {
		endTime := time.Now().UTC()
		first := &schema.ArenaSession{
			Status:    domain.StatusCompleted,
			Active:    false,
			StartTime: endTime.Add(-2 * time.Hour),
			EndTime:   &endTime,
			Config:    testSessionConfig(),
		}
		require.NoError(t, store.CreateSession(ctx, first))

		second := createVotingSession(t, store)

		latest, err := store.GetLatestSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
	})
}

// =============================================================================
// Test: Memes
// =============================================================================

func testCreateMeme(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)

	t.Run("creates a meme in a voting session", func(t *testing.T) {
		meme := createMeme(t, store, session.ID, "DOGE")
		assert.Equal(t, session.ID, meme.SessionID)
		assert.Equal(t, int64(0), meme.TotalVotes)
		assert.False(t, meme.IsWinner)

		got, err := store.GetMemeByID(ctx, meme.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "DOGE", got.Name)
	})

	t.Run("unknown session maps to not found", func(t *testing.T) {
		_, err := store.CreateMeme(ctx, CreateMemeInput{
			SessionID:     999999,
			Name:          "GHOST",
			Ticker:        "GHOST",
			MemeProgramID: "prog-ghost",
		})
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("enforces the meme capacity", func(t *testing.T) {
		// One meme exists already; the snapshot allows five
		for i := 0; i < 4; i++ {
			createMeme(t, store, session.ID, fmt.Sprintf("MEME%d", i))
		}

		_, err := store.CreateMeme(ctx, CreateMemeInput{
			SessionID:     session.ID,
			Name:          "OVERFLOW",
			Ticker:        "OVER",
			MemeProgramID: "prog-overflow",
		})
		assert.ErrorIs(t, err, domain.ErrMemeCapacityExceeded)
	})

	t.Run("unknown meme reads as nil", func(t *testing.T) {
		meme, err := store.GetMemeByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, meme)
	})
}

func testGetSessionMemes(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)

	memeA := createMeme(t, store, session.ID, "ALPHA")
	memeB := createMeme(t, store, session.ID, "BETA")
	memeC := createMeme(t, store, session.ID, "GAMMA")

	// Two votes for BETA, one for GAMMA
	for i, memeID := range []uint64{memeB.ID, memeB.ID, memeC.ID} {
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       memeID,
			VoterAddress: fmt.Sprintf("voter%d", i),
			VoterIP:      fmt.Sprintf("10.0.0.%d", i),
		})
		require.NoError(t, err)
	}

	t.Run("orders memes by vote count", func(t *testing.T) {
		memes, err := store.GetSessionMemes(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, memes, 3)
		assert.Equal(t, memeB.ID, memes[0].ID)
		assert.Equal(t, memeC.ID, memes[1].ID)
		assert.Equal(t, memeA.ID, memes[2].ID)
	})

	t.Run("top meme is the highest voted", func(t *testing.T) {
		top, err := store.GetTopMeme(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, memeB.ID, top.ID)
		assert.Equal(t, int64(2), top.TotalVotes)
	})

	t.Run("vote ties break on the earlier meme", func(t *testing.T) {
		// Give GAMMA a second vote to tie with BETA
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       memeC.ID,
			VoterAddress: "voter-tie",
			VoterIP:      "10.0.0.100",
		})
		require.NoError(t, err)

		top, err := store.GetTopMeme(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, memeB.ID, top.ID)
	})

	t.Run("empty session has no top meme", func(t *testing.T) {
		top, err := store.GetTopMeme(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, top)
	})
}

// =============================================================================
// Test: Votes
// =============================================================================

func testCreateVote(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	meme := createMeme(t, store, session.ID, "DOGE")

	t.Run("records a vote and increments the count", func(t *testing.T) {
		result, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter1",
			VoterIP:      "10.0.0.1",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Meme.TotalVotes)
		assert.False(t, result.ThresholdReached)
	})

	t.Run("rejects a second vote from the same address", func(t *testing.T) {
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter1",
			VoterIP:      "10.0.0.99",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateVote)
	})

	t.Run("rejects a second vote from the same IP", func(t *testing.T) {
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter99",
			VoterIP:      "10.0.0.1",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateVote)
	})

	t.Run("duplicate votes leave the count unchanged", func(t *testing.T) {
		got, err := store.GetMemeByID(ctx, meme.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.TotalVotes)
	})

	t.Run("rejects a vote for a meme outside the session", func(t *testing.T) {
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       999999,
			VoterAddress: "voter2",
			VoterIP:      "10.0.0.2",
		})
		assert.ErrorIs(t, err, domain.ErrMemeNotFound)
	})

	t.Run("threshold vote is flagged", func(t *testing.T) {
		// Threshold is 3; votes two and three come from fresh voters
		result, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter2",
			VoterIP:      "10.0.0.2",
		})
		require.NoError(t, err)
		assert.False(t, result.ThresholdReached)

		result, err = store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter3",
			VoterIP:      "10.0.0.3",
		})
		require.NoError(t, err)
		assert.True(t, result.ThresholdReached)
	})

	t.Run("votes above the threshold re-flag while the session stays in voting", func(t *testing.T) {
		// The trigger must re-fire when the transition failed the first time
		result, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter4",
			VoterIP:      "10.0.0.4",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Meme.TotalVotes)
		assert.True(t, result.ThresholdReached)
	})

	t.Run("votes past the threshold during last voting are not flagged", func(t *testing.T) {
		now := time.Now().UTC()
		advanced, err := store.MarkLastVoting(ctx, session.ID, now.Add(5*time.Minute))
		require.NoError(t, err)
		require.True(t, advanced)

		result, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter5",
			VoterIP:      "10.0.0.5",
			Now:          now,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), result.Meme.TotalVotes)
		assert.False(t, result.ThresholdReached)
	})

	t.Run("votes after the last voting deadline are rejected", func(t *testing.T) {
		// Past the window the winner may already be under selection
		_, err := store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "voter6",
			VoterIP:      "10.0.0.6",
			Now:          time.Now().UTC().Add(10 * time.Minute),
		})
		assert.ErrorIs(t, err, domain.ErrVotingPeriodEnded)

		// The vote left no trace
		got, err := store.GetMemeByID(ctx, meme.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.TotalVotes)
	})
}

func testVotePhaseGuard(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	meme := createMeme(t, store, session.ID, "DOGE")

	advanceToContributing(t, store, session.ID, meme.ID, time.Now().UTC().Add(time.Hour))

	_, err := store.CreateVote(ctx, CreateVoteInput{
		SessionID:    session.ID,
		MemeID:       meme.ID,
		VoterAddress: "voter1",
		VoterIP:      "10.0.0.1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

// =============================================================================
// Test: Phase transitions
// =============================================================================

func testMarkLastVoting(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	votingEnd := time.Now().UTC().Add(5 * time.Minute).Truncate(time.Millisecond)

	t.Run("advances a voting session", func(t *testing.T) {
		advanced, err := store.MarkLastVoting(ctx, session.ID, votingEnd)
		require.NoError(t, err)
		assert.True(t, advanced)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusLastVoting, got.Status)
		require.NotNil(t, got.VotingEndTime)
		assert.WithinDuration(t, votingEnd, *got.VotingEndTime, time.Second)
	})

	t.Run("second attempt is a no-op", func(t *testing.T) {
		advanced, err := store.MarkLastVoting(ctx, session.ID, votingEnd.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, advanced)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, got.VotingEndTime)
		assert.WithinDuration(t, votingEnd, *got.VotingEndTime, time.Second)
	})
}

func testBeginContributing(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	meme := createMeme(t, store, session.ID, "DOGE")
	contributeEnd := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)

	t.Run("rejected while still in voting", func(t *testing.T) {
		advanced, err := store.BeginContributing(ctx, BeginContributingInput{
			SessionID:         session.ID,
			WinnerMemeID:      meme.ID,
			ContributeEndTime: contributeEnd,
		})
		require.NoError(t, err)
		assert.False(t, advanced)
	})

	t.Run("advances a last voting session and marks the winner", func(t *testing.T) {
		advanced, err := store.MarkLastVoting(ctx, session.ID, time.Now().UTC())
		require.NoError(t, err)
		require.True(t, advanced)

		advanced, err = store.BeginContributing(ctx, BeginContributingInput{
			SessionID:            session.ID,
			WinnerMemeID:         meme.ID,
			ContributeEndTime:    contributeEnd,
			NextSessionStartTime: contributeEnd.Add(10 * time.Minute),
			ClaimAvailableTime:   contributeEnd.Add(15 * time.Minute),
			WinnerTokenMeta:      []byte(`{"name":"DOGE","symbol":"DOGE"}`),
		})
		require.NoError(t, err)
		assert.True(t, advanced)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusContributing, got.Status)
		require.NotNil(t, got.WinnerMemeID)
		assert.Equal(t, meme.ID, *got.WinnerMemeID)
		require.NotNil(t, got.ContributeEndTime)
		assert.WithinDuration(t, contributeEnd, *got.ContributeEndTime, time.Second)
		assert.Equal(t, int64(0), got.TotalContributions)
		assert.NotEmpty(t, got.WinnerTokenMeta)

		winner, err := store.GetMemeByID(ctx, meme.ID)
		require.NoError(t, err)
		assert.True(t, winner.IsWinner)
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		advanced, err := store.BeginContributing(ctx, BeginContributingInput{
			SessionID:         session.ID,
			WinnerMemeID:      meme.ID,
			ContributeEndTime: contributeEnd.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.False(t, advanced)
	})
}

func testCompleteSession(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	meme := createMeme(t, store, session.ID, "DOGE")
	advanceToContributing(t, store, session.ID, meme.ID, time.Now().UTC().Add(time.Hour))

	endTime := time.Now().UTC().Truncate(time.Millisecond)
	nextStart := endTime.Add(10 * time.Minute)

	t.Run("completes a contributing session", func(t *testing.T) {
		advanced, err := store.CompleteSession(ctx, CompleteSessionInput{
			SessionID:            session.ID,
			EndTime:              endTime,
			TokenMintAddress:     "mint-1",
			TokenCreateTx:        "tx-1",
			InitialVaultTokens:   "1000000",
			NextSessionStartTime: nextStart,
		})
		require.NoError(t, err)
		assert.True(t, advanced)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		assert.False(t, got.Active)
		require.NotNil(t, got.TokenMintAddress)
		assert.Equal(t, "mint-1", *got.TokenMintAddress)
		require.NotNil(t, got.InitialVaultTokens)
		assert.Equal(t, "1000000", *got.InitialVaultTokens)
	})

	t.Run("releases the active session slot", func(t *testing.T) {
		active, err := store.GetActiveSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)

		// A fresh session can now be created
		createVotingSession(t, store)
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		advanced, err := store.CompleteSession(ctx, CompleteSessionInput{
			SessionID: session.ID,
			EndTime:   endTime,
		})
		require.NoError(t, err)
		assert.False(t, advanced)
	})
}

// =============================================================================
// Test: Contributions
// =============================================================================

func testCreateContribution(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()
	session := createVotingSession(t, store)
	winner := createMeme(t, store, session.ID, "DOGE")
	advanceToContributing(t, store, session.ID, winner.ID, now.Add(time.Hour))

	t.Run("records a contribution and recomputes aggregates", func(t *testing.T) {
		result, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor1",
			ContributorIP:      "10.0.0.1",
			Amount:             500_000_000,
			Now:                now,
		}, func(s *schema.ArenaSession) (int64, error) {
			return s.Config.TotalFundLimit - s.TotalContributions - 500_000_000, nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(500_000_000), result.Contribution.Amount)
		assert.Equal(t, int64(500_000_000), result.Session.TotalContributions)
		assert.Equal(t, int64(1), result.Session.ContributorCount)
		require.NotNil(t, result.Session.RemainingContributions)
		assert.Equal(t, int64(9_500_000_000), *result.Session.RemainingContributions)
	})

	t.Run("aggregates accumulate across contributors", func(t *testing.T) {
		result, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor2",
			ContributorIP:      "10.0.0.2",
			Amount:             300_000_000,
			Now:                now,
		}, acceptAll)
		require.NoError(t, err)
		assert.Equal(t, int64(800_000_000), result.Session.TotalContributions)
		assert.Equal(t, int64(2), result.Session.ContributorCount)
	})

	t.Run("rejects a second contribution from the same address", func(t *testing.T) {
		_, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor1",
			ContributorIP:      "10.0.0.99",
			Amount:             100_000_000,
			Now:                now,
		}, acceptAll)
		assert.ErrorIs(t, err, domain.ErrDuplicateContribution)
	})

	t.Run("rejects a second contribution from the same IP", func(t *testing.T) {
		_, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor99",
			ContributorIP:      "10.0.0.1",
			Amount:             100_000_000,
			Now:                now,
		}, acceptAll)
		assert.ErrorIs(t, err, domain.ErrDuplicateContribution)
	})

	t.Run("duplicates leave the aggregates unchanged", func(t *testing.T) {
		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(800_000_000), got.TotalContributions)
		assert.Equal(t, int64(2), got.ContributorCount)
	})

	t.Run("validator rejection aborts the contribution", func(t *testing.T) {
		_, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor3",
			ContributorIP:      "10.0.0.3",
			Amount:             100_000_000_000,
			Now:                now,
		}, func(s *schema.ArenaSession) (int64, error) {
			return 0, domain.ErrExceedsMaxContribution
		})
		assert.ErrorIs(t, err, domain.ErrExceedsMaxContribution)

		got, err := store.GetSessionByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(800_000_000), got.TotalContributions)
	})

	t.Run("rejects contributions after the window closed", func(t *testing.T) {
		_, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             winner.ID,
			ContributorAddress: "contributor4",
			ContributorIP:      "10.0.0.4",
			Amount:             100_000_000,
			Now:                now.Add(2 * time.Hour),
		}, acceptAll)
		assert.ErrorIs(t, err, domain.ErrContributionPeriodEnded)
	})

	t.Run("rejects contributions to a non-winner meme", func(t *testing.T) {
		loser := createMeme(t, store, session.ID, "LOSER")
		_, err := store.CreateContribution(ctx, CreateContributionInput{
			SessionID:          session.ID,
			MemeID:             loser.ID,
			ContributorAddress: "contributor5",
			ContributorIP:      "10.0.0.5",
			Amount:             100_000_000,
			Now:                now,
		}, acceptAll)
		assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
	})
}

func testContributionPhaseGuard(t *testing.T, store Store) {
	ctx := context.Background()
	session := createVotingSession(t, store)
	meme := createMeme(t, store, session.ID, "DOGE")

	_, err := store.CreateContribution(ctx, CreateContributionInput{
		SessionID:          session.ID,
		MemeID:             meme.ID,
		ContributorAddress: "contributor1",
		ContributorIP:      "10.0.0.1",
		Amount:             100_000_000,
		Now:                time.Now().UTC(),
	}, acceptAll)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

func testHasContribution(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()
	session := createVotingSession(t, store)
	winner := createMeme(t, store, session.ID, "DOGE")
	advanceToContributing(t, store, session.ID, winner.ID, now.Add(time.Hour))

	_, err := store.CreateContribution(ctx, CreateContributionInput{
		SessionID:          session.ID,
		MemeID:             winner.ID,
		ContributorAddress: "contributor1",
		ContributorIP:      "10.0.0.1",
		Amount:             500_000_000,
		Now:                now,
	}, acceptAll)
	require.NoError(t, err)

	t.Run("matches on address", func(t *testing.T) {
		exists, err := store.HasContribution(ctx, winner.ID, "contributor1", "10.0.0.99")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("matches on IP", func(t *testing.T) {
		exists, err := store.HasContribution(ctx, winner.ID, "contributor99", "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("no match for a fresh contributor", func(t *testing.T) {
		exists, err := store.HasContribution(ctx, winner.ID, "contributor99", "10.0.0.99")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func testMarkContributionClaimed(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()
	session := createVotingSession(t, store)
	winner := createMeme(t, store, session.ID, "DOGE")
	advanceToContributing(t, store, session.ID, winner.ID, now.Add(time.Hour))

	result, err := store.CreateContribution(ctx, CreateContributionInput{
		SessionID:          session.ID,
		MemeID:             winner.ID,
		ContributorAddress: "contributor1",
		ContributorIP:      "10.0.0.1",
		Amount:             500_000_000,
		Now:                now,
	}, acceptAll)
	require.NoError(t, err)

	claimedAt := now.Truncate(time.Millisecond)
	require.NoError(t, store.MarkContributionClaimed(ctx, result.Contribution.ID, "claim-sig-1", claimedAt))

	// A second claim must not overwrite the original signature
	require.NoError(t, store.MarkContributionClaimed(ctx, result.Contribution.ID, "claim-sig-2", claimedAt.Add(time.Hour)))

	exists, err := store.HasContribution(ctx, winner.ID, "contributor1", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, exists)
}

// =============================================================================
// Test: Stalled sessions
// =============================================================================

func testGetStalledSessions(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()
	grace := 5 * time.Minute

	t.Run("a contributing session past its deadline is stalled", func(t *testing.T) {
		session := createVotingSession(t, store)
		meme := createMeme(t, store, session.ID, "DOGE")
		// The contribute-end callback should have fired ten minutes ago
		advanceToContributing(t, store, session.ID, meme.ID, now.Add(-10*time.Minute))

		stalled, err := store.GetStalledSessions(ctx, now, grace)
		require.NoError(t, err)
		require.Len(t, stalled, 1)
		assert.Equal(t, session.ID, stalled[0].ID)
		assert.Equal(t, domain.StatusContributing, stalled[0].Status)

		// Completing it clears the stall
		advanced, err := store.CompleteSession(ctx, CompleteSessionInput{
			SessionID:            session.ID,
			EndTime:              now,
			NextSessionStartTime: now.Add(10 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, advanced)

		stalled, err = store.GetStalledSessions(ctx, now, grace)
		require.NoError(t, err)
		assert.Empty(t, stalled)
	})

	t.Run("a voting session holding a threshold meme is stalled", func(t *testing.T) {
		session := createVotingSession(t, store)
		meme := createMeme(t, store, session.ID, "WOJAK")

		// Two of three votes: below the threshold, nothing is stalled
		for i, voter := range []string{"stall-voter1", "stall-voter2"} {
			_, err := store.CreateVote(ctx, CreateVoteInput{
				SessionID:    session.ID,
				MemeID:       meme.ID,
				VoterAddress: voter,
				VoterIP:      fmt.Sprintf("10.1.0.%d", i+1),
			})
			require.NoError(t, err)
		}

		stalled, err := store.GetStalledSessions(ctx, now, grace)
		require.NoError(t, err)
		assert.Empty(t, stalled)

		// The threshold vote lands but the last voting window never starts
		_, err = store.CreateVote(ctx, CreateVoteInput{
			SessionID:    session.ID,
			MemeID:       meme.ID,
			VoterAddress: "stall-voter3",
			VoterIP:      "10.1.0.3",
		})
		require.NoError(t, err)

		// No deadline exists in the voting phase, so grace does not apply
		stalled, err = store.GetStalledSessions(ctx, now, time.Hour)
		require.NoError(t, err)
		require.Len(t, stalled, 1)
		assert.Equal(t, session.ID, stalled[0].ID)
		assert.Equal(t, domain.StatusVoting, stalled[0].Status)

		// Starting the last voting window clears the stall
		advanced, err := store.MarkLastVoting(ctx, session.ID, now.Add(5*time.Minute))
		require.NoError(t, err)
		require.True(t, advanced)

		stalled, err = store.GetStalledSessions(ctx, now, grace)
		require.NoError(t, err)
		assert.Empty(t, stalled)

		// Release the active slot for the following sub-tests
		advanced, err = store.BeginContributing(ctx, BeginContributingInput{
			SessionID:            session.ID,
			WinnerMemeID:         meme.ID,
			ContributeEndTime:    now.Add(time.Hour),
			NextSessionStartTime: now.Add(2 * time.Hour),
			ClaimAvailableTime:   now.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		require.True(t, advanced)
		advanced, err = store.CompleteSession(ctx, CompleteSessionInput{
			SessionID:            session.ID,
			EndTime:              now,
			NextSessionStartTime: now.Add(10 * time.Minute),
		})
		require.NoError(t, err)
		require.True(t, advanced)
	})

	t.Run("a last voting session past its deadline is stalled", func(t *testing.T) {
		session := createVotingSession(t, store)
		createMeme(t, store, session.ID, "PEPE")

		advanced, err := store.MarkLastVoting(ctx, session.ID, now.Add(-10*time.Minute))
		require.NoError(t, err)
		require.True(t, advanced)

		stalled, err := store.GetStalledSessions(ctx, now, grace)
		require.NoError(t, err)
		require.Len(t, stalled, 1)
		assert.Equal(t, session.ID, stalled[0].ID)
		assert.Equal(t, domain.StatusLastVoting, stalled[0].Status)
	})

	t.Run("a deadline within the grace window is not stalled", func(t *testing.T) {
		// The previous sub-test's session stalled ten minutes ago; with a
		// fifteen-minute grace it is left alone
		stalled, err := store.GetStalledSessions(ctx, now, 15*time.Minute)
		require.NoError(t, err)
		assert.Empty(t, stalled)
	})
}

// =============================================================================
// Suite runner
// =============================================================================

// RunStoreTests runs the full store test suite against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetConfig", testGetConfig},
		{"UpdateConfig", testUpdateConfig},
		{"CreateSession", testCreateSession},
		{"GetLatestSession", testGetLatestSession},
		{"CreateMeme", testCreateMeme},
		{"GetSessionMemes", testGetSessionMemes},
		{"CreateVote", testCreateVote},
		{"VotePhaseGuard", testVotePhaseGuard},
		{"MarkLastVoting", testMarkLastVoting},
		{"BeginContributing", testBeginContributing},
		{"CompleteSession", testCompleteSession},
		{"CreateContribution", testCreateContribution},
		{"ContributionPhaseGuard", testContributionPhaseGuard},
		{"HasContribution", testHasContribution},
		{"MarkContributionClaimed", testMarkContributionClaimed},
		{"GetStalledSessions", testGetStalledSessions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
