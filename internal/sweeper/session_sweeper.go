package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/memearena/arena/internal/adapter"
	"github.com/memearena/arena/internal/arena"
	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/store"
	"github.com/memearena/arena/internal/store/schema"
)

// SessionSweeperConfig holds configuration for the session reconciliation sweeper
type SessionSweeperConfig struct {
	// Interval is the sleep between sweep cycles
	Interval time.Duration
	// StallGrace is how far past a phase deadline a session must be before the
	// sweeper re-drives it; avoids racing an in-flight callback delivery
	StallGrace time.Duration
	// WorkerPoolSize bounds concurrent re-drives
	WorkerPoolSize int
}

// sessionSweeper re-drives sessions whose scheduled callback never arrived, and
// voting sessions whose threshold trigger failed to start the last voting
// window. A scheduler outage otherwise stalls a session forever; the
// status-guarded transitions make the re-drive safe even when the original
// callback shows up late.
type sessionSweeper struct {
	config    *SessionSweeperConfig
	store     store.Store
	machine   *arena.Machine
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewSessionSweeper creates a new session reconciliation sweeper
func NewSessionSweeper(
	config *SessionSweeperConfig,
	st store.Store,
	machine *arena.Machine,
	clock adapter.Clock,
) Sweeper {
	return &sessionSweeper{
		config:    config,
		store:     st,
		machine:   machine,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *sessionSweeper) Name() string {
	return "session-sweeper"
}

// Start begins the sweeper's main loop
func (s *sessionSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting session sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("stall_grace", s.config.StallGrace),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Session sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Session sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}

			if !s.sleep(ctx, s.config.Interval) {
				s.cleanup()
				return nil
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *sessionSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *sessionSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping session sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Session sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Session sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *sessionSweeper) runSweepCycle(ctx context.Context) error {
	now := s.clock.Now()

	stalled, err := s.store.GetStalledSessions(ctx, now, s.config.StallGrace)
	if err != nil {
		return fmt.Errorf("failed to get stalled sessions: %w", err)
	}

	for i := range stalled {
		session := stalled[i]
		s.pool.Submit(func() {
			if err := s.redriveSession(ctx, &session); err != nil {
				logger.ErrorCtx(ctx, err,
					zap.String("message", "failed to re-drive stalled session"),
					zap.Uint64("session_id", session.ID),
					zap.String("status", string(session.Status)))
			}
		})
	}

	// A completed latest session whose next-session time has long passed means
	// the next-session callback was lost too
	if err := s.ensureSessionRunning(ctx, now); err != nil {
		return err
	}

	return nil
}

// redriveSession replays the missing transition for a stalled session. The
// transition no-ops if the original callback landed in the meantime.
func (s *sessionSweeper) redriveSession(ctx context.Context, session *schema.ArenaSession) error {
	logger.InfoCtx(ctx, "Re-driving stalled session",
		zap.Uint64("session_id", session.ID),
		zap.String("status", string(session.Status)))

	operation := func() error {
		switch session.Status {
		case domain.StatusVoting:
			// A voting session is only reported stalled when a meme reached the
			// threshold without the last voting window starting
			return s.machine.StartLastVoting(ctx, session.ID)
		case domain.StatusLastVoting:
			return s.machine.StartContributing(ctx, session.ID)
		case domain.StatusContributing:
			return s.machine.EndContributing(ctx, session.ID)
		default:
			return nil
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Second
	b.MaxInterval = 1 * time.Minute
	b.MaxElapsedTime = 5 * time.Minute

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Re-drive attempt failed, retrying",
			zap.Uint64("session_id", session.ID),
			zap.Duration("next_retry_in", next),
			zap.Error(err))
	})
}

// ensureSessionRunning starts a fresh session when none is active and the
// latest completed session's next-session time elapsed more than grace ago
func (s *sessionSweeper) ensureSessionRunning(ctx context.Context, now time.Time) error {
	active, err := s.store.GetActiveSession(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	latest, err := s.store.GetLatestSession(ctx)
	if err != nil {
		return err
	}
	if latest == nil {
		// Bootstrap: no session has ever existed
		session, err := s.machine.StartNewSessionIfNone(ctx)
		if err != nil {
			return fmt.Errorf("failed to bootstrap first session: %w", err)
		}
		if session != nil {
			logger.InfoCtx(ctx, "Bootstrapped first arena session", zap.Uint64("session_id", session.ID))
		}
		return nil
	}

	if latest.Status != domain.StatusCompleted {
		return nil
	}
	if latest.NextSessionStartTime == nil || now.Before(latest.NextSessionStartTime.Add(s.config.StallGrace)) {
		return nil
	}

	session, err := s.machine.StartNewSessionIfNone(ctx)
	if err != nil {
		return fmt.Errorf("failed to start overdue session: %w", err)
	}
	if session != nil {
		logger.InfoCtx(ctx, "Started overdue arena session",
			zap.Uint64("session_id", session.ID),
			zap.Uint64("previous_session_id", latest.ID))
	}

	return nil
}

// sleep waits for the duration or returns false if the context is canceled or
// a stop was requested
func (s *sessionSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	case <-s.clock.After(d):
		return true
	}
}
