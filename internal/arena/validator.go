package arena

import (
	"fmt"

	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/store/schema"
)

// ValidateContribution checks a proposed contribution amount against the
// session's remaining capacity and the configured per-user bounds. It returns
// the capacity remaining after the contribution would be accepted.
//
// The fund limits are read from the live configuration, not the session
// snapshot, so operators can widen or tighten bounds mid-session. Callers must
// re-evaluate this inside the same transaction as the contribution insert;
// checking against a stale total lets two concurrent contributions both pass.
func ValidateContribution(cfg *schema.ArenaConfig, session *schema.ArenaSession, amount int64) (int64, error) {
	remaining := cfg.TotalFundLimit - session.TotalContributions
	if remaining < 0 {
		remaining = 0
	}
	if remaining == 0 {
		return 0, domain.ErrFundLimitReached
	}

	if amount > remaining {
		return 0, fmt.Errorf("%w: %s SOL remaining", domain.ErrExceedsRemainingCapacity, domain.SolString(remaining))
	}

	if amount < cfg.MinContribution {
		return 0, fmt.Errorf("%w: minimum is %s SOL", domain.ErrBelowMinContribution, domain.SolString(cfg.MinContribution))
	}

	maxAllowed := cfg.MaxContribution
	if remaining < maxAllowed {
		maxAllowed = remaining
	}
	if amount > maxAllowed {
		return 0, fmt.Errorf("%w: maximum is %s SOL", domain.ErrExceedsMaxContribution, domain.SolString(maxAllowed))
	}

	return remaining - amount, nil
}
