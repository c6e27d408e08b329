package domain

import "errors"

var (
	// ErrSessionNotFound is returned when the referenced arena session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrMemeNotFound is returned when the referenced meme does not exist
	ErrMemeNotFound = errors.New("meme not found")

	// ErrActiveSessionExists is returned when creating a session while another one is still active
	ErrActiveSessionExists = errors.New("an active session already exists")

	// ErrInvalidSessionState is returned when the session is not in the phase the
	// requested action needs
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrMemeCapacityExceeded is returned when the session already holds max_memes memes
	ErrMemeCapacityExceeded = errors.New("meme capacity exceeded")

	// ErrDuplicateVote is returned when the voter or the voter's IP already voted in the session
	ErrDuplicateVote = errors.New("duplicate vote")

	// ErrDuplicateContribution is returned when the contributor or the contributor's IP
	// already contributed to the meme
	ErrDuplicateContribution = errors.New("duplicate contribution")

	// ErrVotingPeriodEnded is returned when a vote arrives after voting_end_time
	ErrVotingPeriodEnded = errors.New("voting period has ended")

	// ErrContributionPeriodEnded is returned when a contribution arrives after contribute_end_time
	ErrContributionPeriodEnded = errors.New("contribution period has ended")

	// ErrFundLimitReached is returned when the session has no remaining contribution capacity
	ErrFundLimitReached = errors.New("session fund limit reached")

	// ErrBelowMinContribution is returned when the amount is below the configured minimum
	ErrBelowMinContribution = errors.New("contribution below minimum")

	// ErrExceedsMaxContribution is returned when the amount exceeds the allowed maximum
	ErrExceedsMaxContribution = errors.New("contribution exceeds maximum")

	// ErrExceedsRemainingCapacity is returned when the amount exceeds the session's
	// remaining contribution capacity
	ErrExceedsRemainingCapacity = errors.New("contribution exceeds remaining capacity")

	// ErrConfigNotFound is returned when the global arena configuration row is missing
	ErrConfigNotFound = errors.New("arena configuration not found")

	// ErrWinnerNotFound is returned when a winner meme is expected but absent
	ErrWinnerNotFound = errors.New("winner meme not found")
)
