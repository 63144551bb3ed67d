package domain

import "errors"

// Every failure in the pipeline is fatal to the run; these sentinels
// classify the failure for the caller. Wrap with fmt.Errorf("...: %w", ...).
var (
	// ErrConfiguration marks invalid chunking/scoring parameters,
	// detected before any work starts.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrScoringUnavailable marks a scoring backend that cannot be
	// initialized or reached at all.
	ErrScoringUnavailable = errors.New("scoring backend unavailable")

	// ErrScoringFailed marks a scoring backend that failed mid-batch.
	ErrScoringFailed = errors.New("scoring failed")

	// ErrInvariantViolation marks a contract breach between pipeline
	// stages, such as a score vector shorter than the pair batch.
	ErrInvariantViolation = errors.New("invariant violation")
)
