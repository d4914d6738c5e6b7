// Package apperr defines the named error conditions the engine raises (§6,
// §7). These are sentinel values, not exception types: callers compare
// with errors.Is, and the reducer always returns the prior state alongside
// one of these when a command fails.
package apperr

import "errors"

// Configuration errors: raised during CREATE/START; no state change.
var (
	ErrUnsupportedGroupCount = errors.New("unsupported group count")
	ErrMissingGroupStandings = errors.New("missing group standings")
	ErrInvalidScore          = errors.New("invalid score")
	ErrMissingSettings       = errors.New("missing required tournament settings")
	ErrUnsupportedTeamTotal  = errors.New("unsupported team total for this format")
)

// Not-found errors: the command becomes a no-op with this error.
var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrContainerNotFound  = errors.New("container not found")
	ErrTeamNotFound       = errors.New("team not found")
)

// Precondition violations: no-op with this error.
var (
	ErrNotInConfiguration   = errors.New("tournament is not in configuration status")
	ErrAlreadyStarted       = errors.New("tournament has already started")
	ErrRoundNotYetComplete  = errors.New("prior round has not completed")
	ErrTournamentNotRunning = errors.New("tournament is not in-progress")
)

// ErrInvariantViolation is fatal: the engine aborts the reduce step and the
// caller should treat it as a bug report, not a recoverable condition (§7).
var ErrInvariantViolation = errors.New("internal invariant violation")
