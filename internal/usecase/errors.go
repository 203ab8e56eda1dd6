package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrLineupInvalid rejects an event that references a player outside
	// either team's match-day roster. The event is never aggregated.
	ErrLineupInvalid = errors.New("player not part of the match-day roster")

	// ErrDispatcherClosed rejects events submitted after shutdown started.
	ErrDispatcherClosed = errors.New("event dispatcher is closed")

	// ErrEventLogUnavailable halts intake after an event log append fails.
	// The log is the source of truth; ingesting past a failed append would
	// leave aggregates that no replay can reproduce.
	ErrEventLogUnavailable = errors.New("event log unavailable")
)
