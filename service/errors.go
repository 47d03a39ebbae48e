package service

import (
	"errors"
	"fmt"
	"time"

	"starosta/store"
)

// Domain error categories. Handlers map these onto user-facing replies;
// anything unrecognized is logged and reported generically.
var (
	// ErrInsufficientFunds means a wager or purchase exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient chips")

	// ErrDuplicateVote means the user already voted on the suggestion.
	ErrDuplicateVote = errors.New("already voted on this suggestion")

	// ErrPermission means the caller may not perform the action.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound means the target record is absent or no longer active.
	// Stores return the same sentinel, so errors.Is matches either way.
	ErrNotFound = store.ErrNotFound
)

// ValidationError reports malformed user input. No state changes.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// CooldownError reports an action attempted before its cooldown elapsed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining)
}
