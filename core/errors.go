package core

import "errors"

var (
	// Validation
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidRequest = errors.New("invalid request")

	// Authentication
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrAddressMismatch  = errors.New("token address mismatch")

	// Round state
	ErrNoActiveRound = errors.New("no active round")
	ErrRoundResolved = errors.New("round already resolved")

	// Storage
	ErrNotFound             = errors.New("key not found")
	ErrStoreOperationFailed = errors.New("store operation failed")

	ErrInvariantViolation = errors.New("invariant violation")
)

// InvariantViolation reports a programming defect in the game engine.
// It is raised with panic and recovered at the service boundary.
type InvariantViolation struct {
	Reason string
}

func (e InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

func (e InvariantViolation) Unwrap() error {
	return ErrInvariantViolation
}
