package auth

import "errors"

// Service errors. Handlers map these onto HTTP statuses; anything not listed
// here is an internal error and surfaces as a 500.
var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password so
	// responses never reveal which part failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken means the Google ID token failed verification.
	ErrInvalidToken = errors.New("invalid google token")

	// ErrAccountExists means a user already exists for the token's subject.
	ErrAccountExists = errors.New("account already exists")

	// ErrDuplicateField means the chosen username or email is taken by a
	// different account.
	ErrDuplicateField = errors.New("username or email already taken")

	// ErrSessionExhausted means session creation collided on every attempt.
	// With 32 bytes of token entropy this indicates something badly wrong
	// with the randomness source or the store, not bad luck.
	ErrSessionExhausted = errors.New("session creation failed")
)
