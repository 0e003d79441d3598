package store

import "errors"

var (
	// ErrValidation covers malformed or missing input fields.
	ErrValidation = errors.New("invalid input")
	// ErrUsernameTaken is returned when registering a username that exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrBadCredentials is returned for an unknown username or a wrong
	// password; callers must not distinguish the two.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the requester is not the owner of the
	// record being changed, or lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientStock is returned when an order exceeds available stock.
	ErrInsufficientStock = errors.New("not enough stock available")
	// ErrProtectedAccount is returned on attempts to modify the primary
	// system administrator account.
	ErrProtectedAccount = errors.New("cannot modify the primary administrator account")
	// ErrNotFound is returned for references to nonexistent records.
	ErrNotFound = errors.New("not found")
)
