package hub

import "errors"

// Domain error kinds. Every business-rule failure wraps exactly one of
// these so callers can dispatch with errors.Is; anything else is an
// infrastructure fault from the persistence or storage layer.
var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrConflict is returned on a uniqueness violation: duplicate email,
	// duplicate membership pair, duplicate submission.
	ErrConflict = errors.New("already exists")

	// ErrNotFound is returned when a referenced record does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an admin attempts a participant-only action.
	ErrForbidden = errors.New("forbidden")

	// ErrUnsupportedMedia is returned for a file extension outside the
	// whitelist in effect.
	ErrUnsupportedMedia = errors.New("unsupported file type")

	// ErrState is returned when a hackathon carries an unrecognized
	// submission type. This is a server-side configuration fault, not a
	// caller error.
	ErrState = errors.New("invalid submission type configured")
)
