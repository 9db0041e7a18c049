package ivc

import "errors"

var (
	// ErrShapeMismatch is returned when a vector length in a supplied
	// instance or trace does not match the circuit shape derived at
	// setup. Input assembly aborts; lengths are never truncated or
	// padded.
	ErrShapeMismatch = errors.New("ivc: shape mismatch")

	// ErrPointAtInfinity is returned when a commitment expected to be a
	// finite affine point is the group identity, which has no affine
	// coordinates.
	ErrPointAtInfinity = errors.New("ivc: point at infinity")

	// ErrChallengeCount is returned when the native challenge count is
	// outside the supported range {0, 1, 2, 3}.
	ErrChallengeCount = errors.New("ivc: unsupported challenge count")

	// ErrValueTooLarge is returned when a support-field value does not
	// fit in the native field. The projection must be exact; values are
	// never reduced.
	ErrValueTooLarge = errors.New("ivc: value does not fit native field")
)
