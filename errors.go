package sprite

import "errors"

// Sentinel errors returned by the sprite packages.
var (
	// ErrDurationMismatch is reported when an Animation is built with a
	// duration list whose length differs from the item count.
	ErrDurationMismatch = errors.New("sprite: durations length does not match items")

	// ErrInvalidDuration is reported for a frame duration that is not
	// strictly positive.
	ErrInvalidDuration = errors.New("sprite: frame duration must be positive")

	// ErrCapacityExceeded is returned when a batch would address more
	// vertices than a signed 32-bit base offset can hold.
	ErrCapacityExceeded = errors.New("sprite: batch vertex capacity exceeded")
)
