package cube

import "errors"

var (
	// ErrNotFound is returned when a query matches no cubie. On a valid
	// cube this means the caller asked for a position or color set that
	// cannot exist.
	ErrNotFound = errors.New("cube: no matching cubie")

	// ErrNotCenter is returned when a center cubie was required.
	ErrNotCenter = errors.New("cube: cubie is not a center")

	// ErrInvalidLayer is returned for layer ids outside {-1, 0, 1}.
	ErrInvalidLayer = errors.New("cube: layer must be -1, 0 or 1")

	// ErrCorruptState is returned when a loaded or constructed state breaks
	// the cubie invariants.
	ErrCorruptState = errors.New("cube: corrupt state")
)
