package physics

import "errors"

// Domain errors for world operations.
var (
	// ErrNonPositiveMass indicates a particle created with mass <= 0.
	ErrNonPositiveMass = errors.New("physics: non-positive mass")

	// ErrNonPositiveRadius indicates a particle created with radius <= 0.
	ErrNonPositiveRadius = errors.New("physics: non-positive radius")

	// ErrDuplicateID indicates an insert that would duplicate an existing particle id.
	ErrDuplicateID = errors.New("physics: duplicate particle id")
)
