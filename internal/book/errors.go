package book

import "errors"

// Sentinel errors for store and record operations. Validation failures are
// reported as *validate.ValidationError; everything here is recoverable and
// is always returned to the caller, never swallowed.
var (
	// ErrNotFound means an operation referenced an id absent from the book.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means an insertion collided with an existing identity.
	ErrDuplicate = errors.New("already exists")
)
