package dynarray

import "github.com/pkg/errors"

// Errors returned by Array and Vector operations. They are always wrapped
// with the failing operation's context, match them with errors.Is.
var (
	// ErrState is returned when an operation runs in the wrong lifecycle state,
	// e.g. Append on an uninitialized array or Init on an initialized one.
	ErrState = errors.New("dynarray: invalid array state")

	// ErrIndex is returned when an index or insert position is out of range.
	ErrIndex = errors.New("dynarray: index out of range")

	// ErrAllocation is returned when the buffer could not be (re)allocated,
	// including size computations that would overflow.
	ErrAllocation = errors.New("dynarray: allocation failed")

	// ErrInvalidArgument is returned for nil or malformed element data.
	ErrInvalidArgument = errors.New("dynarray: invalid argument")
)
