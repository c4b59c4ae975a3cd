package ward

import "errors"

var (
	// ErrInvalidArgument is returned when an operation is given a handle it
	// cannot work on.
	ErrInvalidArgument = errors.New("invalid argument")
)
