package efficiency

import "errors"

// ErrInvalidArgument is returned when a view is invoked with input it cannot
// work with, such as an empty item code
var ErrInvalidArgument = errors.New("invalid argument")
