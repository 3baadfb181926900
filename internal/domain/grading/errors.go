package grading

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidPolicy = errors.New("invalid grading policy")
)
