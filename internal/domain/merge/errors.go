package merge

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDuplicateSession = errors.New("duplicate session name")
)
