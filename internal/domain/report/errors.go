package report

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRecordMismatch = errors.New("grade records do not match merged table")
)
