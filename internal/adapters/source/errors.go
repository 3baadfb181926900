package source

import (
	"errors"
)

var (
	// ErrMissingColumn is returned when a session sheet lacks a required header.
	ErrMissingColumn = errors.New("missing column")
	// ErrMissingSheet is returned when a workbook has no sheet with the configured name.
	ErrMissingSheet = errors.New("missing sheet")
	// ErrNoSessions is returned when the reports directory holds no workbooks.
	ErrNoSessions = errors.New("no session workbooks")
)
