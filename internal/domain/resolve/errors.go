package resolve

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidScore = errors.New("invalid score")
)

// InvalidScoreError reports a numeric cell that could not be coerced.
type InvalidScoreError struct {
	Session string
	Row     int // 1-based position among the session's data rows
	Column  string
	Value   string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("%s: session %q row %d column %q: %q is not numeric",
		ErrInvalidScore, e.Session, e.Row, e.Column, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidScore.
func (e *InvalidScoreError) Unwrap() error { return ErrInvalidScore }
