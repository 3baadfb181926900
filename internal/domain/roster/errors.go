package roster

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedRoster  = errors.New("malformed roster")
	ErrNameKeyCollision = errors.New("roster name key collision")
	ErrNilRosterIndex   = errors.New("roster index is nil")
)

// MalformedRosterError reports the required columns a roster table lacks.
type MalformedRosterError struct {
	Missing []string
}

func (e *MalformedRosterError) Error() string {
	return fmt.Sprintf("%s: missing columns %s", ErrMalformedRoster, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is match ErrMalformedRoster.
func (e *MalformedRosterError) Unwrap() error { return ErrMalformedRoster }
