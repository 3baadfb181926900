package service

import (
	"errors"
)

// ErrNotConfigured is returned by Run when a roster or session source is missing.
var ErrNotConfigured = errors.New("service not configured")
