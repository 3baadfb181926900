package sampledata

import (
	"errors"
)

// ErrInvalidConfig is returned for out-of-range generator settings.
var ErrInvalidConfig = errors.New("invalid sample data config")
