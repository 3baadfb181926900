package sink

import (
	"errors"
)

// ErrEmptyReport is returned when a report has no sheets to write.
var ErrEmptyReport = errors.New("report has no sheets")
