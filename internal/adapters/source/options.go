package source

import (
	"github.com/okian/quizmerge/pkg/logger"
)

// Option applies a configuration option to a SessionDir.
type Option func(*SessionDir)

// WithSheet sets the worksheet holding the final scores.
func WithSheet(name string) Option {
	return func(d *SessionDir) {
		if name != "" {
			d.sheet = name
		}
	}
}

// WithHeaderRow sets the 1-based row holding the column headers.
func WithHeaderRow(row int) Option {
	return func(d *SessionDir) {
		if row > 0 {
			d.headerRow = row
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(d *SessionDir) {
		if l != nil {
			d.logger = l
		}
	}
}
