package sink

import (
	"time"

	"github.com/okian/quizmerge/pkg/logger"
)

// Option applies a configuration option to the Workbook.
type Option func(*Workbook)

// WithFileName fixes the output file name instead of the dated default.
func WithFileName(name string) Option {
	return func(w *Workbook) {
		if name != "" {
			w.fileName = name
		}
	}
}

// WithClock sets the time source used for the dated default file name.
func WithClock(now func() time.Time) Option {
	return func(w *Workbook) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Workbook) {
		if l != nil {
			w.logger = l
		}
	}
}
