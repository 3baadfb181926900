package sampledata

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds configuration for the sample data generator.
type Config struct {
	// Dir is the root directory; the roster and reports go below it.
	Dir string `validate:"required"`
	// Students is the roster size.
	Students int `validate:"gte=1,lte=10000"`
	// Sessions is the number of session workbooks.
	Sessions int `validate:"gte=1,lte=200"`
	// Questions is the question count of every session.
	Questions int `validate:"gte=1,lte=100"`
	// AbsenceRate is the chance a student skips a session.
	AbsenceRate float64 `validate:"gte=0,lte=1"`
	// ReconnectRate is the chance a present student shows up as two rows.
	ReconnectRate float64 `validate:"gte=0,lte=1"`
	// StrangerRate adds unresolvable players per session, as a share of the roster.
	StrangerRate float64 `validate:"gte=0,lte=1"`
	// Seed makes output reproducible.
	Seed uint64
}

// DefaultConfig returns a small class of 30 over 8 sessions.
func DefaultConfig() Config {
	return Config{
		Dir:           "sample",
		Students:      30,
		Sessions:      8,
		Questions:     10,
		AbsenceRate:   0.15,
		ReconnectRate: 0.05,
		StrangerRate:  0.05,
		Seed:          1,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Stats summarizes what was written.
type Stats struct {
	Students   int
	Sessions   int
	Rows       int // player rows across all sessions
	Reconnects int
	Strangers  int
}
