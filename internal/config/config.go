// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"

	"github.com/okian/quizmerge/internal/domain/grading"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// RosterPath is the roster CSV with ID and Name columns.
	RosterPath string `koanf:"roster_path" validate:"required"`

	// ReportsDir holds one session workbook per quiz.
	ReportsDir string `koanf:"reports_dir" validate:"required"`

	// OutputDir receives the merged workbook; created when missing.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// OutputFile overrides the generated output file name.
	OutputFile string `koanf:"output_file"`

	// SessionSheet is the workbook sheet holding final scores.
	SessionSheet string `koanf:"session_sheet" validate:"required"`

	// HeaderRow is the 1-based row carrying the session column headers.
	HeaderRow int `koanf:"header_row" validate:"gte=1"`

	// CorrectThreshold is the correct-answer count a session needs to pass.
	CorrectThreshold int `koanf:"correct_threshold" validate:"gte=0"`

	// RatioThreshold is the share of the session high score needed to pass.
	RatioThreshold float64 `koanf:"ratio_threshold" validate:"gte=0,lte=1"`

	// TopN is how many best session grades are averaged.
	TopN int `koanf:"top_n" validate:"gte=1"`

	// MaxPoints is the points a perfect average is worth.
	MaxPoints int `koanf:"max_points" validate:"gte=0"`

	// WorkerCount bounds how many sessions are resolved in parallel.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// RosterStrict rejects rosters where two ids share a name key.
	RosterStrict bool `koanf:"roster_strict"`

	// SuggestDistance bounds the edit distance of unresolved-name hints; 0 disables them.
	SuggestDistance int `koanf:"suggest_distance" validate:"gte=0"`

	// MetricsFile, when set, receives a Prometheus textfile dump after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		RosterPath:       "students/students.csv",
		ReportsDir:       "reports",
		OutputDir:        "merged_sessions",
		SessionSheet:     "Final Scores",
		HeaderRow:        3,
		CorrectThreshold: grading.DefaultCorrectThreshold,
		RatioThreshold:   grading.DefaultRatioThreshold,
		TopN:             grading.DefaultTopN,
		MaxPoints:        grading.DefaultMaxPoints,
		WorkerCount:      runtime.NumCPU(),
		SuggestDistance:  3,
	}
}

// Policy returns the grading policy described by c.
func (c *Config) Policy() grading.Policy {
	return grading.Policy{
		CorrectThreshold: c.CorrectThreshold,
		RatioThreshold:   c.RatioThreshold,
		TopN:             c.TopN,
		MaxPoints:        c.MaxPoints,
	}
}
