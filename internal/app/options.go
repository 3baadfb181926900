package service

import (
	"github.com/okian/quizmerge/internal/domain/grading"
	"github.com/okian/quizmerge/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolicy sets the grading policy. It is validated when Run starts.
func WithPolicy(p grading.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithWorkerCount sets how many sessions are resolved concurrently.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithStrictRoster makes roster name key collisions fatal.
func WithStrictRoster(strict bool) Option {
	return func(s *Service) {
		s.strictRoster = strict
	}
}

// WithSuggestDistance bounds the edit distance of unresolved-name hints.
// Zero disables suggestions.
func WithSuggestDistance(d int) Option {
	return func(s *Service) {
		if d >= 0 {
			s.suggestDistance = d
		}
	}
}

// WithRosterSource sets where the roster table comes from.
func WithRosterSource(src RosterSource) Option {
	return func(s *Service) {
		s.roster = src
	}
}

// WithSessionSource sets where session exports come from.
func WithSessionSource(src SessionSource) Option {
	return func(s *Service) {
		s.sessions = src
	}
}

// WithReportSink sets where the finished report is written. Without a sink
// Run only returns the report.
func WithReportSink(sink ReportSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}
