// Package service runs the merge pipeline: roster, sessions, merge, grades,
// report.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/quizmerge/internal/adapters/worker"
	"github.com/okian/quizmerge/internal/domain/diagnostics"
	"github.com/okian/quizmerge/internal/domain/grading"
	"github.com/okian/quizmerge/internal/domain/merge"
	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/internal/domain/report"
	"github.com/okian/quizmerge/internal/domain/resolve"
	"github.com/okian/quizmerge/internal/domain/roster"
	"github.com/okian/quizmerge/pkg/logger"
	"github.com/okian/quizmerge/pkg/metrics"
)

const defaultSuggestDistance = 3

// RosterSource provides the raw roster table.
type RosterSource interface {
	Load(ctx context.Context) (model.Table, error)
}

// SessionSource lists session ids and loads one session at a time.
type SessionSource interface {
	List(ctx context.Context) ([]string, error)
	Session(ctx context.Context, id string) (model.Session, error)
}

// ReportSink persists a finished report and returns where it went.
type ReportSink interface {
	Write(ctx context.Context, r report.Report) (string, error)
}

// Stats counts what a run saw.
type Stats struct {
	Identities int // roster identities
	Collisions int // roster name keys reassigned
	Sessions   int
	Rows       int // raw session rows
	Dropped    int
	Unresolved int // rows whose name missed the roster
	Merges     int // reconnect rows summed away
	Graded     int // keys in the final grade sheet
	Duration   time.Duration
}

// Result is the outcome of one Run.
type Result struct {
	RunID    string
	Sessions []string // session names in column order
	Records  []grading.Record
	Report   report.Report
	Hints    []diagnostics.Hint
	Output   string // path written by the sink, empty without one
	Stats    Stats
}

// Service wires the sources, the domain pipeline and the sink.
type Service struct {
	roster   RosterSource
	sessions SessionSource
	sink     ReportSink

	policy          grading.Policy
	workerCount     int
	strictRoster    bool
	suggestDistance int

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		policy:          grading.DefaultPolicy(),
		workerCount:     runtime.NumCPU(),
		suggestDistance: defaultSuggestDistance,
		logger:          logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes the whole pipeline once. Sessions are resolved concurrently
// and merged in lexicographic order of their ids.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if s.roster == nil || s.sessions == nil {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := s.logger.Named("run")
	runField := logger.String("run_id", res.RunID)

	grader, err := grading.NewGrader(grading.WithPolicy(s.policy))
	if err != nil {
		metrics.RecordError("config")
		return nil, err
	}

	idx, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	res.Stats.Identities = idx.Len()
	res.Stats.Collisions = len(idx.Collisions())

	ids, err := s.sessions.List(ctx)
	if err != nil {
		metrics.RecordError("list")
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	ids = sortedCopy(ids)
	log.Info(ctx, "resolving sessions", runField,
		logger.Int("sessions", len(ids)),
		logger.Int("identities", idx.Len()),
	)

	resolver := resolve.New(resolve.WithLogger(s.logger.Named("resolve")))
	pool := worker.NewPool(worker.WithWorkerCount(s.workerCount), worker.WithLogger(s.logger))
	resolved, err := pool.ResolveAll(ctx, ids, func(ctx context.Context, id string) (resolve.Result, error) {
		sess, err := s.sessions.Session(ctx, id)
		if err != nil {
			return resolve.Result{}, err
		}
		return resolver.Resolve(ctx, sess, idx)
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]model.SessionSummary, len(resolved))
	var unresolved []namekey.Key
	for i, r := range resolved {
		summaries[i] = r.Summary
		unresolved = append(unresolved, r.Unresolved...)
		res.Stats.Rows += r.Rows
		res.Stats.Dropped += r.Dropped
		res.Stats.Merges += r.Merges
	}
	res.Stats.Sessions = len(resolved)
	res.Stats.Unresolved = len(unresolved)

	merged, err := merge.Fold(summaries)
	if err != nil {
		metrics.RecordError("merge")
		return nil, err
	}
	res.Sessions = merged.Sessions()

	res.Records = grader.Grade(merged, idx)
	res.Stats.Graded = len(res.Records)
	metrics.UpdateIdentitiesGraded(len(res.Records))

	res.Report, err = report.Build(merged, res.Records, grader.Policy())
	if err != nil {
		metrics.RecordError("report")
		return nil, err
	}

	res.Hints = diagnostics.Summarize(unresolved, idx, diagnostics.WithMaxDistance(s.suggestDistance))
	res.Report.Unresolved = make([]string, len(res.Hints))
	for i, h := range res.Hints {
		res.Report.Unresolved[i] = h.Label
	}

	if s.sink != nil {
		res.Output, err = s.sink.Write(ctx, res.Report)
		if err != nil {
			metrics.RecordError("write")
			return nil, fmt.Errorf("write report: %w", err)
		}
	}

	res.Stats.Duration = time.Since(start)
	metrics.RecordRunDuration(res.Stats.Duration.Seconds())
	log.Info(ctx, "run complete", runField,
		logger.Int("sessions", res.Stats.Sessions),
		logger.Int("graded", res.Stats.Graded),
		logger.Int("unresolved", res.Stats.Unresolved),
		logger.String("output", res.Output),
	)
	return res, nil
}

func (s *Service) loadRoster(ctx context.Context) (*roster.Index, error) {
	table, err := s.roster.Load(ctx)
	if err != nil {
		metrics.RecordError("roster")
		return nil, fmt.Errorf("load roster: %w", err)
	}

	idx, err := roster.Build(ctx, table,
		roster.WithStrictKeys(s.strictRoster),
		roster.WithLogger(s.logger.Named("roster")),
	)
	if err != nil {
		metrics.RecordError("roster")
		return nil, err
	}

	metrics.UpdateRosterIdentities(idx.Len())
	metrics.RecordRosterCollisions(len(idx.Collisions()))
	return idx, nil
}

func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
