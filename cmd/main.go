package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"

	app "github.com/okian/quizmerge/internal/app"
	"github.com/okian/quizmerge/internal/adapters/sink"
	"github.com/okian/quizmerge/internal/adapters/source"
	"github.com/okian/quizmerge/internal/config"
	"github.com/okian/quizmerge/pkg/logger"
	"github.com/okian/quizmerge/pkg/metrics"
)

const dotenvFile = ".env"

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		logger.Get().Error(ctx, "merge failed", logger.Error(err))
		os.Exit(1)
	}
}

// run loads configuration (defaults -> file -> env -> flags) and executes one
// merge.
func run(ctx context.Context, args []string) error {
	log := logger.Get()

	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(ctx, "ignoring unreadable .env", logger.Error(err))
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithPolicy(cfg.Policy()),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithStrictRoster(cfg.RosterStrict),
		app.WithSuggestDistance(cfg.SuggestDistance),
		app.WithRosterSource(source.NewRosterCSV(cfg.RosterPath)),
		app.WithSessionSource(source.NewSessionDir(cfg.ReportsDir,
			source.WithSheet(cfg.SessionSheet),
			source.WithHeaderRow(cfg.HeaderRow),
			source.WithLogger(log.Named("source")),
		)),
		app.WithReportSink(sink.NewWorkbook(cfg.OutputDir,
			sink.WithFileName(cfg.OutputFile),
			sink.WithLogger(log.Named("sink")),
		)),
	)

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	if len(res.Hints) > 0 {
		log.Warn(ctx, "could not find ids for some player names", logger.Int("names", len(res.Hints)))
	}
	for _, h := range res.Hints {
		fields := []logger.Field{logger.String("name", h.Label), logger.Int("rows", h.Count)}
		if h.SuggestedID != "" {
			fields = append(fields, logger.String("closest_id", h.SuggestedID), logger.Int("distance", h.Distance))
		}
		log.Warn(ctx, "unresolved player", fields...)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "metrics dump failed", logger.Error(err))
		}
	}

	log.Info(ctx, "finished merging sessions",
		logger.String("run_id", res.RunID),
		logger.String("output", res.Output),
		logger.Int("sessions", res.Stats.Sessions),
		logger.Int("graded", res.Stats.Graded),
	)
	return nil
}

// applyFlags overrides cfg with any flags present in args. Flag defaults are
// the already loaded values so unset flags change nothing.
func applyFlags(cfg *config.Config, args []string) error {
	fset := flag.NewFlagSet("quizmerge", flag.ContinueOnError)
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fset.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "roster CSV with ID and Name columns")
	fset.StringVar(&cfg.ReportsDir, "reports", cfg.ReportsDir, "directory of session workbooks")
	fset.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for the merged workbook")
	fset.StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, "merged workbook file name (default: dated)")
	fset.StringVar(&cfg.SessionSheet, "sheet", cfg.SessionSheet, "session sheet holding final scores")
	fset.IntVar(&cfg.HeaderRow, "header-row", cfg.HeaderRow, "1-based header row of the session sheet")
	fset.IntVar(&cfg.CorrectThreshold, "correct-threshold", cfg.CorrectThreshold, "correct answers needed to pass a session")
	fset.Float64Var(&cfg.RatioThreshold, "ratio-threshold", cfg.RatioThreshold, "share of the session high score needed to pass")
	fset.IntVar(&cfg.TopN, "top-n", cfg.TopN, "best session grades averaged")
	fset.IntVar(&cfg.MaxPoints, "max-points", cfg.MaxPoints, "points for a perfect average")
	fset.IntVar(&cfg.WorkerCount, "workers", cfg.WorkerCount, "sessions resolved in parallel")
	fset.BoolVar(&cfg.RosterStrict, "strict", cfg.RosterStrict, "fail when two roster ids share a name")
	fset.IntVar(&cfg.SuggestDistance, "suggest-distance", cfg.SuggestDistance, "max edit distance for unresolved-name hints, 0 disables")
	fset.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this textfile")

	if err := ff.Parse(fset, args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if fset.NArg() > 0 {
		return fmt.Errorf("parse flags: unexpected arguments %v", fset.Args())
	}
	return nil
}
