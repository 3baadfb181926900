package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"

	"github.com/okian/quizmerge/internal/sampledata"
	"github.com/okian/quizmerge/pkg/logger"
)

func main() {
	def := sampledata.DefaultConfig()

	fs := flag.NewFlagSet("sample-data", flag.ExitOnError)
	var (
		dir        = fs.String("dir", def.Dir, "output directory; roster and reports are written below it")
		students   = fs.Int("students", def.Students, "number of students in the roster")
		sessions   = fs.Int("sessions", def.Sessions, "number of session workbooks")
		questions  = fs.Int("questions", def.Questions, "questions per session")
		absence    = fs.Float64("absence", def.AbsenceRate, "chance a student misses a session")
		reconnects = fs.Float64("reconnects", def.ReconnectRate, "chance a student appears twice in a session")
		strangers  = fs.Float64("strangers", def.StrangerRate, "unknown players per session, as a share of the roster")
		seed       = fs.Uint64("seed", def.Seed, "random seed")
		verbose    = fs.Bool("verbose", false, "enable debug logging")
	)
	_ = ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("QUIZMERGE_SAMPLE"))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := sampledata.Config{
		Dir:           *dir,
		Students:      *students,
		Sessions:      *sessions,
		Questions:     *questions,
		AbsenceRate:   *absence,
		ReconnectRate: *reconnects,
		StrangerRate:  *strangers,
		Seed:          *seed,
	}
	if _, err := sampledata.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "sample data generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
