package sampledata

import (
	"context"
	"fmt"

	"github.com/okian/quizmerge/pkg/logger"
)

// Run generates a dataset from cfg and writes it below cfg.Dir.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Get().Named("sampledata")
	log.Info(ctx, "generating sample data",
		logger.String("dir", cfg.Dir),
		logger.Int("students", cfg.Students),
		logger.Int("sessions", cfg.Sessions),
		logger.Any("seed", cfg.Seed),
	)

	ds, err := Generate(cfg)
	if err != nil {
		return Stats{}, err
	}
	if err := Write(ctx, cfg.Dir, ds); err != nil {
		return Stats{}, fmt.Errorf("write sample data: %w", err)
	}

	log.Info(ctx, "sample data written",
		logger.Int("rows", ds.Stats.Rows),
		logger.Int("reconnects", ds.Stats.Reconnects),
		logger.Int("strangers", ds.Stats.Strangers),
	)
	return ds.Stats, nil
}
