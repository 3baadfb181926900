// Package worker fans per-session resolution out over a bounded set of
// goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/quizmerge/internal/domain/resolve"
	"github.com/okian/quizmerge/pkg/logger"
	"github.com/okian/quizmerge/pkg/metrics"
)

// ResolveFunc loads and resolves the session identified by id.
type ResolveFunc func(ctx context.Context, id string) (resolve.Result, error)

// Pool runs ResolveFuncs concurrently with a fixed upper bound.
type Pool struct {
	name    string
	workers int
	logger  logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		name:    "worker-pool",
		workers: runtime.NumCPU(),
		logger:  logger.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.Named(p.name)
	return p
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int { return p.workers }

// ResolveAll calls fn once per id and returns the results in the order of ids.
// The first error cancels the remaining work and is returned.
func (p *Pool) ResolveAll(ctx context.Context, ids []string, fn ResolveFunc) ([]resolve.Result, error) {
	results := make([]resolve.Result, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res, err := fn(gctx, id)
			metrics.RecordSessionLatency(time.Since(start).Seconds())
			if err != nil {
				metrics.RecordError("resolve")
				p.logger.Error(gctx, "session failed",
					logger.String("session", id),
					logger.Error(err),
				)
				return fmt.Errorf("session %s: %w", id, err)
			}

			metrics.RecordSessionProcessed()
			metrics.RecordRowsRead(res.Rows)
			metrics.RecordRowsDropped(res.Dropped)
			metrics.RecordRowsUnresolved(len(res.Unresolved))
			metrics.RecordReconnectMerges(res.Merges)

			p.logger.Debug(gctx, "session resolved",
				logger.String("session", id),
				logger.Int("rows", res.Rows),
				logger.Int("unresolved", len(res.Unresolved)),
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
