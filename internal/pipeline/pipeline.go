// Package pipeline composes image reduction and palette extraction.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/artpalette/internal/colour"
	"github.com/jmylchreest/artpalette/internal/reducer"
	"github.com/jmylchreest/artpalette/internal/seed"
	"github.com/jmylchreest/artpalette/internal/source"
)

// ErrNoImage is returned for an acquisition that carries no image.
var ErrNoImage = errors.New("no image available")

// Config holds the parameters of both stages.
type Config struct {
	Reducer reducer.Config
	Extract colour.ExtractOptions

	// Seed, when set, replaces Extract.Seed with a seed derived per image.
	Seed *seed.Config
}

// DefaultConfig returns the default reducer and extraction parameters.
func DefaultConfig() Config {
	return Config{
		Reducer: reducer.DefaultConfig(),
		Extract: colour.DefaultExtractOptions(),
	}
}

// Run reduces the acquired image and extracts its palette. An unavailable
// acquisition yields ErrNoImage without touching the reducer.
func Run(acq source.Acquisition, cfg Config, logger hclog.Logger) (*colour.Palette, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if !acq.Available() {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, acq.Reason)
	}

	opts := cfg.Extract
	if cfg.Seed != nil {
		s, err := seed.Calculate(acq.Image, *cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", colour.ErrInvalidParameter, err)
		}
		opts.Seed = s
	}

	start := time.Now()
	labmat, err := reducer.Reduce(acq.Image, cfg.Reducer)
	if err != nil {
		return nil, fmt.Errorf("failed to reduce %s: %w", acq.Label(), err)
	}
	reduced := time.Since(start)

	palette, err := colour.Extract(labmat, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette from %s: %w", acq.Label(), err)
	}

	logger.Debug("palette extracted",
		"image", acq.Label(),
		"rows", len(labmat),
		"colours", palette.Len(),
		"seed", opts.Seed,
		"reduce", reduced,
		"total", time.Since(start))

	return palette, nil
}

// Result pairs an acquisition with its palette or error.
type Result struct {
	Acquisition source.Acquisition
	Palette     *colour.Palette
	Err         error
}

// RunBatch runs one pipeline per acquisition with at most jobs running at once.
// Results are in input order and a failure does not stop the others. A
// cancelled context marks the pipelines that had not started.
func RunBatch(ctx context.Context, acqs []source.Acquisition, cfg Config, jobs int, logger hclog.Logger) []Result {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(acqs))
	var g errgroup.Group
	g.SetLimit(jobs)

	for i, acq := range acqs {
		results[i].Acquisition = acq
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Palette, results[i].Err = Run(acq, cfg, logger)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Acquire runs src for every query with at most jobs acquisitions at once.
// The result is in query order.
func Acquire(ctx context.Context, src source.Source, queries []string, jobs int) []source.Acquisition {
	if jobs < 1 {
		jobs = 1
	}

	acqs := make([]source.Acquisition, len(queries))
	var g errgroup.Group
	g.SetLimit(jobs)

	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				acqs[i] = source.Unavailable(q, "%v", err)
				return nil
			}
			acqs[i] = src.Acquire(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	return acqs
}
