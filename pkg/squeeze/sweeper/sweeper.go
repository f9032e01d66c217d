package sweeper

import (
	"context"
	"fmt"

	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
)

// Measurer produces the total archive size for one parameter
// combination. Each call must leave no archives behind.
type Measurer interface {
	Measure(ctx context.Context, set params.Set) (int64, error)
}

// Sweeper drives one parameter sweep at a time over a Measurer,
// holding all previously decided parameters fixed.
type Sweeper struct {
	m   Measurer
	log *logging.Logger
}

// New creates a sweeper over the given measurer.
func New(m Measurer) *Sweeper {
	return &Sweeper{m: m, log: logging.Get("sweeper")}
}

// Dict sweeps dictionary sizes, truncated by the largest-directory
// bound, with base's other parameters fixed.
func (s *Sweeper) Dict(ctx context.Context, base params.Set, largestMB int64) (*Table[string], error) {
	return sweep(ctx, s, "dict", params.DictCandidates(largestMB), base.WithDict)
}

// Word sweeps all word sizes with base's other parameters fixed.
func (s *Sweeper) Word(ctx context.Context, base params.Set) (*Table[int], error) {
	return sweep(ctx, s, "word", params.WordSizes, base.WithWord)
}

// Block sweeps solid-block sizes, truncated by the largest-directory
// bound, with base's other parameters fixed.
func (s *Sweeper) Block(ctx context.Context, base params.Set, largestMB int64) (*Table[string], error) {
	return sweep(ctx, s, "block", params.BlockCandidates(largestMB), base.WithBlock)
}

// Threads sweeps thread counts from maxThreads down to 1 with base's
// other parameters fixed. Descending order makes size ties resolve to
// the highest thread count.
func (s *Sweeper) Threads(ctx context.Context, base params.Set, maxThreads int) (*Table[int], error) {
	return sweep(ctx, s, "threads", params.ThreadCandidates(maxThreads), base.WithThreads)
}

// sweep measures every candidate exactly once, in table order. Any
// measurement failure aborts the sweep: a failed run must never be
// recorded as a zero-size result.
func sweep[K comparable](ctx context.Context, s *Sweeper, label string, candidates []K, build func(K) params.Set) (*Table[K], error) {
	table := &Table[K]{}
	for _, candidate := range candidates {
		s.log.Info("measuring", label, candidate)

		bytes, err := s.m.Measure(ctx, build(candidate))
		if err != nil {
			return nil, fmt.Errorf("%s sweep at %v: %w", label, candidate, err)
		}

		s.log.Debug("measured", label, candidate, "bytes", bytes)
		table.Add(candidate, bytes)
	}
	return table, nil
}
