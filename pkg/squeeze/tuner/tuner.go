// Package tuner orchestrates the greedy parameter search: one sweep
// per parameter in fixed order, each winner frozen into the base set
// for all later sweeps, then one final production compression with the
// winning combination.
package tuner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
	"github.com/jamesainslie/squeeze/pkg/squeeze/probe"
	"github.com/jamesainslie/squeeze/pkg/squeeze/sweeper"
)

// Archiver is the compressor surface the tuner drives. Satisfied by
// *archiver.Archiver.
type Archiver interface {
	Root() string
	Directories() ([]string, error)
	RunAll(ctx context.Context, set params.Set, outDir string) error
	TotalArchiveSize(dir string) (int64, error)
	RemoveArchives(dir string) error
	Measure(ctx context.Context, set params.Set) (int64, error)
}

// Options configures the tuner.
type Options struct {
	// MaxThreads caps the thread sweep. Zero means the machine's
	// logical CPU count.
	MaxThreads int
}

// Result is the outcome of a full tuning run.
type Result struct {
	// RunID identifies this run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// Best is the winning parameter combination.
	Best params.Set `json:"best" yaml:"best"`

	// LargestMB is the probed size of the largest input directory,
	// measured before the dictionary sweep.
	LargestMB int64 `json:"largest_mb" yaml:"largest_mb"`

	// Sweep tables, in execution order.
	Dict    *sweeper.Table[string] `json:"-" yaml:"-"`
	Word    *sweeper.Table[int]    `json:"-" yaml:"-"`
	Block   *sweeper.Table[string] `json:"-" yaml:"-"`
	Threads *sweeper.Table[int]    `json:"-" yaml:"-"`

	// FinalBytes is the total size of the archives produced by the
	// final production run, which are left on disk as the deliverable.
	FinalBytes int64 `json:"final_bytes" yaml:"final_bytes"`

	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Tuner runs the search. The control flow is single-threaded by
// design: archives in the working root are shared mutable state, so
// overlapping compressor invocations would corrupt measurements.
type Tuner struct {
	arch       Archiver
	prober     probe.Prober
	sweep      *sweeper.Sweeper
	maxThreads int
	log        *logging.Logger
}

// New creates a tuner over an archiver and a size prober.
func New(arch Archiver, prober probe.Prober, opts Options) *Tuner {
	maxThreads := opts.MaxThreads
	if maxThreads <= 0 {
		maxThreads = runtime.NumCPU()
	}
	return &Tuner{
		arch:       arch,
		prober:     prober,
		sweep:      sweeper.New(arch),
		maxThreads: maxThreads,
		log:        logging.Get("tuner"),
	}
}

// Run executes the five stages and the final production run. Winners
// are never revisited: the search is greedy and non-backtracking.
func (t *Tuner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := t.log.With("run", runID[:8])

	// Start from a clean slate: leftovers from an earlier run would
	// contaminate the first measurement.
	if err := t.arch.RemoveArchives(t.arch.Root()); err != nil {
		return nil, fmt.Errorf("clearing stale archives: %w", err)
	}

	largest, err := t.probeLargest(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("probed input", "largest_mb", largest)

	var best params.Set

	dictTable, err := t.sweep.Dict(ctx, best, largest)
	if err != nil {
		return nil, err
	}
	dictBest, err := dictTable.Smallest()
	if err != nil {
		return nil, fmt.Errorf("dict sweep: %w", err)
	}
	best = best.WithDict(dictBest.Candidate)
	log.Info("best dict size", "dict", dictBest.Candidate, "bytes", dictBest.Bytes)

	wordTable, err := t.sweep.Word(ctx, best)
	if err != nil {
		return nil, err
	}
	wordBest, err := wordTable.Smallest()
	if err != nil {
		return nil, fmt.Errorf("word sweep: %w", err)
	}
	best = best.WithWord(wordBest.Candidate)
	log.Info("best word size", "word", wordBest.Candidate, "bytes", wordBest.Bytes)

	// The probe runs again rather than reusing the first measurement:
	// every stage works from freshly observed state.
	blockLargest, err := t.probeLargest(ctx)
	if err != nil {
		return nil, err
	}

	blockTable, err := t.sweep.Block(ctx, best, blockLargest)
	if err != nil {
		return nil, err
	}
	blockBest, err := blockTable.Smallest()
	if err != nil {
		return nil, fmt.Errorf("block sweep: %w", err)
	}
	best = best.WithBlock(blockBest.Candidate)
	log.Info("best block size", "block", blockBest.Candidate, "bytes", blockBest.Bytes)

	threadTable, err := t.sweep.Threads(ctx, best, t.maxThreads)
	if err != nil {
		return nil, err
	}
	threadBest, err := threadTable.Smallest()
	if err != nil {
		return nil, fmt.Errorf("thread sweep: %w", err)
	}
	best = best.WithThreads(threadBest.Candidate)
	log.Info("best thread count", "threads", threadBest.Candidate, "bytes", threadBest.Bytes)

	// Final production run: archives stay in the working root.
	log.Info("compressing with winning parameters", "flags", best.Flags())
	if err := t.arch.RunAll(ctx, best, t.arch.Root()); err != nil {
		return nil, fmt.Errorf("final compression: %w", err)
	}
	finalBytes, err := t.arch.TotalArchiveSize(t.arch.Root())
	if err != nil {
		return nil, fmt.Errorf("sizing final archives: %w", err)
	}

	return &Result{
		RunID:      runID,
		Best:       best,
		LargestMB:  largest,
		Dict:       dictTable,
		Word:       wordTable,
		Block:      blockTable,
		Threads:    threadTable,
		FinalBytes: finalBytes,
		Elapsed:    time.Since(start),
	}, nil
}

// probeLargest measures the largest input directory in megabytes.
func (t *Tuner) probeLargest(ctx context.Context) (int64, error) {
	dirs, err := t.arch.Directories()
	if err != nil {
		return 0, err
	}
	largest, err := t.prober.LargestDirMB(ctx, t.arch.Root(), dirs)
	if err != nil {
		return 0, fmt.Errorf("probing directory sizes: %w", err)
	}
	return largest, nil
}

// Plan returns the candidate tables a run would sweep for the given
// input size, without invoking the compressor. Used by --dry-run.
func (t *Tuner) Plan(ctx context.Context) (dict, block []string, word []int, threads []int, err error) {
	largest, err := t.probeLargest(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return params.DictCandidates(largest), params.BlockCandidates(largest),
		params.WordSizes, params.ThreadCandidates(t.maxThreads), nil
}
