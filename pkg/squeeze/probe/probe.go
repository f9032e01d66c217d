// Package probe measures the on-disk size of the directories to be
// compressed. The tuner uses the largest directory's megabyte size to
// bound the dictionary and block-size sweeps.
//
// Two strategies are available: "du" shells out to the system du
// utility and reproduces its megabyte-rounded summary contract, while
// "native" walks the directories in-process. A probe failure is fatal;
// there is no fallback between strategies.
package probe

import (
	"context"
	"errors"
	"fmt"
)

// Prober measures directory disk usage.
type Prober interface {
	// LargestDirMB returns the recursive disk usage of the largest of
	// dirs (relative to root), rounded up to whole megabytes.
	LargestDirMB(ctx context.Context, root string, dirs []string) (int64, error)
}

// Probe errors.
var (
	// ErrNoDirectories indicates there was nothing to measure.
	ErrNoDirectories = errors.New("no directories to probe")

	// ErrUnparseable indicates the du utility produced output the
	// probe could not interpret.
	ErrUnparseable = errors.New("unparseable du output")

	// ErrUnknownStrategy indicates an unrecognized probe strategy name.
	ErrUnknownStrategy = errors.New("unknown probe strategy")
)

// New returns the prober for the given strategy ("du" or "native").
func New(strategy string) (Prober, error) {
	switch strategy {
	case "du":
		return NewDu()
	case "native":
		return NewNative(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// ceilMB rounds a byte count up to whole megabytes, with a floor of
// one: du -sm never reports less than 1 for an existing directory.
func ceilMB(bytes int64) int64 {
	mb := (bytes + 1<<20 - 1) >> 20
	if mb < 1 {
		mb = 1
	}
	return mb
}
