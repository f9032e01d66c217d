package probe

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
)

// Native measures directory sizes with an in-process parallel walk.
// On Unix it sums allocated 512-byte blocks, matching du semantics;
// elsewhere it falls back to apparent file sizes.
type Native struct {
	log *logging.Logger
}

// NewNative creates a native prober.
func NewNative() *Native {
	return &Native{log: logging.Get("probe")}
}

// LargestDirMB implements Prober.
func (n *Native) LargestDirMB(ctx context.Context, root string, dirs []string) (int64, error) {
	if len(dirs) == 0 {
		return 0, ErrNoDirectories
	}

	var largest int64
	for _, dir := range dirs {
		usage, err := n.usage(ctx, filepath.Join(root, dir))
		if err != nil {
			return 0, fmt.Errorf("probing %s: %w", dir, err)
		}
		if mb := ceilMB(usage); mb > largest {
			largest = mb
		}
	}

	n.log.Debug("largest directory measured", "mb", largest)
	return largest, nil
}

// usage returns the total allocated bytes under path. fastwalk invokes
// the callback concurrently, so the accumulator is atomic.
func (n *Native) usage(ctx context.Context, path string) (int64, error) {
	conf := fastwalk.Config{
		Follow: false, // symlink targets are not part of the archive input
	}

	var total atomic.Int64
	err := fastwalk.Walk(&conf, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		size, err := allocatedBytes(p, d)
		if err != nil {
			return err
		}
		total.Add(size)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total.Load(), nil
}

var _ Prober = (*Native)(nil)
