// Package archiver invokes the 7z compressor over the top-level
// directories of a working root, one archive per directory, and owns
// the archive files that sweeps measure and clean up.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
)

// archiveExt is the suffix of every archive the archiver creates,
// measures, and removes.
const archiveExt = ".7z"

// ErrNoInput indicates the working root contains no directories to
// compress after exclusions.
var ErrNoInput = errors.New("no directories to compress")

// ErrNoArchives indicates a compression run produced no archives; a
// zero measurement would silently win every sweep, so it is an error.
var ErrNoArchives = errors.New("no archives produced")

// Archiver runs the compressor over the working root's directories.
type Archiver struct {
	binary  string
	root    string
	exclude map[string]struct{}
	log     *logging.Logger
}

// New resolves the compressor binary and working root. A missing
// binary is a fatal environment error, surfaced before any sweep runs.
func New(binary, root string, exclude []string) (*Archiver, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("compressor binary %q not found: %w", binary, err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving working root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("working root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working root %s is not a directory", absRoot)
	}

	excl := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excl[name] = struct{}{}
	}

	return &Archiver{
		binary:  path,
		root:    absRoot,
		exclude: excl,
		log:     logging.Get("archiver"),
	}, nil
}

// Root returns the absolute working root.
func (a *Archiver) Root() string { return a.root }

// Directories returns the names of the top-level directories to
// compress, in lexical order. Hidden directories and excluded names
// are skipped. The list is discovered fresh on every call; archives
// come and go between runs, so nothing is cached.
func (a *Archiver) Directories() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, fmt.Errorf("reading working root: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, skip := a.exclude[name]; skip {
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

// RunAll compresses every top-level directory with the given parameter
// set, writing <dir>.7z into outDir. Each invocation builds a fresh
// argument list; compression level is pinned at -mx9. The compressor's
// stdout is discarded, stderr passes through. Any process failure
// aborts the whole run.
func (a *Archiver) RunAll(ctx context.Context, set params.Set, outDir string) error {
	dirs, err := a.Directories()
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return ErrNoInput
	}

	for _, dir := range dirs {
		archive := filepath.Join(outDir, dir+archiveExt)

		args := append([]string{"a", "-mx9"}, set.Flags()...)
		args = append(args, "--", archive, dir)

		a.log.Debug("compressing", "dir", dir, "args", strings.Join(args, " "))

		cmd := exec.CommandContext(ctx, a.binary, args...)
		cmd.Dir = a.root
		cmd.Stdout = io.Discard
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("compressing %s: %w", dir, err)
		}
	}
	return nil
}

// TotalArchiveSize returns the summed size of all archives in dir.
func (a *Archiver) TotalArchiveSize(dir string) (int64, error) {
	archives, err := filepath.Glob(filepath.Join(dir, "*"+archiveExt))
	if err != nil {
		return 0, fmt.Errorf("listing archives: %w", err)
	}

	var total int64
	for _, archive := range archives {
		info, err := os.Stat(archive)
		if err != nil {
			return 0, fmt.Errorf("sizing %s: %w", archive, err)
		}
		total += info.Size()
	}
	return total, nil
}

// RemoveArchives deletes every archive in dir.
func (a *Archiver) RemoveArchives(dir string) error {
	archives, err := filepath.Glob(filepath.Join(dir, "*"+archiveExt))
	if err != nil {
		return fmt.Errorf("listing archives: %w", err)
	}
	for _, archive := range archives {
		if err := os.Remove(archive); err != nil {
			return fmt.Errorf("removing %s: %w", archive, err)
		}
	}
	return nil
}

// Measure runs one candidate's compression into an isolated scratch
// directory, returns the total archive size, and removes the scratch
// directory on every exit path. Measurements therefore never see a
// previous candidate's leftovers.
func (a *Archiver) Measure(ctx context.Context, set params.Set) (int64, error) {
	scope, err := a.newScope()
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := os.RemoveAll(scope); err != nil {
			a.log.Warn("removing measurement scope", "dir", scope, "error", err)
		}
	}()

	if err := a.RunAll(ctx, set, scope); err != nil {
		return 0, err
	}

	total, err := a.TotalArchiveSize(scope)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, ErrNoArchives
	}
	return total, nil
}

// newScope creates a hidden scratch directory under the working root.
// Keeping it on the same filesystem as the final archives, with a
// leading dot so Directories never picks it up as input.
func (a *Archiver) newScope() (string, error) {
	scope := filepath.Join(a.root, ".squeeze-"+uuid.NewString())
	if err := os.Mkdir(scope, 0o755); err != nil {
		return "", fmt.Errorf("creating measurement scope: %w", err)
	}
	return scope, nil
}
