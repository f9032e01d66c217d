package probe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jamesainslie/squeeze/pkg/squeeze/logging"
)

// Du measures directory sizes by running the system du utility with
// megabyte-rounded summaries (du -sm). Output lines have the form
// "<sizeMB>\t<path>".
type Du struct {
	path string
	log  *logging.Logger
}

// NewDu locates the du binary on PATH. Its absence is a fatal
// environment error.
func NewDu() (*Du, error) {
	path, err := exec.LookPath("du")
	if err != nil {
		return nil, fmt.Errorf("du binary not found: %w", err)
	}
	return &Du{path: path, log: logging.Get("probe")}, nil
}

// LargestDirMB implements Prober.
func (d *Du) LargestDirMB(ctx context.Context, root string, dirs []string) (int64, error) {
	if len(dirs) == 0 {
		return 0, ErrNoDirectories
	}

	args := append([]string{"-sm", "--"}, dirs...)
	cmd := exec.CommandContext(ctx, d.path, args...)
	cmd.Dir = root

	d.log.Debug("running du", "dirs", len(dirs))
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("running du: %w", err)
	}

	largest := int64(-1)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, line)
		}
		mb, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, line)
		}
		if mb > largest {
			largest = mb
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading du output: %w", err)
	}
	if largest < 0 {
		return 0, fmt.Errorf("%w: empty output", ErrUnparseable)
	}

	d.log.Debug("largest directory measured", "mb", largest)
	return largest, nil
}

var _ Prober = (*Du)(nil)
