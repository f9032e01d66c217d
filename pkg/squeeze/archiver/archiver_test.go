package archiver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
)

// fake7z installs a compressor stand-in on PATH. The script records
// its full argument list into the archive file (second-to-last
// argument), so tests can assert both archive creation and the flag
// contract.
func fake7z(t *testing.T, extra string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}

	script := `#!/bin/sh
` + extra + `
eval archive=\${$(($#-1))}
printf '%s\n' "$@" > "$archive"
`
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "7z"), []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake 7z: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func newTestRoot(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return root
}

func TestNew_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := New("definitely-not-7z", t.TempDir(), nil); err == nil {
		t.Fatal("New() with missing binary should fail")
	}
}

func TestDirectories_Filtering(t *testing.T) {
	fake7z(t, "")
	root := newTestRoot(t, "A", "B", "venv", ".git")
	if err := os.WriteFile(filepath.Join(root, "loose.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	a, err := New("7z", root, []string{"venv"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dirs, err := a.Directories()
	if err != nil {
		t.Fatalf("Directories() error = %v", err)
	}
	want := []string{"A", "B"}
	if len(dirs) != len(want) || dirs[0] != "A" || dirs[1] != "B" {
		t.Errorf("Directories() = %v, want %v", dirs, want)
	}
}

func TestRunAll_CreatesOneArchivePerDirectory(t *testing.T) {
	fake7z(t, "")
	root := newTestRoot(t, "A", "B")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	set := params.Set{Dict: "4m", Word: 32}
	if err := a.RunAll(context.Background(), set, root); err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}

	for _, dir := range []string{"A", "B"} {
		data, err := os.ReadFile(filepath.Join(root, dir+".7z"))
		if err != nil {
			t.Fatalf("archive for %s missing: %v", dir, err)
		}
		args := string(data)
		for _, want := range []string{"a", "-mx9", "-md4m", "-mfb32", "--", dir} {
			if !strings.Contains(args, want) {
				t.Errorf("archive %s args missing %q:\n%s", dir, want, args)
			}
		}
		if strings.Contains(args, "-ms") || strings.Contains(args, "-mmt") {
			t.Errorf("unset parameters rendered flags:\n%s", args)
		}
	}
}

func TestRunAll_EmptyRoot(t *testing.T) {
	fake7z(t, "")
	a, err := New("7z", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.RunAll(context.Background(), params.Set{}, a.Root()); !errors.Is(err, ErrNoInput) {
		t.Errorf("RunAll() error = %v, want ErrNoInput", err)
	}
}

func TestRunAll_CompressorFailureIsFatal(t *testing.T) {
	fake7z(t, "exit 2")
	root := newTestRoot(t, "A")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.RunAll(context.Background(), params.Set{}, root); err == nil {
		t.Error("RunAll() with failing compressor should fail")
	}
}

func TestTotalArchiveSizeAndRemove(t *testing.T) {
	fake7z(t, "")
	root := newTestRoot(t, "A")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "x.7z"), make([]byte, 100), 0o644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "y.7z"), make([]byte, 50), 0o644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	// Non-archive files are never counted or removed.
	if err := os.WriteFile(filepath.Join(root, "keep.txt"), make([]byte, 10), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	total, err := a.TotalArchiveSize(root)
	if err != nil {
		t.Fatalf("TotalArchiveSize() error = %v", err)
	}
	if total != 150 {
		t.Errorf("TotalArchiveSize() = %d, want 150", total)
	}

	if err := a.RemoveArchives(root); err != nil {
		t.Fatalf("RemoveArchives() error = %v", err)
	}
	total, err = a.TotalArchiveSize(root)
	if err != nil {
		t.Fatalf("TotalArchiveSize() after remove error = %v", err)
	}
	if total != 0 {
		t.Errorf("TotalArchiveSize() after remove = %d, want 0", total)
	}
	if _, err := os.Stat(filepath.Join(root, "keep.txt")); err != nil {
		t.Errorf("non-archive file removed: %v", err)
	}
}

func TestMeasure_LeavesWorkingRootClean(t *testing.T) {
	fake7z(t, "")
	root := newTestRoot(t, "A", "B")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	total, err := a.Measure(context.Background(), params.Set{Dict: "1m"})
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if total <= 0 {
		t.Errorf("Measure() = %d, want > 0", total)
	}

	// No archives and no scratch directories may survive a measurement.
	leftover, err := filepath.Glob(filepath.Join(root, "*.7z"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("archives left in working root: %v", leftover)
	}
	scopes, err := filepath.Glob(filepath.Join(root, ".squeeze-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(scopes) != 0 {
		t.Errorf("scratch directories left behind: %v", scopes)
	}
}

func TestMeasure_CleansUpOnFailure(t *testing.T) {
	fake7z(t, "exit 1")
	root := newTestRoot(t, "A")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := a.Measure(context.Background(), params.Set{}); err == nil {
		t.Fatal("Measure() with failing compressor should fail")
	}

	scopes, err := filepath.Glob(filepath.Join(root, ".squeeze-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(scopes) != 0 {
		t.Errorf("scratch directories left after failure: %v", scopes)
	}
}

func TestMeasure_NoArchivesIsError(t *testing.T) {
	// Compressor "succeeds" but writes nothing.
	fake7z(t, "exit 0")
	root := newTestRoot(t, "A")

	a, err := New("7z", root, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := a.Measure(context.Background(), params.Set{}); !errors.Is(err, ErrNoArchives) {
		t.Errorf("Measure() error = %v, want ErrNoArchives", err)
	}
}
