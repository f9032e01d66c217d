package params

import (
	"strconv"
	"strings"
)

// Megabytes reports the numeric megabyte value of a megabyte-suffixed
// candidate. Sentinel modes, k-suffixed and g-suffixed entries have no
// comparable megabyte magnitude and return ok=false.
func Megabytes(candidate string) (mb int64, ok bool) {
	if !strings.HasSuffix(candidate, "m") {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSuffix(candidate, "m"), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DictCandidates returns the prefix of DictSizes worth sweeping for
// inputs whose largest directory is largestMB megabytes. The bound is
// the smallest dictionary size strictly exceeding the working set: once
// the dictionary covers the whole input, growing it further cannot
// improve compression. Entries without a comparable megabyte magnitude
// are always included.
func DictCandidates(largestMB int64) []string {
	bound, ok := dictBound(largestMB)
	if !ok {
		return DictSizes
	}

	out := make([]string, 0, len(DictSizes))
	for _, c := range DictSizes {
		if mb, comparable := Megabytes(c); comparable && mb > bound {
			break
		}
		out = append(out, c)
	}
	return out
}

// dictBound returns the smallest megabyte-suffixed dictionary size
// strictly greater than largestMB. ok is false when the largest input
// exceeds every dictionary size in the table.
func dictBound(largestMB int64) (int64, bool) {
	for _, c := range DictSizes {
		if mb, comparable := Megabytes(c); comparable && mb > largestMB {
			return mb, true
		}
	}
	return 0, false
}

// BlockCandidates returns the prefix of BlockSizes worth sweeping for
// inputs whose largest directory is largestMB megabytes. The bound only
// applies below 1024 MB; in that regime the table is cut at the first
// megabyte-suffixed entry exceeding the largest directory. Sentinel
// modes and gigabyte-suffixed entries are never checked against the
// bound; see DESIGN.md for the asymmetry.
func BlockCandidates(largestMB int64) []string {
	if largestMB >= 1024 {
		return BlockSizes
	}

	out := make([]string, 0, len(BlockSizes))
	for _, c := range BlockSizes {
		if mb, comparable := Megabytes(c); comparable && mb > largestMB {
			break
		}
		out = append(out, c)
	}
	return out
}

// ThreadCandidates returns the thread counts to sweep, from maxThreads
// down to 1. Descending order means a tie on archive size resolves to
// the highest (fastest) thread count under first-minimum-wins
// selection.
func ThreadCandidates(maxThreads int) []int {
	if maxThreads < 1 {
		maxThreads = 1
	}
	out := make([]int, 0, maxThreads)
	for n := maxThreads; n >= 1; n-- {
		out = append(out, n)
	}
	return out
}
