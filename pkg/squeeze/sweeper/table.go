// Package sweeper runs the per-parameter candidate sweeps and records
// each candidate's measured archive size in an insertion-ordered
// result table.
package sweeper

import "errors"

// ErrEmptyTable is returned when a minimum is requested from a table
// with no measurements. Picking an arbitrary default here would
// silently corrupt the search, so the caller must treat this as fatal.
var ErrEmptyTable = errors.New("empty sweep result table")

// Entry is one measured candidate.
type Entry[K comparable] struct {
	Candidate K     `json:"candidate" yaml:"candidate"`
	Bytes     int64 `json:"bytes" yaml:"bytes"`
}

// Table records sweep measurements in iteration order. It is
// append-only: one entry per completed candidate, never mutated after
// the candidate's run finishes.
type Table[K comparable] struct {
	entries []Entry[K]
}

// Add appends a completed candidate's measurement.
func (t *Table[K]) Add(candidate K, bytes int64) {
	t.entries = append(t.entries, Entry[K]{Candidate: candidate, Bytes: bytes})
}

// Len returns the number of measured candidates.
func (t *Table[K]) Len() int { return len(t.entries) }

// Entries returns the measurements in iteration order.
func (t *Table[K]) Entries() []Entry[K] { return t.entries }

// Smallest returns the first entry, in iteration order, whose size is
// minimal. First-minimum-wins is load-bearing: the thread sweep runs
// descending so that ties resolve to the highest thread count.
func (t *Table[K]) Smallest() (Entry[K], error) {
	if len(t.entries) == 0 {
		var zero Entry[K]
		return zero, ErrEmptyTable
	}

	best := t.entries[0]
	for _, e := range t.entries[1:] {
		if e.Bytes < best.Bytes {
			best = e
		}
	}
	return best, nil
}
