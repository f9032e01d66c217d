package sweeper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
)

// fakeMeasurer records every measured set and answers from a size
// function.
type fakeMeasurer struct {
	sets []params.Set
	size func(params.Set) (int64, error)
}

func (f *fakeMeasurer) Measure(_ context.Context, set params.Set) (int64, error) {
	f.sets = append(f.sets, set)
	return f.size(set)
}

func constSize(n int64) func(params.Set) (int64, error) {
	return func(params.Set) (int64, error) { return n, nil }
}

func TestDict_BoundedCandidates(t *testing.T) {
	m := &fakeMeasurer{size: constSize(1000)}
	s := New(m)

	table, err := s.Dict(context.Background(), params.Set{}, 50)
	require.NoError(t, err)

	// 64k plus 1m..64m: the sweep stops before any candidate beyond
	// the first value exceeding 50 MB.
	assert.Equal(t, 13, table.Len())
	entries := table.Entries()
	assert.Equal(t, "64k", entries[0].Candidate)
	assert.Equal(t, "64m", entries[len(entries)-1].Candidate)

	for _, set := range m.sets {
		assert.Zero(t, set.Word)
		assert.Empty(t, set.Block)
		assert.Zero(t, set.Threads)
	}
}

func TestWord_HoldsDecidedParametersFixed(t *testing.T) {
	m := &fakeMeasurer{size: constSize(1000)}
	s := New(m)

	base := params.Set{Dict: "4m"}
	table, err := s.Word(context.Background(), base)
	require.NoError(t, err)

	assert.Equal(t, len(params.WordSizes), table.Len())
	for i, set := range m.sets {
		assert.Equal(t, "4m", set.Dict, "dict must stay fixed")
		assert.Equal(t, params.WordSizes[i], set.Word)
	}
}

func TestBlock_BoundedCandidates(t *testing.T) {
	m := &fakeMeasurer{size: constSize(1000)}
	s := New(m)

	table, err := s.Block(context.Background(), params.Set{Dict: "4m", Word: 32}, 500)
	require.NoError(t, err)

	entries := table.Entries()
	assert.Equal(t, "=off", entries[0].Candidate)
	assert.Equal(t, "256m", entries[len(entries)-1].Candidate)
}

func TestThreads_DescendingAndTieFavorsMoreThreads(t *testing.T) {
	m := &fakeMeasurer{size: constSize(7777)}
	s := New(m)

	table, err := s.Threads(context.Background(), params.Set{Dict: "4m", Word: 32, Block: "=on"}, 4)
	require.NoError(t, err)

	entries := table.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, 4, entries[0].Candidate)
	assert.Equal(t, 1, entries[3].Candidate)

	// All sizes tie, so first-minimum-wins selects the highest count.
	best, err := table.Smallest()
	require.NoError(t, err)
	assert.Equal(t, 4, best.Candidate)
}

func TestSweep_MeasurementFailureAborts(t *testing.T) {
	boom := errors.New("compressor exploded")
	calls := 0
	m := &fakeMeasurer{size: func(params.Set) (int64, error) {
		calls++
		if calls == 3 {
			return 0, boom
		}
		return 1000, nil
	}}
	s := New(m)

	_, err := s.Word(context.Background(), params.Set{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "no retries, no further candidates after a failure")
}

func TestTable_Smallest(t *testing.T) {
	table := &Table[string]{}
	table.Add("1m", 300)
	table.Add("2m", 100)
	table.Add("3m", 100)
	table.Add("4m", 200)

	best, err := table.Smallest()
	require.NoError(t, err)
	assert.Equal(t, "2m", best.Candidate, "tie resolves to first minimal entry")
	assert.Equal(t, int64(100), best.Bytes)

	for _, e := range table.Entries() {
		assert.GreaterOrEqual(t, e.Bytes, best.Bytes)
	}
}

func TestTable_SmallestEmpty(t *testing.T) {
	table := &Table[int]{}
	_, err := table.Smallest()
	require.ErrorIs(t, err, ErrEmptyTable)
}
