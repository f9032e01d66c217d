// Package output provides formatters for displaying tuning results in
// various output formats (pretty, plain, json, yaml).
//
// The package uses a registry pattern to allow registration of
// multiple formatter implementations selected at runtime.
//
// Basic usage:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, output.FromResult(res)); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/squeeze/pkg/squeeze/params"
	"github.com/jamesainslie/squeeze/pkg/squeeze/sweeper"
	"github.com/jamesainslie/squeeze/pkg/squeeze/tuner"
)

// Row is one measured candidate in a sweep, prepared for display.
type Row struct {
	// Candidate is the candidate value as shown to the user.
	Candidate string `json:"candidate" yaml:"candidate"`

	// Bytes is the measured total archive size.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// SizeHuman is the human-readable size (IEC units).
	SizeHuman string `json:"size_human" yaml:"size_human"`

	// Best marks the sweep's winning candidate.
	Best bool `json:"best,omitempty" yaml:"best,omitempty"`
}

// Sweep is one parameter's complete result table.
type Sweep struct {
	// Name is the swept parameter ("dict", "word", "block", "threads").
	Name string `json:"name" yaml:"name"`

	// Rows holds the measurements in sweep iteration order.
	Rows []Row `json:"rows" yaml:"rows"`
}

// Report contains the complete output data for formatting.
type Report struct {
	// RunID identifies the tuning run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Best is the winning parameter combination.
	Best params.Set `json:"best" yaml:"best"`

	// Flags is Best rendered as compressor switches.
	Flags []string `json:"flags" yaml:"flags"`

	// LargestMB is the probed size of the largest input directory.
	LargestMB int64 `json:"largest_mb" yaml:"largest_mb"`

	// Sweeps holds the four result tables in execution order.
	Sweeps []Sweep `json:"sweeps" yaml:"sweeps"`

	// FinalBytes is the total size of the delivered archives.
	FinalBytes int64 `json:"final_bytes" yaml:"final_bytes"`

	// FinalHuman is FinalBytes in IEC units.
	FinalHuman string `json:"final_human" yaml:"final_human"`

	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// FromResult prepares a tuner result for formatting.
func FromResult(res *tuner.Result) *Report {
	return &Report{
		RunID:      res.RunID,
		Best:       res.Best,
		Flags:      res.Best.Flags(),
		LargestMB:  res.LargestMB,
		FinalBytes: res.FinalBytes,
		FinalHuman: FormatSize(res.FinalBytes),
		Elapsed:    res.Elapsed,
		Sweeps: []Sweep{
			sweepOf("dict", res.Dict, func(c string) string { return c }),
			sweepOf("word", res.Word, strconv.Itoa),
			sweepOf("block", res.Block, func(c string) string { return c }),
			sweepOf("threads", res.Threads, strconv.Itoa),
		},
	}
}

// sweepOf converts one result table, marking the winning row.
func sweepOf[K comparable](name string, table *sweeper.Table[K], render func(K) string) Sweep {
	s := Sweep{Name: name}
	if table == nil {
		return s
	}

	best, err := table.Smallest()
	for _, e := range table.Entries() {
		s.Rows = append(s.Rows, Row{
			Candidate: render(e.Candidate),
			Bytes:     e.Bytes,
			SizeHuman: FormatSize(e.Bytes),
			Best:      err == nil && e == best,
		})
	}
	return s
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units for consistency with common filesystem tools.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	Format(w *bytes.Buffer, r *Report) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds a formatter factory to the registry, replacing any
// existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
