// Package params defines the candidate values for every tunable 7z
// parameter, the pruning bounds derived from measured input size, and
// the winning parameter set carried between sweeps.
package params

import "strconv"

// WordSizes lists the match-finder word sizes accepted by the LZMA
// match finder, ascending. 273 is the format's documented maximum.
var WordSizes = []int{8, 12, 16, 24, 32, 48, 64, 96, 128, 192, 256, 273}

// DictSizes lists the dictionary sizes to try, ascending. All entries
// except 64k carry an "m" (megabyte) suffix and can be compared against
// measured directory sizes.
var DictSizes = []string{
	"64k", "1m", "2m", "3m", "4m",
	"6m", "8m", "12m", "16m", "24m",
	"32m", "48m", "64m", "96m", "128m",
	"192m", "256m", "384m", "512m", "768m",
	"1024m", "1536m",
}

// BlockSizes lists the solid-block sizes to try. The two sentinel modes
// disable and enable solid mode with the compressor's default grouping;
// the remaining entries are explicit block sizes, ascending.
var BlockSizes = []string{
	"=off", "=on", "1m", "2m", "3m",
	"4m", "6m", "8m", "12m", "16m",
	"32m", "64m", "128m", "256m", "512m",
	"1g", "2g", "4g", "8g", "16g",
	"32g", "64g",
}

// Set is one combination of tunable compressor parameters. Zero values
// mean "not decided yet": the corresponding flag is omitted and the
// compressor's own default applies.
type Set struct {
	Dict    string `json:"dict,omitempty" yaml:"dict,omitempty"`
	Word    int    `json:"word,omitempty" yaml:"word,omitempty"`
	Block   string `json:"block,omitempty" yaml:"block,omitempty"`
	Threads int    `json:"threads,omitempty" yaml:"threads,omitempty"`
}

// Flags renders the set as 7z -m switches, in the order the compressor
// documents them. Unset parameters produce no flag.
func (s Set) Flags() []string {
	var flags []string
	if s.Dict != "" {
		flags = append(flags, "-md"+s.Dict)
	}
	if s.Word != 0 {
		flags = append(flags, "-mfb"+strconv.Itoa(s.Word))
	}
	if s.Block != "" {
		flags = append(flags, "-ms"+s.Block)
	}
	if s.Threads != 0 {
		flags = append(flags, "-mmt"+strconv.Itoa(s.Threads))
	}
	return flags
}

// WithDict returns a copy of the set with the dictionary size replaced.
func (s Set) WithDict(dict string) Set { s.Dict = dict; return s }

// WithWord returns a copy of the set with the word size replaced.
func (s Set) WithWord(word int) Set { s.Word = word; return s }

// WithBlock returns a copy of the set with the block size replaced.
func (s Set) WithBlock(block string) Set { s.Block = block; return s }

// WithThreads returns a copy of the set with the thread count replaced.
func (s Set) WithThreads(n int) Set { s.Threads = n; return s }
