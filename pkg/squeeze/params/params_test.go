package params

import (
	"reflect"
	"testing"
)

func TestTables_Order(t *testing.T) {
	if len(DictSizes) != 22 {
		t.Fatalf("len(DictSizes) = %d, want 22", len(DictSizes))
	}
	if len(BlockSizes) != 22 {
		t.Fatalf("len(BlockSizes) = %d, want 22", len(BlockSizes))
	}
	if len(WordSizes) != 12 {
		t.Fatalf("len(WordSizes) = %d, want 12", len(WordSizes))
	}

	for i := 1; i < len(WordSizes); i++ {
		if WordSizes[i] <= WordSizes[i-1] {
			t.Errorf("WordSizes not ascending at %d: %d <= %d", i, WordSizes[i], WordSizes[i-1])
		}
	}
	if WordSizes[len(WordSizes)-1] != 273 {
		t.Errorf("largest word size = %d, want 273", WordSizes[len(WordSizes)-1])
	}

	if BlockSizes[0] != "=off" || BlockSizes[1] != "=on" {
		t.Errorf("block sentinels = %q, %q", BlockSizes[0], BlockSizes[1])
	}
}

func TestMegabytes(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"64k", 0, false},
		{"1m", 1, true},
		{"1536m", 1536, true},
		{"1g", 0, false},
		{"=off", 0, false},
		{"=on", 0, false},
	}

	for _, tt := range tests {
		got, ok := Megabytes(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Megabytes(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDictCandidates(t *testing.T) {
	tests := []struct {
		name      string
		largestMB int64
		wantLast  string
		wantLen   int
	}{
		// Bound is the first size exceeding the input; the bound itself
		// is still swept.
		{"50MB input stops after 64m", 50, "64m", 13},
		{"1MB input keeps the 64k edge", 1, "2m", 3},
		{"exact table value moves to next", 64, "96m", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DictCandidates(tt.largestMB)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d (%v)", len(got), tt.wantLen, got)
			}
			if got[len(got)-1] != tt.wantLast {
				t.Errorf("last = %q, want %q", got[len(got)-1], tt.wantLast)
			}
		})
	}
}

func TestDictCandidates_HugeInputKeepsFullTable(t *testing.T) {
	got := DictCandidates(4096)
	if !reflect.DeepEqual(got, DictSizes) {
		t.Errorf("DictCandidates(4096) = %v, want full table", got)
	}
}

func TestBlockCandidates(t *testing.T) {
	// 500 MB input: 256m stays, 512m (512 > 500) is cut along with
	// everything after it.
	got := BlockCandidates(500)
	want := []string{
		"=off", "=on", "1m", "2m", "3m",
		"4m", "6m", "8m", "12m", "16m",
		"32m", "64m", "128m", "256m",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockCandidates(500) = %v, want %v", got, want)
	}
}

func TestBlockCandidates_LargeInputUnbounded(t *testing.T) {
	got := BlockCandidates(1024)
	if !reflect.DeepEqual(got, BlockSizes) {
		t.Errorf("BlockCandidates(1024) = %v, want full table", got)
	}
}

func TestBlockCandidates_GigabyteEntriesUnchecked(t *testing.T) {
	// 600 MB input: every megabyte entry fits, so the cut never fires
	// and the gigabyte entries all survive.
	got := BlockCandidates(600)
	if !reflect.DeepEqual(got, BlockSizes) {
		t.Errorf("BlockCandidates(600) = %v, want full table", got)
	}
}

func TestThreadCandidates_Descending(t *testing.T) {
	got := ThreadCandidates(4)
	want := []int{4, 3, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ThreadCandidates(4) = %v, want %v", got, want)
	}

	if got := ThreadCandidates(0); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ThreadCandidates(0) = %v, want [1]", got)
	}
}

func TestSetFlags(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want []string
	}{
		{"empty set renders nothing", Set{}, nil},
		{"dict only", Set{Dict: "4m"}, []string{"-md4m"}},
		{
			"full set in documented order",
			Set{Dict: "4m", Word: 32, Block: "=on", Threads: 8},
			[]string{"-md4m", "-mfb32", "-ms=on", "-mmt8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Flags(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetWith_DoesNotMutateReceiver(t *testing.T) {
	base := Set{Dict: "4m"}
	derived := base.WithWord(32).WithBlock("1g").WithThreads(2)

	if base.Word != 0 || base.Block != "" || base.Threads != 0 {
		t.Errorf("base mutated: %+v", base)
	}
	want := Set{Dict: "4m", Word: 32, Block: "1g", Threads: 2}
	if derived != want {
		t.Errorf("derived = %+v, want %+v", derived, want)
	}
}
