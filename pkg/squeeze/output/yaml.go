package output

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// yamlReport mirrors jsonReport for YAML output.
type yamlReport struct {
	RunID      string   `yaml:"run_id"`
	Flags      []string `yaml:"flags"`
	Dict       string   `yaml:"dict,omitempty"`
	Word       int      `yaml:"word,omitempty"`
	Block      string   `yaml:"block,omitempty"`
	Threads    int      `yaml:"threads,omitempty"`
	LargestMB  int64    `yaml:"largest_mb"`
	FinalBytes int64    `yaml:"final_bytes"`
	FinalHuman string   `yaml:"final_human"`
	Elapsed    string   `yaml:"elapsed"`
	Sweeps     []Sweep  `yaml:"sweeps"`
}

// YAMLFormatter formats output as YAML with the same structure as
// JSONFormatter.
type YAMLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, r *Report) error {
	doc := yamlReport{
		RunID:      r.RunID,
		Flags:      r.Flags,
		Dict:       r.Best.Dict,
		Word:       r.Best.Word,
		Block:      r.Best.Block,
		Threads:    r.Best.Threads,
		LargestMB:  r.LargestMB,
		FinalBytes: r.FinalBytes,
		FinalHuman: r.FinalHuman,
		Elapsed:    r.Elapsed.String(),
		Sweeps:     r.Sweeps,
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
