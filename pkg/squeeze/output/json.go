package output

import (
	"bytes"
	"encoding/json"
)

// jsonReport is the JSON document shape. Elapsed is rendered as a
// duration string rather than raw nanoseconds.
type jsonReport struct {
	RunID      string   `json:"run_id"`
	Flags      []string `json:"flags"`
	Dict       string   `json:"dict,omitempty"`
	Word       int      `json:"word,omitempty"`
	Block      string   `json:"block,omitempty"`
	Threads    int      `json:"threads,omitempty"`
	LargestMB  int64    `json:"largest_mb"`
	FinalBytes int64    `json:"final_bytes"`
	FinalHuman string   `json:"final_human"`
	Elapsed    string   `json:"elapsed"`
	Sweeps     []Sweep  `json:"sweeps"`
}

// JSONFormatter formats output as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(r))
}

func buildJSONReport(r *Report) jsonReport {
	return jsonReport{
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
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
