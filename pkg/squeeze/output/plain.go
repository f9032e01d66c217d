package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

// PlainFormatter formats output as simple tab-separated tables. It
// produces plain text suitable for scripting and piping; no colors or
// styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "largest_mb\t%d\n", r.LargestMB)
	fmt.Fprintf(tw, "best\t%s\n", strings.Join(r.Flags, " "))
	fmt.Fprintf(tw, "final_size\t%s\n", r.FinalHuman)
	fmt.Fprintf(tw, "elapsed\t%s\n", formatDuration(r.Elapsed))

	for _, sweep := range r.Sweeps {
		fmt.Fprintf(tw, "\nSWEEP\tCANDIDATE\tBYTES\tBEST\n")
		for _, row := range sweep.Rows {
			marker := ""
			if row.Best {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", sweep.Name, row.Candidate, row.Bytes, marker)
		}
	}

	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
