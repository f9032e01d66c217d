package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// PrettyFormatter formats output with colors and styling using
// lipgloss, suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")

	for _, sweep := range r.Sweeps {
		w.WriteString(f.formatSweep(sweep))
		w.WriteString("\n")
	}

	w.WriteString(f.formatFooter(r))
	w.WriteString("\n")
	return nil
}

// formatHeader builds the header box with run metadata.
func (f *PrettyFormatter) formatHeader(r *Report) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Run:"), ValueStyle.Render(r.RunID)))
	lines = append(lines, fmt.Sprintf("%s %s  %s %s",
		LabelStyle.Render("Largest input:"),
		ValueStyle.Render(fmt.Sprintf("%d MB", r.LargestMB)),
		LabelStyle.Render("Elapsed:"),
		ValueStyle.Render(formatDuration(r.Elapsed))))

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatSweep builds one sweep's candidate table, winner highlighted.
func (f *PrettyFormatter) formatSweep(s Sweep) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(strings.ToUpper(s.Name) + " SWEEP"))
	sb.WriteString("\n")

	if len(s.Rows) == 0 {
		sb.WriteString(MutedStyle.Render("  no candidates measured\n"))
		return sb.String()
	}

	candWidth := len("CANDIDATE")
	for _, row := range s.Rows {
		if len(row.Candidate) > candWidth {
			candWidth = len(row.Candidate)
		}
	}

	sb.WriteString(fmt.Sprintf("  %s  %s\n",
		MutedStyle.Render(padRight("CANDIDATE", candWidth)),
		MutedStyle.Render("SIZE")))

	for _, row := range s.Rows {
		line := fmt.Sprintf("  %s  %s", padRight(row.Candidate, candWidth), row.SizeHuman)
		if row.Best {
			line += "  *"
			sb.WriteString(BestStyle.Render(line))
		} else {
			sb.WriteString(MutedStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatFooter builds the final summary box.
func (f *PrettyFormatter) formatFooter(r *Report) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Best:"),
		BestStyle.Render(strings.Join(r.Flags, " "))))
	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Final archives:"),
		ValueStyle.Render(r.FinalHuman)))

	return FooterBox.Render(strings.Join(lines, "\n"))
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// formatDuration renders a duration with second precision for display.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
