package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter formats a Summary as a markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Segmentation Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s", s.GeneratedAt.Format(time.RFC3339))
	if s.Duration > 0 {
		fmt.Fprintf(&b, " in %s", s.Duration.Round(time.Millisecond))
	}
	b.WriteString("\n\n")

	b.WriteString("## Run\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "Input", s.InputDir)
	row(&b, "Output", s.OutputDir)
	row(&b, "Preset", s.Settings.Preset)
	row(&b, "Policy", planLabel(s.Settings))
	row(&b, "Underflow", s.Settings.Underflow)
	row(&b, "Paired", yesNo(s.Settings.Paired))
	row(&b, "Encoding", fmt.Sprintf("%s, %g fps, quality %g", s.Settings.Codec, s.Settings.FPS, s.Settings.Quality))
	b.WriteString("\n")

	t := s.Totals
	b.WriteString("## Totals\n\n")
	b.WriteString("| Discovered | Processed | Skipped | Failed | Clips |\n")
	b.WriteString("|-----------:|----------:|--------:|-------:|------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", t.Discovered, t.Processed, t.Skipped, t.Failed, t.ClipsWritten)

	if len(s.Sources) == 0 {
		return b.String()
	}

	b.WriteString("## Sources\n\n")
	b.WriteString("| Source | Kind | Status | Frames | Plan | Clips | Note |\n")
	b.WriteString("|--------|------|--------|-------:|------|------:|------|\n")
	for _, src := range s.Sources {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %d | %s |\n",
			escape(src.Name), src.Kind, src.Status, src.Frames, joinInts(src.Plan), src.Clips, escape(src.Note))
	}

	return b.String()
}

func row(b *strings.Builder, key, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(b, "| %s | %s |\n", key, escape(value))
}

func planLabel(s Settings) string {
	switch {
	case s.Policy == "fixed":
		return fmt.Sprintf("fixed (%d)", s.Length)
	case len(s.Candidates) > 0:
		return fmt.Sprintf("%s (%s)", s.Policy, joinInts(s.Candidates))
	default:
		return s.Policy
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// escape keeps table cells on one line.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

var _ Formatter = (*MarkdownFormatter)(nil)
