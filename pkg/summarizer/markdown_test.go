package summarizer

import (
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
		InputDir:    "data",
		OutputDir:   "clips",
		Settings: Settings{
			Preset:    "fixed5",
			Policy:    "fixed",
			Length:    5,
			Underflow: "reject",
			Paired:    true,
			FPS:       5,
			Codec:     "h264",
			Quality:   10,
		},
		Totals: Totals{Discovered: 2, Processed: 1, Skipped: 1, ClipsWritten: 6},
		Sources: []SourceInfo{
			{Name: "a.mp4", Kind: "video", Status: "processed", Frames: 12, Plan: []int{5, 5, 5}, Clips: 6},
			{Name: "b.mp4", Kind: "video", Status: "skipped", Note: "flow line missing"},
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Segmentation Summary",
		"2024-01-15T10:30:00Z",
		"1.5s",
		"| Input | data |",
		"fixed (5)",
		"| Paired | yes |",
		"h264, 5 fps, quality 10",
		"| 2 | 1 | 1 | 0 | 6 |",
		"| a.mp4 | video | processed | 12 | 5, 5, 5 | 6 |  |",
		"flow line missing",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestMarkdownFormatter_Format_NoSources(t *testing.T) {
	result := NewMarkdownFormatter().Format(&Summary{GeneratedAt: time.Now()})

	if strings.Contains(result, "## Sources") {
		t.Error("expected no sources section for an empty run")
	}
	if !strings.Contains(result, "| Output | - |") {
		t.Error("expected placeholder for missing values")
	}
}

func TestMarkdownFormatter_Format_DynamicPolicy(t *testing.T) {
	summary := &Summary{
		Settings: Settings{Policy: "greedy", Candidates: []int{33, 29, 5}},
	}
	result := NewMarkdownFormatter().Format(summary)

	if !strings.Contains(result, "greedy (33, 29, 5)") {
		t.Errorf("expected candidate list in policy label\n%s", result)
	}
}

func TestMarkdownFormatter_EscapesCells(t *testing.T) {
	summary := &Summary{
		Sources: []SourceInfo{{Name: "a|b.mp4", Status: "failed", Note: "line one\nline two"}},
	}
	result := NewMarkdownFormatter().Format(summary)

	if !strings.Contains(result, `a\|b.mp4`) {
		t.Error("expected pipe in name to be escaped")
	}
	if !strings.Contains(result, "line one line two") {
		t.Error("expected newline in note to be flattened")
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.InputDir })
	if got := f.Format(&Summary{InputDir: "x"}); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
}
