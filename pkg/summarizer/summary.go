// Package summarizer provides summary generation for batch segmentation runs.
package summarizer

import (
	"time"

	"github.com/user/flowclip/pkg/orchestrator"
)

// Summary contains all data collected during a batch run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Duration    time.Duration

	// Directories
	InputDir  string
	OutputDir string

	// Run settings
	Settings Settings

	// Aggregate counts
	Totals Totals

	// Per-source outcomes, in processing order
	Sources []SourceInfo
}

// Settings contains the segmentation configuration.
type Settings struct {
	Preset     string
	Policy     string
	Length     int   // Fixed policy only
	Candidates []int // Dynamic policies only
	Underflow  string
	Paired     bool

	FPS     float64
	Codec   string
	Quality float64
}

// Totals contains the aggregate counts of a run.
type Totals struct {
	Discovered   int
	Processed    int
	Skipped      int
	Failed       int
	ClipsWritten int
}

// SourceInfo describes the outcome of one source.
type SourceInfo struct {
	Name   string
	Kind   string
	Status string
	Frames int
	Plan   []int
	Clips  int
	Note   string // Skip reason or error text
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithDirs sets the input and output directories.
func (b *Builder) WithDirs(input, output string) *Builder {
	b.summary.InputDir = input
	b.summary.OutputDir = output
	return b
}

// WithSettings sets run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithDuration sets the wall-clock duration of the run.
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.summary.Duration = d
	return b
}

// WithRunResult copies the counts and per-source outcomes of a run.
func (b *Builder) WithRunResult(r orchestrator.RunResult) *Builder {
	b.summary.Totals = Totals{
		Discovered:   r.Discovered,
		Processed:    r.Processed,
		Skipped:      r.Skipped,
		Failed:       r.Failed,
		ClipsWritten: r.ClipsWritten,
	}

	b.summary.Sources = b.summary.Sources[:0]
	for _, s := range r.Sources {
		info := SourceInfo{
			Name:   s.Name,
			Kind:   string(s.Kind),
			Status: string(s.Status),
			Frames: s.Frames,
			Plan:   s.Plan,
			Clips:  s.Clips,
			Note:   s.Reason,
		}
		if s.Err != nil {
			info.Note = s.Err.Error()
		}
		b.summary.Sources = append(b.summary.Sources, info)
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
