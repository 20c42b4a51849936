package orchestrator

import (
	"github.com/user/flowclip/pkg/pipeline"
)

// Status is the outcome of one source.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// SourceResult records what happened to one source.
type SourceResult struct {
	Name   string
	Kind   pipeline.SourceKind
	Status Status
	Reason string // Why the source was skipped
	Frames int    // Primary stream frame count
	Plan   []int
	Clips  int // Clip files written, both streams
	Err    error
}

func (r SourceResult) skip(reason string) SourceResult {
	r.Status = StatusSkipped
	r.Reason = reason
	return r
}

func (r SourceResult) fail(err error) SourceResult {
	r.Status = StatusFailed
	r.Err = err
	return r
}

// RunResult contains the results of a batch run for summary generation.
type RunResult struct {
	Discovered   int
	Processed    int
	Skipped      int
	Failed       int
	ClipsWritten int
	Sources      []SourceResult
}

func (r *RunResult) add(sr SourceResult) {
	switch sr.Status {
	case StatusProcessed:
		r.Processed++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
	r.ClipsWritten += sr.Clips
	r.Sources = append(r.Sources, sr)
}
