// Package orchestrator drives the clip segmentation pipeline over a batch of sources.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
	"github.com/user/flowclip/pkg/stages/encode"
)

var (
	// ErrInputNotFound is returned when the input directory does not exist.
	ErrInputNotFound = errors.New("orchestrator: input directory not found")

	// ErrNothingDiscovered is returned when the input directory holds no sources.
	ErrNothingDiscovered = errors.New("orchestrator: no sources discovered")
)

// Stream names used for output directories and metrics labels.
const (
	StreamPrimary  = "primary"
	StreamFlowLine = "flow_line"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputDir        string
	VideoExtensions []string // Matched case-insensitively, leading dot optional

	// Pairing
	Paired        bool
	FlowLineDir   string // Sibling directory holding the flow-line streams
	PrimarySubdir string // Output subdirectory of primary clips in paired mode

	// Output
	OutputDir string
	Extension string // Clip container extension, without dot

	// Encoding
	FPS     float64
	Codec   string
	Quality float64

	// Debug contact sheets
	SheetColumns int
	SheetWidth   int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		VideoExtensions: []string{"mp4", "avi", "mov", "mkv", "webm"},
		FlowLineDir:     "flow_line",
		PrimarySubdir:   "track",
		Extension:       "mp4",
		FPS:             5,
		Codec:           "h264",
		Quality:         10,
		SheetColumns:    8,
		SheetWidth:      96,
	}
}

// Stages groups the pipeline stages used per source.
type Stages struct {
	Read    pipeline.Stage[pipeline.ReadInput, pipeline.Sequence]
	Align   pipeline.Stage[pipeline.AlignInput, pipeline.AlignResult]
	Segment pipeline.Stage[pipeline.SegmentInput, pipeline.SegmentResult]
	Encode  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	Sheet   pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult]
}

// Orchestrator runs the stages over every discovered source, one at a time.
type Orchestrator struct {
	stages   Stages
	fs       ports.FileSystem
	sink     ports.DebugSink
	progress ports.Progress
	metrics  ports.MetricsRecorder
	logger   ports.Logger
}

// New creates a new Orchestrator.
func New(
	stages Stages,
	fs ports.FileSystem,
	sink ports.DebugSink,
	progress ports.Progress,
	metrics ports.MetricsRecorder,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		stages:   stages,
		fs:       fs,
		sink:     sink,
		progress: progress,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run processes every source under config.InputDir.
//
// Failures of a single source are recorded in the result and do not stop the
// batch. Setup problems and context cancellation are returned as errors.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	var result RunResult

	sources, err := o.Discover(config)
	if err != nil {
		o.logger.Error(l10n.F("Failed to discover sources: %s", err))
		return result, err
	}
	result.Discovered = len(sources)
	o.logger.Info(l10n.F("Discovered %d sources in %s", len(sources), config.InputDir))

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			o.logger.Warn(l10n.T("Interrupted, stopping batch"))
			o.flush()
			return result, err
		}

		o.logger.Info(l10n.F("[%d/%d] Processing %s", i+1, len(sources), src.Name))
		sr := o.processSource(ctx, config, src)
		if sr.Status == StatusFailed && ctx.Err() != nil {
			o.logger.Warn(l10n.T("Interrupted, stopping batch"))
			o.flush()
			return result, ctx.Err()
		}
		result.add(sr)
		o.metrics.SourceFinished(string(src.Kind), string(sr.Status))
	}

	o.logger.Info(l10n.F("Batch finished: %d processed, %d skipped, %d failed, %d clips written",
		result.Processed, result.Skipped, result.Failed, result.ClipsWritten))

	o.flush()
	return result, nil
}

func (o *Orchestrator) flush() {
	if err := o.metrics.Flush(); err != nil {
		o.logger.Warn(l10n.F("Failed to write metrics: %s", err))
	}
}

// Discover lists the sources of config.InputDir: video files sorted by name,
// then image folders sorted by name. Hidden entries, the flow-line directory
// and the output directory are excluded.
func (o *Orchestrator) Discover(config Config) ([]pipeline.Source, error) {
	isDir, err := o.fs.IsDir(config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", config.InputDir, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, config.InputDir)
	}

	entries, err := o.fs.ReadDir(config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", config.InputDir, err)
	}

	excluded := map[string]bool{}
	if config.Paired && config.FlowLineDir != "" {
		excluded[filepath.Clean(filepath.Join(config.InputDir, config.FlowLineDir))] = true
	}
	if config.OutputDir != "" {
		excluded[filepath.Clean(config.OutputDir)] = true
	}

	var videos, folders []pipeline.Source
	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		path := filepath.Join(config.InputDir, e.Name)
		if excluded[filepath.Clean(path)] {
			continue
		}

		src := pipeline.Source{Name: e.Name, Path: path}
		if config.Paired {
			src.FlowLinePath = filepath.Join(config.InputDir, config.FlowLineDir, e.Name)
		}

		switch {
		case e.IsDir:
			src.Kind = pipeline.KindImages
			folders = append(folders, src)
		case hasExtension(e.Name, config.VideoExtensions):
			src.Kind = pipeline.KindVideo
			videos = append(videos, src)
		}
	}

	sources := append(videos, folders...)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNothingDiscovered, config.InputDir)
	}
	return sources, nil
}

// OutputDirs returns the clip directories of the primary and flow-line
// streams. The flow-line directory is empty in unpaired mode.
func OutputDirs(config Config) (primary, flowLine string) {
	if !config.Paired {
		return config.OutputDir, ""
	}
	return filepath.Join(config.OutputDir, config.PrimarySubdir),
		filepath.Join(config.OutputDir, config.FlowLineDir)
}

func (o *Orchestrator) processSource(ctx context.Context, config Config, src pipeline.Source) SourceResult {
	sr := SourceResult{Name: src.Name, Kind: src.Kind}
	stem := src.Stem()
	primaryDir, flowDir := OutputDirs(config)

	done, err := o.alreadyProcessed(primaryDir, stem)
	if err != nil {
		return sr.fail(err)
	}
	if done {
		o.logger.Info(l10n.F("Skipping %s: clips already exist", src.Name))
		return sr.skip("already processed")
	}

	if config.Paired {
		exists, err := o.fs.Exists(src.FlowLinePath)
		if err != nil {
			return sr.fail(err)
		}
		if !exists {
			o.logger.Warn(l10n.F("Skipping %s: flow line not found at %s", src.Name, src.FlowLinePath))
			return sr.skip("flow line missing")
		}
	}

	primary, err := o.stages.Read.Execute(ctx, pipeline.ReadInput{Path: src.Path})
	if err != nil {
		return o.failed(sr, err)
	}
	o.metrics.FramesDecoded(primary.Len())
	sr.Frames = primary.Len()

	segIn := pipeline.SegmentInput{Stem: stem, Primary: primary}
	if config.Paired {
		secondary, err := o.stages.Read.Execute(ctx, pipeline.ReadInput{Path: src.FlowLinePath})
		if err != nil {
			return o.failed(sr, err)
		}
		o.metrics.FramesDecoded(secondary.Len())

		if _, err := o.stages.Align.Execute(ctx, pipeline.AlignInput{Primary: primary, Secondary: secondary}); err != nil {
			return o.failed(sr, err)
		}
		segIn.Secondary = &secondary
	}

	seg, err := o.stages.Segment.Execute(ctx, segIn)
	if err != nil {
		return o.failed(sr, err)
	}
	sr.Plan = seg.Plan
	o.metrics.FramesPadded(seg.PaddedFrames())
	o.saveDebug(ctx, config, stem, seg)

	bar := o.progress.Start(src.Name, len(seg.Primary))
	defer bar.Finish()

	for i, clip := range seg.Primary {
		if err := ctx.Err(); err != nil {
			return sr.fail(err)
		}

		if err := o.writeClip(ctx, config, primaryDir, clip); err != nil {
			return o.failed(sr, err)
		}
		o.metrics.ClipWritten(StreamPrimary)
		sr.Clips++

		if config.Paired {
			if err := o.writeClip(ctx, config, flowDir, seg.Secondary[i]); err != nil {
				return o.failed(sr, err)
			}
			o.metrics.ClipWritten(StreamFlowLine)
			sr.Clips++
		}
		bar.Add(1)
	}

	o.logger.Info(l10n.F("Wrote %d clips for %s (plan %v)", sr.Clips, src.Name, seg.Plan))
	sr.Status = StatusProcessed
	return sr
}

func (o *Orchestrator) writeClip(ctx context.Context, config Config, dir string, clip pipeline.Clip) error {
	_, err := o.stages.Encode.Execute(ctx, pipeline.EncodeInput{
		Clip:    clip,
		Path:    filepath.Join(dir, clip.FileName(config.Extension)),
		FPS:     config.FPS,
		Codec:   config.Codec,
		Quality: config.Quality,
	})
	return err
}

// alreadyProcessed reports whether dir holds a finished clip of stem.
func (o *Orchestrator) alreadyProcessed(dir, stem string) (bool, error) {
	isDir, err := o.fs.IsDir(dir)
	if err != nil || !isDir {
		return false, err
	}
	entries, err := o.fs.ReadDir(dir)
	if err != nil {
		return false, err
	}
	prefix := stem + pipeline.ClipInfix
	for _, e := range entries {
		if !e.IsDir && strings.HasPrefix(e.Name, prefix) && !strings.HasSuffix(e.Name, encode.PartialSuffix) {
			return true, nil
		}
	}
	return false, nil
}

func (o *Orchestrator) saveDebug(ctx context.Context, config Config, stem string, seg pipeline.SegmentResult) {
	if !o.sink.Enabled() {
		return
	}

	if data, err := json.MarshalIndent(newPlanReport(seg), "", "  "); err == nil {
		if err := o.sink.SavePlanJSON(stem, data); err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
		}
	}

	if o.stages.Sheet == nil {
		return
	}
	for _, clip := range seg.Primary {
		sheet, err := o.stages.Sheet.Execute(ctx, pipeline.SheetInput{
			Clip:    clip,
			Columns: config.SheetColumns,
			Width:   config.SheetWidth,
		})
		if err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
			return
		}
		if err := o.sink.SaveContactSheet(stem, clip.Index, sheet.Image); err != nil {
			o.logger.Warn(l10n.F("Failed to save debug output: %s", err))
			return
		}
	}
}

func (o *Orchestrator) failed(sr SourceResult, err error) SourceResult {
	o.logger.Warn(l10n.F("Failed to process %s: %s", sr.Name, err))
	return sr.fail(err)
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}

// planReport is the debug JSON written per source.
type planReport struct {
	Plan  []int        `json:"plan"`
	Clips []clipReport `json:"clips"`
}

type clipReport struct {
	Index    int `json:"index"`
	Start    int `json:"start"`
	End      int `json:"end"`
	PadStart int `json:"pad_start"`
	Target   int `json:"target"`
	Frames   int `json:"frames"`
	Padded   int `json:"padded"`
	Repeated int `json:"repeated,omitempty"`
}

func newPlanReport(seg pipeline.SegmentResult) planReport {
	r := planReport{Plan: seg.Plan}
	for _, c := range seg.Primary {
		r.Clips = append(r.Clips, clipReport{
			Index:    c.Index,
			Start:    c.Start,
			End:      c.End,
			PadStart: c.PadStart,
			Target:   c.Target,
			Frames:   len(c.Frames),
			Padded:   c.PaddedFrames(),
			Repeated: c.RepeatedFrames(),
		})
	}
	return r
}
