package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flowclip/pkg/adapters/ffmpegencoder"
	"github.com/user/flowclip/pkg/adapters/filesink"
	"github.com/user/flowclip/pkg/adapters/ggrenderer"
	"github.com/user/flowclip/pkg/adapters/nullsink"
	"github.com/user/flowclip/pkg/adapters/osfilesystem"
	"github.com/user/flowclip/pkg/adapters/progress"
	"github.com/user/flowclip/pkg/adapters/prommetrics"
	"github.com/user/flowclip/pkg/adapters/smartsource"
	"github.com/user/flowclip/pkg/config"
	"github.com/user/flowclip/pkg/orchestrator"
	"github.com/user/flowclip/pkg/planner"
	"github.com/user/flowclip/pkg/ports"
	"github.com/user/flowclip/pkg/stages/align"
	"github.com/user/flowclip/pkg/stages/contactsheet"
	"github.com/user/flowclip/pkg/stages/encode"
	"github.com/user/flowclip/pkg/stages/read"
	"github.com/user/flowclip/pkg/stages/segment"
	"github.com/user/flowclip/pkg/summarizer"
)

const exitInterrupted = 130

func splitCommand() *cli.Command {
	flags := []cli.Flag{
		// Input/Output
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: l10n.T("Input directory of videos and image folders"), Category: l10n.T("Input/Output")},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output directory for clips (default: ./clips)"), Category: l10n.T("Input/Output")},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Input/Output")},

		// Planning
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: l10n.T("Preset (fixed5, uniform, greedy)"), Category: l10n.T("Planning")},
		&cli.StringFlag{Name: "policy", Usage: l10n.T("Clip length policy (fixed, uniform, greedy)"), Category: l10n.T("Planning")},
		&cli.IntFlag{Name: "length", Usage: l10n.T("Clip length of the fixed policy"), Category: l10n.T("Planning")},
		&cli.StringFlag{Name: "lengths", Usage: l10n.T("Candidate clip lengths, comma separated (e.g., 33,29,25)"), Category: l10n.T("Planning")},
		&cli.StringFlag{Name: "underflow", Usage: l10n.T("Short source handling (reject, short, repeat)"), Category: l10n.T("Planning")},

		// Sources
		&cli.BoolFlag{Name: "paired", Usage: l10n.T("Process each source together with its flow-line stream"), Category: l10n.T("Sources")},
		&cli.StringFlag{Name: "flow-dir", Usage: l10n.T("Directory of the flow-line streams inside the input (default: flow_line)"), Category: l10n.T("Sources")},

		// Encoding
		&cli.Float64Flag{Name: "fps", Usage: l10n.T("Output frame rate (default: 5)"), Category: l10n.T("Encoding")},
		&cli.StringFlag{Name: "codec", Usage: l10n.T("Video codec (default: h264)"), Category: l10n.T("Encoding")},
		&cli.Float64Flag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Video quality (0-10, 10 is best)"), Category: l10n.T("Encoding")},
		&cli.StringFlag{Name: "ext", Usage: l10n.T("Clip container extension (default: mp4)"), Category: l10n.T("Encoding")},
		&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)"), Category: l10n.T("Encoding")},

		// Reporting
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T("Reporting")},
		&cli.StringFlag{Name: "metrics-file", Usage: l10n.T("Write Prometheus metrics to file"), Category: l10n.T("Reporting")},
		&cli.BoolFlag{Name: "no-progress", Usage: l10n.T("Disable progress bars"), Category: l10n.T("Reporting")},
		&cli.BoolFlag{Name: "strict", Usage: l10n.T("Exit with an error when any source fails"), Category: l10n.T("Reporting")},

		// Debug
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},
	}

	return &cli.Command{
		Name:        "split",
		Usage:       l10n.T("Split every source of a directory into clips"),
		Description: l10n.T("Discover videos and image folders under the input directory and write fixed-length clips to the output directory."),
		Flags:       append(flags, logFlags()...),
		Action:      runSplit,
	}
}

func runSplit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	log := newLogger(c.Bool("quiet"), cfg.LogLevel)
	built := cfg.ToBuilder().Build()

	strategy, err := built.Strategy()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if cfg.FFmpegPath != "" {
		ffmpegencoder.SetFFmpegPath(cfg.FFmpegPath)
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	source := smartsource.New(fs, log, smartsource.Options{ImageExtensions: built.ImageExtensions})

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return cli.Exit(fmt.Sprintf("create debug directory: %v", err), 1)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	var bars ports.Progress
	if c.Bool("quiet") || c.Bool("no-progress") {
		bars = progress.NewNoop()
	} else {
		bars = progress.New()
	}

	metrics := prommetrics.New(cfg.MetricsFile)

	// Create stages
	stages := orchestrator.Stages{
		Read:    read.NewStage(source, log),
		Align:   align.NewStage(log),
		Segment: segment.NewStage(strategy, built.Underflow, log),
		Encode:  encode.NewStage(ffmpegencoder.New(), fs, log),
		Sheet:   contactsheet.NewStage(renderer, cfg.SheetTheme()),
	}
	orch := orchestrator.New(stages, fs, sink, bars, metrics, log)

	started := time.Now()
	result, runErr := orch.Run(c.Context, built.ToOrchestratorConfig(cfg.Input, cfg.Output))

	if cfg.Summary != "" && !errors.Is(runErr, orchestrator.ErrInputNotFound) && !errors.Is(runErr, orchestrator.ErrNothingDiscovered) {
		writeSummary(fs, log, cfg, strategy, result, time.Since(started))
	}

	switch {
	case errors.Is(runErr, context.Canceled):
		return cli.Exit(l10n.T("Interrupted"), exitInterrupted)
	case runErr != nil:
		return cli.Exit(runErr.Error(), 1)
	case c.Bool("strict") || cfg.Strict:
		if result.Failed > 0 {
			return cli.Exit(l10n.F("%d sources failed", result.Failed), 1)
		}
	}
	return nil
}

// loadConfig reads --config when given and overlays the explicitly set flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
	if c.IsSet("length") {
		cfg.Length = c.Int("length")
	}
	if c.IsSet("lengths") {
		lengths, err := planner.ParseLengths(c.String("lengths"))
		if err != nil {
			return cfg, err
		}
		cfg.Lengths = lengths
	}
	if c.IsSet("underflow") {
		cfg.Underflow = c.String("underflow")
	}
	if c.IsSet("paired") {
		paired := c.Bool("paired")
		cfg.Paired = &paired
	}
	if c.IsSet("flow-dir") {
		cfg.FlowLineDir = c.String("flow-dir")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("codec") {
		cfg.Codec = c.String("codec")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Float64("quality")
	}
	if c.IsSet("ext") {
		cfg.Extension = c.String("ext")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func writeSummary(fs ports.FileSystem, log ports.Logger, cfg config.Config, strategy planner.Strategy, result orchestrator.RunResult, elapsed time.Duration) {
	built := cfg.ToBuilder().Build()
	settings := summarizer.Settings{
		Preset:    cfg.Preset,
		Policy:    string(strategy.Name()),
		Underflow: string(built.Underflow),
		Paired:    built.Paired,
		FPS:       built.FPS,
		Codec:     built.Codec,
		Quality:   built.Quality,
	}
	if strategy.Name() == planner.PolicyFixed {
		settings.Length = built.Length
	} else {
		settings.Candidates = built.Candidates
	}

	summary := summarizer.NewBuilder().
		WithDirs(cfg.Input, cfg.Output).
		WithSettings(settings).
		WithDuration(elapsed).
		WithRunResult(result).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
	if err := writer.Write(cfg.Summary, summary); err != nil {
		log.Warn(l10n.F("Failed to write summary: %s", err))
		return
	}
	log.Info(l10n.F("Summary saved to %s", cfg.Summary))
}
