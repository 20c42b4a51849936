package main

import (
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/flowclip/pkg/adapters/ffmpegencoder"
	"github.com/user/flowclip/pkg/adapters/osfilesystem"
	"github.com/user/flowclip/pkg/adapters/smartsource"
	"github.com/user/flowclip/pkg/juxtapose"
	"github.com/user/flowclip/pkg/stages/encode"
)

func previewCommand() *cli.Command {
	defaults := juxtapose.DefaultOptions()
	flags := []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output MP4 file path (required)")},
		&cli.IntFlag{Name: "gap", Value: defaults.Gap, Usage: l10n.T("Gap between videos in pixels")},
		&cli.Float64Flag{Name: "fps", Value: defaults.FPS, Usage: l10n.T("Output frame rate (default: 5)")},
		&cli.StringFlag{Name: "codec", Value: defaults.Codec, Usage: l10n.T("Video codec (default: h264)")},
		&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)")},
	}

	return &cli.Command{
		Name:      "preview",
		Usage:     l10n.T("Create a side-by-side preview of a clip and its flow-line clip"),
		ArgsUsage: "<clip> <flow-line clip>",
		Flags:     append(flags, logFlags()...),
		Action:    runPreview,
	}
}

func runPreview(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit(l10n.T("Two video arguments are required"), 2)
	}
	if path := c.String("ffmpeg-path"); path != "" {
		ffmpegencoder.SetFFmpegPath(path)
	}

	log := loggerFrom(c)
	fs := osfilesystem.New()

	opts := juxtapose.DefaultOptions()
	opts.Gap = c.Int("gap")
	opts.FPS = c.Float64("fps")
	opts.Codec = c.String("codec")

	stage := juxtapose.New(
		smartsource.New(fs, log, smartsource.Options{}),
		encode.NewStage(ffmpegencoder.New(), fs, log),
		log,
		opts,
	)

	input := juxtapose.Input{
		LeftPath:   c.Args().Get(0),
		RightPath:  c.Args().Get(1),
		OutputPath: c.String("output"),
	}
	log.Info(l10n.F("Creating comparison video: %s + %s → %s", input.LeftPath, input.RightPath, input.OutputPath))

	result, err := stage.Execute(c.Context, input)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info(l10n.F("Output saved to %s (%d frames, %dx%d)", input.OutputPath, result.Frames, result.Width, result.Height))
	return nil
}
