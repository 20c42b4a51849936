// Package juxtapose renders a primary clip and its flow-line clip side by side
// into one preview video.
package juxtapose

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Options configures the juxtapose operation.
type Options struct {
	// Gap is the horizontal gap between the two videos in pixels.
	Gap int
	// FPS is the output frame rate.
	FPS     float64
	Codec   string
	Quality float64 // 0-10, 10 is best
	// Background fills the gap and the margins of the shorter video.
	Background color.Color
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Gap:        10,
		FPS:        5,
		Codec:      "h264",
		Quality:    10,
		Background: color.Black,
	}
}

// Input names the two videos and the preview file.
type Input struct {
	LeftPath   string
	RightPath  string
	OutputPath string
}

// Result describes the written preview.
type Result struct {
	Frames   int
	Width    int
	Height   int
	FileSize int64
}

// Stage composes two sources frame by frame and hands the result to an
// encode stage.
type Stage struct {
	source ports.FrameSource
	encode pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	logger ports.Logger
	opts   Options
}

// New creates a new juxtapose stage.
func New(source ports.FrameSource, encode pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult], logger ports.Logger, opts Options) *Stage {
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	return &Stage{
		source: source,
		encode: encode,
		logger: logger.WithComponent("juxtapose"),
		opts:   opts,
	}
}

// Execute writes input.LeftPath and input.RightPath side by side.
// The shorter video holds its last frame until the longer one finishes.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	left, err := s.read(ctx, input.LeftPath)
	if err != nil {
		return Result{}, fmt.Errorf("read left video: %w", err)
	}
	right, err := s.read(ctx, input.RightPath)
	if err != nil {
		return Result{}, fmt.Errorf("read right video: %w", err)
	}

	n := left.Len()
	if right.Len() > n {
		n = right.Len()
	}
	if left.Len() != right.Len() {
		s.logger.Warn("Frame counts differ (%d vs %d), holding the last frame", left.Len(), right.Len())
	}

	frames := make([]image.Image, n)
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		frames[i] = Compose(frameAt(left, i), frameAt(right, i), s.opts.Gap, s.opts.Background)
	}
	size := frames[0].Bounds().Size()

	stem := strings.TrimSuffix(filepath.Base(input.OutputPath), filepath.Ext(input.OutputPath))
	encoded, err := s.encode.Execute(ctx, pipeline.EncodeInput{
		Clip: pipeline.Clip{
			Source: input.LeftPath,
			Stem:   stem,
			Index:  1,
			End:    n,
			Target: n,
			Frames: frames,
		},
		Path:    input.OutputPath,
		FPS:     s.opts.FPS,
		Codec:   s.opts.Codec,
		Quality: s.opts.Quality,
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Debug("Preview %dx%d with %d frames written to %s", size.X, size.Y, n, input.OutputPath)
	return Result{Frames: n, Width: size.X, Height: size.Y, FileSize: encoded.FileSize}, nil
}

func (s *Stage) read(ctx context.Context, path string) (pipeline.Sequence, error) {
	seq, err := s.source.ReadSequence(ctx, path)
	if err != nil {
		return seq, err
	}
	if seq.Len() == 0 {
		return seq, fmt.Errorf("%s: %w", path, pipeline.ErrEmptySource)
	}
	return seq, nil
}

// frameAt returns frame i, or the last frame past the end.
func frameAt(seq pipeline.Sequence, i int) image.Image {
	if i >= seq.Len() {
		return seq.Frames[seq.Len()-1]
	}
	return seq.Frames[i]
}

// Compose draws left and right next to each other, separated by gap pixels
// and vertically centred on a background-filled canvas.
func Compose(left, right image.Image, gap int, background color.Color) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()

	width := lb.Dx() + gap + rb.Dx()
	height := lb.Dy()
	if rb.Dy() > height {
		height = rb.Dy()
	}

	output := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(output, output.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	leftY := (height - lb.Dy()) / 2
	draw.Draw(output, image.Rect(0, leftY, lb.Dx(), leftY+lb.Dy()), left, lb.Min, draw.Src)

	rightX := lb.Dx() + gap
	rightY := (height - rb.Dy()) / 2
	draw.Draw(output, image.Rect(rightX, rightY, rightX+rb.Dx(), rightY+rb.Dy()), right, rb.Min, draw.Src)

	return output
}
