package juxtapose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/mocks"
	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/stages/encode"
)

func newStage(source *mocks.FrameSource, enc *mocks.VideoEncoder, fs *mocks.FileSystem, opts Options) *Stage {
	log := logger.NewNoop()
	return New(source, encode.NewStage(enc, fs, log), log, opts)
}

func TestStage_Execute(t *testing.T) {
	source := mocks.NewFrameSource().
		Add("track/a_clip_001.mp4", mocks.Frames(3, 4, 4)).
		Add("flow_line/a_clip_001.mp4", mocks.Frames(5, 2, 6))
	enc := &mocks.VideoEncoder{}
	fs := mocks.NewFileSystem()

	opts := DefaultOptions()
	opts.Gap = 2
	opts.FPS = 8

	result, err := newStage(source, enc, fs, opts).Execute(context.Background(), Input{
		LeftPath:   "track/a_clip_001.mp4",
		RightPath:  "flow_line/a_clip_001.mp4",
		OutputPath: "preview/a.mp4",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Frames != 5 || result.Width != 8 || result.Height != 6 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(enc.BeginCalls) != 1 {
		t.Fatalf("expected one encode, got %d", len(enc.BeginCalls))
	}
	begin := enc.BeginCalls[0]
	if begin.Width != 8 || begin.Height != 6 || begin.FPS != 8 || begin.Opts.Codec != "h264" {
		t.Errorf("unexpected encoder setup: %+v", begin)
	}
	if len(enc.EncodeFrameCalls) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(enc.EncodeFrameCalls))
	}

	// The left video holds its last frame.
	last := enc.EncodeFrameCalls[4].(*image.RGBA)
	if r := last.RGBAAt(0, 1).R; r != 2 {
		t.Errorf("expected left frame 2 held, got %d", r)
	}
	if r := last.RGBAAt(6, 0).R; r != 4 {
		t.Errorf("expected right frame 4, got %d", r)
	}

	if _, ok := fs.GetFile("preview/a.mp4"); !ok {
		t.Error("preview file should be written")
	}
}

func TestStage_Execute_Errors(t *testing.T) {
	source := mocks.NewFrameSource().
		Add("a.mp4", mocks.Frames(2, 4, 4)).
		Add("empty.mp4", nil).
		Fail("broken.mp4", errors.New("bad data"))

	stage := newStage(source, &mocks.VideoEncoder{}, mocks.NewFileSystem(), DefaultOptions())

	_, err := stage.Execute(context.Background(), Input{LeftPath: "broken.mp4", RightPath: "a.mp4", OutputPath: "o.mp4"})
	var decodeErr *pipeline.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected DecodeError, got %v", err)
	}

	_, err = stage.Execute(context.Background(), Input{LeftPath: "a.mp4", RightPath: "empty.mp4", OutputPath: "o.mp4"})
	if !errors.Is(err, pipeline.ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestStage_Execute_EncodeFailure(t *testing.T) {
	source := mocks.NewFrameSource().
		Add("a.mp4", mocks.Frames(2, 4, 4)).
		Add("b.mp4", mocks.Frames(2, 4, 4))
	enc := &mocks.VideoEncoder{EndFunc: func() ([]byte, error) { return nil, errors.New("ffmpeg exited") }}
	fs := mocks.NewFileSystem()

	_, err := newStage(source, enc, fs, DefaultOptions()).Execute(context.Background(), Input{
		LeftPath: "a.mp4", RightPath: "b.mp4", OutputPath: "o.mp4",
	})
	var encodeErr *pipeline.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Errorf("expected EncodeError, got %v", err)
	}
	if _, ok := fs.GetFile("o.mp4"); ok {
		t.Error("no preview should be left behind")
	}
}

func TestCompose(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 2, 2))
	right := image.NewRGBA(image.Rect(10, 10, 13, 14))
	for i := range left.Pix {
		left.Pix[i] = 255
	}
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}

	out := Compose(left, right, 3, bg)

	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 4 {
		t.Fatalf("unexpected size %v", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != bg {
		t.Errorf("margin above the left video should be background, got %v", got)
	}
	if got := out.RGBAAt(1, 1); got.R != 255 {
		t.Errorf("left video should start at row 1, got %v", got)
	}
	if got := out.RGBAAt(3, 2); got != bg {
		t.Errorf("gap should be background, got %v", got)
	}
	if got := out.RGBAAt(5, 0); got.A != 0 {
		t.Errorf("right video should cover the full height, got %v", got)
	}
}
