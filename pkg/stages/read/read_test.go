package read

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/mocks"
	"github.com/user/flowclip/pkg/pipeline"
)

func TestStage_Execute(t *testing.T) {
	source := mocks.NewFrameSource().Add("in/a.mp4", mocks.Frames(7, 4, 3))
	stage := NewStage(source, logger.NewNoop())

	seq, err := stage.Execute(context.Background(), pipeline.ReadInput{Path: "in/a.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.Len() != 7 || seq.Source != "in/a.mp4" {
		t.Errorf("unexpected sequence: %s from %q", Describe(seq), seq.Source)
	}
	if Describe(seq) != "7 frames 4x3" {
		t.Errorf("unexpected description %q", Describe(seq))
	}
}

func TestStage_Execute_ShapeMismatch(t *testing.T) {
	frames := mocks.Frames(3, 4, 4)
	frames[2] = image.NewRGBA(image.Rect(0, 0, 5, 4))
	source := mocks.NewFrameSource().Add("a.mp4", frames)

	_, err := NewStage(source, logger.NewNoop()).Execute(context.Background(), pipeline.ReadInput{Path: "a.mp4"})

	var decodeErr *pipeline.DecodeError
	if !errors.As(err, &decodeErr) || !errors.Is(err, pipeline.ErrShapeMismatch) {
		t.Errorf("expected DecodeError wrapping ErrShapeMismatch, got %v", err)
	}
}

func TestStage_Execute_DecodeError(t *testing.T) {
	source := mocks.NewFrameSource().Fail("a.mp4", errors.New("moov atom not found"))

	_, err := NewStage(source, logger.NewNoop()).Execute(context.Background(), pipeline.ReadInput{Path: "a.mp4"})

	var decodeErr *pipeline.DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Path != "a.mp4" {
		t.Errorf("expected DecodeError for a.mp4, got %v", err)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := mocks.NewFrameSource().Add("a.mp4", mocks.Frames(1, 2, 2))
	_, err := NewStage(source, logger.NewNoop()).Execute(ctx, pipeline.ReadInput{Path: "a.mp4"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(source.Reads) != 0 {
		t.Error("source should not be read after cancellation")
	}
}
