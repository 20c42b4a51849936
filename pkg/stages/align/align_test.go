package align

import (
	"context"
	"errors"
	"testing"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/mocks"
	"github.com/user/flowclip/pkg/pipeline"
)

func TestStage_Execute(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.AlignInput{
		Primary:   pipeline.Sequence{Source: "a.mp4", Frames: mocks.Frames(12, 2, 2)},
		Secondary: pipeline.Sequence{Source: "flow_line/a.mp4", Frames: mocks.Frames(12, 2, 2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Frames != 12 {
		t.Errorf("expected 12 frames, got %d", result.Frames)
	}
}

func TestStage_Execute_Mismatch(t *testing.T) {
	stage := NewStage(logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.AlignInput{
		Primary:   pipeline.Sequence{Source: "a.mp4", Frames: mocks.Frames(12, 2, 2)},
		Secondary: pipeline.Sequence{Source: "flow_line/a.mp4", Frames: mocks.Frames(11, 2, 2)},
	})

	var mismatch *pipeline.FrameCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected FrameCountMismatchError, got %v", err)
	}
	if mismatch.PrimaryCount != 12 || mismatch.SecondaryCount != 11 || mismatch.SecondarySource != "flow_line/a.mp4" {
		t.Errorf("unexpected error fields: %+v", mismatch)
	}
}
