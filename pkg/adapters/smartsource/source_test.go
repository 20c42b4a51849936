package smartsource

import (
	"context"
	"errors"
	"testing"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/mocks"
	"github.com/user/flowclip/pkg/pipeline"
)

func TestSource_Dispatch(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("in/a.mp4", []byte("video"))
	fs.WriteFile("in/seq/0001.png", []byte("image"))

	video := mocks.NewFrameSource().Add("in/a.mp4", mocks.Frames(3, 2, 2))
	images := mocks.NewFrameSource().Add("in/seq", mocks.Frames(5, 2, 2))
	src := NewWith(fs, video, images, logger.NewNoop())

	seq, err := src.ReadSequence(context.Background(), "in/a.mp4")
	if err != nil {
		t.Fatalf("ReadSequence(video) failed: %v", err)
	}
	if seq.Len() != 3 {
		t.Errorf("expected 3 video frames, got %d", seq.Len())
	}

	seq, err = src.ReadSequence(context.Background(), "in/seq")
	if err != nil {
		t.Fatalf("ReadSequence(images) failed: %v", err)
	}
	if seq.Len() != 5 {
		t.Errorf("expected 5 image frames, got %d", seq.Len())
	}

	if len(video.Reads) != 1 || len(images.Reads) != 1 {
		t.Errorf("expected one read per reader, got video=%v images=%v", video.Reads, images.Reads)
	}
}

func TestSource_Detect(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("in/a.mp4", nil)
	fs.MkdirAll("in/seq")
	src := NewWith(fs, mocks.NewFrameSource(), mocks.NewFrameSource(), logger.NewNoop())

	if kind, _ := src.Detect("in/a.mp4"); kind != pipeline.KindVideo {
		t.Errorf("expected video, got %s", kind)
	}
	if kind, _ := src.Detect("in/seq"); kind != pipeline.KindImages {
		t.Errorf("expected images, got %s", kind)
	}
	if _, err := src.Detect("in/missing.mp4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSource_MissingIsDecodeError(t *testing.T) {
	src := NewWith(mocks.NewFileSystem(), mocks.NewFrameSource(), mocks.NewFrameSource(), logger.NewNoop())

	_, err := src.ReadSequence(context.Background(), "nope.mp4")
	var decodeErr *pipeline.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in chain, got %v", err)
	}
}
