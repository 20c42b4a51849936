package mocks

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource backed by a
// map of path to frames.
type FrameSource struct {
	mu        sync.Mutex
	sequences map[string][]image.Image
	errors    map[string]error

	ReadSequenceFunc func(ctx context.Context, path string) (pipeline.Sequence, error)

	// Reads records every path passed to ReadSequence.
	Reads []string
}

// NewFrameSource creates an empty mock FrameSource.
func NewFrameSource() *FrameSource {
	return &FrameSource{
		sequences: make(map[string][]image.Image),
		errors:    make(map[string]error),
	}
}

// Add registers frames for path.
func (m *FrameSource) Add(path string, frames []image.Image) *FrameSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequences[path] = frames
	return m
}

// Fail makes ReadSequence of path return err.
func (m *FrameSource) Fail(path string, err error) *FrameSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path] = err
	return m
}

func (m *FrameSource) ReadSequence(ctx context.Context, path string) (pipeline.Sequence, error) {
	m.mu.Lock()
	m.Reads = append(m.Reads, path)
	m.mu.Unlock()

	if m.ReadSequenceFunc != nil {
		return m.ReadSequenceFunc(ctx, path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errors[path]; ok {
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: path, Err: err}
	}
	frames, ok := m.sequences[path]
	if !ok {
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: path, Err: fmt.Errorf("no such source")}
	}
	return pipeline.Sequence{Source: path, Frames: frames}, nil
}

// Frames returns n distinct w x h frames. Frame i has its first pixel's red
// and green channels set to the low and high bytes of i.
func Frames(n, w, h int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		img.Pix[0] = byte(i)
		img.Pix[1] = byte(i >> 8)
		img.Pix[3] = 255
		frames[i] = img
	}
	return frames
}

// FrameIndex decodes the index written by Frames.
func FrameIndex(img image.Image) int {
	rgba := img.(*image.RGBA)
	return int(rgba.Pix[0]) | int(rgba.Pix[1])<<8
}

var _ ports.FrameSource = (*FrameSource)(nil)
