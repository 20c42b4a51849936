package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySource is returned when a source has no frames.
	ErrEmptySource = errors.New("pipeline: source has no frames")

	// ErrClipNotFound is returned when a clip's first frame does not occur in the source.
	ErrClipNotFound = errors.New("pipeline: clip start frame not found in source")

	// ErrShapeMismatch is returned when frames of one sequence differ in size.
	ErrShapeMismatch = errors.New("pipeline: frame dimensions differ")
)

// DecodeError reports a source that could not be read.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a clip that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// FrameCountMismatchError reports paired streams of unequal length.
type FrameCountMismatchError struct {
	PrimarySource   string
	SecondarySource string
	PrimaryCount    int
	SecondaryCount  int
}

func (e *FrameCountMismatchError) Error() string {
	return fmt.Sprintf("frame count mismatch: %s has %d frames, %s has %d",
		e.PrimarySource, e.PrimaryCount, e.SecondarySource, e.SecondaryCount)
}

// InsufficientFramesError reports a clip that backward padding could not fill
// because the source holds fewer frames than the target length.
type InsufficientFramesError struct {
	Start     int
	End       int
	Target    int
	Available int
}

func (e *InsufficientFramesError) Error() string {
	return fmt.Sprintf("insufficient frames: clip [%d,%d) needs %d frames, only %d available",
		e.Start, e.End, e.Target, e.Available)
}
