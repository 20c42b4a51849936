// Package padding implements backward padding of short tail clips.
//
// A clip shorter than its target borrows the real frames that immediately
// precede it in the same source, so a padded clip is always a contiguous,
// unbroken slice of the source. Nothing is synthesised except under the
// UnderflowRepeat policy.
package padding

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/user/flowclip/pkg/pipeline"
)

// ErrInvalidRange is returned for out-of-bounds clip offsets or a non-positive target.
var ErrInvalidRange = errors.New("padding: invalid clip range")

// ErrUnknownUnderflow is returned for an unrecognised underflow policy name.
var ErrUnknownUnderflow = errors.New("padding: unknown underflow policy")

// Underflow selects what happens when the whole source is shorter than the target.
type Underflow string

const (
	// UnderflowReject fails with *pipeline.InsufficientFramesError.
	UnderflowReject Underflow = "reject"
	// UnderflowShort accepts the window with fewer than target frames.
	UnderflowShort Underflow = "short"
	// UnderflowRepeat fills the remainder by repeating the last real frame.
	UnderflowRepeat Underflow = "repeat"
)

// ParseUnderflow parses a policy name. The empty string yields UnderflowReject.
func ParseUnderflow(s string) (Underflow, error) {
	switch u := Underflow(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UnderflowReject, nil
	case UnderflowReject, UnderflowShort, UnderflowRepeat:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnderflow, s)
	}
}

// Window is the padded result for one clip.
type Window struct {
	PadStart int // First source index included
	Start    int // Original clip start
	End      int // Original clip end (exclusive)
	Target   int
	Frames   []image.Image
}

// Padded reports whether frames were borrowed from before Start.
func (w Window) Padded() bool {
	return w.PadStart < w.Start
}

// Pad returns the target-length window for clip [start, end) of full.
func Pad(full []image.Image, start, end, target int, policy Underflow) (Window, error) {
	if start < 0 || start > end || end > len(full) || target <= 0 {
		return Window{}, fmt.Errorf("%w: [%d,%d) target %d over %d frames",
			ErrInvalidRange, start, end, target, len(full))
	}

	w := Window{PadStart: start, Start: start, End: end, Target: target}

	if end-start >= target {
		w.Frames = full[start : start+target]
		return w, nil
	}

	need := target - (end - start)
	w.PadStart = max(0, start-need)
	frames := full[w.PadStart:end]
	if len(frames) > target {
		frames = frames[:target]
	}

	if len(frames) < target {
		switch policy {
		case UnderflowShort:
		case UnderflowRepeat:
			if len(frames) == 0 {
				return Window{}, &pipeline.InsufficientFramesError{
					Start: start, End: end, Target: target, Available: 0,
				}
			}
			filled := make([]image.Image, target)
			copy(filled, frames)
			last := frames[len(frames)-1]
			for i := len(frames); i < target; i++ {
				filled[i] = last
			}
			frames = filled
		default:
			return Window{}, &pipeline.InsufficientFramesError{
				Start: start, End: end, Target: target, Available: len(frames),
			}
		}
	}

	w.Frames = frames
	return w, nil
}

// FindStart returns the index of the first frame in full that is pixel-identical
// to first.
func FindStart(full []image.Image, first image.Image) (int, error) {
	for i, f := range full {
		if Equal(f, first) {
			return i, nil
		}
	}
	return -1, pipeline.ErrClipNotFound
}

// PadByContent locates clip inside full by its first frame, then pads it.
// Sources with repeated identical frames resolve to the earliest match.
func PadByContent(full, clip []image.Image, target int, policy Underflow) (Window, error) {
	if len(clip) == 0 {
		return Window{}, fmt.Errorf("%w: empty clip", ErrInvalidRange)
	}
	start, err := FindStart(full, clip[0])
	if err != nil {
		return Window{}, err
	}
	end := min(start+len(clip), len(full))
	return Pad(full, start, end, target, policy)
}

// Equal reports whether two frames have the same bounds and pixels.
func Equal(a, b image.Image) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}

	ra, okA := a.(*image.RGBA)
	rb, okB := b.(*image.RGBA)
	if okA && okB {
		return equalRGBA(ra, rb)
	}

	ba, bb := a.Bounds(), b.Bounds()
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			r1, g1, b1, a1 := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false
			}
		}
	}
	return true
}

func equalRGBA(a, b *image.RGBA) bool {
	w := a.Rect.Dx() * 4
	for y := 0; y < a.Rect.Dy(); y++ {
		if !bytes.Equal(a.Pix[y*a.Stride:y*a.Stride+w], b.Pix[y*b.Stride:y*b.Stride+w]) {
			return false
		}
	}
	return true
}
