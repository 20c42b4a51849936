package pipeline

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// =============================================================================
// Sources
// =============================================================================

// SourceKind tells how a source is stored on disk.
type SourceKind string

const (
	// KindVideo is an encoded video file.
	KindVideo SourceKind = "video"
	// KindImages is a folder of numbered image files.
	KindImages SourceKind = "images"
)

// Source identifies one discovered input.
type Source struct {
	Name string     // File or folder name inside the input directory
	Path string     // Full path of the primary stream
	Kind SourceKind // Video file or image folder
	// FlowLinePath is the paired flow-line stream. Empty when unpaired.
	FlowLinePath string
}

// Stem returns the name without extension. Folder names are returned as is.
func (s Source) Stem() string {
	if s.Kind == KindImages {
		return s.Name
	}
	return strings.TrimSuffix(s.Name, filepath.Ext(s.Name))
}

// =============================================================================
// Frames
// =============================================================================

// Sequence is an ordered, fully decoded frame sequence of one source.
// All frames share the same dimensions.
type Sequence struct {
	Source string
	Frames []image.Image
}

// Len returns the number of frames.
func (s Sequence) Len() int {
	return len(s.Frames)
}

// Size returns the frame dimensions, or zero for an empty sequence.
func (s Sequence) Size() image.Point {
	if len(s.Frames) == 0 {
		return image.Point{}
	}
	return s.Frames[0].Bounds().Size()
}

// Validate checks that every frame has the dimensions of the first one.
func (s Sequence) Validate() error {
	if len(s.Frames) == 0 {
		return nil
	}
	want := s.Size()
	for i, f := range s.Frames {
		if got := f.Bounds().Size(); got != want {
			return fmt.Errorf("%w: frame %d is %dx%d, want %dx%d",
				ErrShapeMismatch, i, got.X, got.Y, want.X, want.Y)
		}
	}
	return nil
}

// =============================================================================
// Clips
// =============================================================================

// Clip is a contiguous run of frames cut from one Sequence.
//
// Frames holds full[PadStart:End], so frames with a source index below Start
// were borrowed from the preceding clip by backward padding.
type Clip struct {
	Source   string
	Stem     string
	Index    int // 1-based position in the plan
	Start    int // Inclusive source offset before padding
	End      int // Exclusive source offset
	PadStart int // Inclusive source offset after backward padding
	Target   int // Planned length
	Frames   []image.Image
}

// PaddedFrames returns how many frames were borrowed from before Start.
func (c Clip) PaddedFrames() int {
	return c.Start - c.PadStart
}

// RepeatedFrames returns how many frames were duplicated past End.
func (c Clip) RepeatedFrames() int {
	n := len(c.Frames) - (c.End - c.PadStart)
	if n < 0 {
		return 0
	}
	return n
}

// SourceIndex maps a position in Frames back to the source frame index.
// Repeated tail frames map to the last real frame.
func (c Clip) SourceIndex(i int) int {
	idx := c.PadStart + i
	if idx >= c.End {
		return c.End - 1
	}
	return idx
}

// FileName returns the output file name of the clip.
func (c Clip) FileName(ext string) string {
	return ClipFileName(c.Stem, c.Index, ext)
}

// ClipFileName builds "{stem}_clip_{index:03d}.{ext}".
func ClipFileName(stem string, index int, ext string) string {
	return fmt.Sprintf("%s%s%03d.%s", stem, ClipInfix, index, strings.TrimPrefix(ext, "."))
}

// ClipInfix separates the source stem from the clip number in output names.
const ClipInfix = "_clip_"

// =============================================================================
// Stage inputs and results
// =============================================================================

// ReadInput is the input for the read stage.
type ReadInput struct {
	Path string
}

// AlignInput is the input for the alignment stage.
type AlignInput struct {
	Primary   Sequence
	Secondary Sequence
}

// AlignResult is the output of the alignment stage.
type AlignResult struct {
	Frames int // Common frame count of both streams
}

// SegmentInput is the input for the segment stage.
// Secondary is nil for unpaired sources.
type SegmentInput struct {
	Stem      string
	Primary   Sequence
	Secondary *Sequence
}

// SegmentResult is the output of the segment stage.
// Secondary[i], when present, covers exactly the same source indices as Primary[i].
type SegmentResult struct {
	Plan      []int
	Primary   []Clip
	Secondary []Clip
}

// PaddedFrames returns the number of borrowed frames across the primary clips.
func (r SegmentResult) PaddedFrames() int {
	n := 0
	for _, c := range r.Primary {
		n += c.PaddedFrames()
	}
	return n
}

// EncodeInput is the input for the encode stage.
type EncodeInput struct {
	Clip    Clip
	Path    string  // Final output path
	FPS     float64 // Output frame rate
	Codec   string  // Encoder name
	Quality float64 // 0-10, 10 is best
	Format  string  // Container format, derived from the extension when empty
}

// EncodeResult is the output of the encode stage.
type EncodeResult struct {
	Path     string
	Frames   int
	FileSize int64
}

// SheetInput is the input for the contact sheet stage.
type SheetInput struct {
	Clip    Clip
	Columns int // Thumbnails per row
	Width   int // Thumbnail width; height keeps the aspect ratio
}

// SheetResult is the output of the contact sheet stage.
type SheetResult struct {
	Image image.Image
}
