// Package imagefolder reads an ordered folder of still images as one frame sequence.
package imagefolder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// DefaultExtensions lists the image types read from a folder.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "bmp", "tiff"}

// Reader implements ports.FrameSource for image folders.
type Reader struct {
	fs         ports.FileSystem
	extensions map[string]bool
	logger     ports.Logger
}

// New creates a Reader accepting the given extensions (without dots,
// case-insensitive). Nil extensions select DefaultExtensions.
func New(fs ports.FileSystem, extensions []string, logger ports.Logger) *Reader {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return &Reader{
		fs:         fs,
		extensions: exts,
		logger:     logger.WithComponent("imagefolder"),
	}
}

// ReadSequence decodes every matching image in dir, in frame number order.
// An empty folder yields an empty sequence.
func (r *Reader) ReadSequence(ctx context.Context, dir string) (pipeline.Sequence, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: dir, Err: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir || strings.HasPrefix(e.Name, ".") {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name), "."))
		if r.extensions[ext] {
			paths = append(paths, filepath.Join(dir, e.Name))
		}
	}
	SortPaths(paths)

	seq := pipeline.Sequence{Source: dir, Frames: make([]image.Image, 0, len(paths))}
	var size image.Point
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return pipeline.Sequence{}, err
		}

		img, err := r.decode(p)
		if err != nil {
			return pipeline.Sequence{}, &pipeline.DecodeError{Path: p, Err: err}
		}
		if i == 0 {
			size = img.Bounds().Size()
		} else if got := img.Bounds().Size(); got != size {
			return pipeline.Sequence{}, &pipeline.DecodeError{
				Path: p,
				Err: fmt.Errorf("%w: %dx%d, first frame is %dx%d",
					pipeline.ErrShapeMismatch, got.X, got.Y, size.X, size.Y),
			}
		}
		seq.Frames = append(seq.Frames, img)
	}

	r.logger.Debug("Read %d images from %s", len(seq.Frames), dir)
	return seq, nil
}

func (r *Reader) decode(path string) (*image.RGBA, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to an *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// SortPaths orders image paths by the number formed from all digits of the
// base name. Files without digits sort last; ties break by path.
func SortPaths(paths []string) {
	slices.SortStableFunc(paths, ComparePaths)
}

// ComparePaths implements the ordering of SortPaths.
func ComparePaths(a, b string) int {
	na, okA := frameNumber(filepath.Base(a))
	nb, okB := frameNumber(filepath.Base(b))

	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB:
		if c := compareDecimal(na, nb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// frameNumber concatenates every digit of name, without leading zeros.
func frameNumber(name string) (string, bool) {
	var b strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	n := strings.TrimLeft(b.String(), "0")
	if n == "" {
		n = "0"
	}
	return n, true
}

// compareDecimal compares two decimal strings without leading zeros.
func compareDecimal(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

var _ ports.FrameSource = (*Reader)(nil)
