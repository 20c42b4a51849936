// Package contactsheet renders a debug overview of one clip.
package contactsheet

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Layout defaults.
const (
	DefaultColumns = 8
	DefaultWidth   = 96
	labelHeight    = 16
	gap            = 4
)

// ErrNoFrames is returned for a clip without frames.
var ErrNoFrames = errors.New("contactsheet: clip has no frames")

// Theme holds the sheet colors.
type Theme struct {
	Background color.Color
	Label      color.Color
	Padded     color.Color // Outline of frames borrowed by backward padding
	Repeated   color.Color // Outline of duplicated tail frames
}

// DefaultTheme returns the default sheet colors.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{R: 24, G: 24, B: 24, A: 255},
		Label:      color.RGBA{R: 220, G: 220, B: 220, A: 255},
		Padded:     color.RGBA{R: 255, G: 170, B: 0, A: 255},
		Repeated:   color.RGBA{R: 230, G: 40, B: 40, A: 255},
	}
}

// Stage lays clip frames out as a grid of labelled thumbnails.
type Stage struct {
	renderer ports.Renderer
	theme    Theme
}

// NewStage creates a new contact sheet stage.
func NewStage(renderer ports.Renderer, theme Theme) *Stage {
	return &Stage{renderer: renderer, theme: theme}
}

// Execute renders the sheet. Each thumbnail is labelled with its source frame index.
func (s *Stage) Execute(ctx context.Context, input pipeline.SheetInput) (pipeline.SheetResult, error) {
	clip := input.Clip
	if len(clip.Frames) == 0 {
		return pipeline.SheetResult{}, ErrNoFrames
	}

	columns := input.Columns
	if columns <= 0 {
		columns = DefaultColumns
	}
	columns = min(columns, len(clip.Frames))
	rows := (len(clip.Frames) + columns - 1) / columns

	thumbW := input.Width
	if thumbW <= 0 {
		thumbW = DefaultWidth
	}
	size := clip.Frames[0].Bounds().Size()
	thumbH := max(1, size.Y*thumbW/max(1, size.X))

	cellW := thumbW + gap
	cellH := thumbH + labelHeight + gap
	canvas := s.renderer.CreateCanvas(columns*cellW+gap, rows*cellH+gap, s.theme.Background)

	padded := clip.PaddedFrames()
	owned := clip.End - clip.PadStart
	for i, frame := range clip.Frames {
		if err := ctx.Err(); err != nil {
			return pipeline.SheetResult{}, err
		}

		x := gap + (i%columns)*cellW
		y := gap + (i/columns)*cellH
		canvas.DrawImage(s.renderer.ResizeImage(frame, thumbW, thumbH), x, y)

		switch {
		case i < padded:
			canvas.DrawRectStroke(x, y, thumbW, thumbH, s.theme.Padded, 2)
		case i >= owned:
			canvas.DrawRectStroke(x, y, thumbW, thumbH, s.theme.Repeated, 2)
		}
		canvas.DrawText(fmt.Sprintf("#%d", clip.SourceIndex(i)), x+2, y+thumbH+labelHeight/2, s.theme.Label)
	}

	return pipeline.SheetResult{Image: canvas.ToImage()}, nil
}

var _ pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult] = (*Stage)(nil)
