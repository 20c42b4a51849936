package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving segmentation plans and clip contact sheets for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlanJSON saves the clip plan computed for a source.
	SavePlanJSON(stem string, data []byte) error

	// SaveContactSheet saves a rendered overview of one clip.
	SaveContactSheet(stem string, index int, img image.Image) error
}
