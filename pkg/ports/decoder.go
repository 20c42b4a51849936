package ports

import (
	"context"

	"github.com/user/flowclip/pkg/pipeline"
)

// FrameSource abstracts reading a whole source into memory.
// A source is either an encoded video file or a folder of numbered images.
type FrameSource interface {
	// ReadSequence decodes every frame of the source at path, in temporal order.
	// Decode failures are reported as *pipeline.DecodeError.
	ReadSequence(ctx context.Context, path string) (pipeline.Sequence, error)
}
