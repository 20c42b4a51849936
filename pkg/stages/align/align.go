// Package align implements the dual-stream alignment check.
package align

import (
	"context"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Stage verifies that paired streams have exactly the same frame count.
// It never truncates or resamples either stream.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new align stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("align"),
	}
}

// Execute returns *pipeline.FrameCountMismatchError when the counts differ.
func (s *Stage) Execute(ctx context.Context, input pipeline.AlignInput) (pipeline.AlignResult, error) {
	n, m := input.Primary.Len(), input.Secondary.Len()
	if n != m {
		return pipeline.AlignResult{}, &pipeline.FrameCountMismatchError{
			PrimarySource:   input.Primary.Source,
			SecondarySource: input.Secondary.Source,
			PrimaryCount:    n,
			SecondaryCount:  m,
		}
	}

	s.logger.Debug("Streams aligned at %d frames", n)
	return pipeline.AlignResult{Frames: n}, nil
}

var _ pipeline.Stage[pipeline.AlignInput, pipeline.AlignResult] = (*Stage)(nil)
