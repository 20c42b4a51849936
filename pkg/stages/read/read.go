// Package read implements the frame reading stage.
package read

import (
	"context"
	"fmt"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Stage decodes one source into an in-memory frame sequence.
type Stage struct {
	source ports.FrameSource
	logger ports.Logger
}

// NewStage creates a new read stage.
func NewStage(source ports.FrameSource, logger ports.Logger) *Stage {
	return &Stage{
		source: source,
		logger: logger.WithComponent("read"),
	}
}

// Execute reads every frame of input.Path and checks that all frames share
// one size. Size differences are reported as *pipeline.DecodeError.
func (s *Stage) Execute(ctx context.Context, input pipeline.ReadInput) (pipeline.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Sequence{}, err
	}

	s.logger.Debug("Reading %s", input.Path)

	seq, err := s.source.ReadSequence(ctx, input.Path)
	if err != nil {
		return pipeline.Sequence{}, err
	}
	if seq.Source == "" {
		seq.Source = input.Path
	}

	if err := seq.Validate(); err != nil {
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: input.Path, Err: err}
	}

	s.logger.Debug("Read %s", Describe(seq))
	return seq, nil
}

var _ pipeline.Stage[pipeline.ReadInput, pipeline.Sequence] = (*Stage)(nil)

// Describe returns a short human readable label for a sequence.
func Describe(seq pipeline.Sequence) string {
	size := seq.Size()
	return fmt.Sprintf("%d frames %dx%d", seq.Len(), size.X, size.Y)
}
