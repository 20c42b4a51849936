// Package segment implements clip planning and backward padding.
package segment

import (
	"context"
	"fmt"
	"image"

	"github.com/user/flowclip/pkg/padding"
	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/planner"
	"github.com/user/flowclip/pkg/ports"
)

// Stage cuts a sequence into planned clips. Paired streams are cut with the
// same plan and the same padding offsets, so clip i of both streams covers
// identical source indices.
type Stage struct {
	strategy  planner.Strategy
	underflow padding.Underflow
	logger    ports.Logger
}

// NewStage creates a new segment stage.
func NewStage(strategy planner.Strategy, underflow padding.Underflow, logger ports.Logger) *Stage {
	return &Stage{
		strategy:  strategy,
		underflow: underflow,
		logger:    logger.WithComponent("segment"),
	}
}

// Execute plans the primary stream and pads every clip.
func (s *Stage) Execute(ctx context.Context, input pipeline.SegmentInput) (pipeline.SegmentResult, error) {
	total := input.Primary.Len()
	if input.Secondary != nil && input.Secondary.Len() != total {
		return pipeline.SegmentResult{}, &pipeline.FrameCountMismatchError{
			PrimarySource:   input.Primary.Source,
			SecondarySource: input.Secondary.Source,
			PrimaryCount:    total,
			SecondaryCount:  input.Secondary.Len(),
		}
	}

	plan, err := s.strategy.Plan(total)
	if err != nil {
		return pipeline.SegmentResult{}, fmt.Errorf("plan %s: %w", input.Stem, err)
	}
	s.logger.Debug("Planned %d clips for %d frames (%s): %v", len(plan), total, s.strategy.Name(), []int(plan))

	result := pipeline.SegmentResult{
		Plan:    plan,
		Primary: make([]pipeline.Clip, 0, len(plan)),
	}
	if input.Secondary != nil {
		result.Secondary = make([]pipeline.Clip, 0, len(plan))
	}

	for i, span := range planner.Spans(plan, total) {
		if err := ctx.Err(); err != nil {
			return pipeline.SegmentResult{}, err
		}

		w, err := padding.Pad(input.Primary.Frames, span.Start, span.End, span.Target, s.underflow)
		if err != nil {
			return pipeline.SegmentResult{}, fmt.Errorf("clip %d of %s: %w", i+1, input.Stem, err)
		}
		clip := clipFrom(input.Primary.Source, input.Stem, i+1, w)
		result.Primary = append(result.Primary, clip)

		if w.Padded() {
			s.logger.Debug("Clip %d padded backward by %d frames", clip.Index, clip.PaddedFrames())
		}

		if input.Secondary != nil {
			sec := clipFrom(input.Secondary.Source, input.Stem, i+1, w)
			sec.Frames = follow(clip, input.Secondary.Frames)
			result.Secondary = append(result.Secondary, sec)
		}
	}

	return result, nil
}

func clipFrom(source, stem string, index int, w padding.Window) pipeline.Clip {
	return pipeline.Clip{
		Source:   source,
		Stem:     stem,
		Index:    index,
		Start:    w.Start,
		End:      w.End,
		PadStart: w.PadStart,
		Target:   w.Target,
		Frames:   w.Frames,
	}
}

// follow picks the frames of another stream at the source indices of clip,
// including any repeated tail frames.
func follow(clip pipeline.Clip, frames []image.Image) []image.Image {
	out := make([]image.Image, len(clip.Frames))
	for i := range out {
		out[i] = frames[clip.SourceIndex(i)]
	}
	return out
}

var _ pipeline.Stage[pipeline.SegmentInput, pipeline.SegmentResult] = (*Stage)(nil)
