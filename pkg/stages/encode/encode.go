// Package encode implements the clip writing stage.
package encode

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// PartialSuffix is appended to an output path while the clip is being written.
const PartialSuffix = ".partial"

// ErrNoFrames is returned for a clip without frames.
var ErrNoFrames = errors.New("encode: no frames to encode")

// Stage encodes one clip and moves it into place atomically.
type Stage struct {
	encoder ports.VideoEncoder
	fs      ports.FileSystem
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.VideoEncoder, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		fs:      fs,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes input.Clip to input.Path. The clip is first written to
// input.Path + PartialSuffix and renamed on success. On failure no file is left
// under the final name and the error is a *pipeline.EncodeError.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{Path: input.Path}

	frames := input.Clip.Frames
	if len(frames) == 0 {
		return result, &pipeline.EncodeError{Path: input.Path, Err: ErrNoFrames}
	}

	bounds := frames[0].Bounds()
	opts := ports.EncoderOptions{
		Codec:   input.Codec,
		Quality: input.Quality,
		Format:  input.Format,
	}
	if opts.Format == "" {
		opts.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(input.Path)), ".")
	}

	s.logger.Debug("Encoding %d frames at %.1f fps to %s", len(frames), input.FPS, input.Path)

	data, err := s.encode(ctx, bounds.Dx(), bounds.Dy(), input.FPS, opts, input.Clip)
	if err != nil {
		return result, &pipeline.EncodeError{Path: input.Path, Err: err}
	}

	if err := s.write(input.Path, data); err != nil {
		return result, &pipeline.EncodeError{Path: input.Path, Err: err}
	}

	result.Frames = len(frames)
	result.FileSize = int64(len(data))
	s.logger.Debug("Clip written: %d bytes", result.FileSize)
	return result, nil
}

func (s *Stage) encode(ctx context.Context, width, height int, fps float64, opts ports.EncoderOptions, clip pipeline.Clip) ([]byte, error) {
	if err := s.encoder.Begin(width, height, fps, opts); err != nil {
		return nil, err
	}

	for _, frame := range clip.Frames {
		if err := ctx.Err(); err != nil {
			s.encoder.Abort()
			return nil, err
		}
		if err := s.encoder.EncodeFrame(frame); err != nil {
			s.encoder.Abort()
			return nil, err
		}
	}

	return s.encoder.End()
}

func (s *Stage) write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir); err != nil {
			return err
		}
	}

	partial := path + PartialSuffix
	if err := s.fs.WriteFile(partial, data); err != nil {
		s.fs.Remove(partial)
		return err
	}
	if err := s.fs.Rename(partial, path); err != nil {
		s.fs.Remove(partial)
		return err
	}
	return nil
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
