// Package smartsource provides a frame source that picks the right reader
// for each path: image folders go to imagefolder, files to ffmpegdecoder.
package smartsource

import (
	"context"
	"errors"

	"github.com/user/flowclip/pkg/adapters/ffmpegdecoder"
	"github.com/user/flowclip/pkg/adapters/imagefolder"
	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Kind is the source kind selected for a path (re-exported from pipeline).
type Kind = pipeline.SourceKind

// ErrNotFound is returned when the path does not exist.
var ErrNotFound = errors.New("smartsource: source not found")

// Options configures the smart source.
type Options struct {
	// ImageExtensions overrides imagefolder.DefaultExtensions.
	ImageExtensions []string
}

// Source dispatches ReadSequence by path type.
type Source struct {
	fs     ports.FileSystem
	video  ports.FrameSource
	images ports.FrameSource
	logger ports.Logger
}

// New creates a Source backed by ffmpegdecoder and imagefolder.
func New(fs ports.FileSystem, logger ports.Logger, opts Options) *Source {
	return NewWith(fs,
		ffmpegdecoder.New(logger),
		imagefolder.New(fs, opts.ImageExtensions, logger),
		logger,
	)
}

// NewWith creates a Source from explicit readers.
func NewWith(fs ports.FileSystem, video, images ports.FrameSource, logger ports.Logger) *Source {
	return &Source{
		fs:     fs,
		video:  video,
		images: images,
		logger: logger.WithComponent("smartsource"),
	}
}

// Detect returns the kind of source stored at path.
func (s *Source) Detect(path string) (Kind, error) {
	exists, err := s.fs.Exists(path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}
	isDir, err := s.fs.IsDir(path)
	if err != nil {
		return "", err
	}
	if isDir {
		return pipeline.KindImages, nil
	}
	return pipeline.KindVideo, nil
}

// ReadSequence reads path with the reader matching its kind.
func (s *Source) ReadSequence(ctx context.Context, path string) (pipeline.Sequence, error) {
	kind, err := s.Detect(path)
	if err != nil {
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: path, Err: err}
	}

	s.logger.Debug("Reading %s as %s", path, kind)
	if kind == pipeline.KindImages {
		return s.images.ReadSequence(ctx, path)
	}
	return s.video.ReadSequence(ctx, path)
}

var _ ports.FrameSource = (*Source)(nil)
