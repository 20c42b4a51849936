package ffmpegencoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found")

	// ErrInvalidQuality is returned for a quality outside 0-10.
	ErrInvalidQuality = errors.New("ffmpegencoder: quality must be between 0 and 10")

	// ErrFrameSize is returned when a frame does not match the size given to Begin.
	ErrFrameSize = errors.New("ffmpegencoder: frame size differs from stream size")
)
