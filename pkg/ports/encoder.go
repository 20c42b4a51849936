package ports

import (
	"image"
)

// VideoEncoder abstracts video encoding operations.
type VideoEncoder interface {
	// Begin initializes the encoder with the specified dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame encodes a single frame. Frames are written in call order.
	EncodeFrame(img image.Image) error

	// End finalizes encoding and returns the encoded container bytes.
	End() ([]byte, error)

	// Abort discards the encoding started by Begin without finalizing it.
	// It does nothing when no encoding is in progress.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Codec   string  // Encoder name, e.g. "h264", "libx264", "mpeg4"
	Quality float64 // 0-10, 10 is best (imageio scale)
	Format  string  // Container format, e.g. "mp4"
}
