// Package ffmpegdecoder reads whole video files into RGBA frame sequences
// using ffprobe and ffmpeg through ffmpeg-go.
package ffmpegdecoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/flowclip/pkg/adapters/codecdetect"
	"github.com/user/flowclip/pkg/adapters/ffmpegencoder"
	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

var (
	// ErrNoVideoStream is returned when probing finds no video stream.
	ErrNoVideoStream = errors.New("ffmpegdecoder: no video stream found")

	// ErrUnsupportedCodec is returned for a container whose video codec is
	// not in the decoder's allow list.
	ErrUnsupportedCodec = errors.New("ffmpegdecoder: unsupported video codec")

	// ErrTruncatedFrame is returned when the decoded byte stream ends mid-frame.
	ErrTruncatedFrame = errors.New("ffmpegdecoder: trailing partial frame")
)

// Probe runs ffprobe on a file and returns its JSON report.
type Probe func(path string) (string, error)

// DefaultCodecs lists the container codecs decoded by default. Containers
// whose codec cannot be named are always passed to ffmpeg.
var DefaultCodecs = []codecdetect.Codec{
	codecdetect.CodecH264,
	codecdetect.CodecHEVC,
	codecdetect.CodecAV1,
	codecdetect.CodecVP9,
	codecdetect.CodecMPEG4,
}

// Decoder implements ports.FrameSource for video files.
type Decoder struct {
	probe  Probe
	codecs []codecdetect.Codec
	logger ports.Logger
}

// New creates a new Decoder. ffmpeg is located with ffmpegencoder.FindFFmpeg.
func New(logger ports.Logger) *Decoder {
	return &Decoder{
		probe: func(path string) (string, error) {
			return ffmpeg.Probe(path)
		},
		codecs: DefaultCodecs,
		logger: logger.WithComponent("ffmpegdecoder"),
	}
}

// WithCodecs restricts the container codecs accepted before decoding.
func (d *Decoder) WithCodecs(codecs []codecdetect.Codec) *Decoder {
	d.codecs = codecs
	return d
}

func (d *Decoder) supported(codec codecdetect.Codec) bool {
	if codec == codecdetect.CodecUnknown {
		return true
	}
	for _, c := range d.codecs {
		if c == codec {
			return true
		}
	}
	return false
}

// WithProbe replaces the ffprobe call.
func (d *Decoder) WithProbe(p Probe) *Decoder {
	d.probe = p
	return d
}

// ReadSequence decodes every frame of the video at path.
// All failures are reported as *pipeline.DecodeError.
func (d *Decoder) ReadSequence(ctx context.Context, path string) (pipeline.Sequence, error) {
	seq, err := d.read(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pipeline.Sequence{}, ctxErr
		}
		return pipeline.Sequence{}, &pipeline.DecodeError{Path: path, Err: err}
	}
	return seq, nil
}

func (d *Decoder) read(ctx context.Context, path string) (pipeline.Sequence, error) {
	if codecdetect.IsContainer(path) {
		codec, err := codecdetect.DetectFromFile(path)
		switch {
		case errors.Is(err, codecdetect.ErrNoVideoTrack):
			return pipeline.Sequence{}, fmt.Errorf("%w: %w", ErrNoVideoStream, err)
		case err != nil:
			// Left to ffprobe, which reads more than ISO-BMFF.
			d.logger.Debug("Could not inspect %s: %v", path, err)
		case !d.supported(codec):
			return pipeline.Sequence{}, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
		default:
			d.logger.Debug("Detected %s codec in %s", codec, path)
		}
	}

	report, err := d.probe(path)
	if err != nil {
		return pipeline.Sequence{}, fmt.Errorf("probe: %w", err)
	}
	width, height, err := ParseProbe(report)
	if err != nil {
		return pipeline.Sequence{}, err
	}

	bin, err := ffmpegencoder.FindFFmpeg()
	if err != nil {
		return pipeline.Sequence{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgba"}).
		SetFfmpegPath(bin).
		Compile()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := run(ctx, cmd); err != nil {
		return pipeline.Sequence{}, fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.Bytes()))
	}

	frames, err := SplitFrames(stdout.Bytes(), width, height)
	if err != nil {
		return pipeline.Sequence{}, err
	}

	d.logger.Debug("Decoded %d frames of %dx%d from %s", len(frames), width, height, path)
	return pipeline.Sequence{Source: path, Frames: frames}, nil
}

// run executes cmd and kills it when ctx is cancelled.
func run(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

// SplitFrames cuts a packed RGBA byte stream into frames. The frames share
// the backing buffer.
func SplitFrames(data []byte, width, height int) ([]image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	frameSize := width * height * 4
	if len(data)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after %d frames",
			ErrTruncatedFrame, len(data)%frameSize, len(data)/frameSize)
	}

	n := len(data) / frameSize
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = &image.RGBA{
			Pix:    data[i*frameSize : (i+1)*frameSize : (i+1)*frameSize],
			Stride: width * 4,
			Rect:   image.Rect(0, 0, width, height),
		}
	}
	return frames, nil
}

type probeReport struct {
	Streams []struct {
		CodecType    string            `json:"codec_type"`
		Width        int               `json:"width"`
		Height       int               `json:"height"`
		Tags         map[string]string `json:"tags"`
		SideDataList []struct {
			Rotation int `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// ParseProbe returns the displayed frame size of the first video stream.
// A 90 or 270 degree rotation swaps width and height, matching ffmpeg's autorotate.
func ParseProbe(report string) (width, height int, err error) {
	var r probeReport
	if err := json.Unmarshal([]byte(report), &r); err != nil {
		return 0, 0, fmt.Errorf("parse probe: %w", err)
	}

	for _, s := range r.Streams {
		if s.CodecType != "video" {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return 0, 0, fmt.Errorf("%w: invalid size %dx%d", ErrNoVideoStream, s.Width, s.Height)
		}

		rotation := 0
		if v, ok := s.Tags["rotate"]; ok {
			rotation, _ = strconv.Atoi(v)
		}
		for _, sd := range s.SideDataList {
			if sd.Rotation != 0 {
				rotation = sd.Rotation
			}
		}
		if rotation%180 != 0 {
			return s.Height, s.Width, nil
		}
		return s.Width, s.Height, nil
	}

	return 0, 0, ErrNoVideoStream
}

func lastLine(b []byte) string {
	b = bytes.TrimSpace(b)
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return string(b[i+1:])
	}
	return string(b)
}

var _ ports.FrameSource = (*Decoder)(nil)
