// Package ffmpegencoder encodes RGBA frames into video files by piping raw
// video into an ffmpeg process driven through ffmpeg-go.
package ffmpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/flowclip/pkg/ports"
)

// DefaultQuality is used when EncoderOptions.Quality is negative.
const DefaultQuality = 5.0

// Encoder implements ports.VideoEncoder. One Encoder writes one clip at a
// time; Begin may be called again after End.
type Encoder struct {
	mu sync.Mutex

	width    int
	height   int
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	tempPath string
	frames   int
	frame    *image.RGBA
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// ResolveCodec maps user facing codec names to ffmpeg encoder names.
func ResolveCodec(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "h264", "avc", "x264", "libx264":
		return "libx264"
	case "hevc", "h265", "libx265":
		return "libx265"
	case "vp9":
		return "libvpx-vp9"
	default:
		return name
	}
}

// muxers maps clip extensions to ffmpeg muxer names where they differ.
var muxers = map[string]string{
	"mkv": "matroska",
	"m4v": "mp4",
	"wmv": "asf",
	"ts":  "mpegts",
}

// Muxer returns the ffmpeg output format for a clip extension.
func Muxer(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if m, ok := muxers[ext]; ok {
		return m
	}
	return ext
}

// OutputArgs returns the ffmpeg output options for a codec, quality and frame size.
// Quality follows the imageio 0-10 scale where 10 is best. format is a clip
// extension and is translated with Muxer.
func OutputArgs(codec string, quality float64, width, height int, format string) (ffmpeg.KwArgs, error) {
	if quality < 0 {
		quality = DefaultQuality
	}
	if quality > 10 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidQuality, quality)
	}

	codec = ResolveCodec(codec)
	args := ffmpeg.KwArgs{
		"c:v":     codec,
		"pix_fmt": "yuv420p",
	}
	if codec == "libx264" || codec == "libx265" {
		args["crf"] = int(math.Round((1 - quality/10) * 51))
	} else {
		args["qscale:v"] = int(math.Round((1-quality/10)*30)) + 1
	}
	if width%2 != 0 || height%2 != 0 {
		args["vf"] = "pad=ceil(iw/2)*2:ceil(ih/2)*2"
	}
	muxer := Muxer(format)
	if muxer != "" {
		args["f"] = muxer
	}
	if muxer == "mp4" || muxer == "mov" {
		args["movflags"] = "+faststart"
	}
	return args, nil
}

// Begin starts an ffmpeg process reading raw RGBA frames from stdin.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abortLocked()

	bin, err := FindFFmpeg()
	if err != nil {
		return err
	}

	format := strings.TrimPrefix(strings.ToLower(opts.Format), ".")
	if format == "" {
		format = "mp4"
	}
	outArgs, err := OutputArgs(opts.Codec, opts.Quality, width, height, format)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "flowclip_*."+format)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	e.stderr.Reset()
	cmd := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fmt.Sprintf("%g", fps),
	}).
		Output(e.tempPath, outArgs).
		OverWriteOutput().
		SetFfmpegPath(bin).
		Compile()
	cmd.Stdout = nil
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.width = width
	e.height = height
	e.frames = 0
	e.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// EncodeFrame writes one frame to ffmpeg.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.width || bounds.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, bounds.Dx(), bounds.Dy(), e.width, e.height)
	}

	pix := rgbaPix(img)
	if pix == nil {
		draw.Draw(e.frame, e.frame.Bounds(), img, bounds.Min, draw.Src)
		pix = e.frame.Pix
	}

	if _, err := e.stdin.Write(pix); err != nil {
		return fmt.Errorf("failed to write frame: %w: %s", err, lastLine(e.stderr.String()))
	}
	e.frames++
	return nil
}

// End closes the input, waits for ffmpeg and returns the encoded file.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return nil, ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil
	err := e.cmd.Wait()
	e.cmd = nil
	tempPath := e.tempPath
	e.tempPath = ""
	defer os.Remove(tempPath)

	if err != nil {
		return nil, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}
	if e.frames == 0 {
		return nil, fmt.Errorf("ffmpeg encoding failed: no frames written")
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read output: %w", err)
	}
	return data, nil
}

// Frames returns how many frames were written since the last Begin.
func (e *Encoder) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Abort kills the running ffmpeg process and removes its output.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortLocked()
}

// abortLocked kills an encoding left unfinished by a previous Begin.
func (e *Encoder) abortLocked() {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	e.cmd = nil
	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
}

// rgbaPix returns the tightly packed pixel buffer of an RGBA image whose
// bounds start at the origin, or nil when a copy is needed.
func rgbaPix(img image.Image) []byte {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != rgba.Rect.Dx()*4 {
		return nil
	}
	return rgba.Pix[:rgba.Stride*rgba.Rect.Dy()]
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

var _ ports.VideoEncoder = (*Encoder)(nil)
