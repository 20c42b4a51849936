package ffmpegencoder

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/flowclip/pkg/ports"
)

// createTestImage creates a gradient that changes with the frame number.
func createTestImage(width, height, frameNum int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*255/width + frameNum*10) % 256),
				G: uint8((y*255/height + frameNum*5) % 256),
				B: uint8((x + y + frameNum*3) % 256),
				A: 255,
			})
		}
	}
	return img
}

func skipWithoutFFmpeg(t *testing.T) {
	t.Helper()
	if !IsFFmpegAvailable() {
		t.Skip("ffmpeg not available")
	}
}

func TestResolveCodec(t *testing.T) {
	tests := map[string]string{
		"":           "libx264",
		"h264":       "libx264",
		"H264":       "libx264",
		"libx264":    "libx264",
		"hevc":       "libx265",
		"vp9":        "libvpx-vp9",
		"mpeg4":      "mpeg4",
		"libvpx-vp9": "libvpx-vp9",
	}
	for in, want := range tests {
		if got := ResolveCodec(in); got != want {
			t.Errorf("ResolveCodec(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestOutputArgs_Quality(t *testing.T) {
	tests := []struct {
		name    string
		codec   string
		quality float64
		key     string
		want    int
	}{
		{name: "x264 best", codec: "h264", quality: 10, key: "crf", want: 0},
		{name: "x264 default", codec: "h264", quality: 5, key: "crf", want: 26},
		{name: "x264 worst", codec: "libx264", quality: 0, key: "crf", want: 51},
		{name: "x264 unset", codec: "h264", quality: -1, key: "crf", want: 26},
		{name: "mpeg4 best", codec: "mpeg4", quality: 10, key: "qscale:v", want: 1},
		{name: "mpeg4 default", codec: "mpeg4", quality: 5, key: "qscale:v", want: 16},
		{name: "mpeg4 worst", codec: "mpeg4", quality: 0, key: "qscale:v", want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := OutputArgs(tt.codec, tt.quality, 64, 64, "mp4")
			if err != nil {
				t.Fatalf("OutputArgs failed: %v", err)
			}
			if got := args[tt.key]; got != tt.want {
				t.Errorf("expected %s=%d, got %v", tt.key, tt.want, got)
			}
		})
	}
}

func TestOutputArgs_Validation(t *testing.T) {
	if _, err := OutputArgs("h264", 11, 64, 64, "mp4"); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("expected ErrInvalidQuality, got %v", err)
	}

	args, _ := OutputArgs("h264", 10, 65, 64, "mp4")
	if _, ok := args["vf"]; !ok {
		t.Error("expected pad filter for odd width")
	}
	args, _ = OutputArgs("h264", 10, 64, 64, "mp4")
	if _, ok := args["vf"]; ok {
		t.Error("expected no filter for even frame size")
	}
	if args["movflags"] != "+faststart" {
		t.Errorf("expected faststart for mp4, got %v", args["movflags"])
	}
}

func TestOutputArgs_Muxer(t *testing.T) {
	tests := []struct {
		ext       string
		want      string
		faststart bool
	}{
		{ext: "mp4", want: "mp4", faststart: true},
		{ext: "MOV", want: "mov", faststart: true},
		{ext: "m4v", want: "mp4", faststart: true},
		{ext: "mkv", want: "matroska"},
		{ext: ".mkv", want: "matroska"},
		{ext: "webm", want: "webm"},
		{ext: "avi", want: "avi"},
		{ext: "wmv", want: "asf"},
		{ext: "flv", want: "flv"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			args, err := OutputArgs("h264", 10, 64, 64, tt.ext)
			if err != nil {
				t.Fatalf("OutputArgs failed: %v", err)
			}
			if args["f"] != tt.want {
				t.Errorf("expected muxer %s, got %v", tt.want, args["f"])
			}
			if _, ok := args["movflags"]; ok != tt.faststart {
				t.Errorf("expected movflags present=%v, got %v", tt.faststart, args["movflags"])
			}
		})
	}
}

func TestEncoder_Matroska(t *testing.T) {
	skipWithoutFFmpeg(t)

	enc := New()
	if err := enc.Begin(32, 32, 5, ports.EncoderOptions{Codec: "h264", Quality: 5, Format: "mkv"}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := enc.EncodeFrame(createTestImage(32, 32, i)); err != nil {
			t.Fatalf("EncodeFrame failed: %v", err)
		}
	}
	data, err := enc.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	// EBML magic
	if len(data) < 4 || string(data[:4]) != "\x1a\x45\xdf\xa3" {
		t.Errorf("expected a Matroska header, got % x", data[:min(4, len(data))])
	}
}

func TestFindFFmpeg_CustomPath(t *testing.T) {
	t.Cleanup(func() { SetFFmpegPath("") })

	SetFFmpegPath(filepath.Join(t.TempDir(), "missing-ffmpeg"))
	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}

	fake := filepath.Join(t.TempDir(), "ffmpeg")
	os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755)
	SetFFmpegPath(fake)
	got, err := FindFFmpeg()
	if err != nil {
		t.Fatalf("FindFFmpeg failed: %v", err)
	}
	if got != fake {
		t.Errorf("expected %s, got %s", fake, got)
	}
}

func TestEncoder_NotInitialized(t *testing.T) {
	enc := New()
	if err := enc.EncodeFrame(createTestImage(4, 4, 0)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := enc.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestEncoder_Basic(t *testing.T) {
	skipWithoutFFmpeg(t)

	enc := New()
	width, height := 64, 48

	if err := enc.Begin(width, height, 5, ports.EncoderOptions{Codec: "h264", Quality: 10, Format: "mp4"}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := enc.EncodeFrame(createTestImage(width, height, i)); err != nil {
			t.Fatalf("EncodeFrame failed at frame %d: %v", i, err)
		}
	}
	if enc.Frames() != 10 {
		t.Errorf("expected 10 frames written, got %d", enc.Frames())
	}

	data, err := enc.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if len(data) < 8 {
		t.Fatal("output too small")
	}
	if string(data[4:8]) != "ftyp" {
		t.Errorf("expected ftyp box, got: %s", string(data[4:8]))
	}
}

func TestEncoder_OddSizeAndReuse(t *testing.T) {
	skipWithoutFFmpeg(t)

	enc := New()
	for round := 0; round < 2; round++ {
		if err := enc.Begin(33, 17, 5, ports.EncoderOptions{Codec: "h264", Quality: 5}); err != nil {
			t.Fatalf("round %d: Begin failed: %v", round, err)
		}
		for i := 0; i < 5; i++ {
			if err := enc.EncodeFrame(createTestImage(33, 17, i)); err != nil {
				t.Fatalf("round %d: EncodeFrame failed: %v", round, err)
			}
		}
		if _, err := enc.End(); err != nil {
			t.Fatalf("round %d: End failed: %v", round, err)
		}
	}
}

func TestEncoder_Abort(t *testing.T) {
	New().Abort()

	skipWithoutFFmpeg(t)

	enc := New()
	if err := enc.Begin(32, 32, 5, ports.EncoderOptions{Codec: "h264", Quality: 5}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := enc.EncodeFrame(createTestImage(32, 32, 0)); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	tempPath := enc.tempPath

	enc.Abort()

	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Errorf("expected temp output to be removed, got %v", err)
	}
	if _, err := enc.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized after Abort, got %v", err)
	}
}

func TestEncoder_FrameSizeMismatch(t *testing.T) {
	skipWithoutFFmpeg(t)

	enc := New()
	if err := enc.Begin(32, 32, 5, ports.EncoderOptions{}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer enc.End()

	if err := enc.EncodeFrame(createTestImage(16, 16, 0)); !errors.Is(err, ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
}
