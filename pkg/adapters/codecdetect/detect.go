// Package codecdetect sniffs the video codec of ISO-BMFF containers
// (.mp4, .mov, .m4v) without decoding any sample.
package codecdetect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned for a container without a video track.
var ErrNoVideoTrack = errors.New("codecdetect: no video track found")

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecMPEG4   Codec = "mpeg4"
	CodecUnknown Codec = "unknown"
)

// sampleEntries maps stsd sample entry types to codecs.
var sampleEntries = map[string]Codec{
	"avc1": CodecH264,
	"avc3": CodecH264,
	"hvc1": CodecHEVC,
	"hev1": CodecHEVC,
	"av01": CodecAV1,
	"vp09": CodecVP9,
	"mp4v": CodecMPEG4,
}

// IsContainer reports whether path has an extension this package can sniff.
func IsContainer(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".m4v":
		return true
	}
	return false
}

// DetectFromFile detects the video codec used in an MP4 file.
func DetectFromFile(path string) (Codec, error) {
	f, err := os.Open(path)
	if err != nil {
		return CodecUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader detects the video codec from an io.ReadSeeker.
// Media data is skipped, so only the box headers are read into memory.
func DetectFromReader(reader io.ReadSeeker) (Codec, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return CodecUnknown, fmt.Errorf("decode mp4: %w", err)
	}

	// Reset reader position for subsequent reads
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return CodecUnknown, fmt.Errorf("seek: %w", err)
	}

	return detectFromMP4File(mp4File)
}

// DetectFromBytes detects the video codec from MP4 data bytes.
func DetectFromBytes(data []byte) (Codec, error) {
	return DetectFromReader(bytes.NewReader(data))
}

func detectFromMP4File(mp4File *mp4.File) (Codec, error) {
	var traks []*mp4.TrakBox
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		traks = append(traks, mp4File.Init.Moov.Traks...)
	}
	if mp4File.Moov != nil {
		traks = append(traks, mp4File.Moov.Traks...)
	}

	found := false
	for _, trak := range traks {
		codec, isVideo := detectCodecFromTrack(trak)
		if !isVideo {
			continue
		}
		found = true
		if codec != CodecUnknown {
			return codec, nil
		}
	}

	if found {
		return CodecUnknown, nil
	}
	return CodecUnknown, ErrNoVideoTrack
}

func detectCodecFromTrack(trak *mp4.TrakBox) (Codec, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return CodecUnknown, false
	}

	// Only process video tracks
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return CodecUnknown, false
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return CodecUnknown, true
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if codec, ok := sampleEntries[child.Type()]; ok {
			return codec, true
		}
	}

	return CodecUnknown, true
}
