package codecdetect

import (
	"bytes"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

func buildInit(t *testing.T, sampleEntry string) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(90000, "video", "und")
	entry := mp4.CreateVisualSampleEntryBox(sampleEntry, 64, 48, &mp4.PaspBox{HSpacing: 1, VSpacing: 1})
	init.Moov.Trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromBytes(t *testing.T) {
	tests := []struct {
		entry string
		want  Codec
	}{
		{entry: "avc1", want: CodecH264},
		{entry: "hvc1", want: CodecHEVC},
		{entry: "mp4v", want: CodecMPEG4},
		{entry: "av01", want: CodecAV1},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			got, err := DetectFromBytes(buildInit(t, tt.entry))
			if err != nil {
				t.Fatalf("DetectFromBytes failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDetectFromBytes_Invalid(t *testing.T) {
	codec, err := DetectFromBytes([]byte("definitely not an mp4 file"))
	if err == nil {
		t.Error("expected error for invalid data")
	}
	if codec != CodecUnknown {
		t.Errorf("expected unknown codec, got %s", codec)
	}
}

func TestIsContainer(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "a.mp4", want: true},
		{path: "dir/B.MOV", want: true},
		{path: "c.m4v", want: true},
		{path: "d.avi", want: false},
		{path: "frames", want: false},
	}

	for _, tt := range tests {
		if got := IsContainer(tt.path); got != tt.want {
			t.Errorf("IsContainer(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}
