package prommetrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecorder_Flush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowclip.prom")
	r := New(path)

	r.SourceFinished("video", "processed")
	r.SourceFinished("video", "processed")
	r.SourceFinished("images", "skipped")
	r.ClipWritten("primary")
	r.FramesDecoded(120)
	r.FramesDecoded(-3)
	r.FramesPadded(4)

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)

	want := []string{
		`flowclip_sources_total{kind="video",status="processed"} 2`,
		`flowclip_sources_total{kind="images",status="skipped"} 1`,
		`flowclip_clips_written_total{stream="primary"} 1`,
		`flowclip_frames_decoded_total 120`,
		`flowclip_padded_frames_total 4`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("textfile missing %q\n%s", w, out)
		}
	}
}

func TestRecorder_FlushWithoutPath(t *testing.T) {
	r := New("")
	r.ClipWritten("primary")
	if err := r.Flush(); err != nil {
		t.Errorf("Flush with empty path should be a no-op, got %v", err)
	}
}

func TestRecorder_FlushBadDirectory(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing", "flowclip.prom"))
	if err := r.Flush(); err == nil {
		t.Error("expected error for missing directory")
	}
}
