// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/flowclip/pkg/pipeline"
	"github.com/user/flowclip/pkg/ports"
)

// Sink saves debug output to files under baseDir:
//
//	plans/{stem}.json
//	sheets/{stem}_clip_{nnn}.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlanJSON saves the clip plan of one source.
func (s *Sink) SavePlanJSON(stem string, data []byte) error {
	dir := filepath.Join(s.baseDir, "plans")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, stem+".json"), data)
}

// SaveContactSheet saves the contact sheet of one clip as PNG.
func (s *Sink) SaveContactSheet(stem string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "sheets")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode contact sheet: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(dir, pipeline.ClipFileName(stem, index, "png")), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
