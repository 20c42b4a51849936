// Package metadata builds the training metadata table that pairs each clip
// with its flow-line counterpart.
package metadata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/flowclip/pkg/ports"
)

// ErrFolderNotFound is returned when the scanned folder does not exist.
var ErrFolderNotFound = errors.New("metadata: folder not found")

// Header is the column order of the metadata CSV.
var Header = []string{"video", "flow_line", "prompt"}

// DefaultExtensions lists the media types included in the table.
var DefaultExtensions = []string{
	"jpg", "jpeg", "png", "webp", "gif",
	"mp4", "avi", "mov", "wmv", "mkv", "flv", "webm",
}

// DefaultPrompt is used when Options.Prompt is empty.
const DefaultPrompt = "move"

// Options configures Generate.
type Options struct {
	Base        string   // Dataset root; row paths are relative to it
	Folder      string   // Scanned folder, relative to Base
	FlowLineDir string   // Counterpart directory inside Folder
	Prompt      string   // Prompt written to every row
	Extensions  []string // Nil selects DefaultExtensions
}

// Row is one line of the metadata table. An empty FlowLine means the file
// has no counterpart.
type Row struct {
	Video    string
	FlowLine string
	Prompt   string
}

// Result is the outcome of Generate.
type Result struct {
	Rows    []Row
	Matched int // Rows with a flow-line counterpart
}

// Generator lists media files and matches their counterparts.
type Generator struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a Generator.
func New(fs ports.FileSystem, logger ports.Logger) *Generator {
	return &Generator{
		fs:     fs,
		logger: logger.WithComponent("metadata"),
	}
}

// Generate scans {Base}/{Folder} without recursing. Rows are sorted by name.
func (g *Generator) Generate(opts Options) (Result, error) {
	var result Result

	dir := filepath.Join(opts.Base, opts.Folder)
	isDir, err := g.fs.IsDir(dir)
	if err != nil {
		return result, err
	}
	if !isDir {
		return result, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
	}

	entries, err := g.fs.ReadDir(dir)
	if err != nil {
		return result, fmt.Errorf("list %s: %w", dir, err)
	}

	exts := opts.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	flowDir := opts.FlowLineDir
	if flowDir == "" {
		flowDir = "flow_line"
	}

	for _, e := range entries {
		if e.IsDir {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name)), ".")
		if !allowed[ext] {
			continue
		}

		row := Row{
			Video:  filepath.ToSlash(filepath.Join(opts.Folder, e.Name)),
			Prompt: prompt,
		}

		counterpart := filepath.Join(dir, flowDir, e.Name)
		exists, err := g.fs.Exists(counterpart)
		if err != nil {
			return result, err
		}
		if exists {
			row.FlowLine = filepath.ToSlash(filepath.Join(opts.Folder, flowDir, e.Name))
			result.Matched++
		} else {
			g.logger.Warn(l10n.F("Flow line not found for %s", e.Name))
		}

		result.Rows = append(result.Rows, row)
	}

	g.logger.Info(l10n.F("Found %d media files, %d with flow line", len(result.Rows), result.Matched))
	return result, nil
}

// Encode renders rows as CSV with a header line.
func Encode(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Video, r.FlowLine, r.Prompt}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a metadata CSV produced by Encode.
func Decode(data []byte) ([]Row, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("parse metadata: unexpected header %v", records[0])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{Video: rec[0], FlowLine: rec[1], Prompt: rec[2]})
	}
	return rows, nil
}

// Save encodes rows and writes them to path, creating parent directories.
func (g *Generator) Save(path string, rows []Row) error {
	data, err := Encode(rows)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := g.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := g.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	g.logger.Info(l10n.F("Metadata saved to %s", path))
	return nil
}
