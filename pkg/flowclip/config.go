// Package flowclip provides a high-level API for configuring clip segmentation runs.
package flowclip

import (
	"fmt"
	"strings"

	"github.com/user/flowclip/pkg/orchestrator"
	"github.com/user/flowclip/pkg/padding"
	"github.com/user/flowclip/pkg/planner"
)

// Preset names a ready-made segmentation setup.
type Preset string

const (
	// PresetFixed5 cuts paired streams into 5-frame clips.
	PresetFixed5 Preset = "fixed5"
	// PresetUniform picks one candidate length per source.
	PresetUniform Preset = "uniform"
	// PresetGreedy partitions each source with the largest fitting candidates.
	PresetGreedy Preset = "greedy"
)

// Presets lists the recognised preset names.
var Presets = []Preset{PresetFixed5, PresetUniform, PresetGreedy}

// ParsePreset parses a preset name.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("flowclip: unknown preset %q", s)
}

// Config represents the configuration of one segmentation run.
type Config struct {
	// Planning
	Policy     planner.Policy
	Length     int   // Fixed clip length (fixed policy)
	Candidates []int // Candidate lengths (dynamic policies)
	Underflow  padding.Underflow

	// Sources
	Paired          bool
	FlowLineDir     string
	PrimarySubdir   string
	VideoExtensions []string
	ImageExtensions []string

	// Encoding
	FPS       float64
	Codec     string
	Quality   float64 // 0-10, 10 is best
	Extension string

	// Debug contact sheets
	SheetColumns int
	SheetWidth   int
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with the fixed5 preset.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: fixed5Defaults()}
}

// NewPresetConfigBuilder creates a ConfigBuilder starting from preset.
func NewPresetConfigBuilder(preset Preset) *ConfigBuilder {
	switch preset {
	case PresetUniform:
		return &ConfigBuilder{config: dynamicDefaults(planner.PolicyUniform)}
	case PresetGreedy:
		return &ConfigBuilder{config: dynamicDefaults(planner.PolicyGreedy)}
	default:
		return NewConfigBuilder()
	}
}

func baseDefaults() Config {
	defaults := orchestrator.DefaultConfig()
	return Config{
		Length:          5,
		Candidates:      append([]int(nil), planner.DefaultCandidates...),
		Underflow:       padding.UnderflowReject,
		FlowLineDir:     defaults.FlowLineDir,
		PrimarySubdir:   defaults.PrimarySubdir,
		VideoExtensions: defaults.VideoExtensions,
		FPS:             defaults.FPS,
		Codec:           defaults.Codec,
		Quality:         defaults.Quality,
		Extension:       defaults.Extension,
		SheetColumns:    defaults.SheetColumns,
		SheetWidth:      defaults.SheetWidth,
	}
}

// fixed5Defaults mirrors the paired track/flow_line split into 5-frame clips.
func fixed5Defaults() Config {
	cfg := baseDefaults()
	cfg.Policy = planner.PolicyFixed
	cfg.Paired = true
	return cfg
}

func dynamicDefaults(policy planner.Policy) Config {
	cfg := baseDefaults()
	cfg.Policy = policy
	return cfg
}

// Build returns the final Config, applying constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.Quality < 0 {
		cfg.Quality = 0
	}
	if cfg.Quality > 10 {
		cfg.Quality = 10
	}
	if cfg.FPS <= 0 {
		cfg.FPS = orchestrator.DefaultConfig().FPS
	}
	if cfg.Underflow == "" {
		cfg.Underflow = padding.UnderflowReject
	}
	if cfg.Extension == "" {
		cfg.Extension = "mp4"
	}
	cfg.Extension = strings.TrimPrefix(cfg.Extension, ".")
	cfg.Candidates = append([]int(nil), cfg.Candidates...)

	return cfg
}

// WithPolicy sets the planning policy.
func (b *ConfigBuilder) WithPolicy(policy planner.Policy) *ConfigBuilder {
	b.config.Policy = policy
	return b
}

// WithLength sets the fixed clip length.
func (b *ConfigBuilder) WithLength(length int) *ConfigBuilder {
	b.config.Length = length
	return b
}

// WithCandidates sets the candidate lengths of the dynamic policies.
func (b *ConfigBuilder) WithCandidates(candidates []int) *ConfigBuilder {
	b.config.Candidates = append([]int(nil), candidates...)
	return b
}

// WithUnderflow sets what happens when a source is shorter than one clip.
func (b *ConfigBuilder) WithUnderflow(u padding.Underflow) *ConfigBuilder {
	b.config.Underflow = u
	return b
}

// WithPaired enables paired flow-line processing.
func (b *ConfigBuilder) WithPaired(paired bool) *ConfigBuilder {
	b.config.Paired = paired
	return b
}

// WithFlowLineDir sets the sibling directory of the flow-line streams.
func (b *ConfigBuilder) WithFlowLineDir(dir string) *ConfigBuilder {
	b.config.FlowLineDir = dir
	return b
}

// WithPrimarySubdir sets the output subdirectory of primary clips in paired mode.
func (b *ConfigBuilder) WithPrimarySubdir(dir string) *ConfigBuilder {
	b.config.PrimarySubdir = dir
	return b
}

// WithVideoExtensions sets the file extensions discovered as videos.
func (b *ConfigBuilder) WithVideoExtensions(exts []string) *ConfigBuilder {
	b.config.VideoExtensions = exts
	return b
}

// WithImageExtensions sets the file extensions read from image folders.
func (b *ConfigBuilder) WithImageExtensions(exts []string) *ConfigBuilder {
	b.config.ImageExtensions = exts
	return b
}

// WithFPS sets the output frame rate.
func (b *ConfigBuilder) WithFPS(fps float64) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithCodec sets the encoder name.
func (b *ConfigBuilder) WithCodec(codec string) *ConfigBuilder {
	b.config.Codec = codec
	return b
}

// WithQuality sets the encode quality (0-10, 10 is best).
// Values outside the range are clamped by Build.
func (b *ConfigBuilder) WithQuality(q float64) *ConfigBuilder {
	b.config.Quality = q
	return b
}

// WithExtension sets the clip container extension.
func (b *ConfigBuilder) WithExtension(ext string) *ConfigBuilder {
	b.config.Extension = ext
	return b
}

// WithContactSheet sets the contact sheet grid.
func (b *ConfigBuilder) WithContactSheet(columns, thumbWidth int) *ConfigBuilder {
	b.config.SheetColumns = columns
	b.config.SheetWidth = thumbWidth
	return b
}

// Strategy returns the planner selected by the config.
func (c Config) Strategy() (planner.Strategy, error) {
	return planner.New(c.Policy, c.Length, c.Candidates)
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputDir, outputDir string) orchestrator.Config {
	return orchestrator.Config{
		InputDir:        inputDir,
		VideoExtensions: c.VideoExtensions,

		Paired:        c.Paired,
		FlowLineDir:   c.FlowLineDir,
		PrimarySubdir: c.PrimarySubdir,

		OutputDir: outputDir,
		Extension: c.Extension,

		FPS:     c.FPS,
		Codec:   c.Codec,
		Quality: c.Quality,

		SheetColumns: c.SheetColumns,
		SheetWidth:   c.SheetWidth,
	}
}
