// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/user/flowclip/pkg/flowclip"
	"github.com/user/flowclip/pkg/padding"
	"github.com/user/flowclip/pkg/planner"
	"github.com/user/flowclip/pkg/ports"
	"github.com/user/flowclip/pkg/stages/contactsheet"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the full configuration file of flowclip.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Sources
	Preset          string   `yaml:"preset"`
	Paired          *bool    `yaml:"paired"` // Nil keeps the preset value
	FlowLineDir     string   `yaml:"flow_dir"`
	PrimarySubdir   string   `yaml:"primary_subdir"`
	VideoExtensions []string `yaml:"video_extensions"`
	ImageExtensions []string `yaml:"image_extensions"`

	// Planning; zero values keep the preset value
	Policy    string `yaml:"policy"`
	Length    int    `yaml:"length"`
	Lengths   []int  `yaml:"lengths"`
	Underflow string `yaml:"underflow"`

	// Encoding
	FPS        float64 `yaml:"fps"`
	Codec      string  `yaml:"codec"`
	Quality    float64 `yaml:"quality"`
	Extension  string  `yaml:"extension"`
	FFmpegPath string  `yaml:"ffmpeg_path"`

	// Reporting
	Summary     string `yaml:"summary"`
	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
	Strict      bool   `yaml:"strict"`

	// Debug
	Debug    bool        `yaml:"debug"`
	DebugDir string      `yaml:"debug_dir"`
	Sheet    SheetConfig `yaml:"sheet"`
}

// SheetConfig represents contact sheet options.
type SheetConfig struct {
	Columns         int    `yaml:"columns"`
	ThumbWidth      int    `yaml:"thumb_width"`
	BackgroundColor string `yaml:"background_color"`
	LabelColor      string `yaml:"label_color"`
	PaddedColor     string `yaml:"padded_color"`
	RepeatedColor   string `yaml:"repeated_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	base := flowclip.NewConfigBuilder().Build()
	return Config{
		Output: "./clips",

		Preset:          string(flowclip.PresetFixed5),
		FlowLineDir:     base.FlowLineDir,
		PrimarySubdir:   base.PrimarySubdir,
		VideoExtensions: base.VideoExtensions,

		Underflow: string(base.Underflow),

		FPS:       base.FPS,
		Codec:     base.Codec,
		Quality:   base.Quality,
		Extension: base.Extension,

		LogLevel: "info",

		DebugDir: "./debug",
		Sheet: SheetConfig{
			Columns:         base.SheetColumns,
			ThumbWidth:      base.SheetWidth,
			BackgroundColor: "#1a1a2e",
			LabelColor:      "#ffffff",
			PaddedColor:     "#f59e0b",
			RepeatedColor:   "#ef4444",
		},
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that cannot be clamped.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input directory is required", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	}
	if c.Preset != "" {
		if _, err := flowclip.ParsePreset(c.Preset); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Policy != "" {
		if _, err := planner.ParsePolicy(c.Policy); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Length < 0 {
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfig, c.Length)
	}
	if _, err := c.ToBuilder().Build().Strategy(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := padding.ParseUnderflow(c.Underflow); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidConfig, c.FPS)
	}
	if c.Quality < 0 || c.Quality > 10 {
		return fmt.Errorf("%w: quality must be within 0-10, got %v", ErrInvalidConfig, c.Quality)
	}
	if c.ToBuilder().Build().Paired && c.FlowLineDir == "" {
		return fmt.Errorf("%w: paired mode needs a flow line directory", ErrInvalidConfig)
	}
	return nil
}

// LogLevelValue returns the parsed log level.
func (c Config) LogLevelValue() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// ToBuilder returns a flowclip.ConfigBuilder seeded with the file values.
// The preset is applied first; explicit fields then override it.
func (c Config) ToBuilder() *flowclip.ConfigBuilder {
	preset, err := flowclip.ParsePreset(c.Preset)
	if err != nil {
		preset = flowclip.PresetFixed5
	}

	b := flowclip.NewPresetConfigBuilder(preset).
		WithFPS(c.FPS).
		WithCodec(c.Codec).
		WithQuality(c.Quality).
		WithExtension(c.Extension).
		WithContactSheet(c.Sheet.Columns, c.Sheet.ThumbWidth)

	if c.Paired != nil {
		b.WithPaired(*c.Paired)
	}
	if policy, err := planner.ParsePolicy(c.Policy); err == nil {
		b.WithPolicy(policy)
	}
	if c.Length > 0 {
		b.WithLength(c.Length)
	}
	if len(c.Lengths) > 0 {
		b.WithCandidates(c.Lengths)
	}
	if u, err := padding.ParseUnderflow(c.Underflow); err == nil {
		b.WithUnderflow(u)
	}
	if c.FlowLineDir != "" {
		b.WithFlowLineDir(c.FlowLineDir)
	}
	if c.PrimarySubdir != "" {
		b.WithPrimarySubdir(c.PrimarySubdir)
	}
	if len(c.VideoExtensions) > 0 {
		b.WithVideoExtensions(c.VideoExtensions)
	}
	if len(c.ImageExtensions) > 0 {
		b.WithImageExtensions(c.ImageExtensions)
	}
	return b
}

// SheetTheme returns the contact sheet colours.
func (c Config) SheetTheme() contactsheet.Theme {
	theme := contactsheet.DefaultTheme()
	if c.Sheet.BackgroundColor != "" {
		theme.Background = ParseColor(c.Sheet.BackgroundColor)
	}
	if c.Sheet.LabelColor != "" {
		theme.Label = ParseColor(c.Sheet.LabelColor)
	}
	if c.Sheet.PaddedColor != "" {
		theme.Padded = ParseColor(c.Sheet.PaddedColor)
	}
	if c.Sheet.RepeatedColor != "" {
		theme.Repeated = ParseColor(c.Sheet.RepeatedColor)
	}
	return theme
}

// ParseColor parses a hex color string ("#rrggbb") to color.Color.
// Malformed values yield black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(hex[2*i])
		lo, ok2 := hexValue(hex[2*i+1])
		if !ok1 || !ok2 {
			return color.Black
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
