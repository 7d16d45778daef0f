// Package config loads the paddleball runtime configuration from YAML.
//
// Every value has a built-in default (see default.yaml); a user file is decoded on top of
// those defaults, so it only has to name the keys it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/paddleball/common"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	PresentModeAuto     = "auto"
	PresentModeVsync    = "vsync"
	PresentModeUncapped = "uncapped"

	PowerHigh = "high"
	PowerLow  = "low"

	FormatText = "text"
	FormatJSON = "json"

	DefaultResizeThrottle = 33 * time.Millisecond
)

type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Renderer  RendererConfig `yaml:"renderer"`
	Scene     SceneConfig    `yaml:"scene"`
	Log       LogConfig      `yaml:"log"`
	Profiling bool           `yaml:"profiling"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	MinWidth  int `yaml:"min_width,omitempty"`
	MinHeight int `yaml:"min_height,omitempty"`
	MaxWidth  int `yaml:"max_width,omitempty"`
	MaxHeight int `yaml:"max_height,omitempty"`

	// AspectWidth:AspectHeight is the content aspect used when letterboxing the browser canvas.
	AspectWidth    float64       `yaml:"aspect_width"`
	AspectHeight   float64       `yaml:"aspect_height"`
	ResizeThrottle time.Duration `yaml:"resize_throttle"`
}

// Aspect returns the content aspect ratio (width / height).
func (w WindowConfig) Aspect() float64 {
	return w.AspectWidth / w.AspectHeight
}

type RendererConfig struct {
	PresentMode          string     `yaml:"present_mode"`
	MSAA                 int        `yaml:"msaa"`
	ForceFallbackAdapter bool       `yaml:"force_fallback_adapter,omitempty"`
	PowerPreference      string     `yaml:"power_preference"`
	ClearColor           [4]float64 `yaml:"clear_color,flow"`
}

type SceneConfig struct {
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
}

type PaddleConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	W float32 `yaml:"w"`
	H float32 `yaml:"h"`
}

type BallConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	R float32 `yaml:"r"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: a fresh copy of the embedded defaults
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	cfg.normalize()
	return cfg
}

// Parse decodes YAML on top of the defaults, normalizes it and validates the result.
//
// Parameters:
//   - data: the YAML document; empty input yields the defaults
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode error, or a validation error wrapping ErrInvalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg as YAML with two-space indentation.
//
// Parameters:
//   - w: the destination writer
//   - cfg: the configuration to encode
//
// Returns:
//   - error: an error if encoding fails
func Encode(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close config encoder: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Renderer.PresentMode = strings.ToLower(strings.TrimSpace(c.Renderer.PresentMode))
	if c.Renderer.PresentMode == "" {
		c.Renderer.PresentMode = PresentModeAuto
	}
	c.Renderer.PowerPreference = strings.ToLower(strings.TrimSpace(c.Renderer.PowerPreference))
	if c.Renderer.PowerPreference == "" {
		c.Renderer.PowerPreference = PowerHigh
	}
	if c.Renderer.MSAA == 0 {
		c.Renderer.MSAA = 1
	}
	if c.Window.AspectWidth == 0 && c.Window.AspectHeight == 0 {
		c.Window.AspectWidth, c.Window.AspectHeight = 16, 9
	}
	if c.Window.ResizeThrottle == 0 {
		c.Window.ResizeThrottle = DefaultResizeThrottle
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = FormatText
	}
}

// Validate checks every field and returns the first problem found, wrapped in ErrInvalid.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size %dx%d must be positive", w.Width, w.Height)
	}
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		return invalid("window size limits must not be negative")
	}
	if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
		return invalid("window.min_width %d exceeds window.max_width %d", w.MinWidth, w.MaxWidth)
	}
	if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
		return invalid("window.min_height %d exceeds window.max_height %d", w.MinHeight, w.MaxHeight)
	}
	if !positiveFinite(w.AspectWidth) || !positiveFinite(w.AspectHeight) {
		return invalid("window aspect %v:%v must be positive", w.AspectWidth, w.AspectHeight)
	}
	if w.ResizeThrottle < 0 {
		return invalid("window.resize_throttle %s must not be negative", w.ResizeThrottle)
	}

	r := c.Renderer
	switch r.PresentMode {
	case PresentModeAuto, PresentModeVsync, PresentModeUncapped:
	default:
		return invalid("unknown renderer.present_mode %q", r.PresentMode)
	}
	if r.MSAA != 1 && r.MSAA != 4 {
		return invalid("renderer.msaa must be 1 or 4, got %d", r.MSAA)
	}
	switch r.PowerPreference {
	case PowerHigh, PowerLow:
	default:
		return invalid("unknown renderer.power_preference %q", r.PowerPreference)
	}
	for i, v := range r.ClearColor {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return invalid("renderer.clear_color[%d] = %v is outside [0, 1]", i, v)
		}
	}

	s := c.Scene
	dims := []struct {
		name string
		v    float32
	}{
		{"scene.paddle.w", s.Paddle.W},
		{"scene.paddle.h", s.Paddle.H},
		{"scene.ball.r", s.Ball.R},
	}
	for _, d := range dims {
		if !common.IsFinite32(d.v) || d.v < 0 {
			return invalid("%s = %v must be a non-negative number", d.name, d.v)
		}
	}
	for _, p := range []float32{s.Paddle.X, s.Paddle.Y, s.Ball.X, s.Ball.Y} {
		if !common.IsFinite32(p) {
			return invalid("scene positions must be finite")
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return invalid("unknown log.format %q", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
