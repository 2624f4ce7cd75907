// Package config loads gopick settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gopick/pkg/gesture"
	"github.com/philipparndt/gopick/pkg/viewer"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Duration is a time.Duration written as "300ms" in config files
type Duration time.Duration

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Accumulator holds the pinch accumulator bounds
type Accumulator struct {
	Initial float64 `yaml:"initial" toml:"initial"`
	Min     float64 `yaml:"min" toml:"min"`
	Max     float64 `yaml:"max" toml:"max"`
}

// Gesture holds pointer handling settings
type Gesture struct {
	TapThreshold    float64     `yaml:"tap_threshold" toml:"tap_threshold"`
	LogicalDPI      float64     `yaml:"logical_dpi" toml:"logical_dpi"`
	ZoomScale       float64     `yaml:"zoom_scale" toml:"zoom_scale"`
	WheelScale      float64     `yaml:"wheel_scale" toml:"wheel_scale"`
	Accumulator     Accumulator `yaml:"accumulator" toml:"accumulator"`
	DoubleTapWindow Duration    `yaml:"double_tap_window" toml:"double_tap_window"`
}

// Camera holds the initial view and viewport
type Camera struct {
	EyeZ       float64 `yaml:"eye_z" toml:"eye_z"`
	MinZoom    float64 `yaml:"min_zoom" toml:"min_zoom"`
	MaxZoom    float64 `yaml:"max_zoom" toml:"max_zoom"`
	FOVDegrees float64 `yaml:"fov_degrees" toml:"fov_degrees"`
	Near       float64 `yaml:"near" toml:"near"`
	Far        float64 `yaml:"far" toml:"far"`
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
}

// Log holds logging settings
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Watch holds model reload settings
type Watch struct {
	Debounce Duration `yaml:"debounce" toml:"debounce"`
}

// Config is the complete gopick configuration
type Config struct {
	Gesture Gesture `yaml:"gesture" toml:"gesture"`
	Camera  Camera  `yaml:"camera" toml:"camera"`
	Log     Log     `yaml:"log" toml:"log"`
	Watch   Watch   `yaml:"watch" toml:"watch"`
}

// Default returns the built-in configuration
func Default() Config {
	g := gesture.DefaultConfig()
	c := viewer.DefaultCameraConfig()
	return Config{
		Gesture: Gesture{
			TapThreshold: g.TapThreshold,
			LogicalDPI:   g.LogicalDPI,
			ZoomScale:    g.ZoomScale,
			WheelScale:   g.WheelScale,
			Accumulator: Accumulator{
				Initial: g.AccumulatorInitial,
				Min:     g.AccumulatorMin,
				Max:     g.AccumulatorMax,
			},
			DoubleTapWindow: Duration(g.DoubleTapWindow),
		},
		Camera: Camera{
			EyeZ:       c.EyeZ,
			MinZoom:    c.MinZoom,
			MaxZoom:    c.MaxZoom,
			FOVDegrees: c.FOVDegrees,
			Near:       c.Near,
			Far:        c.Far,
			Width:      c.Width,
			Height:     c.Height,
		},
		Log:   Log{Level: "info", Format: "text"},
		Watch: Watch{Debounce: Duration(500 * time.Millisecond)},
	}
}

// Load reads path on top of Default(). An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.Gesture.LogicalDPI <= 0 {
		errs = append(errs, fmt.Errorf("gesture.logical_dpi must be positive, got %v", c.Gesture.LogicalDPI))
	}
	if a := c.Gesture.Accumulator; a.Min > a.Max {
		errs = append(errs, fmt.Errorf("gesture.accumulator: min %v exceeds max %v", a.Min, a.Max))
	}
	if c.Camera.MinZoom > c.Camera.MaxZoom {
		errs = append(errs, fmt.Errorf("camera: min_zoom %v exceeds max_zoom %v", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera: viewport %dx%d is empty", c.Camera.Width, c.Camera.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	return errors.Join(errs...)
}

// GestureConfig converts the gesture section
func (c Config) GestureConfig() gesture.Config {
	g := c.Gesture
	return gesture.Config{
		TapThreshold:       g.TapThreshold,
		LogicalDPI:         g.LogicalDPI,
		ZoomScale:          g.ZoomScale,
		WheelScale:         g.WheelScale,
		AccumulatorInitial: g.Accumulator.Initial,
		AccumulatorMin:     g.Accumulator.Min,
		AccumulatorMax:     g.Accumulator.Max,
		DoubleTapWindow:    time.Duration(g.DoubleTapWindow),
	}
}

// CameraConfig converts the camera section
func (c Config) CameraConfig() viewer.CameraConfig {
	cam := c.Camera
	return viewer.CameraConfig{
		EyeZ:       cam.EyeZ,
		MinZoom:    cam.MinZoom,
		MaxZoom:    cam.MaxZoom,
		FOVDegrees: cam.FOVDegrees,
		Near:       cam.Near,
		Far:        cam.Far,
		Width:      cam.Width,
		Height:     cam.Height,
	}
}
