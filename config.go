package flowcanvas

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidScale is returned by Config.Validate for unusable scale bounds.
var ErrInvalidScale = errors.New("flowcanvas: invalid scale bounds")

// Config holds the tunables of a canvas. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Viewport ViewportConfig        `toml:"viewport"`
	Routing  RoutingConfig         `toml:"routing"`
	Kinds    map[string]KindConfig `toml:"kinds"`
	Window   WindowConfig          `toml:"window"`
}

// ViewportConfig controls zoom bounds and wheel behavior.
type ViewportConfig struct {
	MinScale      float64 `toml:"min_scale"`
	MaxScale      float64 `toml:"max_scale"`
	ZoomInFactor  float64 `toml:"zoom_in_factor"`
	ZoomOutFactor float64 `toml:"zoom_out_factor"`
	// ZoomModifier is "ctrl", "shift", "alt", "meta" or "none".
	ZoomModifier string `toml:"zoom_modifier"`
}

// RoutingConfig controls edge curve control points.
type RoutingConfig struct {
	ControlRatio float64 `toml:"control_ratio"`
	ControlMin   float64 `toml:"control_min"`
}

// KindConfig overrides the display size of a node kind.
type KindConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// WindowConfig is read by the window runner only.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Viewport: ViewportConfig{
			MinScale:      DefaultMinScale,
			MaxScale:      DefaultMaxScale,
			ZoomInFactor:  DefaultZoomInFactor,
			ZoomOutFactor: DefaultZoomOutFactor,
			ZoomModifier:  "ctrl",
		},
		Routing: RoutingConfig{
			ControlRatio: DefaultControlRatio,
			ControlMin:   DefaultControlMin,
		},
		Window: WindowConfig{Title: "flowcanvas", Width: 1280, Height: 800},
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the config for values the canvas cannot work with.
func (c *Config) Validate() error {
	v := c.Viewport
	if v.MinScale <= 0 || v.MaxScale < v.MinScale {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidScale, v.MinScale, v.MaxScale)
	}
	if v.ZoomInFactor <= 0 || v.ZoomOutFactor <= 0 {
		return fmt.Errorf("config: zoom factors must be positive (in %v, out %v)", v.ZoomInFactor, v.ZoomOutFactor)
	}
	if _, err := parseModifier(v.ZoomModifier); err != nil {
		return err
	}
	if c.Routing.ControlRatio < 0 || c.Routing.ControlMin < 0 {
		return fmt.Errorf("config: routing offsets must not be negative")
	}
	for name, k := range c.Kinds {
		if _, ok := ParseNodeKind(name); !ok {
			return fmt.Errorf("config: unknown node kind %q", name)
		}
		if k.Width < 0 || k.Height < 0 {
			return fmt.Errorf("config: kind %q has a negative size", name)
		}
	}
	return nil
}

// Registry returns DefaultRegistry with the configured size overrides.
func (c *Config) Registry() *Registry {
	r := DefaultRegistry()
	for name, k := range c.Kinds {
		kind, ok := ParseNodeKind(name)
		if !ok {
			continue
		}
		spec, _ := r.Spec(kind)
		if k.Width > 0 {
			spec.DisplayWidth = k.Width
		}
		if k.Height > 0 {
			spec.DisplayHeight = k.Height
		}
		r.Register(kind, spec)
	}
	return r
}

// applyViewport copies the viewport settings onto vc.
func (c *Config) applyViewport(vc *ViewportController) {
	vc.MinScale = c.Viewport.MinScale
	vc.MaxScale = c.Viewport.MaxScale
	vc.ZoomInFactor = c.Viewport.ZoomInFactor
	vc.ZoomOutFactor = c.Viewport.ZoomOutFactor
	if mod, err := parseModifier(c.Viewport.ZoomModifier); err == nil {
		vc.ZoomModifier = mod
	}
}

func parseModifier(s string) (KeyModifiers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ctrl", "control":
		return ModCtrl, nil
	case "shift":
		return ModShift, nil
	case "alt", "option":
		return ModAlt, nil
	case "meta", "cmd", "super":
		return ModMeta, nil
	case "none", "":
		return 0, nil
	}
	return 0, fmt.Errorf("config: unknown zoom modifier %q", s)
}
