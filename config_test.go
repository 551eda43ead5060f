package flowcanvas

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[viewport]
min_scale = 0.25
max_scale = 4
zoom_modifier = "meta"

[routing]
control_min = 80

[kinds.script]
width = 400

[window]
title = "storyboard"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewport.MinScale != 0.25 || cfg.Viewport.MaxScale != 4 {
		t.Errorf("scale bounds = %v..%v", cfg.Viewport.MinScale, cfg.Viewport.MaxScale)
	}
	if cfg.Viewport.ZoomInFactor != DefaultZoomInFactor {
		t.Errorf("unset field lost its default: %v", cfg.Viewport.ZoomInFactor)
	}
	if cfg.Routing.ControlMin != 80 || cfg.Routing.ControlRatio != DefaultControlRatio {
		t.Errorf("routing = %+v", cfg.Routing)
	}
	if cfg.Window.Title != "storyboard" || cfg.Window.Width != 1280 {
		t.Errorf("window = %+v", cfg.Window)
	}

	reg := cfg.Registry()
	if reg.DisplayWidth(KindScript) != 400 || reg.DisplayHeight(KindScript) != 220 {
		t.Errorf("script size = %v x %v", reg.DisplayWidth(KindScript), reg.DisplayHeight(KindScript))
	}
	if reg.DefaultData(KindScript)[FieldTitle] != "Scene script" {
		t.Error("size override dropped default data")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr string
		is      error
	}{
		{"syntax", "[viewport\n", "parse config", nil},
		{"unknown key", "[viewport]\nzoom_speed = 2\n", "unknown keys", nil},
		{"inverted bounds", "[viewport]\nmin_scale = 3\nmax_scale = 2\n", "invalid scale", ErrInvalidScale},
		{"zero min", "[viewport]\nmin_scale = 0\n", "invalid scale", ErrInvalidScale},
		{"bad modifier", "[viewport]\nzoom_modifier = \"hyper\"\n", "zoom modifier", nil},
		{"bad kind", "[kinds.audio]\nwidth = 10\n", "unknown node kind", nil},
		{"negative factor", "[viewport]\nzoom_in_factor = -1\n", "zoom factors", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want errors.Is %v", err, tt.is)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.toml")
	if err := os.WriteFile(path, []byte("[viewport]\nzoom_modifier = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	c := New(Options{Config: cfg})
	if !c.HandleWheel(WheelEvent{DeltaY: -1}) {
		t.Error("zoom_modifier none should zoom without a modifier")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		in   string
		want KeyModifiers
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"shift", ModShift},
		{"option", ModAlt},
		{"cmd", ModMeta},
		{"", 0},
		{"none", 0},
	}
	for _, tt := range tests {
		got, err := parseModifier(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseModifier(%q) = %v, %v", tt.in, got, err)
		}
	}
}
