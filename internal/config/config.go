package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/ui"
)

// DefaultPath is the path to the landing config file, relative to the process working directory.
const DefaultPath = "config/landing.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvConfig  = "NEXUS_CONFIG"
	EnvOverlap = "NEXUS_OVERLAP"
	EnvFPS     = "NEXUS_FPS"
)

// Prefs holds the persisted app preferences: debug overlays, window pacing and the
// background animation parameters. Keys missing from the file keep their defaults.
type Prefs struct {
	ShowFPS       bool `yaml:"show_fps"`
	ShowMemAlloc  bool `yaml:"show_memalloc"`
	ShowFootprint bool `yaml:"show_footprint"`
	TargetFPS     int  `yaml:"target_fps"`

	Overlap      string  `yaml:"overlap"`
	Color        string  `yaml:"color"`
	HitColor     string  `yaml:"hit_color"`
	Opacity      float32 `yaml:"opacity"`
	ZOrder       int     `yaml:"z_order"`
	ObjectRadius float32 `yaml:"object_radius,omitempty"`
	DetectMS     int     `yaml:"detect_interval_ms"`
	RippleMS     int     `yaml:"ripple_ms"`
	Threshold    float32 `yaml:"threshold"`
	BottomMargin float32 `yaml:"bottom_margin"`
	Glyphs       int     `yaml:"glyphs"`

	// Content optionally points at a page YAML file replacing the built-in copy.
	Content string `yaml:"content,omitempty"`
	// Font names a TTF/OTF family under assets/fonts; raylib's default font is used when
	// empty or not found.
	Font string `yaml:"font,omitempty"`
}

// Default returns the default preferences (overlays off, box overlap, 60 fps).
func Default() Prefs {
	return Prefs{
		TargetFPS:    60,
		Overlap:      "box",
		Color:        "#0e758f",
		HitColor:     "#60a5fa",
		Opacity:      0.55,
		ZOrder:       -2,
		DetectMS:     16,
		RippleMS:     800,
		Threshold:    0.15,
		BottomMargin: 0.10,
		Glyphs:       8,
	}
}

// Load reads preferences from path over Default. A missing file
// yields Default() and no error; an invalid file yields Default() and the parse error.
func Load(path string) (Prefs, error) {
	def := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return def, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from NEXUS_* variables. lookup is usually os.LookupEnv.
func (p *Prefs) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOverlap); ok && v != "" {
		if _, err := anim.ParsePolicy(v); err != nil {
			return fmt.Errorf("%s: %w", EnvOverlap, err)
		}
		p.Overlap = v
	}
	if v, ok := lookup(EnvFPS); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid frame rate %q", EnvFPS, v)
		}
		p.TargetFPS = n
	}
	return nil
}

// Controller maps the preferences onto an animation config.
func (p Prefs) Controller() (anim.Config, error) {
	cfg := anim.DefaultConfig()
	policy, err := anim.ParsePolicy(p.Overlap)
	if err != nil {
		return cfg, err
	}
	cfg.Policy = policy
	if p.Color != "" {
		c, ok := ui.ParseColor(p.Color)
		if !ok {
			return cfg, fmt.Errorf("invalid color %q", p.Color)
		}
		cfg.Color = c
	}
	if p.HitColor != "" {
		c, ok := ui.ParseColor(p.HitColor)
		if !ok {
			return cfg, fmt.Errorf("invalid hit color %q", p.HitColor)
		}
		cfg.HitColor = c
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return cfg, fmt.Errorf("opacity %v outside 0..1", p.Opacity)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return cfg, fmt.Errorf("threshold %v outside 0..1", p.Threshold)
	}
	if p.BottomMargin < 0 || p.BottomMargin >= 1 {
		return cfg, fmt.Errorf("bottom margin %v outside 0..1", p.BottomMargin)
	}
	cfg.Opacity = p.Opacity
	cfg.ZOrder = p.ZOrder
	cfg.ObjectRadius = p.ObjectRadius
	if p.DetectMS > 0 {
		cfg.DetectInterval = time.Duration(p.DetectMS) * time.Millisecond
	}
	if p.RippleMS > 0 {
		cfg.RippleDuration = time.Duration(p.RippleMS) * time.Millisecond
	}
	cfg.Threshold = p.Threshold
	cfg.BottomMargin = p.BottomMargin
	return cfg, nil
}
