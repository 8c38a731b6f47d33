package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexus-landing/internal/anim"
)

func TestLoadMissingFileIsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", p)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	data := "overlap: radial\nshow_fps: true\nripple_ms: 500\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Overlap != "radial" || !p.ShowFPS || p.RippleMS != 500 {
		t.Errorf("file values not applied: %+v", p)
	}
	if p.TargetFPS != 60 || p.Opacity != 0.55 || p.Glyphs != 8 {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	if err := os.WriteFile(path, []byte("target_fps: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err == nil {
		t.Error("Load(invalid) returned no error")
	}
	if p != Default() {
		t.Errorf("Load(invalid) = %+v, want defaults", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "landing.yaml")
	want := Default()
	want.ShowMemAlloc = true
	want.Overlap = "radial"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load after Save = %+v, want %+v", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		overlap string
		fps     int
		wantErr bool
	}{
		{"none", nil, "box", 60, false},
		{"overrides", map[string]string{EnvOverlap: "radial", EnvFPS: "120"}, "radial", 120, false},
		{"bad policy", map[string]string{EnvOverlap: "hexagon"}, "box", 60, true},
		{"bad fps", map[string]string{EnvFPS: "-3"}, "box", 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			err := p.ApplyEnv(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv error = %v", err)
			}
			if p.Overlap != tt.overlap || p.TargetFPS != tt.fps {
				t.Errorf("prefs = %s/%d, want %s/%d", p.Overlap, p.TargetFPS, tt.overlap, tt.fps)
			}
		})
	}
}

func TestController(t *testing.T) {
	p := Default()
	p.Overlap = "radial"
	p.DetectMS = 32
	cfg, err := p.Controller()
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}
	def := anim.DefaultConfig()
	if cfg.Policy != anim.PolicyRadial || cfg.DetectInterval != 32*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Color != def.Color || cfg.HitColor != def.HitColor || cfg.RippleDuration != def.RippleDuration {
		t.Errorf("defaults not carried: %+v", cfg)
	}
	if cfg.CollisionSelector() != def.CollisionSelector() || cfg.HighlightSelector() != def.HighlightSelector() {
		t.Errorf("markers = %q / %q", cfg.CollisionMarkers, cfg.HighlightMarkers)
	}
	if cfg.ZOrder != -2 {
		t.Errorf("ZOrder = %d, want -2", cfg.ZOrder)
	}

	bad := []func(*Prefs){
		func(p *Prefs) { p.Overlap = "hexagon" },
		func(p *Prefs) { p.Color = "teal" },
		func(p *Prefs) { p.Opacity = 2 },
		func(p *Prefs) { p.BottomMargin = 1 },
	}
	for i, mutate := range bad {
		p := Default()
		mutate(&p)
		if _, err := p.Controller(); err == nil {
			t.Errorf("case %d: Controller accepted %+v", i, p)
		}
	}
}
