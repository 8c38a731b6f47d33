package app

import (
	"path/filepath"
	"testing"
	"time"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/commands"
	"nexus-landing/internal/config"
	"nexus-landing/internal/host"
	"nexus-landing/internal/ui"
	"nexus-landing/internal/vmath"
)

func newApp(t *testing.T) (*App, *host.ManualClock) {
	t.Helper()
	clock := host.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	a, err := New(Options{
		Prefs:      config.Default(),
		ConfigPath: filepath.Join(t.TempDir(), "landing.yaml"),
		Clock:      clock,
		Width:      1280,
		Height:     800,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, clock
}

func run(t *testing.T, a *App, line string) error {
	t.Helper()
	args, ok := commands.Parse(line)
	if !ok {
		t.Fatalf("not a command: %q", line)
	}
	return a.Commands.Execute(args)
}

func TestNewMountsBothLayers(t *testing.T) {
	a, clock := newApp(t)
	defer a.Close()

	if !a.Sphere.Controller.Mounted() || !a.Glyphs.Controller.Mounted() {
		t.Fatal("layers not mounted")
	}
	if got := len(a.Doc.Query(ui.TypeCanvas)); got != 2 {
		t.Errorf("canvas nodes = %d, want 2", got)
	}
	sphereZ, glyphsZ := a.Sphere.Canvas.Node().ZIndex, a.Glyphs.Canvas.Node().ZIndex
	if sphereZ >= glyphsZ || glyphsZ >= 0 {
		t.Errorf("z-index sphere = %d, glyphs = %d, want sphere < glyphs < 0", sphereZ, glyphsZ)
	}
	if got := len(a.Glyphs.Stage.Bodies); got != 8 {
		t.Errorf("glyphs = %d, want 8", got)
	}
	if a.Sphere.Controller.Cards() == 0 || a.Sphere.Controller.Highlights() == 0 {
		t.Errorf("sphere tracks %d cards, %d highlights", a.Sphere.Controller.Cards(), a.Sphere.Controller.Highlights())
	}
	if a.Glyphs.Controller.Cards() != 0 || a.Glyphs.Controller.Highlights() != 0 {
		t.Error("glyph layer should not track page elements")
	}

	for i := 0; i < 10; i++ {
		clock.Advance(16 * time.Millisecond)
		a.Pump()
	}
	if a.Sphere.Controller.Ticks() != 10 || a.Glyphs.Controller.Ticks() != 10 {
		t.Errorf("ticks = %d / %d, want 10", a.Sphere.Controller.Ticks(), a.Glyphs.Controller.Ticks())
	}
	if a.Orbiter.Ticks != 10 {
		t.Errorf("orbiter ticks = %d", a.Orbiter.Ticks)
	}
}

func TestSphereStaysBelowGlyphs(t *testing.T) {
	prefs := config.Default()
	prefs.ZOrder = 3
	a, err := New(Options{
		Prefs:      prefs,
		ConfigPath: filepath.Join(t.TempDir(), "landing.yaml"),
		Clock:      host.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Width:      1280,
		Height:     800,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if got := a.Sphere.Canvas.Node().ZIndex; got != -2 {
		t.Errorf("sphere z-index = %d, want -2", got)
	}
}

func TestScrollCommandMovesEverything(t *testing.T) {
	a, clock := newApp(t)
	defer a.Close()

	if err := run(t, a, "cmd scroll --to 0.5"); err != nil {
		t.Fatalf("scroll: %v", err)
	}
	clock.Advance(16 * time.Millisecond)
	a.Pump()

	if got := a.Sphere.Controller.Progress(); got < 0.499 || got > 0.501 {
		t.Errorf("progress = %v, want 0.5", got)
	}
	if a.Doc.ScrollY() != a.Loop.Window.ScrollY {
		t.Error("document scroll out of sync with the window")
	}
	if s := a.Hero().Scale; s < 0.799 || s > 0.801 {
		t.Errorf("hero scale = %v, want 0.8 once scrolled past", a.Hero().Scale)
	}
	want := -a.Loop.Window.ScrollY / 60
	if got := a.Glyphs.Stage.Camera.Position.Y; got != want {
		t.Errorf("glyph camera y = %v, want %v", got, want)
	}
	if err := run(t, a, "cmd scroll --to 2"); err == nil {
		t.Error("scroll accepted out-of-range progress")
	}
}

func TestOverlapCommandSurvivesRemount(t *testing.T) {
	a, _ := newApp(t)
	defer a.Close()

	if err := run(t, a, "cmd overlap --policy radial"); err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if err := run(t, a, "cmd remount"); err != nil {
		t.Fatalf("remount: %v", err)
	}
	if got := a.Sphere.Controller.Config().Policy; got != anim.PolicyRadial {
		t.Errorf("policy after remount = %v", got)
	}
	if err := run(t, a, "cmd overlap --policy hexagon"); err == nil {
		t.Error("bad policy accepted")
	}
}

func TestRemountLeavesNoStrayWork(t *testing.T) {
	a, _ := newApp(t)
	frames, timers, listeners := a.Loop.Pending()
	if frames != 2 || timers != 1 {
		t.Fatalf("Pending() after New = %d frames, %d timers; want 2, 1", frames, timers)
	}

	for i := 0; i < 3; i++ {
		a.Remount()
	}
	f2, t2, l2 := a.Loop.Pending()
	if f2 != frames || t2 != timers || l2 != listeners {
		t.Errorf("Pending() after remounts = %d/%d/%d, want %d/%d/%d", f2, t2, l2, frames, timers, listeners)
	}
	if got := len(a.Doc.Query(ui.TypeCanvas)); got != 2 {
		t.Errorf("canvas nodes after remounts = %d, want 2", got)
	}

	a.Close()
	f3, t3, l3 := a.Loop.Pending()
	if f3 != 0 || t3 != 0 || l3 != 2 {
		t.Errorf("Pending() after Close = %d/%d/%d, want only the two page listeners", f3, t3, l3)
	}
	if n := len(a.Doc.Query("." + ui.ClassBase)); n != 0 {
		t.Errorf("%d elements still carry the highlight base class", n)
	}
}

func TestToggleAndSave(t *testing.T) {
	a, _ := newApp(t)
	defer a.Close()

	for _, line := range []string{"cmd fps --show", "cmd memalloc", "cmd debug --show"} {
		if err := run(t, a, line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if !a.Prefs.ShowFPS || !a.Prefs.ShowMemAlloc || !a.Prefs.ShowFootprint {
		t.Errorf("prefs = %+v", a.Prefs)
	}
	if err := run(t, a, "cmd fps --show --hide"); err == nil {
		t.Error("conflicting flags accepted")
	}
	if err := run(t, a, "cmd save"); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, err := config.Load(a.configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !saved.ShowFPS || !saved.ShowFootprint {
		t.Errorf("saved prefs = %+v", saved)
	}
	if err := run(t, a, "cmd status"); err != nil {
		t.Errorf("status: %v", err)
	}
}

func TestBindInstallsLayerHooks(t *testing.T) {
	clock := host.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	redraws := map[string]int{}
	var painted []string
	a, err := New(Options{
		Prefs:  config.Default(),
		Clock:  clock,
		Width:  1280,
		Height: 800,
		Bind: func(l *Layer) {
			name := l.Name
			l.Canvas.OnRedraw = func() { redraws[name]++ }
			l.Canvas.Paint = func(vmath.Rect, float32) { painted = append(painted, name) }
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	clock.Advance(16 * time.Millisecond)
	a.Pump()
	if redraws["sphere"] != 1 || redraws["glyphs"] != 1 {
		t.Errorf("redraws = %v, want one per layer", redraws)
	}
	for _, n := range a.Doc.Query(ui.TypeCanvas) {
		n.Paint(vmath.Rect{}, 1)
	}
	if len(painted) != 2 {
		t.Errorf("painted = %v, want both layers", painted)
	}
}
