// Package app assembles the landing page: document, host loop, the two background
// controllers and the dev console commands. It has no window dependency; cmd/landing
// feeds it input and draws what it holds.
package app

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/commands"
	"nexus-landing/internal/config"
	"nexus-landing/internal/content"
	"nexus-landing/internal/host"
	"nexus-landing/internal/logger"
	"nexus-landing/internal/motion"
	"nexus-landing/internal/ui"
	"nexus-landing/internal/vmath"
)

// GlyphMountID is the container the hero glyph layer mounts under.
const GlyphMountID = "glyph-scene"

// Camera placement for the two layers.
const (
	sphereFov    = 45
	sphereCamZ   = 6
	sphereRadius = 1
	glyphFov     = 70
	glyphCamZ    = 40
	// glyphZ puts the glyphs behind the hero copy; the sphere is kept below them.
	glyphZ = -1
)

// Options configures New.
type Options struct {
	Prefs      config.Prefs
	ConfigPath string
	Page       *content.Page
	Log        *logger.Logger
	Clock      host.Clock
	Width      float32
	Height     float32
	Seed       int64
	// Bind, when set, is called for each layer before its first mount so a renderer can
	// install the canvas hooks.
	Bind func(*Layer)
}

// Layer is one mounted background animation.
type Layer struct {
	Name       string
	Canvas     *ui.Canvas
	Stage      *anim.Stage
	Controller *anim.Controller
	config     anim.Config
	page       anim.Page
	feedback   anim.Feedback
}

// App is the assembled landing page.
type App struct {
	Log      *logger.Logger
	Loop     *host.Loop
	Doc      *ui.Document
	Feedback *ui.Feedback
	Commands *commands.Registry
	Prefs    config.Prefs

	Sphere  *Layer
	Glyphs  *Layer
	Orbiter *motion.Orbiter

	hero       *ui.Node
	configPath string
	lastPump   time.Time
}

// New builds the page and mounts both layers.
func New(opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = logger.New("")
	}
	if opts.Clock == nil {
		opts.Clock = host.SystemClock{}
	}
	if opts.Page == nil {
		opts.Page = content.Default()
	}
	cfg, err := opts.Prefs.Controller()
	if err != nil {
		return nil, fmt.Errorf("controller config: %w", err)
	}
	sheet, err := ui.ParseCSS(content.Stylesheet())
	if err != nil {
		return nil, fmt.Errorf("stylesheet: %w", err)
	}

	a := &App{
		Log:        opts.Log,
		Doc:        ui.NewDocument(sheet),
		Prefs:      opts.Prefs,
		configPath: opts.ConfigPath,
	}
	built := content.Build(a.Doc, opts.Page)
	a.hero = built.Hero
	glyphMount := ui.NewNode("div", GlyphMountID, "")
	glyphMount.Fixed = true
	glyphMount.Interactive = false
	a.Doc.Append(a.hero, glyphMount)

	a.Loop = host.NewLoop(opts.Clock, opts.Width, opts.Height)
	a.Loop.Window.ContentHeight = a.Doc.Height
	a.Doc.Layout(opts.Width, opts.Height)
	a.lastPump = opts.Clock.Now()

	// Page listeners go first so controllers observe the updated layout.
	a.Loop.OnScroll(a.onScroll)
	a.Loop.OnResize(a.onResize)

	a.Feedback = ui.NewFeedback(a.Doc, a.Loop, cfg.RippleDuration)

	if cfg.ZOrder >= glyphZ {
		a.Log.Logf("app: z_order %d would cover the glyphs, using %d", cfg.ZOrder, glyphZ-1)
		cfg.ZOrder = glyphZ - 1
	}
	a.Orbiter = motion.NewOrbiter(sphereRadius)
	a.Sphere = &Layer{
		Name:   "sphere",
		Canvas: ui.NewCanvas(a.Doc, content.SceneID),
		Stage: &anim.Stage{
			Camera:  vmath.NewCamera(vmath.V3(0, 0, sphereCamZ), sphereFov),
			Bodies:  []motion.Animated{a.Orbiter},
			Subject: a.Orbiter,
		},
		config:   cfg,
		page:     a.Doc,
		feedback: a.Feedback,
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	glyphCfg := cfg
	glyphCfg.CollisionMarkers = nil
	glyphCfg.HighlightMarkers = nil
	glyphCfg.Opacity = 1
	glyphCfg.ZOrder = glyphZ
	glyphStage := &anim.Stage{
		Camera: vmath.NewCamera(vmath.V3(0, 0, glyphCamZ), glyphFov),
		Rig:    motion.ScrollRig,
	}
	for i := 0; i < opts.Prefs.Glyphs; i++ {
		glyphStage.Bodies = append(glyphStage.Bodies, motion.RandomGlyph(rng))
	}
	a.Glyphs = &Layer{
		Name:   "glyphs",
		Canvas: ui.NewCanvas(a.Doc, GlyphMountID),
		Stage:  glyphStage,
		config: glyphCfg,
	}

	a.Commands = commands.NewRegistry()
	a.registerCommands()

	if opts.Bind != nil {
		opts.Bind(a.Sphere)
		opts.Bind(a.Glyphs)
	}
	a.mount(a.Sphere)
	a.mount(a.Glyphs)
	return a, nil
}

func (a *App) mount(l *Layer) {
	l.Controller = anim.Mount(a.Loop, anim.Deps{
		Page:     l.page,
		Surface:  l.Canvas,
		Feedback: l.feedback,
		Stage:    l.Stage,
		Log:      a.Log,
	}, l.config)
	if !l.Controller.Mounted() {
		a.Log.Logf("app: %s layer not mounted", l.Name)
	}
}

// Remount tears both layers down and mounts them again from their configs.
func (a *App) Remount() {
	for _, l := range []*Layer{a.Sphere, a.Glyphs} {
		l.Controller.Unmount()
		a.mount(l)
	}
}

// Close unmounts both layers.
func (a *App) Close() {
	a.Sphere.Controller.Unmount()
	a.Glyphs.Controller.Unmount()
}

// Pump runs one loop turn and eases style transitions by the elapsed time.
func (a *App) Pump() {
	now := a.Loop.Now()
	dt := now.Sub(a.lastPump)
	a.lastPump = now
	a.Loop.Pump()
	a.Doc.Animate(dt)
}

// Hero returns the hero section node.
func (a *App) Hero() *ui.Node {
	return a.hero
}

// SetOverlap switches the sphere's overlap policy, including for later remounts.
func (a *App) SetOverlap(p anim.Policy) {
	a.Sphere.config.Policy = p
	a.Sphere.Controller.SetPolicy(p)
	a.Prefs.Overlap = p.String()
}

// ScrollToProgress scrolls so that the scroll progress equals p in [0, 1].
func (a *App) ScrollToProgress(p float32) {
	a.Loop.ScrollTo(motion.Clamp01(p) * a.Loop.Window.MaxScroll())
}

// SphereColor returns the sphere tint for its current hit state.
func (a *App) SphereColor() color.RGBA {
	return a.Sphere.config.Tint(a.Sphere.Stage.Hit)
}

func (a *App) onScroll(w *host.Window) {
	a.Doc.SetScroll(w.ScrollY)
	content.FadeHero(a.hero, w.ScrollY)
}

func (a *App) onResize(w *host.Window) {
	a.Doc.Layout(w.Width, w.Height)
	content.FadeHero(a.hero, w.ScrollY)
}
