package anim

import (
	"github.com/jinzhu/copier"

	"nexus-landing/internal/host"
	"nexus-landing/internal/logger"
	"nexus-landing/internal/vmath"
)

// Deps are the collaborators a controller is mounted with.
type Deps struct {
	Page     Page
	Surface  Surface
	Feedback Feedback
	Stage    *Stage
	Log      *logger.Logger
}

// Controller owns one mounted animation: its render loop, detection timer, resize
// listener and highlighter. All state lives here; nothing is shared between instances.
type Controller struct {
	loop *host.Loop
	deps Deps
	cfg  Config

	mounted     bool
	driver      *Driver
	detector    *Detector
	highlighter *Highlighter
	detectID    host.TimerID
	resizeID    host.ListenerID
	checks      uint64
}

// Mount attaches the surface and starts every loop. If the surface cannot attach the
// returned controller is inert: nothing is scheduled and Unmount is a no-op.
func Mount(loop *host.Loop, deps Deps, cfg Config) *Controller {
	c := &Controller{loop: loop, deps: deps}
	if err := copier.CopyWithOption(&c.cfg, &cfg, copier.Option{DeepCopy: true}); err != nil {
		deps.Log.Logf("anim: config copy failed, markers shared with caller: %v", err)
		c.cfg = cfg
	}
	if loop == nil || deps.Surface == nil || deps.Stage == nil {
		deps.Log.Log("anim: mount skipped: missing loop, surface or stage")
		return c
	}
	if !deps.Surface.Attach(c.cfg.ZOrder, c.cfg.Opacity) {
		deps.Log.Log("anim: mount skipped: no container")
		return c
	}
	c.mounted = true
	w := &loop.Window
	deps.Surface.Resize(w.Width, w.Height)

	c.driver = NewDriver(loop, deps.Stage, c.redraw)
	c.resizeID = loop.OnResize(c.onResize)

	if deps.Page != nil && deps.Feedback != nil {
		if len(c.cfg.CollisionMarkers) > 0 && deps.Stage.Subject != nil {
			c.detector = NewDetector(c.cfg.Policy, deps.Feedback)
			c.detectID = loop.SetInterval(c.detect, c.cfg.DetectInterval)
		}
		if len(c.cfg.HighlightMarkers) > 0 {
			c.highlighter = NewHighlighter(loop, c.cfg.Threshold, c.cfg.BottomMargin, deps.Feedback)
		}
		c.scan()
	}
	c.driver.Start()
	deps.Log.Logf("anim: mounted policy=%s cards=%d highlights=%d", c.cfg.Policy, c.Cards(), c.Highlights())
	return c
}

// Unmount stops all loops and listeners, releases every tracked element and detaches
// the surface. Calling it twice is harmless.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.driver.Stop()
	if c.detectID != 0 {
		c.loop.ClearTimer(c.detectID)
		c.detectID = 0
	}
	c.loop.RemoveListener(c.resizeID)

	released := make(map[Element]bool)
	if c.detector != nil {
		for _, el := range c.detector.Elements() {
			released[el] = true
			c.deps.Feedback.ReleaseCollision(el)
		}
		c.detector.Reset()
	}
	if c.highlighter != nil {
		for _, el := range c.highlighter.Elements() {
			released[el] = true
			c.deps.Feedback.ReleaseHighlight(el)
		}
		c.highlighter.Stop()
	}
	c.deps.Stage.Hit = false
	c.deps.Surface.Detach()
	c.deps.Log.Logf("anim: unmounted after %d ticks, released %d elements", c.driver.Ticks(), len(released))
}

// Rescan re-queries the page for marked elements after content changes.
func (c *Controller) Rescan() {
	if !c.mounted || c.deps.Page == nil || c.deps.Feedback == nil {
		return
	}
	c.scan()
	c.deps.Log.Logf("anim: rescan cards=%d highlights=%d", c.Cards(), c.Highlights())
}

func (c *Controller) scan() {
	if c.detector != nil {
		c.detector.Track(c.deps.Page.Find(c.cfg.CollisionSelector()))
	}
	if c.highlighter != nil {
		c.highlighter.Track(c.deps.Page.Find(c.cfg.HighlightSelector()))
	}
}

// SetPolicy switches the overlap policy of a running controller.
func (c *Controller) SetPolicy(p Policy) {
	c.cfg.Policy = p
	if c.detector != nil {
		c.detector.SetPolicy(p)
	}
}

// Mounted reports whether the controller is live.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Config returns the controller's own copy of its configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Progress returns the scroll progress of the latest tick.
func (c *Controller) Progress() float32 {
	if c.driver == nil {
		return 0
	}
	return c.driver.Progress()
}

// Ticks returns the number of render ticks run.
func (c *Controller) Ticks() uint64 {
	if c.driver == nil {
		return 0
	}
	return c.driver.Ticks()
}

// Checks returns the number of detection passes run.
func (c *Controller) Checks() uint64 {
	return c.checks
}

// Cards returns the number of elements tracked for overlap.
func (c *Controller) Cards() int {
	if c.detector == nil {
		return 0
	}
	return len(c.detector.Elements())
}

// Highlights returns the number of elements tracked for visibility.
func (c *Controller) Highlights() int {
	if c.highlighter == nil {
		return 0
	}
	return len(c.highlighter.Elements())
}

// Colliding returns the number of cards the object currently overlaps.
func (c *Controller) Colliding() int {
	if c.detector == nil {
		return 0
	}
	return c.detector.Active()
}

// Footprint returns the object's screen center and radius in pixels. ok is false when
// there is no subject or it is not in front of the camera.
func (c *Controller) Footprint() (center vmath.Vec2, radius float32, ok bool) {
	s := c.deps.Stage
	if c.loop == nil || s == nil || s.Subject == nil {
		return vmath.Vec2{}, 0, false
	}
	vp := vmath.Vec2{X: c.loop.Window.Width, Y: c.loop.Window.Height}
	center, ok = s.Camera.Project(s.Subject.Position, vp)
	if !ok {
		return vmath.Vec2{}, 0, false
	}
	if c.cfg.ObjectRadius > 0 {
		return center, c.cfg.ObjectRadius, true
	}
	// Project a point one radius along the camera's up axis.
	edge := s.Subject.Position.Add(s.Camera.Up.Normalize().Scale(s.Subject.Radius))
	rim, rimOK := s.Camera.Project(edge, vp)
	if !rimOK {
		return center, 0, true
	}
	return center, rim.Sub(center).Len(), true
}

func (c *Controller) detect() {
	if !c.mounted || c.detector == nil {
		return
	}
	center, r, ok := c.Footprint()
	c.detector.Check(center, r, ok)
	c.deps.Stage.Hit = c.detector.Colliding()
	c.checks++
}

func (c *Controller) redraw() {
	c.deps.Surface.Redraw()
}

func (c *Controller) onResize(w *host.Window) {
	c.deps.Surface.Resize(w.Width, w.Height)
}
