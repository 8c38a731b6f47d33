package anim

import (
	"time"

	"nexus-landing/internal/host"
	"nexus-landing/internal/motion"
)

// Driver is the render loop. Each tick samples scroll progress, advances every body and
// requests a redraw, then schedules the next tick.
type Driver struct {
	loop     *host.Loop
	stage    *Stage
	redraw   func()
	frame    host.FrameID
	running  bool
	ticks    uint64
	progress float32
}

// NewDriver returns a stopped driver for stage.
func NewDriver(loop *host.Loop, stage *Stage, redraw func()) *Driver {
	return &Driver{loop: loop, stage: stage, redraw: redraw}
}

// Start schedules the first tick. Starting a running driver does nothing.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.frame = d.loop.RequestFrame(d.tick)
}

// Stop cancels the pending tick; no tick runs after Stop returns.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.loop.CancelFrame(d.frame)
	d.frame = 0
}

// Running reports whether ticks are scheduled.
func (d *Driver) Running() bool {
	return d.running
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Progress returns the scroll progress sampled by the latest tick.
func (d *Driver) Progress() float32 {
	return d.progress
}

func (d *Driver) tick(time.Time) {
	if !d.running {
		return
	}
	w := &d.loop.Window
	d.progress = motion.Progress(w.ScrollY, w.DocumentHeight(), w.Height)
	if d.stage.Rig != nil {
		d.stage.Rig(&d.stage.Camera, w.ScrollY)
	}
	for _, b := range d.stage.Bodies {
		b.Advance(d.progress)
	}
	if d.redraw != nil {
		d.redraw()
	}
	d.ticks++
	// The redraw may have stopped the driver.
	if d.running {
		d.frame = d.loop.RequestFrame(d.tick)
	}
}
