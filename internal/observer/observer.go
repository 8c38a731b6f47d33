// Package observer reports when elements enter or leave a margin-adjusted viewport.
// Checks run only in response to scroll, resize and explicit Recheck calls.
package observer

import (
	"nexus-landing/internal/host"
	"nexus-landing/internal/vmath"
)

// Target is anything with a live viewport-space rectangle. ok is false once the target
// has left the page.
type Target interface {
	ClientRect() (vmath.Rect, bool)
}

// Entry describes one target's intersection with the root at delivery time.
type Entry struct {
	Target  Target
	Ratio   float32 // visible area / target area, in [0, 1]
	Visible bool    // Ratio >= Options.Threshold and Ratio > 0
}

// Margin insets the viewport; fractions of the viewport size, negative values shrink it.
type Margin struct {
	Top, Right, Bottom, Left float32
}

// Options configures an observer.
type Options struct {
	Threshold  float32
	RootMargin Margin
}

type record struct {
	target  Target
	visible bool
}

// IntersectionObserver tracks a set of targets against the host viewport. Delivery is
// edge-triggered: after the initial entry for each target, the callback only sees
// targets whose Visible flag changed.
type IntersectionObserver struct {
	loop     *host.Loop
	opts     Options
	callback func([]Entry)
	records  []*record
	scrollID host.ListenerID
	resizeID host.ListenerID
	active   bool
}

// New registers an observer on loop's scroll and resize notifications.
func New(loop *host.Loop, opts Options, callback func([]Entry)) *IntersectionObserver {
	o := &IntersectionObserver{loop: loop, opts: opts, callback: callback, active: true}
	o.scrollID = loop.OnScroll(func(*host.Window) { o.Recheck() })
	o.resizeID = loop.OnResize(func(*host.Window) { o.Recheck() })
	return o
}

// Observe starts tracking t and immediately delivers its initial entry.
func (o *IntersectionObserver) Observe(t Target) {
	if !o.active {
		return
	}
	for _, r := range o.records {
		if r.target == t {
			return
		}
	}
	e := o.entry(t)
	o.records = append(o.records, &record{target: t, visible: e.Visible})
	o.callback([]Entry{e})
}

// Unobserve stops tracking t.
func (o *IntersectionObserver) Unobserve(t Target) {
	for i, r := range o.records {
		if r.target == t {
			o.records = append(o.records[:i], o.records[i+1:]...)
			return
		}
	}
}

// Recheck evaluates every target and delivers entries for those whose state changed.
// Call it after layout changes that move elements without scrolling.
func (o *IntersectionObserver) Recheck() {
	if !o.active {
		return
	}
	var changed []Entry
	for _, r := range o.records {
		e := o.entry(r.target)
		if e.Visible != r.visible {
			r.visible = e.Visible
			changed = append(changed, e)
		}
	}
	if len(changed) > 0 {
		o.callback(changed)
	}
}

// Disconnect stops all observation and removes the loop listeners.
func (o *IntersectionObserver) Disconnect() {
	if !o.active {
		return
	}
	o.active = false
	o.loop.RemoveListener(o.scrollID)
	o.loop.RemoveListener(o.resizeID)
	o.records = nil
}

// Root returns the margin-adjusted viewport rectangle.
func (o *IntersectionObserver) Root() vmath.Rect {
	w, h := o.loop.Window.Width, o.loop.Window.Height
	m := o.opts.RootMargin
	top := -m.Top * h
	left := -m.Left * w
	return vmath.Rect{
		X:      left,
		Y:      top,
		Width:  w + m.Left*w + m.Right*w,
		Height: h + m.Top*h + m.Bottom*h,
	}
}

func (o *IntersectionObserver) entry(t Target) Entry {
	e := Entry{Target: t}
	rect, ok := t.ClientRect()
	if !ok {
		return e
	}
	e.Ratio = Ratio(rect, o.Root())
	e.Visible = e.Ratio > 0 && e.Ratio >= o.opts.Threshold
	return e
}

// Ratio returns the fraction of rect's area inside root. A zero-area rect counts as
// fully visible when its origin lies inside root.
func Ratio(rect, root vmath.Rect) float32 {
	area := rect.Area()
	if area == 0 {
		if root.Contains(vmath.Vec2{X: rect.X, Y: rect.Y}) {
			return 1
		}
		return 0
	}
	in, ok := rect.Intersect(root)
	if !ok {
		return 0
	}
	return in.Area() / area
}
