// Package host models the single-threaded environment the page runs in: a per-frame
// callback queue, interval and timeout timers, and scroll/resize notifications.
// Everything runs on the goroutine that calls Pump.
package host

import (
	"sort"
	"time"
)

// FrameID identifies a pending frame callback. Zero is never issued.
type FrameID uint64

// TimerID identifies a pending interval or timeout. Zero is never issued.
type TimerID uint64

// ListenerID identifies a scroll or resize listener. Zero is never issued.
type ListenerID uint64

type frameReq struct {
	id FrameID
	fn func(now time.Time)
}

type timer struct {
	id       TimerID
	fn       func()
	due      time.Time
	interval time.Duration // zero for timeouts
}

type listenerKind int

const (
	scrollListener listenerKind = iota
	resizeListener
)

type listener struct {
	id   ListenerID
	kind listenerKind
	fn   func(w *Window)
}

// Loop is the cooperative event loop. It is not safe for concurrent use; the window
// goroutine owns it.
type Loop struct {
	clock  Clock
	Window Window

	nextID    uint64
	frames    []frameReq
	timers    map[TimerID]*timer
	listeners []listener
	frameNo   uint64
}

// NewLoop returns a loop for a viewport of the given size.
func NewLoop(clock Clock, width, height float32) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{
		clock:  clock,
		Window: Window{Width: width, Height: height},
		timers: make(map[TimerID]*timer),
	}
}

func (l *Loop) id() uint64 {
	l.nextID++
	return l.nextID
}

// Now returns the loop clock's time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Frame returns the number of pumps run so far.
func (l *Loop) Frame() uint64 {
	return l.frameNo
}

// RequestFrame schedules fn to run once on the next Pump.
func (l *Loop) RequestFrame(fn func(now time.Time)) FrameID {
	id := FrameID(l.id())
	l.frames = append(l.frames, frameReq{id: id, fn: fn})
	return id
}

// CancelFrame drops a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// SetInterval runs fn every d, starting d from now.
func (l *Loop) SetInterval(fn func(), d time.Duration) TimerID {
	if d <= 0 {
		d = time.Millisecond
	}
	id := TimerID(l.id())
	l.timers[id] = &timer{id: id, fn: fn, due: l.clock.Now().Add(d), interval: d}
	return id
}

// SetTimeout runs fn once after d.
func (l *Loop) SetTimeout(fn func(), d time.Duration) TimerID {
	id := TimerID(l.id())
	l.timers[id] = &timer{id: id, fn: fn, due: l.clock.Now().Add(d)}
	return id
}

// ClearTimer cancels an interval or timeout. Unknown ids are ignored.
func (l *Loop) ClearTimer(id TimerID) {
	delete(l.timers, id)
}

// OnScroll registers fn for scroll offset changes.
func (l *Loop) OnScroll(fn func(w *Window)) ListenerID {
	return l.listen(scrollListener, fn)
}

// OnResize registers fn for viewport size changes.
func (l *Loop) OnResize(fn func(w *Window)) ListenerID {
	return l.listen(resizeListener, fn)
}

func (l *Loop) listen(kind listenerKind, fn func(w *Window)) ListenerID {
	id := ListenerID(l.id())
	l.listeners = append(l.listeners, listener{id: id, kind: kind, fn: fn})
	return id
}

// RemoveListener unregisters a scroll or resize listener.
func (l *Loop) RemoveListener(id ListenerID) {
	for i, ln := range l.listeners {
		if ln.id == id {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

func (l *Loop) dispatch(kind listenerKind) {
	// Copy so listeners may unregister themselves while being notified.
	snapshot := make([]listener, len(l.listeners))
	copy(snapshot, l.listeners)
	for _, ln := range snapshot {
		if ln.kind == kind {
			ln.fn(&l.Window)
		}
	}
}

// ScrollTo sets the scroll offset (clamped to the document) and notifies scroll
// listeners when it changed.
func (l *Loop) ScrollTo(y float32) {
	y = l.Window.clampScroll(y)
	if y == l.Window.ScrollY {
		return
	}
	l.Window.ScrollY = y
	l.dispatch(scrollListener)
}

// ScrollBy scrolls relative to the current offset.
func (l *Loop) ScrollBy(dy float32) {
	l.ScrollTo(l.Window.ScrollY + dy)
}

// Resize updates the viewport and notifies resize listeners. The scroll offset is
// re-clamped against the new size.
func (l *Loop) Resize(width, height float32) {
	if width == l.Window.Width && height == l.Window.Height {
		return
	}
	l.Window.Width = width
	l.Window.Height = height
	l.dispatch(resizeListener)
	if y := l.Window.clampScroll(l.Window.ScrollY); y != l.Window.ScrollY {
		l.Window.ScrollY = y
		l.dispatch(scrollListener)
	}
}

// Pump runs one turn of the loop: due timers in due order, then the frame callbacks that
// were pending when the pump began. Callbacks requested during this pump wait for the
// next one, so frame ticks never overlap.
func (l *Loop) Pump() {
	l.frameNo++
	now := l.clock.Now()
	l.runTimers(now)

	pending := l.frames
	l.frames = nil
	for _, f := range pending {
		f.fn(now)
	}
}

func (l *Loop) runTimers(now time.Time) {
	due := make([]*timer, 0, len(l.timers))
	for _, t := range l.timers {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		// An earlier callback may have cleared this one.
		if _, ok := l.timers[t.id]; !ok {
			continue
		}
		if t.interval > 0 {
			// Fire once per pump; a late interval does not burst to catch up.
			t.due = now.Add(t.interval)
		} else {
			delete(l.timers, t.id)
		}
		t.fn()
	}
}

// Pending reports the number of scheduled frame callbacks, timers and listeners.
func (l *Loop) Pending() (frames, timers, listeners int) {
	return len(l.frames), len(l.timers), len(l.listeners)
}
