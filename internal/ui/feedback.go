package ui

import (
	"time"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/host"
	"nexus-landing/internal/vmath"
)

// Class names the page styles for animation feedback.
const (
	ClassCollision = "collision-active"
	ClassRipple    = "collision-ripple"
	ClassVisible   = "highlight--visible"
	ClassBase      = "highlight-base"
)

// TypeRipple is the node type of transient collision ripples.
const TypeRipple = "ripple"

// Feedback shows controller transitions as classes and ripple nodes on the page.
type Feedback struct {
	doc      *Document
	loop     *host.Loop
	duration time.Duration
	ripples  map[*Node]host.TimerID
}

// NewFeedback returns page feedback whose ripples live for duration.
func NewFeedback(doc *Document, loop *host.Loop, duration time.Duration) *Feedback {
	return &Feedback{doc: doc, loop: loop, duration: duration, ripples: make(map[*Node]host.TimerID)}
}

var _ anim.Feedback = (*Feedback)(nil)

func asNode(el anim.Element) *Node {
	n, _ := el.(*Node)
	return n
}

// CollisionStarted marks the card and spawns a ripple at the contact point.
func (f *Feedback) CollisionStarted(el anim.Element, contact vmath.Vec2) {
	n := asNode(el)
	if n == nil || !n.Attached() {
		return
	}
	n.AddClass(ClassCollision)

	r := NewNode(TypeRipple, "", "", ClassRipple)
	r.Interactive = false
	r.Born = f.loop.Now()
	r.Bounds = vmath.Rect{X: n.Bounds.X + contact.X, Y: n.Bounds.Y + contact.Y}
	f.doc.Append(n, r)
	f.ripples[r] = f.loop.SetTimeout(func() { f.drop(r) }, f.duration)
}

// CollisionEnded unmarks the card. Running ripples finish on their own.
func (f *Feedback) CollisionEnded(el anim.Element) {
	if n := asNode(el); n != nil {
		n.RemoveClass(ClassCollision)
	}
}

// VisibilityTracked applies the hidden base state.
func (f *Feedback) VisibilityTracked(el anim.Element) {
	if n := asNode(el); n != nil {
		n.AddClass(ClassBase)
	}
}

// VisibilityChanged toggles the visible class.
func (f *Feedback) VisibilityChanged(el anim.Element, visible bool) {
	n := asNode(el)
	if n == nil {
		return
	}
	if visible {
		n.AddClass(ClassVisible)
	} else {
		n.RemoveClass(ClassVisible)
	}
}

// ReleaseCollision removes the collision class and any ripples from el.
func (f *Feedback) ReleaseCollision(el anim.Element) {
	n := asNode(el)
	if n == nil {
		return
	}
	n.RemoveClass(ClassCollision)
	for _, c := range append([]*Node(nil), n.Children...) {
		if c.HasClass(ClassRipple) {
			if id, ok := f.ripples[c]; ok {
				f.loop.ClearTimer(id)
			}
			f.drop(c)
		}
	}
}

// ReleaseHighlight strips the visibility classes from el.
func (f *Feedback) ReleaseHighlight(el anim.Element) {
	if n := asNode(el); n != nil {
		n.RemoveClass(ClassVisible)
		n.RemoveClass(ClassBase)
	}
}

// Ripples returns the number of live ripple nodes.
func (f *Feedback) Ripples() int {
	return len(f.ripples)
}

// RippleAge returns how far r is through its animation, in [0, 1].
func (f *Feedback) RippleAge(r *Node) float32 {
	if f.duration <= 0 {
		return 1
	}
	age := float32(f.loop.Now().Sub(r.Born)) / float32(f.duration)
	return max(0, min(1, age))
}

func (f *Feedback) drop(r *Node) {
	delete(f.ripples, r)
	f.doc.Remove(r)
}
