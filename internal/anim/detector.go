package anim

import (
	"github.com/chewxy/math32"

	"nexus-landing/internal/vmath"
)

// Overlaps reports whether a circular footprint of radius r at center overlaps rect
// under policy.
func Overlaps(policy Policy, rect vmath.Rect, center vmath.Vec2, r float32) bool {
	c := rect.Center()
	dx := math32.Abs(center.X - c.X)
	dy := math32.Abs(center.Y - c.Y)
	if policy == PolicyRadial {
		reach := max(rect.Width, rect.Height)/2 + r
		return math32.Sqrt(dx*dx+dy*dy) < reach
	}
	return dx < rect.Width/2+r && dy < rect.Height/2+r
}

// Detector keeps a binary collision state per tracked element and reports transitions.
type Detector struct {
	policy   Policy
	feedback Feedback
	elements []Element
	states   map[Element]bool
}

// NewDetector returns a detector with no tracked elements.
func NewDetector(policy Policy, feedback Feedback) *Detector {
	return &Detector{policy: policy, feedback: feedback, states: make(map[Element]bool)}
}

// SetPolicy switches the overlap test; current states are kept and re-evaluated on the
// next Check.
func (d *Detector) SetPolicy(p Policy) {
	d.policy = p
}

// Track replaces the tracked set. Elements that drop out lose their collision state;
// their highlight, if any, is left alone.
func (d *Detector) Track(els []Element) {
	keep := make(map[Element]bool, len(els))
	for _, el := range els {
		keep[el] = true
	}
	for _, el := range d.elements {
		if !keep[el] {
			d.feedback.ReleaseCollision(el)
			delete(d.states, el)
		}
	}
	d.elements = append(d.elements[:0:0], els...)
	for _, el := range d.elements {
		if _, ok := d.states[el]; !ok {
			d.states[el] = false
		}
	}
}

// Elements returns the tracked set.
func (d *Detector) Elements() []Element {
	return d.elements
}

// Check tests the footprint against every element. visible is false when the object
// could not be placed on screen, which counts as no overlap. Detached elements also
// count as no overlap.
func (d *Detector) Check(center vmath.Vec2, r float32, visible bool) {
	for _, el := range d.elements {
		rect, attached := el.ClientRect()
		hit := visible && attached && Overlaps(d.policy, rect, center, r)
		was := d.states[el]
		switch {
		case hit && !was:
			d.states[el] = true
			d.feedback.CollisionStarted(el, vmath.Vec2{X: center.X - rect.X, Y: center.Y - rect.Y})
		case !hit && was:
			d.states[el] = false
			d.feedback.CollisionEnded(el)
		}
	}
}

// Colliding reports whether any element currently overlaps.
func (d *Detector) Colliding() bool {
	return d.Active() > 0
}

// Active returns the number of overlapping elements.
func (d *Detector) Active() int {
	n := 0
	for _, hit := range d.states {
		if hit {
			n++
		}
	}
	return n
}

// Reset discards all state without notifying feedback.
func (d *Detector) Reset() {
	d.elements = nil
	d.states = make(map[Element]bool)
}
