// Package anim runs the scroll-driven background animation: a per-frame render loop,
// a fixed-cadence overlap detector against page cards, and a viewport highlighter.
// The page itself is reached only through the interfaces in this file.
package anim

import (
	"nexus-landing/internal/motion"
	"nexus-landing/internal/vmath"
)

// Element is a page element the controller reads positions from. ok is false once the
// element is no longer in the page.
type Element interface {
	ClientRect() (vmath.Rect, bool)
}

// Page looks up elements by marker (a class or attribute selector such as
// ".glass-effect" or "[data-highlight]").
type Page interface {
	Find(marker string) []Element
}

// Surface is the drawing layer the controller mounts into the page.
type Surface interface {
	// Attach creates the full-viewport, non-interactive layer. It returns false when the
	// mount point is missing, in which case the controller stays inert.
	Attach(zIndex int, opacity float32) bool
	Resize(width, height float32)
	Redraw()
	Detach()
}

// Feedback receives edge-triggered state transitions. The page decides how to show them.
type Feedback interface {
	// CollisionStarted fires on a false→true transition; contact is the object's screen
	// position relative to the element's top-left corner.
	CollisionStarted(el Element, contact vmath.Vec2)
	CollisionEnded(el Element)
	// VisibilityTracked fires once per element when highlighting starts.
	VisibilityTracked(el Element)
	VisibilityChanged(el Element, visible bool)
	// ReleaseCollision clears the collision state and ripples of el. It is called when
	// el stops being a card and for every card at unmount.
	ReleaseCollision(el Element)
	// ReleaseHighlight clears the visibility classes of el. It is called when el stops
	// being highlighted and for every highlighted element at unmount.
	ReleaseHighlight(el Element)
}

// Stage is the 3D content the controller animates.
type Stage struct {
	Camera vmath.Camera
	Bodies []motion.Animated
	// Subject is the body tested for overlap with cards; nil disables detection.
	Subject *motion.Orbiter
	// Rig, when set, moves the camera from the scroll offset each tick.
	Rig func(cam *vmath.Camera, scrollY float32)
	// Hit is true while the subject overlaps any card.
	Hit bool
}
