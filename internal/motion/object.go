package motion

import (
	"github.com/chewxy/math32"

	"nexus-landing/internal/vmath"
)

// Animated is any body advanced once per render tick.
type Animated interface {
	Advance(progress float32)
}

const (
	// OrbitSpan is the horizontal travel across the full scroll range (-5..+5).
	OrbitSpan = 10
	// OrbitWave is the vertical amplitude of the one-period sine over the scroll range.
	OrbitWave = 2
	// YawStep and PitchStep are the per-tick rotation increments in radians.
	YawStep   = 0.004
	PitchStep = 0.001
)

// Orbiter is the wireframe sphere: its position is a pure function of scroll progress
// and its rotation accumulates once per tick.
type Orbiter struct {
	Position vmath.Vec3
	Rotation vmath.Vec3 // pitch (X), yaw (Y), roll (Z)
	Radius   float32
	Ticks    uint64
}

// NewOrbiter returns a sphere of the given world radius at the scroll-start position.
func NewOrbiter(radius float32) *Orbiter {
	o := &Orbiter{Radius: radius}
	o.Position = OrbitPosition(0)
	return o
}

// OrbitPosition returns the sphere position for a scroll progress p.
func OrbitPosition(p float32) vmath.Vec3 {
	return vmath.Vec3{
		X: (p - 0.5) * OrbitSpan,
		Y: math32.Sin(p*2*math32.Pi) * OrbitWave,
	}
}

// Advance moves the sphere for progress p and spins it one tick.
func (o *Orbiter) Advance(p float32) {
	pos := OrbitPosition(p)
	o.Position.X = pos.X
	o.Position.Y = pos.Y
	o.Rotation.Y += YawStep
	o.Rotation.X += PitchStep
	o.Ticks++
}
