package anim

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Policy selects how the object's footprint is compared with a card.
type Policy int

const (
	// PolicyBox: colliding iff |dx| < halfWidth+r and |dy| < halfHeight+r.
	PolicyBox Policy = iota
	// PolicyRadial: colliding iff center distance < max(width, height)/2 + r.
	PolicyRadial
)

func (p Policy) String() string {
	if p == PolicyRadial {
		return "radial"
	}
	return "box"
}

// ParsePolicy accepts "box" or "radial".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box", "aabb", "":
		return PolicyBox, nil
	case "radial", "circle":
		return PolicyRadial, nil
	}
	return PolicyBox, fmt.Errorf("unknown overlap policy %q (use box or radial)", s)
}

// Config parametrizes one controller instance.
type Config struct {
	Color    color.RGBA
	HitColor color.RGBA
	Opacity  float32
	ZOrder   int
	Policy   Policy

	// CollisionMarkers select cards for overlap detection; none disables detection.
	CollisionMarkers []string
	// HighlightMarkers select elements for viewport highlighting; none disables it.
	HighlightMarkers []string

	// ObjectRadius is the object's footprint in pixels; zero derives it from the projected
	// sphere radius.
	ObjectRadius   float32
	DetectInterval time.Duration
	RippleDuration time.Duration

	Threshold    float32
	BottomMargin float32 // fraction of the viewport height removed from the bottom
}

// DefaultConfig returns the wireframe-sphere settings.
func DefaultConfig() Config {
	return Config{
		Color:            color.RGBA{0x0e, 0x75, 0x8f, 0xff},
		HitColor:         color.RGBA{0x60, 0xa5, 0xfa, 0xff},
		Opacity:          0.55,
		ZOrder:           0,
		Policy:           PolicyBox,
		CollisionMarkers: []string{".glass-effect"},
		HighlightMarkers: []string{"[data-highlight]", ".highlight-on-scroll"},
		DetectInterval:   16 * time.Millisecond,
		RippleDuration:   800 * time.Millisecond,
		Threshold:        0.15,
		BottomMargin:     0.10,
	}
}

// Tint returns the object color for the current hit state.
func (c Config) Tint(hit bool) color.RGBA {
	if hit {
		return c.HitColor
	}
	return c.Color
}

// CollisionSelector joins the collision markers into one selector list.
func (c Config) CollisionSelector() string {
	return strings.Join(c.CollisionMarkers, ", ")
}

// HighlightSelector joins the highlight markers into one selector list.
func (c Config) HighlightSelector() string {
	return strings.Join(c.HighlightMarkers, ", ")
}
