package motion

import (
	"math/rand"

	"nexus-landing/internal/vmath"
)

// GlyphKind selects the floating icon's shape.
type GlyphKind int

const (
	GlyphWifi GlyphKind = iota
	GlyphMsg
)

func (k GlyphKind) String() string {
	if k == GlyphMsg {
		return "msg"
	}
	return "wifi"
}

const (
	// FallStep is the base descent per tick, scaled by each glyph's speed.
	FallStep = 0.09
	minSpeed = 0.22
	maxSpeed = 0.40
)

// Glyph is a floating icon that falls from YStart to YEnd and loops back to YStart.
type Glyph struct {
	Kind     GlyphKind
	Position vmath.Vec3
	YStart   float32
	YEnd     float32
	Speed    float32
}

// NewGlyph returns a glyph at (x, yStart, z). Speed is clamped to [0.22, 0.40].
func NewGlyph(kind GlyphKind, x, z, yStart, yEnd, speed float32) *Glyph {
	speed = max(minSpeed, min(maxSpeed, speed))
	return &Glyph{
		Kind:     kind,
		Position: vmath.Vec3{X: x, Y: yStart, Z: z},
		YStart:   yStart,
		YEnd:     yEnd,
		Speed:    speed,
	}
}

// RandomGlyph places a glyph the way the hero scene scatters them: x in [-80, 80],
// z in [-20, 20], start in [35, 45], end in [-45, -35], speed in [0.22, 0.40].
func RandomGlyph(rng *rand.Rand) *Glyph {
	kind := GlyphWifi
	if rng.Float32() >= 0.5 {
		kind = GlyphMsg
	}
	x := (rng.Float32() - 0.5) * 160
	z := (rng.Float32() - 0.5) * 40
	yStart := 35 + rng.Float32()*10
	yEnd := -35 - rng.Float32()*10
	speed := minSpeed + rng.Float32()*(maxSpeed-minSpeed)
	return NewGlyph(kind, x, z, yStart, yEnd, speed)
}

// Advance descends one tick; progress does not affect glyphs.
func (g *Glyph) Advance(float32) {
	g.Position.Y -= FallStep * g.Speed
	if g.Position.Y < g.YEnd {
		g.Position.Y = g.YStart
	}
}

// Restart puts the glyph back at its start bound.
func (g *Glyph) Restart() {
	g.Position.Y = g.YStart
}
