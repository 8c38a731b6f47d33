// Package scene renders the background stages with raylib. Each Layer draws one stage
// into an offscreen render texture when its canvas asks for a redraw, and composites
// that texture when the page paints the canvas node.
package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/motion"
	"nexus-landing/internal/primitives"
	"nexus-landing/internal/ui"
	"nexus-landing/internal/vmath"
)

const (
	sphereRings  = 32
	sphereSlices = 32
	// sphereAlpha matches the translucent wire material.
	sphereAlpha = 0.7
)

// lightDir points toward the key light for lit glyph parts.
var lightDir = [3]float32{5, 5, 5}

// Layer holds a stage, the routine that draws its bodies and the offscreen target.
type Layer struct {
	Stage *anim.Stage

	draw          func(cam rl.Camera3D)
	target        rl.RenderTexture2D
	loaded        bool
	width, height int32
	frames        uint64
}

// Sphere returns a layer drawing the stage subject as a wireframe sphere tinted by tint,
// which is read on every redraw.
func Sphere(stage *anim.Stage, tint func() color.RGBA) *Layer {
	l := &Layer{Stage: stage}
	l.draw = func(rl.Camera3D) {
		o := stage.Subject
		if o == nil {
			return
		}
		c := tint()
		c.A = uint8(float32(c.A) * sphereAlpha)
		rl.PushMatrix()
		rl.Translatef(o.Position.X, o.Position.Y, o.Position.Z)
		rl.Rotatef(o.Rotation.Y*180/math32.Pi, 0, 1, 0)
		rl.Rotatef(o.Rotation.X*180/math32.Pi, 1, 0, 0)
		rl.DrawSphereWires(rl.NewVector3(0, 0, 0), o.Radius, sphereRings, sphereSlices, c)
		rl.PopMatrix()
	}
	return l
}

// Glyphs returns a layer drawing every motion.Glyph body of the stage with reg.
func Glyphs(stage *anim.Stage, reg *primitives.Registry) *Layer {
	l := &Layer{Stage: stage}
	l.draw = func(cam rl.Camera3D) {
		reg.SetView([3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z}, lightDir)
		for _, b := range stage.Bodies {
			g, ok := b.(*motion.Glyph)
			if !ok {
				continue
			}
			reg.DrawGlyph(g.Kind.String(), [3]float32{g.Position.X, g.Position.Y, g.Position.Z}, 1, 1)
		}
	}
	return l
}

// Bind installs the layer as the canvas's painter. Call before the canvas is attached.
func (l *Layer) Bind(c *ui.Canvas) {
	c.OnRedraw = l.Redraw
	c.OnResize = l.Resize
	c.Paint = l.Paint
}

// Camera converts a page camera to a raylib perspective camera.
func Camera(c vmath.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position.X, c.Position.Y, c.Position.Z),
		Target:     rl.NewVector3(c.Target.X, c.Target.Y, c.Target.Z),
		Up:         rl.NewVector3(c.Up.X, c.Up.Y, c.Up.Z),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

// Resize drops the render target; the next Redraw allocates one at the new size.
func (l *Layer) Resize(width, height float32) {
	w, h := int32(width), int32(height)
	if w == l.width && h == l.height {
		return
	}
	l.width, l.height = w, h
	l.unloadTarget()
}

// Redraw renders the stage into the layer's target.
func (l *Layer) Redraw() {
	if l.width <= 0 || l.height <= 0 {
		l.width, l.height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	}
	if !l.loaded {
		l.target = rl.LoadRenderTexture(l.width, l.height)
		l.loaded = true
	}
	cam := Camera(l.Stage.Camera)
	rl.BeginTextureMode(l.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(cam)
	l.draw(cam)
	rl.EndMode3D()
	rl.EndTextureMode()
	l.frames++
}

// Paint composites the last rendered frame into dst at the given opacity. Nothing is
// drawn before the first Redraw.
func (l *Layer) Paint(dst vmath.Rect, opacity float32) {
	if !l.loaded || l.frames == 0 || opacity <= 0 {
		return
	}
	tex := l.target.Texture
	// Render textures are stored bottom-up.
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTexturePro(tex, src, rl.NewRectangle(dst.X, dst.Y, dst.Width, dst.Height),
		rl.NewVector2(0, 0), 0, rl.Fade(rl.White, opacity))
}

// Frames returns how many times the layer has been rendered.
func (l *Layer) Frames() uint64 {
	return l.frames
}

// Unload frees the render target.
func (l *Layer) Unload() {
	l.unloadTarget()
}

func (l *Layer) unloadTarget() {
	if !l.loaded {
		return
	}
	rl.UnloadRenderTexture(l.target)
	l.loaded = false
}
