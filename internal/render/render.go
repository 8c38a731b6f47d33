// Package render draws a ui.Document with raylib: backgrounds, borders, wrapped text,
// collision ripples and canvas layers, back to front by z-index.
package render

import (
	"cmp"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nexus-landing/internal/fonts"
	"nexus-landing/internal/sprite"
	"nexus-landing/internal/ui"
	"nexus-landing/internal/vmath"
)

const (
	roundSegments = 8
	borderWidth   = 1.5
	textSpacing   = 1
	// rippleSize is the side of the ripple sprite texture in pixels.
	rippleSize = 128
	// rippleReach is the radius a ripple grows to over its lifetime.
	rippleReach = 140
	rippleStart = 6
)

// Renderer draws one document. GPU resources are created on the first Draw so that they
// are allocated after the window/OpenGL context exists.
type Renderer struct {
	doc      *ui.Document
	feedback *ui.Feedback

	fontName string
	font     rl.Font
	ripple   rl.Texture2D
	ready    bool

	items []item
}

type item struct {
	node  *ui.Node
	rect  vmath.Rect
	clip  vmath.Rect
	alpha float32
	scale float32
	order int
}

// New returns a renderer for doc. fb supplies ripple ages; font names a family looked up
// with the fonts package, empty for raylib's default font.
func New(doc *ui.Document, fb *ui.Feedback, font string) *Renderer {
	return &Renderer{doc: doc, feedback: fb, fontName: font}
}

func (r *Renderer) ensureLoaded() {
	if r.ready {
		return
	}
	r.ready = true
	r.font = rl.GetFontDefault()
	if r.fontName != "" {
		if path, err := fonts.Resolve(r.fontName); err == nil {
			if f := rl.LoadFontEx(path, 48, nil); f.Texture.ID != 0 {
				rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
				r.font = f
			}
		}
	}
	img := rl.NewImageFromImage(sprite.Ripple(rippleSize, 6, 3))
	r.ripple = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.ripple, rl.FilterBilinear)
}

// Font returns the font text is drawn with (raylib's default until the first Draw).
func (r *Renderer) Font() rl.Font {
	if !r.ready {
		return rl.GetFontDefault()
	}
	return r.font
}

// Draw renders the document for the current scroll position.
func (r *Renderer) Draw() {
	r.ensureLoaded()
	vp := r.doc.Viewport()
	screen := vmath.Rect{Width: vp.X, Height: vp.Y}
	r.items = r.items[:0]
	r.collect(r.doc.Root, ui.Identity, 1, screen)
	// The root paints first, below negative z-indexes, like a page body.
	root := r.doc.Root
	slices.SortStableFunc(r.items, func(a, b item) int {
		if a.node == root || b.node == root {
			return cmp.Compare(rootRank(a.node == root), rootRank(b.node == root))
		}
		if c := cmp.Compare(a.node.ZIndex, b.node.ZIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	for _, it := range r.items {
		if _, ok := it.rect.Intersect(screen); !ok && it.node.Type != ui.TypeRipple {
			continue
		}
		r.drawItem(it)
	}
}

func (r *Renderer) collect(n *ui.Node, x ui.Transform, alpha float32, clip vmath.Rect) {
	alpha *= n.Shown()
	if alpha <= 0 {
		return
	}
	rect, x, ok := n.Place(x)
	if !ok {
		return
	}
	it := item{node: n, rect: rect, clip: clip, alpha: alpha, scale: x.S, order: len(r.items)}
	r.items = append(r.items, it)
	childClip := clip
	if n.HasClass(ui.ClassCollision) || n.Type == "card" {
		childClip = it.rect
	}
	for _, c := range n.Children {
		r.collect(c, x, alpha, childClip)
	}
}

func (r *Renderer) drawItem(it item) {
	n := it.node
	switch n.Type {
	case ui.TypeCanvas:
		if n.Paint != nil {
			n.Paint(it.rect, it.alpha)
		}
		return
	case ui.TypeRipple:
		r.drawRipple(it)
		return
	}
	style := n.Style()
	rec := rl.NewRectangle(it.rect.X, it.rect.Y, it.rect.Width, it.rect.Height)
	roundness := float32(0)
	if m := min(it.rect.Width, it.rect.Height); m > 0 && style.Radius > 0 {
		roundness = min(1, 2*style.Radius*it.scale/m)
	}
	if style.Background.A > 0 {
		rl.DrawRectangleRounded(rec, roundness, roundSegments, fade(style.Background, it.alpha))
	}
	if style.HasBorder {
		rl.DrawRectangleRoundedLinesEx(rec, roundness, roundSegments, borderWidth, fade(style.Border, it.alpha))
	}
	if n.Text != "" {
		r.drawText(n, style, it)
	}
}

func (r *Renderer) drawText(n *ui.Node, style ui.ComputedStyle, it item) {
	pad := float32(style.Padding) * it.scale
	size := float32(style.FontSize) * it.scale
	inner := it.rect.Width - 2*pad
	lines := ui.WrapText(n.Text, inner/it.scale, style.FontSize)
	lh := ui.LineHeight(style.FontSize) * it.scale
	c := fade(style.Color, it.alpha)
	y := it.rect.Y + pad
	for _, line := range lines {
		x := it.rect.X + pad
		if style.Center {
			w := rl.MeasureTextEx(r.font, line, size, textSpacing).X
			x = it.rect.X + (it.rect.Width-w)/2
		}
		rl.DrawTextEx(r.font, line, rl.NewVector2(x, y), size, textSpacing, c)
		y += lh
	}
}

// drawRipple draws the ring sprite growing from the contact point and fading out,
// clipped to the card it belongs to.
func (r *Renderer) drawRipple(it item) {
	age := r.feedback.RippleAge(it.node)
	if age >= 1 {
		return
	}
	radius := (rippleStart + (rippleReach-rippleStart)*age) * it.scale
	c := fade(it.node.Style().Background, it.alpha*(1-age))
	if c.A == 0 {
		return
	}
	clip := it.clip
	rl.BeginScissorMode(int32(clip.X), int32(clip.Y), int32(clip.Width), int32(clip.Height))
	src := rl.NewRectangle(0, 0, float32(r.ripple.Width), float32(r.ripple.Height))
	dst := rl.NewRectangle(it.rect.X-radius, it.rect.Y-radius, 2*radius, 2*radius)
	rl.DrawTexturePro(r.ripple, src, dst, rl.NewVector2(0, 0), 0, c)
	rl.EndScissorMode()
}

// Unload frees the font and the ripple texture.
func (r *Renderer) Unload() {
	if !r.ready {
		return
	}
	if r.font.Texture.ID != rl.GetFontDefault().Texture.ID {
		rl.UnloadFont(r.font)
	}
	rl.UnloadTexture(r.ripple)
	r.ready = false
}

func rootRank(isRoot bool) int {
	if isRoot {
		return 0
	}
	return 1
}

func fade(c rl.Color, alpha float32) rl.Color {
	c.A = uint8(float32(c.A) * max(0, min(1, alpha)))
	return c
}
