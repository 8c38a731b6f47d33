package ui

import "nexus-landing/internal/vmath"

// ClassHover marks the node under the pointer. Only nodes carrying the data-hover
// attribute receive it.
const ClassHover = "hover"

// Transform maps viewport points p to p*S + (TX, TY). Node zooms compose through it
// the same way for drawing and for hit testing.
type Transform struct {
	S      float32
	TX, TY float32
}

// Identity is the transform of the page root.
var Identity = Transform{S: 1}

// Rect maps r through x.
func (x Transform) Rect(r vmath.Rect) vmath.Rect {
	return vmath.Rect{X: r.X*x.S + x.TX, Y: r.Y*x.S + x.TY, Width: r.Width * x.S, Height: r.Height * x.S}
}

// ScaleAbout returns x applied after a scale of k about (cx, cy).
func (x Transform) ScaleAbout(k, cx, cy float32) Transform {
	return Transform{
		S:  x.S * k,
		TX: cx*(1-k)*x.S + x.TX,
		TY: cy*(1-k)*x.S + x.TY,
	}
}

// Place returns n's drawn rectangle under the parent transform x and the transform its
// children inherit. ok is false for detached nodes.
func (n *Node) Place(x Transform) (vmath.Rect, Transform, bool) {
	rect, ok := n.ClientRect()
	if !ok {
		return vmath.Rect{}, x, false
	}
	rect.Y += n.Offset()
	if k := n.Scale * n.Zoom(); k != 1 && k > 0 {
		x = x.ScaleAbout(k, rect.X+rect.Width/2, rect.Y+rect.Height/2)
	}
	return x.Rect(rect), x, true
}

// HoverAt moves the hover class to the topmost data-hover node under the viewport point
// (x, y) and returns it, or nil when the point is over none. Invisible and
// non-interactive subtrees are skipped.
func (d *Document) HoverAt(x, y float32) *Node {
	hit := d.hoverTarget(d.Root, Identity, vmath.Vec2{X: x, Y: y})
	if hit != d.hovered {
		if d.hovered != nil {
			d.hovered.RemoveClass(ClassHover)
		}
		if hit != nil {
			hit.AddClass(ClassHover)
		}
		d.hovered = hit
	}
	return hit
}

// Hovered returns the node currently carrying the hover class.
func (d *Document) Hovered() *Node {
	return d.hovered
}

func (d *Document) hoverTarget(n *Node, x Transform, p vmath.Vec2) *Node {
	if !n.Interactive || n.Shown() <= 0 {
		return nil
	}
	rect, child, ok := n.Place(x)
	if !ok {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if hit := d.hoverTarget(n.Children[i], child, p); hit != nil {
			return hit
		}
	}
	if _, ok := n.Attr("data-hover"); ok && rect.Contains(p) {
		return n
	}
	return nil
}
