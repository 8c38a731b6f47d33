package ui

import (
	"strconv"
	"strings"
	"time"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/vmath"
)

const (
	// minGridCell is the narrowest a grid column may get before the grid drops a column.
	minGridCell = 220
	lineSpacing = 1.3
	// glyphAspect estimates average glyph width as a fraction of the font size.
	glyphAspect = 0.55
)

// Document owns the page tree, its stylesheet, the viewport it is laid out for and the
// current scroll offset. Nodes are drawn in tree order within each z-index.
type Document struct {
	Root *Node

	sheet    *Stylesheet
	version  uint64
	scrollY  float32
	viewport vmath.Vec2
	height   float32
	hovered  *Node
}

// NewDocument creates an empty page using sheet (which may be nil).
func NewDocument(sheet *Stylesheet) *Document {
	d := &Document{sheet: sheet, version: 1}
	d.Root = NewNode("page", "", "")
	d.Root.doc = d
	return d
}

// SetStylesheet replaces the stylesheet and invalidates computed styles.
func (d *Document) SetStylesheet(sheet *Stylesheet) {
	d.sheet = sheet
	d.version++
}

// Stylesheet returns the current stylesheet (may be nil).
func (d *Document) Stylesheet() *Stylesheet {
	return d.sheet
}

// Append attaches child (and its subtree) under parent. A child already attached
// elsewhere is moved.
func (d *Document) Append(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.parent != nil {
		d.Remove(child)
	}
	child.parent = parent
	parent.Children = append(parent.Children, child)
	if parent.doc == d {
		child.Walk(func(n *Node) bool {
			n.doc = d
			return true
		})
	}
	d.version++
}

// Remove detaches n and its subtree from the document. ClientRect on a removed node
// reports false.
func (d *Document) Remove(n *Node) {
	if n == nil || n == d.Root {
		return
	}
	if p := n.parent; p != nil {
		for i, c := range p.Children {
			if c == n {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	n.parent = nil
	n.Walk(func(c *Node) bool {
		c.doc = nil
		return true
	})
	d.version++
}

// Query returns attached nodes matching a comma-separated selector list, in document order.
func (d *Document) Query(selector string) []*Node {
	var sels []compound
	for _, s := range strings.Split(selector, ",") {
		if sel, ok := parseSelector(strings.TrimSpace(s)); ok {
			sels = append(sels, sel)
		}
	}
	var out []*Node
	if len(sels) == 0 {
		return out
	}
	d.Root.Walk(func(n *Node) bool {
		for _, sel := range sels {
			if sel.matches(n) {
				out = append(out, n)
				break
			}
		}
		return true
	})
	return out
}

// Find returns the nodes carrying marker (any selector Query accepts) as animation
// elements.
func (d *Document) Find(marker string) []anim.Element {
	nodes := d.Query(marker)
	out := make([]anim.Element, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// ByID returns the first attached node with the given id.
func (d *Document) ByID(id string) *Node {
	var found *Node
	d.Root.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// SetScroll sets the scroll offset used by ClientRect.
func (d *Document) SetScroll(y float32) {
	d.scrollY = y
}

// ScrollY returns the scroll offset.
func (d *Document) ScrollY() float32 {
	return d.scrollY
}

// Viewport returns the size the document was last laid out for.
func (d *Document) Viewport() vmath.Vec2 {
	return d.viewport
}

// Height returns the laid-out content height.
func (d *Document) Height() float32 {
	return d.height
}

// resolve returns merged properties for a node (rules in order, then inline style; last wins).
func (d *Document) resolve(n *Node) ComputedStyle {
	merged := make(map[string]string)
	if d.sheet != nil {
		for _, rule := range d.sheet.Rules {
			if rule.sel.matches(n) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	for k, v := range n.Inline {
		merged[k] = v
	}
	return ResolveProps(merged)
}

// Layout flows the tree top to bottom for a viewport of the given size and records the
// resulting content height.
func (d *Document) Layout(width, height float32) {
	d.viewport = vmath.Vec2{X: width, Y: height}
	d.height = d.layout(d.Root, 0, 0, width)
}

func (d *Document) layout(n *Node, x, y, w float32) float32 {
	style := n.Style()
	if sw := float32(style.Width); sw > 0 && sw < w {
		x += (w - sw) / 2
		w = sw
	}
	pad := float32(style.Padding)
	gap := float32(style.Gap)
	inner := max(0, w-2*pad)
	cy := y + pad

	if n.Text != "" {
		lines := WrapText(n.Text, inner, style.FontSize)
		cy += float32(len(lines)) * LineHeight(style.FontSize)
	}

	flow := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Fixed && c.Type != "ripple" && c.Type != "canvas" {
			flow = append(flow, c)
		}
	}
	if n.Text != "" && len(flow) > 0 {
		cy += gap
	}

	if n.Type == "grid" {
		cy += d.layoutGrid(n, flow, x+pad, cy, inner, gap)
	} else {
		for i, c := range flow {
			if i > 0 {
				cy += gap
			}
			cy += d.layout(c, x+pad, cy, inner)
		}
	}

	h := cy - y + pad
	h = max(h, float32(style.Height), float32(style.MinHeight))
	if style.MinHeightVH >= 0 {
		h = max(h, d.viewport.Y*float32(style.MinHeightVH)/100)
	}
	n.Bounds = vmath.Rect{X: x, Y: y, Width: w, Height: h}
	return h
}

// layoutGrid places cells in rows of equal height and returns the grid's content height.
func (d *Document) layoutGrid(n *Node, cells []*Node, x, y, w, gap float32) float32 {
	cols := 1
	if v, ok := n.Attr("cols"); ok {
		if c, err := strconv.Atoi(v); err == nil && c > 0 {
			cols = c
		}
	}
	for cols > 1 && (w-float32(cols-1)*gap)/float32(cols) < minGridCell {
		cols--
	}
	cw := (w - float32(cols-1)*gap) / float32(cols)
	cy := y
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		var rowH float32
		for i, c := range cells[start:end] {
			rowH = max(rowH, d.layout(c, x+float32(i)*(cw+gap), cy, cw))
		}
		for _, c := range cells[start:end] {
			c.Bounds.Height = rowH
		}
		cy += rowH
		if end < len(cells) {
			cy += gap
		}
	}
	return cy - y
}

// Animate eases every node's shown opacity toward its computed opacity over the node's
// transition duration. The vertical shift and the zoom follow over the same duration.
func (d *Document) Animate(dt time.Duration) {
	d.Root.Walk(func(n *Node) bool {
		style := n.Style()
		target := style.Opacity
		shift := float32(style.Shift)
		if n.shown < 0 || style.Transition <= 0 {
			n.shown = target
			n.offset, n.offsetTo, n.offsetT = shift, shift, 1
			n.zoom, n.zoomTo, n.zoomT = style.Zoom, style.Zoom, 1
			return true
		}
		step := float32(dt) / float32(style.Transition)
		switch {
		case n.shown < target:
			n.shown = min(target, n.shown+step)
		case n.shown > target:
			n.shown = max(target, n.shown-step)
		}
		n.offset = tween(&n.offsetFrom, &n.offsetTo, &n.offsetT, n.offset, shift, step)
		n.zoom = tween(&n.zoomFrom, &n.zoomTo, &n.zoomT, n.zoom, style.Zoom, step)
		return true
	})
}

// tween restarts the from→to segment when target moves, advances t by step and returns
// the interpolated value.
func tween(from, to, t *float32, cur, target, step float32) float32 {
	if target != *to {
		*from, *to, *t = cur, target, 0
	}
	*t = min(1, *t+step)
	return *from + (*to-*from)**t
}

// LineHeight returns the distance between wrapped text lines for a font size.
func LineHeight(fontSize int32) float32 {
	return float32(fontSize) * lineSpacing
}

// WrapText breaks text into lines no wider than width using an average glyph width.
// Explicit newlines are kept.
func WrapText(text string, width float32, fontSize int32) []string {
	maxChars := int(width / (float32(fontSize) * glyphAspect))
	if maxChars < 1 {
		maxChars = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > maxChars {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
