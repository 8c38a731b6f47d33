package ui

import (
	"slices"
	"time"

	"nexus-landing/internal/vmath"
)

// Node is a single page element: section, heading, card, ripple, canvas, etc. It has an
// optional id, a class list and data attributes for selector matching, bounds in
// document space and optional text.
type Node struct {
	Type    string // "section", "heading", "text", "card", "grid", "ripple", "canvas", ...
	ID      string
	Classes []string
	Attrs   map[string]string
	// Inline holds per-node style properties applied after the stylesheet.
	Inline map[string]string
	Text   string

	// Bounds is in document space (Y measured from the top of the page). Fixed nodes are
	// placed against the viewport instead and ignore scrolling.
	Bounds vmath.Rect
	Fixed  bool
	ZIndex int
	// Interactive nodes take pointer hover; a non-interactive node hides its subtree
	// from HoverAt.
	Interactive bool
	// Scale is applied around the node's center when drawing (1 when unset).
	Scale float32
	// Born is when the node was attached; transient nodes (ripples) animate from it.
	Born time.Time
	// Paint draws canvas nodes; nil for ordinary nodes.
	Paint func(dst vmath.Rect, opacity float32)

	Children []*Node
	parent   *Node
	doc      *Document

	// shown is the animated opacity, eased toward the computed style's opacity.
	shown float32
	// offset is the animated vertical shift.
	offset     float32
	offsetFrom float32
	offsetTo   float32
	offsetT    float32
	// zoom is the animated transform scale.
	zoom     float32
	zoomFrom float32
	zoomTo   float32
	zoomT    float32
	styleVer uint64
	style    ComputedStyle
}

// NewNode creates a node with type, space-free class names, id and text.
func NewNode(typ, id, text string, classes ...string) *Node {
	return &Node{
		Type:        typ,
		ID:          id,
		Text:        text,
		Classes:     slices.Clone(classes),
		Interactive: true,
		Scale:       1,
		shown:       -1,
	}
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// AddClass adds class if missing. It reports whether the list changed.
func (n *Node) AddClass(class string) bool {
	if class == "" || n.HasClass(class) {
		return false
	}
	n.Classes = append(n.Classes, class)
	n.touch()
	return true
}

// RemoveClass removes class if present. It reports whether the list changed.
func (n *Node) RemoveClass(class string) bool {
	i := slices.Index(n.Classes, class)
	if i < 0 {
		return false
	}
	n.Classes = slices.Delete(n.Classes, i, i+1)
	n.touch()
	return true
}

// Attr returns a data attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// SetAttr sets a data attribute.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	n.touch()
}

// SetStyle sets an inline style property; an empty value removes it.
func (n *Node) SetStyle(prop, value string) {
	if value == "" {
		if _, ok := n.Inline[prop]; !ok {
			return
		}
		delete(n.Inline, prop)
		n.touch()
		return
	}
	if n.Inline == nil {
		n.Inline = make(map[string]string)
	}
	if n.Inline[prop] == value {
		return
	}
	n.Inline[prop] = value
	n.touch()
}

// Parent returns the parent node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Attached reports whether the node is part of a document.
func (n *Node) Attached() bool {
	return n.doc != nil
}

// ClientRect returns the node's bounds in viewport space, the way a page script reads
// them. ok is false once the node has been removed from its document.
func (n *Node) ClientRect() (vmath.Rect, bool) {
	if n == nil || n.doc == nil {
		return vmath.Rect{}, false
	}
	if n.Fixed {
		return n.Bounds, true
	}
	return n.Bounds.Offset(0, -n.doc.scrollY), true
}

// Shown returns the node's current animated opacity.
func (n *Node) Shown() float32 {
	if n.shown < 0 {
		return n.Style().Opacity
	}
	return n.shown
}

// Offset returns the node's current animated vertical shift in pixels.
func (n *Node) Offset() float32 {
	if n.shown < 0 {
		return float32(n.Style().Shift)
	}
	return n.offset
}

// Zoom returns the node's current animated transform scale.
func (n *Node) Zoom() float32 {
	if n.shown < 0 || n.zoom <= 0 {
		return n.Style().Zoom
	}
	return n.zoom
}

// Style returns the node's computed style, resolving it again after class or
// stylesheet changes.
func (n *Node) Style() ComputedStyle {
	if n.doc == nil {
		return DefaultComputedStyle()
	}
	if n.styleVer != n.doc.version {
		n.style = n.doc.resolve(n)
		n.styleVer = n.doc.version
	}
	return n.style
}

func (n *Node) touch() {
	if n.doc != nil {
		n.doc.version++
	}
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
