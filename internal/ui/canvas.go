package ui

import (
	"strconv"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/vmath"
)

// TypeCanvas is the node type of drawing layers.
const TypeCanvas = "canvas"

// Canvas is a full-viewport drawing layer mounted under a container node.
type Canvas struct {
	doc     *Document
	mountID string
	node    *Node

	// Paint draws the layer; it is installed on the canvas node at Attach.
	Paint    func(dst vmath.Rect, opacity float32)
	OnRedraw func()
	OnResize func(width, height float32)
}

var _ anim.Surface = (*Canvas)(nil)

// NewCanvas returns a canvas that mounts under the node with id mountID.
func NewCanvas(doc *Document, mountID string) *Canvas {
	return &Canvas{doc: doc, mountID: mountID}
}

// Attach appends a fixed, non-interactive canvas node to the container. It returns
// false when the container is missing.
func (c *Canvas) Attach(zIndex int, opacity float32) bool {
	mount := c.doc.ByID(c.mountID)
	if mount == nil {
		return false
	}
	if c.node != nil {
		c.doc.Remove(c.node)
	}
	n := NewNode(TypeCanvas, "", "")
	n.Fixed = true
	n.Interactive = false
	n.ZIndex = zIndex
	n.Paint = c.Paint
	n.SetStyle("opacity", strconv.FormatFloat(float64(opacity), 'f', -1, 32))
	vp := c.doc.Viewport()
	n.Bounds = vmath.Rect{Width: vp.X, Height: vp.Y}
	c.doc.Append(mount, n)
	c.node = n
	return true
}

// Resize matches the canvas to the viewport.
func (c *Canvas) Resize(width, height float32) {
	if c.node == nil {
		return
	}
	c.node.Bounds = vmath.Rect{Width: width, Height: height}
	if c.OnResize != nil {
		c.OnResize(width, height)
	}
}

// Redraw renders one frame into the layer.
func (c *Canvas) Redraw() {
	if c.node != nil && c.OnRedraw != nil {
		c.OnRedraw()
	}
}

// Detach removes the canvas node.
func (c *Canvas) Detach() {
	if c.node == nil {
		return
	}
	c.doc.Remove(c.node)
	c.node = nil
}

// Node returns the mounted canvas node, or nil.
func (c *Canvas) Node() *Node {
	return c.node
}
