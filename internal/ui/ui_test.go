package ui

import (
	"image/color"
	"testing"
	"time"

	"nexus-landing/internal/host"
	"nexus-landing/internal/vmath"
)

const sheetCSS = `
/* base */
.card { background: #1e293b; padding: 16px; border-radius: 12px; }
.card.collision-active { border: #60a5fa; }
#hero, .hero { min-height: 100vh; text-align: center; }
[data-highlight] { opacity: 1; }
.highlight-base { opacity: 0; transform: translateY(30px); transition: opacity 0.6s ease, transform 0.6s ease; }
.highlight-base.highlight--visible { opacity: 1; transform: translateY(0px); }
@media (max-width: 600px) { .card { padding: 4px; } }
.shade { background: rgba(0, 0, 0, 0.5); }
.card > .title { color: #fff; }
`

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(sheetCSS)
	if err != nil {
		t.Fatalf("ParseCSS: %v", err)
	}
	var selectors []string
	for _, r := range sheet.Rules {
		selectors = append(selectors, r.Selector)
	}
	want := []string{
		".card", ".card.collision-active", "#hero", ".hero", "[data-highlight]",
		".highlight-base", ".highlight-base.highlight--visible", ".shade",
	}
	if len(selectors) != len(want) {
		t.Fatalf("selectors = %q, want %q", selectors, want)
	}
	for i := range want {
		if selectors[i] != want[i] {
			t.Errorf("selector %d = %q, want %q", i, selectors[i], want[i])
		}
	}
	if got := sheet.Rules[0].Props["padding"]; got != "16px" {
		t.Errorf("padding = %q, want 16px (media rule must not override)", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#0e758f", color.RGBA{0x0e, 0x75, 0x8f, 255}, true},
		{"#0e758f80", color.RGBA{0x0e, 0x75, 0x8f, 0x80}, true},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}, true},
		{"rgba(0, 0, 0, 0.5)", color.RGBA{0, 0, 0, 127}, true},
		{"transparent", color.RGBA{}, true},
		{"#12", color.RGBA{0, 0, 0, 255}, false},
		{"blue", color.RGBA{0, 0, 0, 255}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"0.6s", 600 * time.Millisecond, true},
		{"opacity 250ms ease", 250 * time.Millisecond, true},
		{"ease", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDuration(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDuration(%q) = %v, %v", tt.in, got, ok)
		}
	}
}

func newPage(t *testing.T) (*Document, *Node, *Node) {
	t.Helper()
	doc := NewDocument(MustParseCSS(sheetCSS))
	hero := NewNode("section", "hero", "Nexus")
	doc.Append(doc.Root, hero)
	grid := NewNode("grid", "features", "")
	grid.SetAttr("cols", "3")
	doc.Append(doc.Root, grid)
	for i := 0; i < 3; i++ {
		c := NewNode("card", "", "Feature", "card", "glass-effect")
		c.SetAttr("data-highlight", "")
		doc.Append(grid, c)
	}
	return doc, hero, grid
}

func TestStyleCascade(t *testing.T) {
	_, hero, grid := newPage(t)
	card := grid.Children[0]

	if got := card.Style().Padding; got != 16 {
		t.Errorf("card padding = %d, want 16", got)
	}
	if card.Style().HasBorder {
		t.Error("card has border before collision")
	}
	card.AddClass(ClassCollision)
	if !card.Style().HasBorder {
		t.Error("collision class did not apply border")
	}
	if got := hero.Style(); got.MinHeightVH != 100 || !got.Center {
		t.Errorf("hero style = %+v", got)
	}

	card.AddClass(ClassBase)
	if got := card.Style(); got.Opacity != 0 || got.Shift != 30 || got.Transition != 600*time.Millisecond {
		t.Errorf("base style = opacity %v shift %d transition %v", got.Opacity, got.Shift, got.Transition)
	}
	card.AddClass(ClassVisible)
	if got := card.Style(); got.Opacity != 1 || got.Shift != 0 {
		t.Errorf("visible style = opacity %v shift %d", got.Opacity, got.Shift)
	}

	card.SetStyle("opacity", "0.25")
	if got := card.Style().Opacity; got != 0.25 {
		t.Errorf("inline opacity = %v, want 0.25", got)
	}
}

func TestQueryAndFind(t *testing.T) {
	doc, hero, _ := newPage(t)
	if got := len(doc.Query(".glass-effect")); got != 3 {
		t.Errorf("Query(.glass-effect) = %d nodes, want 3", got)
	}
	if got := len(doc.Find("[data-highlight], #hero")); got != 4 {
		t.Errorf("Find(list) = %d elements, want 4", got)
	}
	if doc.ByID("hero") != hero {
		t.Error("ByID(hero) mismatch")
	}
	if !Matches(hero, "section#hero") || Matches(hero, ".card > .x") {
		t.Error("Matches gave unexpected result")
	}
}

func TestLayoutAndClientRect(t *testing.T) {
	doc, hero, grid := newPage(t)
	doc.Layout(1200, 800)

	if hero.Bounds.Height < 800 {
		t.Errorf("hero height = %v, want >= viewport height", hero.Bounds.Height)
	}
	cells := grid.Children
	if cells[0].Bounds.Y != cells[2].Bounds.Y {
		t.Errorf("three columns at 1200px should share a row: %+v %+v", cells[0].Bounds, cells[2].Bounds)
	}
	if doc.Height() < grid.Bounds.Y+grid.Bounds.Height {
		t.Errorf("document height %v shorter than grid bottom", doc.Height())
	}

	doc.Layout(400, 800)
	if cells[0].Bounds.Y == cells[1].Bounds.Y {
		t.Error("narrow viewport should drop to one column")
	}

	doc.SetScroll(100)
	rect, ok := cells[0].ClientRect()
	if !ok || rect.Y != cells[0].Bounds.Y-100 {
		t.Errorf("ClientRect = %+v, %v", rect, ok)
	}
	doc.Remove(cells[0])
	if _, ok := grid.Children[0].ClientRect(); !ok {
		t.Error("sibling detached by Remove")
	}
}

func TestAnimateEasesOpacity(t *testing.T) {
	doc, _, grid := newPage(t)
	card := grid.Children[0]
	card.AddClass(ClassBase)
	doc.Animate(0)
	if card.Shown() != 0 {
		t.Fatalf("Shown() = %v, want 0", card.Shown())
	}
	if card.Offset() != 30 {
		t.Fatalf("Offset() = %v, want 30", card.Offset())
	}
	card.AddClass(ClassVisible)
	doc.Animate(300 * time.Millisecond)
	if got := card.Shown(); got < 0.49 || got > 0.51 {
		t.Errorf("Shown() halfway = %v, want 0.5", got)
	}
	if got := card.Offset(); got < 14.9 || got > 15.1 {
		t.Errorf("Offset() halfway = %v, want 15", got)
	}
	doc.Animate(time.Second)
	if card.Shown() != 1 || card.Offset() != 0 {
		t.Errorf("Shown() = %v, Offset() = %v, want 1, 0", card.Shown(), card.Offset())
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in    string
		shift int32
		zoom  float32
	}{
		{"none", 0, 1},
		{"translateY(16px)", 16, 1},
		{"scale(1.05)", 0, 1.05},
		{"translateY(-5px) scale(1.02)", -5, 1.02},
		{"translateY(-5px)scale(1.02)", -5, 1.02},
		{"rotate(3deg) scale(0)", 0, 1},
	}
	for _, tt := range tests {
		shift, zoom := ParseTransform(tt.in)
		if shift != tt.shift || zoom != tt.zoom {
			t.Errorf("ParseTransform(%q) = %d, %v, want %d, %v", tt.in, shift, zoom, tt.shift, tt.zoom)
		}
	}
}

const hoverCSS = `
.badge { transition: transform 0.2s ease; }
.badge.hover { transform: scale(1.05); }
`

func newHoverPage(t *testing.T) (*Document, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument(MustParseCSS(hoverCSS))
	badge := NewNode("badge", "", "Fast", "badge")
	badge.SetAttr("data-hover", "")
	badge.Inline = map[string]string{"height": "40px"}
	plain := NewNode("text", "", "", "copy")
	plain.Inline = map[string]string{"height": "40px"}
	overlay := NewNode("div", "", "")
	overlay.Interactive = false
	covered := NewNode("badge", "", "Hidden", "badge")
	covered.SetAttr("data-hover", "")
	covered.Inline = map[string]string{"height": "40px"}
	doc.Append(doc.Root, badge)
	doc.Append(doc.Root, plain)
	doc.Append(doc.Root, overlay)
	doc.Append(overlay, covered)
	doc.Layout(400, 600)
	doc.Animate(0)
	return doc, badge, plain, covered
}

func TestHoverAt(t *testing.T) {
	doc, badge, plain, covered := newHoverPage(t)
	at := func(n *Node) vmath.Vec2 {
		r, _ := n.ClientRect()
		return r.Center()
	}

	p := at(badge)
	if got := doc.HoverAt(p.X, p.Y); got != badge {
		t.Fatalf("HoverAt(badge) = %v, want badge", got)
	}
	if !badge.HasClass(ClassHover) || doc.Hovered() != badge {
		t.Error("badge did not take the hover class")
	}
	if got := badge.Style().Zoom; got != 1.05 {
		t.Errorf("hovered zoom = %v, want 1.05", got)
	}

	p = at(plain)
	if got := doc.HoverAt(p.X, p.Y); got != nil {
		t.Errorf("HoverAt(plain) = %v, want nil", got)
	}
	if badge.HasClass(ClassHover) {
		t.Error("hover class left on badge after the pointer moved off")
	}

	p = at(covered)
	if got := doc.HoverAt(p.X, p.Y); got != nil {
		t.Errorf("non-interactive subtree was hovered: %v", got)
	}
	if covered.HasClass(ClassHover) {
		t.Error("covered badge took the hover class")
	}
}

func TestHoverZoomEases(t *testing.T) {
	doc, badge, _, _ := newHoverPage(t)
	if badge.Zoom() != 1 {
		t.Fatalf("Zoom() = %v before hover, want 1", badge.Zoom())
	}
	r, _ := badge.ClientRect()
	c := r.Center()
	doc.HoverAt(c.X, c.Y)
	doc.Animate(100 * time.Millisecond)
	if got := badge.Zoom(); got < 1.024 || got > 1.026 {
		t.Errorf("Zoom() halfway = %v, want 1.025", got)
	}
	doc.Animate(time.Second)
	if got := badge.Zoom(); got != 1.05 {
		t.Errorf("Zoom() = %v, want 1.05", got)
	}

	rect, _, ok := badge.Place(Identity)
	if !ok || rect.Width <= r.Width {
		t.Errorf("placed width = %v, want wider than %v", rect.Width, r.Width)
	}

	doc.HoverAt(-10, -10)
	doc.Animate(time.Second)
	if got := badge.Zoom(); got != 1 {
		t.Errorf("Zoom() after leaving = %v, want 1", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("one two three four", 5*20*glyphAspect+1, 20)
	if len(lines) != 4 {
		t.Errorf("WrapText = %q, want 4 lines", lines)
	}
	if got := WrapText("a\n\nb", 1000, 20); len(got) != 3 {
		t.Errorf("WrapText kept %d lines, want 3", len(got))
	}
}

func TestFeedbackRipples(t *testing.T) {
	doc, _, grid := newPage(t)
	doc.Layout(1200, 800)
	clock := host.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	loop := host.NewLoop(clock, 1200, 800)
	f := NewFeedback(doc, loop, 800*time.Millisecond)
	card := grid.Children[1]

	f.CollisionStarted(card, vmath.Vec2{X: 10, Y: 20})
	if !card.HasClass(ClassCollision) || f.Ripples() != 1 {
		t.Fatalf("classes = %v, ripples = %d", card.Classes, f.Ripples())
	}
	ripple := doc.Query("." + ClassRipple)[0]
	if ripple.Interactive || ripple.Parent() != card {
		t.Error("ripple should be a non-interactive child of the card")
	}
	if ripple.Bounds.X != card.Bounds.X+10 || ripple.Bounds.Y != card.Bounds.Y+20 {
		t.Errorf("ripple at %+v, card at %+v", ripple.Bounds, card.Bounds)
	}

	f.CollisionEnded(card)
	clock.Advance(400 * time.Millisecond)
	loop.Pump()
	if got := f.RippleAge(ripple); got != 0.5 {
		t.Errorf("RippleAge = %v, want 0.5", got)
	}
	clock.Advance(400 * time.Millisecond)
	loop.Pump()
	if f.Ripples() != 0 || ripple.Attached() {
		t.Error("ripple not removed after its duration")
	}
}

func TestFeedbackRelease(t *testing.T) {
	doc, _, grid := newPage(t)
	loop := host.NewLoop(host.NewManualClock(time.Now()), 1200, 800)
	f := NewFeedback(doc, loop, time.Second)
	card := grid.Children[0]

	f.VisibilityTracked(card)
	f.VisibilityChanged(card, true)
	f.CollisionStarted(card, vmath.Vec2{})
	f.CollisionStarted(card, vmath.Vec2{X: 5})

	f.ReleaseCollision(card)
	if card.HasClass(ClassCollision) {
		t.Error("collision class left after ReleaseCollision")
	}
	if !card.HasClass(ClassVisible) || !card.HasClass(ClassBase) {
		t.Error("ReleaseCollision removed the highlight classes")
	}
	if len(card.Children) != 0 || f.Ripples() != 0 {
		t.Errorf("children = %d, ripples = %d after ReleaseCollision", len(card.Children), f.Ripples())
	}
	if _, timers, _ := loop.Pending(); timers != 0 {
		t.Errorf("%d ripple timers left after ReleaseCollision", timers)
	}

	f.ReleaseHighlight(card)
	for _, c := range []string{ClassVisible, ClassBase} {
		if card.HasClass(c) {
			t.Errorf("class %q left after ReleaseHighlight", c)
		}
	}
}

func TestCanvasSurface(t *testing.T) {
	doc, _, _ := newPage(t)
	doc.Layout(1200, 800)

	missing := NewCanvas(doc, "no-such-mount")
	if missing.Attach(0, 1) {
		t.Fatal("Attach succeeded without a container")
	}

	mount := NewNode("div", "scene", "")
	doc.Append(doc.Root, mount)
	redraws := 0
	c := NewCanvas(doc, "scene")
	c.OnRedraw = func() { redraws++ }
	if !c.Attach(-1, 0.55) {
		t.Fatal("Attach failed")
	}
	n := c.Node()
	if !n.Fixed || n.Interactive || n.ZIndex != -1 || n.Style().Opacity != 0.55 {
		t.Errorf("canvas node = %+v, opacity %v", n, n.Style().Opacity)
	}
	c.Resize(640, 480)
	if n.Bounds != (vmath.Rect{Width: 640, Height: 480}) {
		t.Errorf("canvas bounds = %+v", n.Bounds)
	}
	c.Redraw()
	c.Detach()
	c.Redraw()
	if redraws != 1 || n.Attached() || c.Node() != nil {
		t.Errorf("redraws = %d, attached = %v", redraws, n.Attached())
	}
}
