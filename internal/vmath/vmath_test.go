package vmath

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-3

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func TestProject(t *testing.T) {
	cam := NewCamera(V3(0, 0, 6), 45)
	viewport := Vec2{1000, 800}

	tests := []struct {
		name  string
		world Vec3
		check func(Vec2) bool
	}{
		{"origin maps to viewport center", V3(0, 0, 0), func(p Vec2) bool { return near(p.X, 500) && near(p.Y, 400) }},
		{"positive x moves right", V3(1, 0, 0), func(p Vec2) bool { return p.X > 500 && near(p.Y, 400) }},
		{"positive y moves up the screen", V3(0, 1, 0), func(p Vec2) bool { return p.Y < 400 && near(p.X, 500) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := cam.Project(tt.world, viewport)
			if !ok {
				t.Fatalf("Project(%v) not ok", tt.world)
			}
			if !tt.check(p) {
				t.Errorf("Project(%v) = %v", tt.world, p)
			}
		})
	}
}

func TestProjectNDCEdges(t *testing.T) {
	// 90° fov and square viewport: a point one unit off-axis at distance one lands on the edge.
	cam := NewCamera(V3(0, 0, 1), 90)
	p, ok := cam.Project(V3(1, 0, 0), Vec2{200, 200})
	if !ok {
		t.Fatal("Project not ok")
	}
	if !near(p.X, 200) || !near(p.Y, 100) {
		t.Errorf("Project = %v, want (200, 100)", p)
	}
	p, _ = cam.Project(V3(0, -1, 0), Vec2{200, 200})
	if !near(p.Y, 200) {
		t.Errorf("Project(0,-1,0).Y = %v, want 200", p.Y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := NewCamera(V3(0, 0, 6), 45)
	if _, ok := cam.Project(V3(0, 0, 10), Vec2{100, 100}); ok {
		t.Error("point behind camera should not project")
	}
	if _, ok := cam.Project(V3(0, 0, 0), Vec2{0, 100}); ok {
		t.Error("empty viewport should not project")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name   string
		b      Rect
		want   Rect
		wantOK bool
	}{
		{"overlap", Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}, true},
		{"contained", Rect{2, 2, 2, 2}, Rect{2, 2, 2, 2}, true},
		{"touching edge", Rect{10, 0, 5, 5}, Rect{}, false},
		{"disjoint", Rect{20, 20, 1, 1}, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Intersect(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersect(%v) = %v, %v; want %v, %v", tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRectCenterAndArea(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if c := r.Center(); c != (Vec2{60, 45}) {
		t.Errorf("Center = %v", c)
	}
	if a := r.Area(); a != 5000 {
		t.Errorf("Area = %v", a)
	}
	if a := (Rect{Width: -1, Height: 5}).Area(); a != 0 {
		t.Errorf("degenerate Area = %v", a)
	}
}
