package sprite

import "testing"

func alpha(t *testing.T, size int, x, y int, blurred bool) uint8 {
	t.Helper()
	soft := 0.0
	if blurred {
		soft = 2
	}
	return Ripple(size, 4, soft).RGBAAt(x, y).A
}

func TestRippleRing(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		blurred bool
		opaque  bool
	}{
		{"center empty", 32, 32, false, false},
		{"ring opaque", 32 + 25, 32, false, true},
		{"corner empty", 0, 0, false, false},
		{"center empty blurred", 32, 32, true, false},
		{"ring visible blurred", 32 + 25, 32, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := alpha(t, 64, tt.x, tt.y, tt.blurred)
			if tt.opaque && a < 100 {
				t.Errorf("alpha = %d, want visible", a)
			}
			if !tt.opaque && a != 0 {
				t.Errorf("alpha = %d, want 0", a)
			}
		})
	}
}

func TestRippleMinimumSize(t *testing.T) {
	if b := Ripple(0, 1, 0).Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}
