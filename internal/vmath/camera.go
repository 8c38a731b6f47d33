package vmath

// Camera is a perspective camera. FovY is in degrees.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	FovY     float32
	Near     float32
	Far      float32
}

// NewCamera returns a camera at position looking at the origin with +Y up.
func NewCamera(position Vec3, fovY float32) Camera {
	return Camera{
		Position: position,
		Up:       Vec3{0, 1, 0},
		FovY:     fovY,
		Near:     0.1,
		Far:      1000,
	}
}

// ViewProjection returns projection × view for the given aspect ratio.
func (c Camera) ViewProjection(aspect float32) Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return Perspective(c.FovY, aspect, c.Near, c.Far).Mul(LookAt(c.Position, c.Target, c.Up))
}

// Project maps a world position to pixel coordinates inside a viewport of the given size.
// screenX = (ndcX*0.5+0.5)*width and screenY = (ndcY*-0.5+0.5)*height; Y flips because
// screen rows grow downward. ok is false for points at or behind the camera plane or
// for an empty viewport.
func (c Camera) Project(world Vec3, viewport Vec2) (Vec2, bool) {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return Vec2{}, false
	}
	clip := c.ViewProjection(viewport.X / viewport.Y).MulVec4(Vec4{world.X, world.Y, world.Z, 1})
	if clip.W <= 0 {
		return Vec2{}, false
	}
	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W
	return Vec2{
		X: (ndcX*0.5 + 0.5) * viewport.X,
		Y: (ndcY*-0.5 + 0.5) * viewport.Y,
	}, true
}
