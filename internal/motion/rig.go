package motion

import "nexus-landing/internal/vmath"

// ScrollRigDivisor converts page scroll pixels into camera world units.
const ScrollRigDivisor = 60

// ScrollRig lowers the camera as the page scrolls and keeps it aimed at the origin.
func ScrollRig(cam *vmath.Camera, scrollY float32) {
	cam.Position.Y = -scrollY / ScrollRigDivisor
	cam.Target = vmath.Vec3{}
}
