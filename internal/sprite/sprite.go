// Package sprite generates the small images the renderer uploads as textures.
package sprite

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Ripple returns a size×size white ring on a transparent background, softened with a
// Gaussian blur. The ring sits at 80% of the radius and is thickness pixels wide; the
// renderer tints and scales it per ripple.
func Ripple(size int, thickness, softness float64) *image.RGBA {
	if size < 2 {
		size = 2
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	ring := c * 0.8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			edge := math.Abs(d-ring) - thickness/2
			if edge > 1 {
				continue
			}
			a := uint8(255)
			if edge > 0 {
				a = uint8(255 * (1 - edge))
			}
			img.SetRGBA(x, y, color.RGBA{a, a, a, a})
		}
	}
	if softness <= 0 {
		return img
	}
	return blur.Gaussian(img, softness)
}
