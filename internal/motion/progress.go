// Package motion derives animation parameters from scroll position and frame count.
package motion

// Progress returns the normalized scroll fraction offset / (docHeight - viewportHeight),
// clamped to [0, 1]. A document no taller than the viewport yields 0.
func Progress(offset, docHeight, viewportHeight float32) float32 {
	span := docHeight - viewportHeight
	if span <= 0 {
		return 0
	}
	return Clamp01(offset / span)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Remap maps v from [inLo, inHi] onto [outLo, outHi], clamping outside the input range.
func Remap(v, inLo, inHi, outLo, outHi float32) float32 {
	if inHi == inLo {
		return outLo
	}
	t := Clamp01((v - inLo) / (inHi - inLo))
	return outLo + (outHi-outLo)*t
}
