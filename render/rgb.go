package render

import (
	"image"
	"image/color"
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// fastDiv255 approximates x / 255 using integer math
// Formula: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Scale multiplies all four channels by factor (0.0-1.0).
// On premultiplied colors this is an opacity change that keeps the hue.
func Scale(c color.RGBA, factor float64) color.RGBA {
	if factor >= 1.0 {
		return c
	}
	// Clamp to not wrap on factor < 0
	return color.RGBA{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
		A: clamp(float64(c.A) * factor),
	}
}

// ScaleImage returns a copy of src with every pixel scaled by factor
func ScaleImage(src *image.RGBA, factor float64) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	if factor <= 0.0 {
		return dst
	}
	if factor >= 1.0 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	for i := range src.Pix {
		dst.Pix[i] = clamp(float64(src.Pix[i]) * factor)
	}
	return dst
}

// Over composites premultiplied src over an opaque background
func Over(bg color.RGBA, src color.RGBA) color.RGBA {
	if src.A == 0xff {
		return src
	}
	if src.A == 0 {
		return color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff}
	}
	inv := 255 - int(src.A)
	return color.RGBA{
		R: uint8(min(255, int(src.R)+fastDiv255(int(bg.R)*inv))),
		G: uint8(min(255, int(src.G)+fastDiv255(int(bg.G)*inv))),
		B: uint8(min(255, int(src.B)+fastDiv255(int(bg.B)*inv))),
		A: 0xff,
	}
}

// Lerp linearly interpolates between two colors, t in [0, 1]
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return color.RGBA{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
		A: uint8(float64(a.A) + t*float64(int(b.A)-int(a.A))),
	}
}
