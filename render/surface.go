// Package render holds drawing helpers shared by the card packages and the
// terminal presenter that maps an RGBA frame onto tcell cells.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Fill paints the whole of dst with c
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a 1px outline along the inside edge of r
func StrokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	u := image.NewUniform(c)
	edges := [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, u, image.Point{}, draw.Over)
	}
}

// MeasureText returns the pixel size of a single line of text in face
func MeasureText(face font.Face, text string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, text).Ceil(), m.Height.Ceil())
}

// DrawText draws one line of text with its top left corner at topLeft
func DrawText(dst draw.Image, face font.Face, text string, topLeft image.Point, ink color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(topLeft.X), Y: fixed.I(topLeft.Y) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}

// RenderText draws text onto a new transparent image sized to fit it
func RenderText(face font.Face, text string, ink color.Color) *image.RGBA {
	size := MeasureText(face, text)
	img := image.NewRGBA(image.Rectangle{Max: size})
	DrawText(img, face, text, image.Point{}, ink)
	return img
}
