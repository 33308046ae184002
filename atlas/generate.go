package atlas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/cardkit/card"
	"github.com/lixenwraith/cardkit/render"
)

var labelFace = basicfont.Face7x13

// Palette used by the generated sheet
var (
	ColorPaper   = color.RGBA{250, 250, 245, 255}
	ColorBorder  = color.RGBA{60, 60, 60, 255}
	ColorRed     = color.RGBA{200, 30, 30, 255}
	ColorBlack   = color.RGBA{20, 20, 20, 255}
	ColorBack    = color.RGBA{40, 60, 140, 255}
	ColorLattice = color.RGBA{90, 120, 200, 255}
	ColorJoker   = color.RGBA{130, 40, 160, 255}
)

var rankLabels = map[card.Rank]string{
	card.Ace: "A", card.Two: "2", card.Three: "3", card.Four: "4", card.Five: "5",
	card.Six: "6", card.Seven: "7", card.Eight: "8", card.Nine: "9", card.Ten: "10",
	card.Jack: "J", card.Queen: "Q", card.King: "K",
}

// Generate paints a sheet honoring l, so the framework runs without an image asset.
// Faces carry the rank label and a suit pip; the back is a lattice; the joker is labeled.
func Generate(l Layout) *image.RGBA {
	b := l.Bounds()
	sheet := image.NewRGBA(image.Rect(0, 0, b.Max.X, b.Max.Y))

	for _, s := range card.Suits {
		for _, r := range card.Ranks {
			at := image.Pt(l.RankX[r], l.SuitY[s])
			paintFace(sheet, image.Rectangle{Min: at, Max: at.Add(l.CardSize)}, r, s)
		}
	}
	paintBack(sheet, image.Rectangle{Min: l.FaceDown, Max: l.FaceDown.Add(l.CardSize)})
	paintJoker(sheet, image.Rectangle{Min: l.Joker, Max: l.Joker.Add(l.CardSize)})

	return sheet
}

// LoadGenerated installs a generated sheet for the atlas layout
func (a *Atlas) LoadGenerated() error {
	return a.SetSheet(Generate(a.layout))
}

// SuitColor returns the ink used for a suit
func SuitColor(s card.Suit) color.RGBA {
	if s == card.Hearts || s == card.Diamonds {
		return ColorRed
	}
	return ColorBlack
}

func paintBlank(dst *image.RGBA, r image.Rectangle, fill color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(ColorBorder), image.Point{}, draw.Src)
	draw.Draw(dst, r.Inset(1), image.NewUniform(fill), image.Point{}, draw.Src)
}

func paintFace(dst *image.RGBA, r image.Rectangle, rank card.Rank, suit card.Suit) {
	paintBlank(dst, r, ColorPaper)
	ink := SuitColor(suit)

	label := rankLabels[rank]
	render.DrawText(dst, labelFace, label, image.Pt(r.Min.X+4, r.Min.Y+4), ink)

	size := render.MeasureText(labelFace, label)
	render.DrawText(dst, labelFace, label, r.Max.Sub(size).Sub(image.Pt(4, 4)), ink)

	size = r.Size()
	radius := float64(min(size.X, size.Y)) / 4
	center := r.Min.Add(size.Div(2))
	paintPip(dst, center, radius, suit, ink)
	paintPip(dst, image.Pt(r.Min.X+7, r.Min.Y+24), 5, suit, ink)
}

func paintBack(dst *image.RGBA, r image.Rectangle) {
	paintBlank(dst, r, ColorBack)
	inner := r.Inset(3)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			dx, dy := x-r.Min.X, y-r.Min.Y
			if (dx+dy)%8 == 0 || (dx-dy+1024)%8 == 0 {
				dst.SetRGBA(x, y, ColorLattice)
			}
		}
	}
}

func paintJoker(dst *image.RGBA, r image.Rectangle) {
	paintBlank(dst, r, ColorPaper)
	size := r.Size()
	center := r.Min.Add(size.Div(2))

	radius := float64(min(size.X, size.Y)) / 3
	fillShape(dst, center, radius, ColorJoker, star)

	const text = "JOKER"
	w := render.MeasureText(labelFace, text).X
	render.DrawText(dst, labelFace, text, image.Pt(center.X-w/2, r.Min.Y+4), ColorJoker)
}

// shape reports whether the normalized point (u,v), both in [-1,1], is inside
type shape func(u, v float64) bool

func paintPip(dst *image.RGBA, center image.Point, radius float64, suit card.Suit, ink color.RGBA) {
	var s shape
	switch suit {
	case card.Diamonds:
		s = diamond
	case card.Hearts:
		s = heart
	case card.Spades:
		s = spade
	default:
		s = club
	}
	fillShape(dst, center, radius, ink, s)
}

func fillShape(dst *image.RGBA, center image.Point, radius float64, ink color.RGBA, s shape) {
	if radius <= 0 {
		return
	}
	r := int(math.Ceil(radius))
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if s(float64(x)/radius, float64(y)/radius) {
				p := center.Add(image.Pt(x, y))
				if p.In(dst.Rect) {
					dst.SetRGBA(p.X, p.Y, ink)
				}
			}
		}
	}
}

func inCircle(u, v, cu, cv, r float64) bool {
	return (u-cu)*(u-cu)+(v-cv)*(v-cv) <= r*r
}

func diamond(u, v float64) bool {
	return math.Abs(u)*0.8+math.Abs(v) <= 1
}

func heart(u, v float64) bool {
	if inCircle(u, v, -0.5, -0.35, 0.5) || inCircle(u, v, 0.5, -0.35, 0.5) {
		return true
	}
	return v >= -0.35 && v <= 1 && math.Abs(u) <= (1-v)/1.35
}

func spade(u, v float64) bool {
	if heart(u*1.1, -(v*1.1 - 0.15)) && v <= 0.75 {
		return true
	}
	return stem(u, v)
}

func club(u, v float64) bool {
	if inCircle(u, v, 0, -0.5, 0.38) || inCircle(u, v, -0.5, 0.1, 0.38) || inCircle(u, v, 0.5, 0.1, 0.38) {
		return true
	}
	return stem(u, v)
}

func stem(u, v float64) bool {
	return v >= -0.2 && v <= 1 && math.Abs(u) <= 0.08+0.25*math.Max(v, 0)
}

func star(u, v float64) bool {
	rho := math.Hypot(u, v)
	theta := math.Atan2(v, u)
	// five points, inner radius 0.45
	edge := 0.45 + 0.55*math.Pow(math.Abs(math.Cos(2.5*theta)), 3)
	return rho <= edge
}
