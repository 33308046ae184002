package render

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// UpperHalf is drawn with the upper pixel as foreground and the lower as background
const UpperHalf = '▀'

// Mode selects how a cell's pixel block is approximated
type Mode int

const (
	// ModeHalfBlock samples two pixels per cell, stacked vertically
	ModeHalfBlock Mode = iota
	// ModeQuadrant samples four pixels and picks the best quadrant glyph
	ModeQuadrant
)

// Presenter maps an RGBA frame onto a tcell screen.
// Each cell covers Scale pixels horizontally and 2*Scale vertically, which
// keeps the frame's aspect ratio on terminals with 1:2 cells.
type Presenter struct {
	screen tcell.Screen
	scale  int
	mode   Mode
	offset image.Point // cell offset of the frame's top left corner
	bg     color.RGBA  // backdrop for transparent pixels and cells outside the frame
}

// PresenterOption configures a Presenter
type PresenterOption func(*Presenter)

// WithMode selects the cell approximation
func WithMode(m Mode) PresenterOption {
	return func(p *Presenter) { p.mode = m }
}

// WithOffset shifts the frame by a number of cells, leaving room for chrome
func WithOffset(cells image.Point) PresenterOption {
	return func(p *Presenter) { p.offset = cells }
}

// WithBackdrop sets the color shown behind transparent pixels
func WithBackdrop(c color.RGBA) PresenterOption {
	return func(p *Presenter) { p.bg = c }
}

// NewPresenter creates a presenter drawing at scale pixels per column; scale below 1 is raised to 1
func NewPresenter(screen tcell.Screen, scale int, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		screen: screen,
		scale:  max(scale, 1),
		bg:     color.RGBA{A: 0xff},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scale returns pixels per cell column
func (p *Presenter) Scale() int {
	return p.scale
}

// CellsFor returns the cell grid needed to show a frame of size pixels
func (p *Presenter) CellsFor(size image.Point) (w, h int) {
	w = (size.X + p.scale - 1) / p.scale
	h = (size.Y + 2*p.scale - 1) / (2 * p.scale)
	return w, h
}

// CellToPixel returns the frame pixel under the center of a screen cell.
// ok is false for cells in the offset area.
func (p *Presenter) CellToPixel(cx, cy int) (pt image.Point, ok bool) {
	x, y := cx-p.offset.X, cy-p.offset.Y
	if x < 0 || y < 0 {
		return image.Point{}, false
	}
	return image.Pt(x*p.scale+p.scale/2, y*2*p.scale+p.scale), true
}

// Present writes frame into the screen cells and shows them
func (p *Presenter) Present(frame *image.RGBA) {
	sw, sh := p.screen.Size()
	for cy := p.offset.Y; cy < sh; cy++ {
		for cx := p.offset.X; cx < sw; cx++ {
			x, y := cx-p.offset.X, cy-p.offset.Y
			var r rune
			var fg, bg color.RGBA
			switch p.mode {
			case ModeQuadrant:
				r, fg, bg = p.quadrantCell(frame, x, y)
			default:
				r = UpperHalf
				fg = p.sample(frame, x*p.scale+p.scale/2, y*2*p.scale+p.scale/2)
				bg = p.sample(frame, x*p.scale+p.scale/2, y*2*p.scale+p.scale+p.scale/2)
			}
			style := tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
			p.screen.SetContent(cx, cy, r, nil, style)
		}
	}
	p.screen.Show()
}

// sample returns the opaque color of frame at (x, y) relative to its origin
func (p *Presenter) sample(frame *image.RGBA, x, y int) color.RGBA {
	pt := frame.Rect.Min.Add(image.Pt(x, y))
	if !pt.In(frame.Rect) {
		return p.bg
	}
	return Over(p.bg, frame.RGBAAt(pt.X, pt.Y))
}

// quadrantCell samples the four sub-blocks of a cell, [0]=UL [1]=UR [2]=LL [3]=LR
func (p *Presenter) quadrantCell(frame *image.RGBA, x, y int) (rune, color.RGBA, color.RGBA) {
	var pixels [4]color.RGBA
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, off := range offsets {
		sx := x*p.scale + (2*off[0]+1)*p.scale/4
		sy := y*2*p.scale + (2*off[1]+1)*p.scale/2
		pixels[i] = p.sample(frame, sx, sy)
	}
	return findBestQuadrant(pixels)
}

// findBestQuadrant finds the optimal quadrant character and fg/bg colors for 4 pixels
// Uses exhaustive search over all 16 patterns to minimize color error
func findBestQuadrant(pixels [4]color.RGBA) (rune, color.RGBA, color.RGBA) {
	bestError := int(^uint(0) >> 1) // max int
	bestPattern := 0
	var bestFg, bestBg color.RGBA

	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := computePatternColors(pixels, pattern)
		if err < bestError {
			bestError = err
			bestPattern = pattern
			bestFg = fg
			bestBg = bg
		}
	}

	return QuadrantChars[bestPattern], bestFg, bestBg
}

// computePatternColors computes optimal fg/bg colors for a given bit pattern
// Returns the average color for each group and total squared error
func computePatternColors(pixels [4]color.RGBA, pattern int) (fg, bg color.RGBA, totalError int) {
	var fgR, fgG, fgB, fgCount int
	var bgR, bgG, bgB, bgCount int

	for i := 0; i < 4; i++ {
		if pattern&(1<<i) != 0 {
			fgR += int(pixels[i].R)
			fgG += int(pixels[i].G)
			fgB += int(pixels[i].B)
			fgCount++
		} else {
			bgR += int(pixels[i].R)
			bgG += int(pixels[i].G)
			bgB += int(pixels[i].B)
			bgCount++
		}
	}

	if fgCount > 0 {
		fg = color.RGBA{R: uint8(fgR / fgCount), G: uint8(fgG / fgCount), B: uint8(fgB / fgCount), A: 0xff}
	}
	if bgCount > 0 {
		bg = color.RGBA{R: uint8(bgR / bgCount), G: uint8(bgG / bgCount), B: uint8(bgB / bgCount), A: 0xff}
	}

	for i := 0; i < 4; i++ {
		target := bg
		if pattern&(1<<i) != 0 {
			target = fg
		}
		totalError += colorDistanceSq(pixels[i], target)
	}

	return fg, bg, totalError
}

// colorDistanceSq computes squared Euclidean distance in RGB space
func colorDistanceSq(a, b color.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
