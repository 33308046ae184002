package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/cardkit/card"
)

// ErrNotLoaded is returned when a sprite is requested before the sheet image is loaded
var ErrNotLoaded = errors.New("card sheet not loaded")

// Atlas pairs a layout with its sheet image
type Atlas struct {
	layout Layout
	sheet  image.Image
}

// New returns an atlas for layout with no sheet loaded yet
func New(layout Layout) *Atlas {
	return &Atlas{layout: layout}
}

// Layout returns the atlas grid descriptor
func (a *Atlas) Layout() Layout {
	return a.layout
}

// Loaded reports whether a sheet image is present
func (a *Atlas) Loaded() bool {
	return a.sheet != nil
}

// Sheet returns the loaded sheet image, nil before loading
func (a *Atlas) Sheet() image.Image {
	return a.sheet
}

// SetSheet installs an already decoded sheet after checking it covers the layout
func (a *Atlas) SetSheet(img image.Image) error {
	if img == nil {
		return fmt.Errorf("atlas: nil sheet")
	}
	need := a.layout.Bounds()
	if !need.In(img.Bounds()) {
		return fmt.Errorf("atlas: sheet bounds %v do not cover layout %v", img.Bounds(), need)
	}
	a.sheet = toRGBA(img)
	return nil
}

// Load decodes a PNG sheet from r
func (a *Atlas) Load(r io.Reader) error {
	img, err := png.Decode(r)
	if err != nil {
		return fmt.Errorf("atlas: decode sheet: %w", err)
	}
	return a.SetSheet(img)
}

// LoadFile decodes a PNG sheet from path
func (a *Atlas) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("atlas: %w", err)
	}
	defer f.Close()

	if err := a.Load(f); err != nil {
		return err
	}
	log.Printf("atlas: loaded sheet %s (%v)", path, a.sheet.Bounds())
	return nil
}

// Lookup returns the sheet region for c; it fails with ErrNotLoaded before a sheet is present
func (a *Atlas) Lookup(c card.Card) (pos, size, origin image.Point, err error) {
	if a.sheet == nil {
		return image.Point{}, image.Point{}, image.Point{}, ErrNotLoaded
	}
	pos, size, origin = a.layout.Region(c)
	return pos, size, origin, nil
}

// toRGBA converts a decoded sheet to RGBA once, at load time
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
