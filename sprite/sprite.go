// Package sprite draws rectangular regions of a shared source image.
//
// Three coordinate systems meet here: the source sheet (0,0 at the sheet's top
// left), the sprite's region (0,0 at the region's top left), and the sprite
// itself, whose (0,0) is the origin point inside the region. Drawing at a
// location puts the origin pixel on that location, so an origin at the region
// center draws the sprite centered around the location.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrNilSource is returned when a sprite is built without a source image
var ErrNilSource = errors.New("sprite source image is nil")

// Sprite is a read-only view of a region of a source image; it never owns the source
type Sprite struct {
	src    image.Image
	rect   image.Rectangle
	origin image.Point
}

// New creates a sprite covering [pos, pos+size) of src with the given drawing origin
func New(src image.Image, pos, size, origin image.Point) (*Sprite, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("sprite size %v is negative", size)
	}
	return &Sprite{
		src:    src,
		rect:   image.Rectangle{Min: pos, Max: pos.Add(size)},
		origin: origin,
	}, nil
}

// Size returns the sprite's width and height
func (s *Sprite) Size() image.Point {
	return s.rect.Size()
}

// Origin returns the anchor point relative to the region's top left
func (s *Sprite) Origin() image.Point {
	return s.origin
}

// SourceRect returns the region on the source image
func (s *Sprite) SourceRect() image.Rectangle {
	return s.rect
}

// Bounds returns the sprite's rectangle with its top left at (0,0)
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.rect.Size()}
}

// Draw composites the sprite onto dst so its origin lands at location
func (s *Sprite) Draw(dst draw.Image, location image.Point) {
	topLeft := location.Sub(s.origin)
	target := image.Rectangle{Min: topLeft, Max: topLeft.Add(s.rect.Size())}
	draw.Draw(dst, target, s.src, s.rect.Min, draw.Over)
}
