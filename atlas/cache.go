package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/lixenwraith/cardkit/card"
	"github.com/lixenwraith/cardkit/sprite"
)

// Cache builds card sprites on first use and keeps them for the life of the atlas.
// Entries are never invalidated: cards are immutable and the sheet does not change
// at runtime. A Cache belongs to one game and is not safe for concurrent use.
type Cache struct {
	atlas   *Atlas
	sprites map[card.Card]*sprite.Sprite
}

// NewCache creates an empty sprite cache over a
func NewCache(a *Atlas) *Cache {
	return &Cache{
		atlas:   a,
		sprites: make(map[card.Card]*sprite.Sprite),
	}
}

// Atlas returns the underlying atlas
func (c *Cache) Atlas() *Atlas {
	return c.atlas
}

// Len returns the number of cached sprites
func (c *Cache) Len() int {
	return len(c.sprites)
}

// SpriteFor returns the sprite for cd, building and caching it if absent
func (c *Cache) SpriteFor(cd card.Card) (*sprite.Sprite, error) {
	if s, ok := c.sprites[cd]; ok {
		return s, nil
	}
	if cd == (card.Card{}) {
		return nil, fmt.Errorf("sprite for zero card: %w", card.ErrInvalidValue)
	}

	pos, size, origin, err := c.atlas.Lookup(cd)
	if err != nil {
		return nil, fmt.Errorf("sprite for %v: %w", cd, err)
	}
	s, err := sprite.New(c.atlas.Sheet(), pos, size, origin)
	if err != nil {
		return nil, fmt.Errorf("sprite for %v: %w", cd, err)
	}

	c.sprites[cd] = s
	return s, nil
}

// DrawingRect returns the card's size as a rectangle anchored at (0,0)
func (c *Cache) DrawingRect(cd card.Card) (image.Rectangle, error) {
	s, err := c.SpriteFor(cd)
	if err != nil {
		return image.Rectangle{}, err
	}
	return s.Bounds(), nil
}

// DefaultRect returns the size every card is expected to have, used to reserve
// space for empty piles
func (c *Cache) DefaultRect() (image.Rectangle, error) {
	return c.DrawingRect(card.MustNew(card.Two, card.Clubs, card.FaceUp))
}

// Draw draws cd onto dst at location
func (c *Cache) Draw(dst draw.Image, cd card.Card, location image.Point) error {
	s, err := c.SpriteFor(cd)
	if err != nil {
		return err
	}
	s.Draw(dst, location)
	return nil
}
