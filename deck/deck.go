// Package deck implements an ordered, mutable pile of cards with a top and a bottom.
package deck

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/lixenwraith/cardkit/card"
	"github.com/lixenwraith/cardkit/render"
)

var (
	// ErrEmptyDeck is returned when a card is requested from an empty deck
	ErrEmptyDeck = errors.New("deck is empty")
	// ErrInvalidCount is returned for a negative deal count
	ErrInvalidCount = errors.New("invalid card count")
)

// PlaceholderColor outlines an empty deck
var PlaceholderColor = color.RGBA{50, 50, 120, 255}

// CardRenderer draws cards and reports their size; atlas.Cache implements it
type CardRenderer interface {
	DrawingRect(c card.Card) (image.Rectangle, error)
	DefaultRect() (image.Rectangle, error)
	Draw(dst draw.Image, c card.Card, at image.Point) error
}

// Deck is an ordered sequence of cards. Both slices keep the bottom card first,
// so the top card is the last element and dealing is O(1).
type Deck struct {
	initial []card.Card
	cards   []card.Card
	rng     *rand.Rand
}

// Option configures a Deck
type Option func(*Deck)

// WithRand sets the random source used by Shuffle
func WithRand(r *rand.Rand) Option {
	return func(d *Deck) {
		if r != nil {
			d.rng = r
		}
	}
}

// WithSeed makes Shuffle reproducible: the same seed gives the same order
func WithSeed(seed uint64) Option {
	return func(d *Deck) {
		d.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a deck from cards listed top first. A nil or empty list gives an empty deck.
// Card faces are kept as given.
func New(initial []card.Card, opts ...Option) *Deck {
	d := &Deck{
		initial: reversed(initial),
	}
	now := uint64(time.Now().UnixNano())
	d.rng = rand.New(rand.NewPCG(now, now>>1))
	for _, opt := range opts {
		opt(d)
	}
	d.cards = slices.Clone(d.initial)
	return d
}

// Standard creates the unshuffled 52-card deck, face down, ace of clubs on top
func Standard(opts ...Option) *Deck {
	return New(card.Standard52(card.FaceDown), opts...)
}

func reversed(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

// Len returns the number of cards currently in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the current cards, top first
func (d *Deck) Cards() []card.Card {
	return reversed(d.cards)
}

// Initial returns a copy of the cards the deck was created with, top first
func (d *Deck) Initial() []card.Card {
	return reversed(d.initial)
}

// Reset restores the deck to the sequence it was created with, faces included
func (d *Deck) Reset() {
	d.cards = slices.Clone(d.initial)
	log.Printf("deck: reset to %d cards", len(d.cards))
}

// Shuffle permutes the current cards; the initial sequence is unaffected
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Peek returns the top card without removing it
func (d *Deck) Peek() (card.Card, error) {
	if d.IsEmpty() {
		return card.Card{}, ErrEmptyDeck
	}
	return d.cards[len(d.cards)-1], nil
}

// Deal removes and returns the top card as it lies in the deck
func (d *Deck) Deal() (card.Card, error) {
	if d.IsEmpty() {
		return card.Card{}, ErrEmptyDeck
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c, nil
}

// DealFace removes the top card and returns it turned to face
func (d *Deck) DealFace(face card.Face) (card.Card, error) {
	if _, err := card.ParseFace(string(face)); err != nil {
		return card.Card{}, err
	}
	c, err := d.Deal()
	if err != nil {
		return card.Card{}, err
	}
	return c.WithFace(face)
}

// DealSeveral deals n cards in the order they come off the top.
// If the deck runs out part way the error is returned with no cards, and the
// cards dealt before that stay out of the deck.
func (d *Deck) DealSeveral(n int) ([]card.Card, error) {
	return d.dealSeveral(n, nil)
}

// DealSeveralFace is DealSeveral with every card turned to face
func (d *Deck) DealSeveralFace(n int, face card.Face) ([]card.Card, error) {
	if _, err := card.ParseFace(string(face)); err != nil {
		return nil, err
	}
	return d.dealSeveral(n, &face)
}

func (d *Deck) dealSeveral(n int, face *card.Face) ([]card.Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	out := make([]card.Card, 0, min(n, len(d.cards)))
	for i := 0; i < n; i++ {
		var c card.Card
		var err error
		if face != nil {
			c, err = d.DealFace(*face)
		} else {
			c, err = d.Deal()
		}
		if err != nil {
			return nil, fmt.Errorf("deal %d of %d: %w", i+1, n, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Add puts c on top of the deck
func (d *Deck) Add(c card.Card) {
	d.cards = append(d.cards, c)
}

// AddToBottom puts c under every other card
func (d *Deck) AddToBottom(c card.Card) {
	d.cards = slices.Insert(d.cards, 0, c)
}

// DrawingRect returns the size of the deck when drawn, anchored at (0,0):
// the top card's rect, or the default card rect when empty
func (d *Deck) DrawingRect(r CardRenderer) (image.Rectangle, error) {
	top, err := d.Peek()
	if err != nil {
		return r.DefaultRect()
	}
	return r.DrawingRect(top)
}

// Draw draws the top card at at, or a placeholder outline when the deck is empty
func (d *Deck) Draw(dst draw.Image, at image.Point, r CardRenderer) error {
	top, err := d.Peek()
	if err == nil {
		return r.Draw(dst, top, at)
	}

	rect, err := r.DefaultRect()
	if err != nil {
		return fmt.Errorf("draw empty deck: %w", err)
	}
	render.StrokeRect(dst, rect.Add(at), PlaceholderColor)
	return nil
}
