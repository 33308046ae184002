// Package demo is a minimal card game: click the deck to turn its top card onto
// the discard pile. Pressing 'n', or clicking the discard pile once the deck is
// exhausted, starts over with a freshly shuffled deck.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/lixenwraith/cardkit/atlas"
	"github.com/lixenwraith/cardkit/card"
	"github.com/lixenwraith/cardkit/deck"
	"github.com/lixenwraith/cardkit/engine"
	"github.com/lixenwraith/cardkit/flash"
	"github.com/lixenwraith/cardkit/render"
)

const (
	FlashText     = "Draw some cards!\nPress 'n' to reset."
	FlashDuration = 3 * time.Second
	FlashFade     = 2 * time.Second
)

var (
	DeckLocation    = image.Pt(150, 150)
	DiscardLocation = image.Pt(300, 150)
	FlashLocation   = image.Pt(100, 50)

	DefaultBackground = color.RGBA{200, 230, 200, 255}
)

// CardGame is the demo game. Its piles and sprite cache are built in Ready.
type CardGame struct {
	sheet      *atlas.Atlas
	background color.RGBA
	deckOpts   []deck.Option

	cache   *atlas.Cache
	deck    *deck.Deck
	discard *deck.Deck
	flash   *flash.Message

	deckRect    image.Rectangle
	discardRect image.Rectangle
}

// Option configures a CardGame
type Option func(*CardGame)

// WithAtlas draws cards from a loaded atlas instead of the generated sheet
func WithAtlas(a *atlas.Atlas) Option {
	return func(g *CardGame) { g.sheet = a }
}

// WithBackground sets the table color
func WithBackground(c color.RGBA) Option {
	return func(g *CardGame) { g.background = c }
}

// WithSeed makes the shuffles reproducible; zero keeps the time-seeded default
func WithSeed(seed uint64) Option {
	return func(g *CardGame) {
		if seed != 0 {
			g.deckOpts = append(g.deckOpts, deck.WithSeed(seed))
		}
	}
}

// New creates the demo game
func New(opts ...Option) *CardGame {
	g := &CardGame{background: DefaultBackground}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ready loads the sprites, deals out a shuffled deck and shows the greeting
func (g *CardGame) Ready(l *engine.Loop) error {
	if g.sheet == nil {
		g.sheet = atlas.New(atlas.DefaultLayout())
		if err := g.sheet.LoadGenerated(); err != nil {
			return fmt.Errorf("demo: %w", err)
		}
	}
	g.cache = atlas.NewCache(g.sheet)

	g.deck = deck.Standard(g.deckOpts...)
	g.deck.Shuffle()
	g.discard = deck.New(nil)

	g.flash = flash.New(FlashText, FlashDuration,
		flash.WithFadeDuration(FlashFade), flash.WithClock(l.Clock()))
	g.flash.Show()

	r, err := g.deck.DrawingRect(g.cache)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	g.deckRect = r.Add(DeckLocation)
	g.discardRect = r.Add(DiscardLocation)
	return nil
}

// Deck returns the draw pile
func (g *CardGame) Deck() *deck.Deck { return g.deck }

// Discard returns the discard pile
func (g *CardGame) Discard() *deck.Deck { return g.discard }

// Flash returns the greeting message
func (g *CardGame) Flash() *flash.Message { return g.flash }

// DeckRect returns the clickable area of the draw pile
func (g *CardGame) DeckRect() image.Rectangle { return g.deckRect }

// DiscardRect returns the clickable area of the discard pile
func (g *CardGame) DiscardRect() image.Rectangle { return g.discardRect }

// HandleEvent reacts to 'n' and to left clicks on the piles
func (g *CardGame) HandleEvent(ev engine.Event) {
	switch ev := ev.(type) {
	case engine.EventKeyUp:
		if ev.Key == engine.KeyRune && ev.Rune == 'n' {
			g.Reset()
		}

	case engine.EventMouseDown:
		if ev.Button != engine.ButtonLeft {
			return
		}
		if ev.Pos.In(g.deckRect) && !g.deck.IsEmpty() {
			g.drawAndDiscard()
		}
		// The discard pile only restarts the game once the deck is used up
		if ev.Pos.In(g.discardRect) && g.deck.IsEmpty() {
			g.Reset()
		}
	}
}

// Reset restores both piles and shuffles the deck
func (g *CardGame) Reset() {
	g.deck.Reset()
	g.discard.Reset()
	g.deck.Shuffle()
}

func (g *CardGame) drawAndDiscard() {
	c, err := g.deck.DealFace(card.FaceUp)
	if err != nil {
		log.Printf("demo: %v", err)
		return
	}
	g.discard.Add(c)
}

// Draw paints the table, both piles and the message
func (g *CardGame) Draw(frame *image.RGBA) {
	render.Fill(frame, g.background)
	if err := g.deck.Draw(frame, DeckLocation, g.cache); err != nil {
		log.Printf("demo: draw deck: %v", err)
	}
	if err := g.discard.Draw(frame, DiscardLocation, g.cache); err != nil {
		log.Printf("demo: draw discard: %v", err)
	}
	g.flash.Draw(frame, FlashLocation)
}
