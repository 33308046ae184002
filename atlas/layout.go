// Package atlas maps cards onto a fixed-layout sprite sheet.
//
// The sheet holds the 52 faces in a grid: one row per suit and one column per
// rank. Rows and columns need not be strictly adjacent (the reference sheet
// overlaps by a pixel) but they must form a grid. The face-down and joker art
// may live anywhere else on the sheet. All cards share one size.
package atlas

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/cardkit/card"
)

// Layout describes where each card lives on the sheet
type Layout struct {
	SuitY    map[card.Suit]int
	RankX    map[card.Rank]int
	CardSize image.Point
	FaceDown image.Point
	Joker    image.Point
}

// DefaultLayout returns the coordinates of the reference 1024x512 card sheet
func DefaultLayout() Layout {
	l := Layout{
		SuitY: map[card.Suit]int{
			card.Clubs:    0,
			card.Hearts:   102,
			card.Spades:   204,
			card.Diamonds: 306,
		},
		RankX:    make(map[card.Rank]int, len(card.Ranks)),
		CardSize: image.Pt(74, 103),
		FaceDown: image.Pt(0, 408),
		Joker:    image.Pt(146, 408),
	}
	// Columns are 73px apart, one less than the card width, because of how the sheet was downsampled
	for i, r := range card.Ranks {
		l.RankX[r] = i * 73
	}
	return l
}

// Region returns the source position, size and origin for c.
// Face-down cards use the card back regardless of rank.
func (l Layout) Region(c card.Card) (pos, size, origin image.Point) {
	switch {
	case c.Face() == card.FaceDown:
		pos = l.FaceDown
	case c.IsJoker():
		pos = l.Joker
	default:
		pos = image.Pt(l.RankX[c.Rank()], l.SuitY[c.Suit()])
	}
	return pos, l.CardSize, image.Point{}
}

// Bounds returns the smallest sheet rectangle containing every region
func (l Layout) Bounds() image.Rectangle {
	var r image.Rectangle
	add := func(p image.Point) {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(l.CardSize)})
	}
	for _, x := range l.RankX {
		for _, y := range l.SuitY {
			add(image.Pt(x, y))
		}
	}
	add(l.FaceDown)
	add(l.Joker)
	return r
}

// Validate checks that every rank and suit has an offset and the card size is usable
func (l Layout) Validate() error {
	if l.CardSize.X <= 0 || l.CardSize.Y <= 0 {
		return fmt.Errorf("atlas layout: card size %v must be positive", l.CardSize)
	}
	for _, r := range card.Ranks {
		if _, ok := l.RankX[r]; !ok {
			return fmt.Errorf("atlas layout: no column for rank %q", r)
		}
	}
	for _, s := range card.Suits {
		if _, ok := l.SuitY[s]; !ok {
			return fmt.Errorf("atlas layout: no row for suit %q", s)
		}
	}
	if l.Bounds().Min.X < 0 || l.Bounds().Min.Y < 0 {
		return fmt.Errorf("atlas layout: negative offsets in %v", l.Bounds())
	}
	return nil
}

// layoutFile is the TOML shape of a Layout
type layoutFile struct {
	CardSize [2]int         `toml:"card_size"`
	FaceDown [2]int         `toml:"face_down"`
	Joker    [2]int         `toml:"joker"`
	SuitY    map[string]int `toml:"suit_y"`
	RankX    map[string]int `toml:"rank_x"`
}

// DecodeLayout parses a TOML layout; keys absent from data keep their DefaultLayout value
func DecodeLayout(data string) (Layout, error) {
	l := DefaultLayout()
	f := toFile(l)
	f.SuitY, f.RankX = nil, nil

	md, err := toml.Decode(data, &f)
	if err != nil {
		return Layout{}, fmt.Errorf("atlas layout: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Layout{}, fmt.Errorf("atlas layout: unknown keys %v", undecoded)
	}

	l.CardSize = image.Pt(f.CardSize[0], f.CardSize[1])
	l.FaceDown = image.Pt(f.FaceDown[0], f.FaceDown[1])
	l.Joker = image.Pt(f.Joker[0], f.Joker[1])
	for k, y := range f.SuitY {
		c, err := card.Parse(card.Ace, k, "")
		if err != nil {
			return Layout{}, fmt.Errorf("atlas layout: suit_y: %w", err)
		}
		l.SuitY[c.Suit()] = y
	}
	for k, x := range f.RankX {
		r, err := card.ParseRank(k)
		if err != nil || r == card.Joker {
			return Layout{}, fmt.Errorf("atlas layout: rank_x: unknown rank %q", k)
		}
		l.RankX[r] = x
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a TOML layout file
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("atlas layout: %w", err)
	}
	return DecodeLayout(string(data))
}

// Encode writes the layout as TOML
func (l Layout) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(toFile(l))
}

func toFile(l Layout) layoutFile {
	f := layoutFile{
		CardSize: [2]int{l.CardSize.X, l.CardSize.Y},
		FaceDown: [2]int{l.FaceDown.X, l.FaceDown.Y},
		Joker:    [2]int{l.Joker.X, l.Joker.Y},
		SuitY:    make(map[string]int, len(l.SuitY)),
		RankX:    make(map[string]int, len(l.RankX)),
	}
	for s, y := range l.SuitY {
		f.SuitY[string(s)] = y
	}
	for r, x := range l.RankX {
		f.RankX[string(r)] = x
	}
	return f
}
