// Package card defines the playing card value type used by decks and the atlas.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidValue is returned when a rank, suit or face cannot be normalized
var ErrInvalidValue = errors.New("invalid card value")

// Rank is the normalized rank of a card
type Rank string

const (
	Ace   Rank = "ace"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "jack"
	Queen Rank = "queen"
	King  Rank = "king"
	Joker Rank = "joker"
)

// Suit is the normalized suit of a card, NoSuit for jokers
type Suit string

const (
	NoSuit   Suit = ""
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Face is the drawing orientation of a card
type Face string

const (
	FaceUp   Face = "up"
	FaceDown Face = "down"
)

// Ranks lists the non-joker ranks in canonical order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Suits lists the suits in canonical order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Faces lists the valid faces
var Faces = []Face{FaceUp, FaceDown}

// Card is an immutable playing card.
//
// Cards are comparable: two cards are equal when rank, suit and face all match,
// so a Card can be used directly as a map key. No ordering is defined since card
// order is game specific (trumps, aces high or low).
// The zero Card is not a valid card; build cards with New, MustNew or Parse.
type Card struct {
	rank Rank
	suit Suit
	face Face
}

// New validates rank, suit and face and returns the card
func New(rank Rank, suit Suit, face Face) (Card, error) {
	return Parse(rank, string(suit), string(face))
}

// MustNew is New for static tables; it panics on an invalid combination
func MustNew(rank Rank, suit Suit, face Face) Card {
	c, err := New(rank, suit, face)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse normalizes loosely typed input into a card.
// rank may be a Rank, a string of any case, or an integer (1 means ace).
// An empty face means FaceUp. Jokers take an empty suit or "joker".
func Parse(rank any, suit string, face string) (Card, error) {
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}

	s := Suit(strings.ToLower(suit))
	if r == Joker {
		if s != NoSuit && s != Suit(Joker) {
			return Card{}, fmt.Errorf("%w: joker cannot have suit %q", ErrInvalidValue, suit)
		}
		s = NoSuit
	} else if !validSuit(s) {
		return Card{}, fmt.Errorf("%w: unknown suit %q", ErrInvalidValue, suit)
	}

	f := FaceUp
	if face != "" {
		if f, err = ParseFace(face); err != nil {
			return Card{}, err
		}
	}

	return Card{rank: r, suit: s, face: f}, nil
}

// ParseRank normalizes a rank given as Rank, string or integer
func ParseRank(v any) (Rank, error) {
	var s string
	switch x := v.(type) {
	case Rank:
		s = string(x)
	case string:
		s = x
	case int:
		s = strconv.Itoa(x)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprintf("%d", x)
	default:
		return "", fmt.Errorf("%w: unknown rank %v", ErrInvalidValue, v)
	}

	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	if r == "1" {
		r = Ace
	}
	if r == Joker {
		return r, nil
	}
	for _, known := range Ranks {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown rank %q", ErrInvalidValue, s)
}

// ParseFace normalizes a face string
func ParseFace(face string) (Face, error) {
	f := Face(strings.ToLower(face))
	if f != FaceUp && f != FaceDown {
		return "", fmt.Errorf("%w: unknown face %q", ErrInvalidValue, face)
	}
	return f, nil
}

func validSuit(s Suit) bool {
	for _, known := range Suits {
		if s == known {
			return true
		}
	}
	return false
}

func (c Card) Rank() Rank { return c.rank }
func (c Card) Suit() Suit { return c.suit }
func (c Card) Face() Face { return c.face }

// IsJoker reports whether the card is a joker
func (c Card) IsJoker() bool {
	return c.rank == Joker
}

// WithFace returns a copy of the card with the given face
func (c Card) WithFace(face Face) (Card, error) {
	f, err := ParseFace(string(face))
	if err != nil {
		return Card{}, err
	}
	c.face = f
	return c, nil
}

func (c Card) String() string {
	if c.IsJoker() {
		return fmt.Sprintf("%s (face %s)", c.rank, c.face)
	}
	return fmt.Sprintf("%s of %s (face %s)", c.rank, c.suit, c.face)
}
