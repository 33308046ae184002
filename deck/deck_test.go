package deck

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lixenwraith/cardkit/atlas"
	"github.com/lixenwraith/cardkit/card"
)

var _ CardRenderer = (*atlas.Cache)(nil)

func up(r card.Rank, s card.Suit) card.Card { return card.MustNew(r, s, card.FaceUp) }
func down(r card.Rank, s card.Suit) card.Card { return card.MustNew(r, s, card.FaceDown) }

func aces() []card.Card {
	return []card.Card{
		up(card.Ace, card.Clubs),
		up(card.Ace, card.Diamonds),
		up(card.Ace, card.Hearts),
		up(card.Ace, card.Spades),
	}
}

func dealAll(t *testing.T, d *Deck) []card.Card {
	t.Helper()
	var out []card.Card
	for !d.IsEmpty() {
		c, err := d.Deal()
		if err != nil {
			t.Fatalf("Deal failed: %v", err)
		}
		out = append(out, c)
	}
	return out
}

func TestNew_TopFirst(t *testing.T) {
	d := New(aces())

	if d.Len() != 4 {
		t.Fatalf("Expected 4 cards, got %d", d.Len())
	}
	top, err := d.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if top != up(card.Ace, card.Clubs) {
		t.Errorf("Expected ace of clubs on top, got %v", top)
	}
	if d.Len() != 4 {
		t.Error("Peek removed a card")
	}

	got := dealAll(t, d)
	if !slices.Equal(got, aces()) {
		t.Errorf("Expected deal order %v, got %v", aces(), got)
	}
}

func TestNew_Empty(t *testing.T) {
	for _, initial := range [][]card.Card{nil, {}} {
		d := New(initial)
		if !d.IsEmpty() || d.Len() != 0 {
			t.Errorf("Expected empty deck from %v", initial)
		}
		if _, err := d.Peek(); !errors.Is(err, ErrEmptyDeck) {
			t.Errorf("Expected ErrEmptyDeck from Peek, got %v", err)
		}
		if _, err := d.Deal(); !errors.Is(err, ErrEmptyDeck) {
			t.Errorf("Expected ErrEmptyDeck from Deal, got %v", err)
		}
		if _, err := d.DealFace(card.FaceUp); !errors.Is(err, ErrEmptyDeck) {
			t.Errorf("Expected ErrEmptyDeck from DealFace, got %v", err)
		}
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	in := aces()
	d := New(in)
	in[0] = up(card.King, card.Hearts)

	if top, _ := d.Peek(); top != up(card.Ace, card.Clubs) {
		t.Error("Deck shares storage with the caller's slice")
	}
}

func TestStandard(t *testing.T) {
	d := Standard()
	if d.Len() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.Len())
	}

	got := dealAll(t, d)
	want := card.Standard52(card.FaceDown)
	if !slices.Equal(got, want) {
		t.Errorf("Expected canonical order")
	}
	if got[0] != down(card.Ace, card.Clubs) || got[51] != down(card.King, card.Spades) {
		t.Errorf("Unexpected ends %v ... %v", got[0], got[51])
	}

	seen := make(map[card.Card]bool)
	for _, c := range got {
		if c.IsJoker() || c.Face() != card.FaceDown {
			t.Errorf("Unexpected card %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 distinct cards, got %d", len(seen))
	}
}

func TestDealFace(t *testing.T) {
	d := Standard()

	c, err := d.DealFace(card.FaceUp)
	if err != nil {
		t.Fatal(err)
	}
	if c != up(card.Ace, card.Clubs) {
		t.Errorf("Expected ace of clubs face up, got %v", c)
	}

	c, err = d.Deal()
	if err != nil {
		t.Fatal(err)
	}
	if c.Face() != card.FaceDown {
		t.Error("Expected Deal to keep the card's face")
	}

	if _, err := d.DealFace("sideways"); !errors.Is(err, card.ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if d.Len() != 50 {
		t.Errorf("Expected invalid face to leave the deck alone, got %d cards", d.Len())
	}
}

func TestDealSeveral(t *testing.T) {
	d := New(aces())

	got, err := d.DealSeveral(3)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, aces()[:3]) {
		t.Errorf("Expected first three aces, got %v", got)
	}

	none, err := d.DealSeveral(0)
	if err != nil || len(none) != 0 {
		t.Errorf("Expected empty deal, got %v, %v", none, err)
	}

	if _, err := d.DealSeveral(-1); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("Expected 1 card left, got %d", d.Len())
	}
}

func TestDealSeveral_PartialFailure(t *testing.T) {
	d := New(aces())

	got, err := d.DealSeveral(6)
	if !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("Expected ErrEmptyDeck, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no cards on failure, got %v", got)
	}
	// Cards dealt before running out stay removed
	if !d.IsEmpty() {
		t.Errorf("Expected the deck to be drained, %d left", d.Len())
	}
}

func TestDealSeveral_HugeCount(t *testing.T) {
	d := New([]card.Card{up(card.Ace, card.Clubs)})

	got, err := d.DealSeveral(math.MaxInt)
	if !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("Expected ErrEmptyDeck, got %v", err)
	}
	if got != nil || !d.IsEmpty() {
		t.Errorf("Expected no cards and an empty deck, got %v with %d left", got, d.Len())
	}
}

func TestDealSeveralFace(t *testing.T) {
	d := Standard()

	got, err := d.DealSeveralFace(3, card.FaceUp)
	if err != nil {
		t.Fatal(err)
	}
	want := []card.Card{
		up(card.Ace, card.Clubs),
		up(card.Ace, card.Diamonds),
		up(card.Ace, card.Hearts),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if _, err := d.DealSeveralFace(2, "edge"); !errors.Is(err, card.ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
	if d.Len() != 49 {
		t.Errorf("Expected 49 cards, got %d", d.Len())
	}
}

func TestAdd(t *testing.T) {
	d := New(aces())
	king := up(card.King, card.Hearts)
	joker := card.MustNew(card.Joker, card.NoSuit, card.FaceDown)

	d.Add(king)
	if top, _ := d.Peek(); top != king {
		t.Errorf("Expected king on top, got %v", top)
	}

	d.AddToBottom(joker)
	cards := d.Cards()
	if cards[0] != king || cards[len(cards)-1] != joker {
		t.Errorf("Unexpected order %v", cards)
	}
	if d.Len() != 6 {
		t.Errorf("Expected 6 cards, got %d", d.Len())
	}

	// Adding never changes the reset sequence
	if !slices.Equal(d.Initial(), aces()) {
		t.Errorf("Initial changed to %v", d.Initial())
	}
}

func TestAdd_SameCardTwice(t *testing.T) {
	d := New(nil)
	c := up(card.Two, card.Spades)
	d.Add(c)
	d.Add(c)
	if d.Len() != 2 {
		t.Errorf("Expected duplicates to be kept, got %d cards", d.Len())
	}
}

func TestReset(t *testing.T) {
	d := Standard(WithSeed(3))
	d.Shuffle()
	if _, err := d.DealSeveral(10); err != nil {
		t.Fatal(err)
	}
	d.Add(up(card.Queen, card.Hearts))

	d.Reset()
	got := d.Cards()
	if !slices.Equal(got, card.Standard52(card.FaceDown)) {
		t.Error("Expected Reset to restore the canonical face-down order")
	}

	// Mutating a returned copy does not reach the deck
	got[0] = up(card.Queen, card.Hearts)
	if top, _ := d.Peek(); top != down(card.Ace, card.Clubs) {
		t.Error("Cards returned storage shared with the deck")
	}

	// Dealing after Reset leaves the snapshot intact
	dealAll(t, d)
	d.Reset()
	if d.Len() != 52 {
		t.Errorf("Expected 52 cards after second reset, got %d", d.Len())
	}
}

func TestReset_EmptyInitial(t *testing.T) {
	d := New(nil)
	d.Add(up(card.Five, card.Clubs))
	d.Reset()
	if !d.IsEmpty() {
		t.Error("Expected discard pile to reset to empty")
	}
}

func TestShuffle_Permutation(t *testing.T) {
	d := Standard()
	d.Shuffle()

	if d.Len() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.Len())
	}
	counts := make(map[card.Card]int)
	for _, c := range d.Cards() {
		counts[c]++
	}
	for _, c := range card.Standard52(card.FaceDown) {
		if counts[c] != 1 {
			t.Errorf("Expected %v exactly once, got %d", c, counts[c])
		}
	}

	if !slices.Equal(d.Initial(), card.Standard52(card.FaceDown)) {
		t.Error("Expected Shuffle to leave the initial sequence alone")
	}
}

func TestShuffle_Seeded(t *testing.T) {
	d := New(aces(), WithSeed(42))
	d.Shuffle()

	want := []card.Card{
		up(card.Ace, card.Diamonds),
		up(card.Ace, card.Hearts),
		up(card.Ace, card.Spades),
		up(card.Ace, card.Clubs),
	}
	if got := d.Cards(); !slices.Equal(got, want) {
		t.Errorf("Expected seeded order %v, got %v", want, got)
	}

	// Same seed, same order
	again := New(aces(), WithSeed(42))
	again.Shuffle()
	if !slices.Equal(again.Cards(), want) {
		t.Error("Expected identical order for identical seed")
	}

	seven := New(aces(), WithSeed(7))
	seven.Shuffle()
	want7 := []card.Card{
		up(card.Ace, card.Diamonds),
		up(card.Ace, card.Spades),
		up(card.Ace, card.Hearts),
		up(card.Ace, card.Clubs),
	}
	if !slices.Equal(seven.Cards(), want7) {
		t.Errorf("Expected seed 7 order %v, got %v", want7, seven.Cards())
	}
}

func TestShuffle_SharedRand(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))

	first := New(aces(), WithRand(rng))
	first.Shuffle()
	second := New(aces(), WithRand(rng))
	second.Shuffle()

	want := []card.Card{
		up(card.Ace, card.Diamonds),
		up(card.Ace, card.Clubs),
		up(card.Ace, card.Hearts),
		up(card.Ace, card.Spades),
	}
	if !slices.Equal(second.Cards(), want) {
		t.Errorf("Expected continued stream order %v, got %v", want, second.Cards())
	}
}

func TestShuffle_SeededStandard(t *testing.T) {
	d := Standard(WithSeed(42))
	d.Shuffle()

	got, err := d.DealSeveral(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []card.Card{
		down(card.Five, card.Spades),
		down(card.Nine, card.Clubs),
		down(card.Six, card.Clubs),
		down(card.Seven, card.Hearts),
		down(card.Two, card.Hearts),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	d := New(nil)
	d.Shuffle()
	if !d.IsEmpty() {
		t.Error("Expected empty deck to stay empty")
	}

	one := New([]card.Card{up(card.Three, card.Hearts)})
	one.Shuffle()
	if top, _ := one.Peek(); top != up(card.Three, card.Hearts) {
		t.Error("Expected single card to stay put")
	}
}

// fakeRenderer records draws and reports a fixed card size
type fakeRenderer struct {
	size  image.Point
	drawn []card.Card
	at    []image.Point
	err   error
}

func (f *fakeRenderer) DrawingRect(card.Card) (image.Rectangle, error) {
	return image.Rectangle{Max: f.size}, f.err
}

func (f *fakeRenderer) DefaultRect() (image.Rectangle, error) {
	return image.Rectangle{Max: f.size}, f.err
}

func (f *fakeRenderer) Draw(_ draw.Image, c card.Card, at image.Point) error {
	f.drawn = append(f.drawn, c)
	f.at = append(f.at, at)
	return f.err
}

func TestDrawingRect(t *testing.T) {
	r := &fakeRenderer{size: image.Pt(74, 103)}

	for _, d := range []*Deck{New(nil), New(aces())} {
		rect, err := d.DrawingRect(r)
		if err != nil {
			t.Fatal(err)
		}
		if rect != image.Rect(0, 0, 74, 103) {
			t.Errorf("Expected 74x103 at origin, got %v", rect)
		}
	}
}

func TestDraw_TopCard(t *testing.T) {
	r := &fakeRenderer{size: image.Pt(74, 103)}
	dst := image.NewRGBA(image.Rect(0, 0, 300, 300))
	d := New(aces())

	if err := d.Draw(dst, image.Pt(150, 150), r); err != nil {
		t.Fatal(err)
	}
	if len(r.drawn) != 1 || r.drawn[0] != up(card.Ace, card.Clubs) || r.at[0] != image.Pt(150, 150) {
		t.Errorf("Expected only the top card drawn at (150,150), got %v at %v", r.drawn, r.at)
	}
}

func TestDraw_EmptyPlaceholder(t *testing.T) {
	r := &fakeRenderer{size: image.Pt(74, 103)}
	dst := image.NewRGBA(image.Rect(0, 0, 500, 400))
	d := New(nil)

	if err := d.Draw(dst, image.Pt(300, 150), r); err != nil {
		t.Fatal(err)
	}
	if len(r.drawn) != 0 {
		t.Error("Expected no card drawn for an empty deck")
	}

	outline := []image.Point{{300, 150}, {373, 150}, {300, 252}, {373, 252}, {330, 150}}
	for _, p := range outline {
		if dst.RGBAAt(p.X, p.Y) != PlaceholderColor {
			t.Errorf("Expected outline at %v, got %v", p, dst.RGBAAt(p.X, p.Y))
		}
	}
	for _, p := range []image.Point{{301, 151}, {340, 200}, {374, 150}, {300, 253}} {
		if dst.RGBAAt(p.X, p.Y) != (color.RGBA{}) {
			t.Errorf("Expected untouched pixel at %v", p)
		}
	}
}

func TestDraw_Errors(t *testing.T) {
	boom := errors.New("no sheet")
	r := &fakeRenderer{err: boom}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))

	if err := New(nil).Draw(dst, image.Point{}, r); !errors.Is(err, boom) {
		t.Errorf("Expected renderer error for empty deck, got %v", err)
	}
	if err := New(aces()).Draw(dst, image.Point{}, r); !errors.Is(err, boom) {
		t.Errorf("Expected renderer error for top card, got %v", err)
	}
}

func TestDraw_WithAtlas(t *testing.T) {
	a := atlas.New(atlas.DefaultLayout())
	if err := a.LoadGenerated(); err != nil {
		t.Fatal(err)
	}
	cache := atlas.NewCache(a)
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))

	d := Standard()
	if err := d.Draw(dst, image.Pt(150, 150), cache); err != nil {
		t.Fatal(err)
	}
	// Face-down top card shows the back
	if dst.RGBAAt(150, 150) != atlas.ColorBorder {
		t.Errorf("Expected card border at the anchor, got %v", dst.RGBAAt(150, 150))
	}
	if cache.Len() != 1 {
		t.Errorf("Expected one cached sprite, got %d", cache.Len())
	}
}
