//go:build ebiten

package window

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/cardkit/engine"
)

// Available reports whether this build can open a window
const Available = true

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button engine.Button
}{
	{ebiten.MouseButtonLeft, engine.ButtonLeft},
	{ebiten.MouseButtonMiddle, engine.ButtonMiddle},
	{ebiten.MouseButtonRight, engine.ButtonRight},
}

// Backend shows frames in an Ebitengine window. It owns the frame clock, so the
// loop drives it through Drive, which must run on the main goroutine.
type Backend struct {
	scale int
	size  image.Point
	title string

	pixels []byte
	image  *ebiten.Image
	keys   []ebiten.Key
}

// New creates a window backend. The window opens when the loop starts driving it.
func New(opts ...Option) *Backend {
	b := &Backend{scale: DefaultScale}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init sizes the window for a frame of w x h pixels
func (b *Backend) Init(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("window: invalid frame size %dx%d", w, h)
	}
	b.size = image.Pt(w, h)
	b.pixels = make([]byte, 4*w*h)
	ebiten.SetWindowSize(w*b.scale, h*b.scale)
	ebiten.SetWindowClosingHandled(true)
	log.Printf("window: %dx%d at scale %d", w, h, b.scale)
	return nil
}

// SetTitle sets the window caption
func (b *Backend) SetTitle(title string) {
	b.title = title
	ebiten.SetWindowTitle(title)
}

// PollEvents reads the input state of the current tick. A close request comes
// first, then released keys, then new mouse presses.
func (b *Backend) PollEvents() []engine.Event {
	var out []engine.Event
	if ebiten.IsWindowBeingClosed() {
		out = append(out, engine.EventQuit{})
	}

	b.keys = inpututil.AppendJustReleasedKeys(b.keys[:0])
	for _, k := range b.keys {
		if ev, ok := translateKey(k); ok {
			out = append(out, ev)
		}
	}

	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.ebiten) {
			x, y := ebiten.CursorPosition()
			out = append(out, engine.EventMouseDown{Pos: image.Pt(x, y), Button: mb.button})
		}
	}
	return out
}

// Present copies the frame; it reaches the window on the next draw
func (b *Backend) Present(frame *image.RGBA) error {
	if frame.Bounds().Size() != b.size {
		return fmt.Errorf("window: frame %v does not match %v", frame.Bounds().Size(), b.size)
	}
	copy(b.pixels, frame.Pix)
	return nil
}

// Fini releases the frame image
func (b *Backend) Fini() {
	if b.image != nil {
		b.image.Deallocate()
		b.image = nil
	}
	log.Printf("window: closed")
}

// Drive runs the Ebitengine game loop at fps ticks per second
func (b *Backend) Drive(ctx context.Context, fps int, tick func() error) error {
	ebiten.SetTPS(fps)
	r := &runner{backend: b, ctx: ctx, tick: tick}
	if err := ebiten.RunGame(r); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return r.err
}

// runner adapts the loop tick to ebiten.Game
type runner struct {
	backend *Backend
	ctx     context.Context
	tick    func() error
	err     error
}

func (r *runner) Update() error {
	if r.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := r.tick(); err != nil {
		r.err = err
		return ebiten.Termination
	}
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	b := r.backend
	if b.image == nil {
		b.image = ebiten.NewImage(b.size.X, b.size.Y)
	}
	b.image.WritePixels(b.pixels)
	screen.DrawImage(b.image, nil)
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.backend.size.X, r.backend.size.Y
}

func translateKey(k ebiten.Key) (engine.Event, bool) {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return engine.EventKeyUp{Key: engine.KeyRune, Rune: 'a' + rune(k-ebiten.KeyA)}, true
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return engine.EventKeyUp{Key: engine.KeyRune, Rune: '0' + rune(k-ebiten.KeyDigit0)}, true
	}

	switch k {
	case ebiten.KeySpace:
		return engine.EventKeyUp{Key: engine.KeyRune, Rune: ' '}, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return engine.EventKeyUp{Key: engine.KeyEnter}, true
	case ebiten.KeyEscape:
		return engine.EventKeyUp{Key: engine.KeyEscape}, true
	case ebiten.KeyBackspace:
		return engine.EventKeyUp{Key: engine.KeyBackspace}, true
	case ebiten.KeyTab:
		return engine.EventKeyUp{Key: engine.KeyTab}, true
	case ebiten.KeyArrowUp:
		return engine.EventKeyUp{Key: engine.KeyUp}, true
	case ebiten.KeyArrowDown:
		return engine.EventKeyUp{Key: engine.KeyDown}, true
	case ebiten.KeyArrowLeft:
		return engine.EventKeyUp{Key: engine.KeyLeft}, true
	case ebiten.KeyArrowRight:
		return engine.EventKeyUp{Key: engine.KeyRight}, true
	}
	return nil, false
}
