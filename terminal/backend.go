package terminal

import (
	"fmt"
	"image"
	"log"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cardkit/core"
	"github.com/lixenwraith/cardkit/engine"
	"github.com/lixenwraith/cardkit/render"
)

// DefaultScale is the number of frame pixels per terminal column
const DefaultScale = 5

// eventBuffer bounds input queued between frames
const eventBuffer = 64

var titleStyle = tcell.StyleDefault.Reverse(true)

// Backend draws frames into a tcell screen and turns terminal input into loop events.
// Row 0 holds the title bar; the frame starts on row 1.
type Backend struct {
	screen    tcell.Screen
	presenter *render.Presenter
	scale     int
	mode      render.Mode
	title     string

	events chan engine.Event
	quit   chan struct{}
	wg     sync.WaitGroup

	// Buttons held at the previous mouse event, so only new presses are reported
	prevButtons tcell.ButtonMask
}

// Option configures a Backend
type Option func(*Backend)

// WithScreen uses an existing screen instead of the process terminal
func WithScreen(s tcell.Screen) Option {
	return func(b *Backend) { b.screen = s }
}

// WithScale sets frame pixels per column; values below 1 are ignored
func WithScale(scale int) Option {
	return func(b *Backend) {
		if scale >= 1 {
			b.scale = scale
		}
	}
}

// WithMode selects the cell encoding
func WithMode(m render.Mode) Option {
	return func(b *Backend) { b.mode = m }
}

// New creates a terminal backend. The screen is opened by Init.
func New(opts ...Option) *Backend {
	b := &Backend{
		scale:  DefaultScale,
		mode:   render.ModeHalfBlock,
		events: make(chan engine.Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init opens the screen. The frame size is fixed by the loop; the terminal shows
// as much of it as fits.
func (b *Backend) Init(w, h int) error {
	if b.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		b.screen = s
	}
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashFinalizer(b.screen.Fini)

	b.screen.EnableMouse(tcell.MouseButtonEvents)
	b.screen.HideCursor()
	b.screen.Clear()

	b.presenter = render.NewPresenter(b.screen, b.scale,
		render.WithMode(b.mode), render.WithOffset(image.Pt(0, 1)))
	b.quit = make(chan struct{})

	cols, rows := b.presenter.CellsFor(image.Pt(w, h))
	sw, sh := b.screen.Size()
	log.Printf("terminal: frame %dx%d needs %dx%d cells, screen is %dx%d", w, h, cols, rows+1, sw, sh)

	b.wg.Add(1)
	core.Go(func() {
		defer b.wg.Done()
		b.pollLoop()
	})
	return nil
}

// SetTitle sets the text of the title bar
func (b *Backend) SetTitle(title string) {
	b.title = title
	if b.screen != nil {
		b.screen.SetTitle(title)
	}
}

// PollEvents returns the events queued since the last call without blocking
func (b *Backend) PollEvents() []engine.Event {
	var out []engine.Event
	for {
		select {
		case ev := <-b.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Present draws the title bar and the frame, then flushes the screen
func (b *Backend) Present(frame *image.RGBA) error {
	if b.presenter == nil {
		return fmt.Errorf("terminal: present before init")
	}
	b.drawTitle()
	b.presenter.Present(frame)
	return nil
}

// Fini stops input polling and restores the terminal
func (b *Backend) Fini() {
	if b.quit == nil {
		return
	}
	close(b.quit)
	b.screen.Fini()
	b.wg.Wait()
	b.quit = nil
	core.SetCrashFinalizer(nil)
}

func (b *Backend) drawTitle() {
	w, _ := b.screen.Size()
	for x := 0; x < w; x++ {
		b.screen.SetContent(x, 0, ' ', nil, titleStyle)
	}

	title := b.title
	if runewidth.StringWidth(title) > w {
		title = runewidth.Truncate(title, w, "…")
	}
	x := (w - runewidth.StringWidth(title)) / 2
	for _, r := range title {
		b.screen.SetContent(x, 0, r, nil, titleStyle)
		x += runewidth.RuneWidth(r)
	}
}

func (b *Backend) pollLoop() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		out, ok := b.translate(ev)
		if !ok {
			continue
		}
		select {
		case b.events <- out:
		case <-b.quit:
			return
		}
	}
}

// translate maps a tcell event to a loop event. Terminals report a key once per
// press with no release, so each press becomes a key-up.
func (b *Backend) translate(ev tcell.Event) (engine.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev)

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons &^ b.prevButtons
		b.prevButtons = buttons

		var button engine.Button
		switch {
		case pressed&tcell.Button1 != 0:
			button = engine.ButtonLeft
		case pressed&tcell.Button2 != 0:
			button = engine.ButtonRight
		case pressed&tcell.Button3 != 0:
			button = engine.ButtonMiddle
		default:
			return nil, false
		}
		pos, ok := b.presenter.CellToPixel(ev.Position())
		if !ok {
			return nil, false
		}
		return engine.EventMouseDown{Pos: pos, Button: button}, true

	case *tcell.EventResize:
		w, h := ev.Size()
		return engine.EventResize{Size: image.Pt(w, h)}, true
	}
	return nil, false
}

func translateKey(ev *tcell.EventKey) (engine.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return engine.EventQuit{}, true
	case tcell.KeyRune:
		return engine.EventKeyUp{Key: engine.KeyRune, Rune: unicode.ToLower(ev.Rune())}, true
	case tcell.KeyEnter:
		return engine.EventKeyUp{Key: engine.KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return engine.EventKeyUp{Key: engine.KeyBackspace}, true
	case tcell.KeyTab:
		return engine.EventKeyUp{Key: engine.KeyTab}, true
	case tcell.KeyUp:
		return engine.EventKeyUp{Key: engine.KeyUp}, true
	case tcell.KeyDown:
		return engine.EventKeyUp{Key: engine.KeyDown}, true
	case tcell.KeyLeft:
		return engine.EventKeyUp{Key: engine.KeyLeft}, true
	case tcell.KeyRight:
		return engine.EventKeyUp{Key: engine.KeyRight}, true
	}
	return nil, false
}
