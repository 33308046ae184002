package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"
)

const (
	DefaultFPS    = 30
	DefaultWidth  = 700
	DefaultHeight = 500
	DefaultTitle  = "Card Game"
)

// Loop runs a Game against a Backend at a fixed target frame rate
type Loop struct {
	backend Backend
	game    Game
	clock   TimeProvider

	fps   int
	size  image.Point
	title string

	frame       *image.RGBA
	lastTick    time.Time
	dt          time.Duration
	frameNumber uint64
}

// Option configures a Loop
type Option func(*Loop)

// WithFPS sets the target frames per second; values below 1 are ignored
func WithFPS(fps int) Option {
	return func(l *Loop) {
		if fps > 0 {
			l.fps = fps
		}
	}
}

// WithSize sets the frame size in pixels; non-positive sizes are ignored
func WithSize(w, h int) Option {
	return func(l *Loop) {
		if w > 0 && h > 0 {
			l.size = image.Pt(w, h)
		}
	}
}

// WithTimeProvider replaces the monotonic clock
func WithTimeProvider(tp TimeProvider) Option {
	return func(l *Loop) {
		if tp != nil {
			l.clock = tp
		}
	}
}

// WithTitle sets the window or title bar caption
func WithTitle(title string) Option {
	return func(l *Loop) { l.title = title }
}

// NewLoop creates a loop; nothing is opened until Run
func NewLoop(backend Backend, game Game, opts ...Option) *Loop {
	l := &Loop{
		backend: backend,
		game:    game,
		clock:   NewMonotonicTimeProvider(),
		fps:     DefaultFPS,
		size:    image.Pt(DefaultWidth, DefaultHeight),
		title:   DefaultTitle,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.frame = image.NewRGBA(image.Rectangle{Max: l.size})
	return l
}

// Clock returns the time provider the loop ticks against
func (l *Loop) Clock() TimeProvider { return l.clock }

// FPS returns the target frame rate
func (l *Loop) FPS() int { return l.fps }

// Size returns the frame size in pixels
func (l *Loop) Size() image.Point { return l.size }

// Title returns the caption passed to the backend
func (l *Loop) Title() string { return l.title }

// Frame returns the surface games draw on
func (l *Loop) Frame() *image.RGBA { return l.frame }

// Dt returns the time between the two most recent ticks, zero before the second tick
func (l *Loop) Dt() time.Duration { return l.dt }

// FrameNumber returns the number of ticks run so far
func (l *Loop) FrameNumber() uint64 { return l.frameNumber }

// FrameInterval returns the target time between ticks
func (l *Loop) FrameInterval() time.Duration {
	return time.Second / time.Duration(l.fps)
}

// Step runs one tick with the given events. Events are dispatched in order until
// the first EventQuit; a quit skips the remaining events and the draw and returns false.
func (l *Loop) Step(events []Event) bool {
	now := l.clock.Now()
	if !l.lastTick.IsZero() {
		l.dt = now.Sub(l.lastTick)
	}
	l.lastTick = now
	l.frameNumber++

	for _, ev := range events {
		if _, quit := ev.(EventQuit); quit {
			return false
		}
		l.game.HandleEvent(ev)
	}

	l.game.Draw(l.frame)
	return true
}

// Run initializes the backend, readies the game and ticks until a quit event
// or ctx is done. The backend is always finalized once Init succeeded.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.backend.Init(l.size.X, l.size.Y); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer l.backend.Fini()

	if t, ok := l.backend.(titler); ok {
		t.SetTitle(l.title)
	}

	if err := l.game.Ready(l); err != nil {
		return fmt.Errorf("game ready: %w", err)
	}

	log.Printf("loop: start %dx%d at %d fps", l.size.X, l.size.Y, l.fps)
	defer func() { log.Printf("loop: stop after %d frames", l.frameNumber) }()

	var err error
	if d, ok := l.backend.(Driver); ok {
		err = d.Drive(ctx, l.fps, l.tick)
	} else {
		err = l.drive(ctx)
	}
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// tick runs one step and presents the frame
func (l *Loop) tick() error {
	if !l.Step(l.backend.PollEvents()) {
		return ErrQuit
	}
	if err := l.backend.Present(l.frame); err != nil {
		return fmt.Errorf("present frame %d: %w", l.frameNumber, err)
	}
	return nil
}

func (l *Loop) drive(ctx context.Context) error {
	frameTicker := time.NewTicker(l.FrameInterval())
	defer frameTicker.Stop()

	for {
		if err := l.tick(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-frameTicker.C:
		}
	}
}
