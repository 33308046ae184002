package engine

import (
	"context"
	"errors"
	"image"
)

// ErrQuit is returned by a tick once the game has received EventQuit
var ErrQuit = errors.New("engine: quit")

// Game is driven by a Loop
type Game interface {
	// Ready runs once after the backend is initialized and before the first tick
	Ready(l *Loop) error
	// HandleEvent receives every event of a tick except EventQuit, in order
	HandleEvent(ev Event)
	// Draw renders the whole frame; it runs after the tick's events
	Draw(frame *image.RGBA)
}

// Backend shows frames and supplies input
type Backend interface {
	// Init opens the display for a frame of w x h pixels
	Init(w, h int) error
	// PollEvents returns the events queued since the previous call without blocking
	PollEvents() []Event
	// Present shows a finished frame
	Present(frame *image.RGBA) error
	// Fini releases the display; it is called once, also after a failed Ready
	Fini()
}

// titler is implemented by backends that can show a title
type titler interface {
	SetTitle(title string)
}

// Driver is implemented by backends that own the frame clock, such as window
// toolkits that must run on the main goroutine. Drive calls tick at about fps
// times per second until tick fails or ctx is done; a tick error, including
// ErrQuit, is returned as is.
type Driver interface {
	Drive(ctx context.Context, fps int, tick func() error) error
}
