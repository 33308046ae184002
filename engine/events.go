// Package engine runs a card game at a fixed frame rate.
//
// A Loop owns one Backend (the window or terminal the frame is shown on) and
// one Game. Every tick the loop drains the backend's pending input, hands each
// event to the game, lets the game draw the frame, and presents it:
//
//	events := backend.PollEvents()
//	loop.Step(events)       // HandleEvent for each event, then Draw
//	backend.Present(frame)
//
// Everything runs on the goroutine that called Run. Backends that read input
// on their own goroutine only queue events for PollEvents to drain.
package engine

import (
	"fmt"
	"image"
)

// Event is one input notification delivered to Game.HandleEvent
type Event interface {
	isEvent()
}

// Key identifies a keyboard key independent of the backend.
// KeyRune covers every printable key; EventKeyUp.Rune tells which.
type Key int

const (
	KeyUnknown Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Button is a mouse button number
type Button int

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// EventKeyUp reports a released key. Printable keys carry their lower-case rune.
// Terminals report presses only, so the terminal backend sends one EventKeyUp per press.
type EventKeyUp struct {
	Key  Key
	Rune rune
}

// EventMouseDown reports a pressed mouse button at a frame pixel position
type EventMouseDown struct {
	Pos    image.Point
	Button Button
}

// EventQuit asks the loop to stop
type EventQuit struct{}

// EventResize reports a new display size in backend units (cells or pixels).
// The frame size is fixed; games may ignore it.
type EventResize struct {
	Size image.Point
}

func (EventKeyUp) isEvent() {}
func (EventMouseDown) isEvent() {}
func (EventQuit) isEvent() {}
func (EventResize) isEvent() {}
