// Package flash shows a multi-line text message that stays for a while and then fades out.
package flash

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/cardkit/engine"
	"github.com/lixenwraith/cardkit/render"
)

// DefaultFadeDuration is how long a message takes to fade out
const DefaultFadeDuration = 2 * time.Second

// State is the display phase of a Message
type State int

const (
	// Hidden draws nothing
	Hidden State = iota
	// Armed is set by Show; the timers start on the next Draw
	Armed
	// Showing draws at full strength
	Showing
	// Fading draws with decreasing opacity
	Fading
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Showing:
		return "showing"
	case Fading:
		return "fading"
	default:
		return "hidden"
	}
}

// Message is a text overlay. The show timers start on the first Draw after
// Show, so a message armed before the loop starts is not cut short.
type Message struct {
	lines        []string
	duration     time.Duration
	fadeDuration time.Duration
	ink          color.Color
	face         font.Face
	clock        engine.TimeProvider

	rendered  []*image.RGBA
	armed     bool
	start     time.Time
	fadeStart time.Time
	end       time.Time
}

// Option configures a Message
type Option func(*Message)

// WithFadeDuration sets how long the fade takes; negative values are treated as zero
func WithFadeDuration(d time.Duration) Option {
	return func(m *Message) { m.fadeDuration = max(d, 0) }
}

// WithColor sets the text color
func WithColor(c color.Color) Option {
	return func(m *Message) { m.ink = c }
}

// WithFace sets the font face
func WithFace(f font.Face) Option {
	return func(m *Message) { m.face = f }
}

// WithClock sets the time source, normally the loop's clock
func WithClock(tp engine.TimeProvider) Option {
	return func(m *Message) { m.clock = tp }
}

// New creates a hidden message. Lines are separated by '\n'; duration is how long
// the text stays at full strength before fading.
func New(text string, duration time.Duration, opts ...Option) *Message {
	m := &Message{
		lines:        strings.Split(text, "\n"),
		duration:     max(duration, 0),
		fadeDuration: DefaultFadeDuration,
		ink:          color.Black,
		face:         basicfont.Face7x13,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = engine.NewMonotonicTimeProvider()
	}
	return m
}

// Lines returns the message text split into lines
func (m *Message) Lines() []string {
	return append([]string(nil), m.lines...)
}

// Show arms the message and pre-renders its lines. Showing a visible message
// restarts its timers on the next Draw.
func (m *Message) Show() {
	m.rendered = m.rendered[:0]
	for _, line := range m.lines {
		m.rendered = append(m.rendered, render.RenderText(m.face, line, m.ink))
	}
	m.armed = true
	m.clear()
}

// State reports the phase at the current clock time
func (m *Message) State() State {
	switch {
	case !m.armed:
		return Hidden
	case m.start.IsZero():
		return Armed
	}
	now := m.clock.Now()
	switch {
	case now.Before(m.fadeStart):
		return Showing
	case now.Before(m.end):
		return Fading
	default:
		return Hidden
	}
}

// Opacity returns the strength the message would be drawn with now, in [0, 1]
func (m *Message) Opacity() float64 {
	if !m.armed {
		return 0
	}
	if m.start.IsZero() {
		return 1
	}
	return m.opacityAt(m.clock.Now())
}

func (m *Message) opacityAt(now time.Time) float64 {
	switch {
	case now.Before(m.fadeStart):
		return 1
	case now.Before(m.end):
		fade := float64(now.Sub(m.fadeStart)) / float64(m.end.Sub(m.fadeStart))
		return 1 - max(fade, 0)
	default:
		return 0
	}
}

// Bounds returns the area the message covers when drawn at location
func (m *Message) Bounds(location image.Point) image.Rectangle {
	lineHeight := m.face.Metrics().Height.Ceil()
	r := image.Rectangle{Min: location, Max: location}
	for i, line := range m.lines {
		size := render.MeasureText(m.face, line)
		top := location.Add(image.Pt(0, i*lineHeight))
		r = r.Union(image.Rectangle{Min: top, Max: top.Add(size)})
	}
	return r
}

// Draw draws the message with its top left corner at location.
// Nothing is drawn unless Show was called; after the fade the message hides itself.
func (m *Message) Draw(dst draw.Image, location image.Point) {
	if !m.armed {
		return
	}

	now := m.clock.Now()
	if m.start.IsZero() {
		m.start = now
		m.fadeStart = m.start.Add(m.duration)
		m.end = m.fadeStart.Add(m.fadeDuration)
	}

	if !now.Before(m.end) {
		m.armed = false
		m.clear()
		return
	}

	opacity := m.opacityAt(now)
	lineHeight := m.face.Metrics().Height.Ceil()
	for _, img := range m.rendered {
		src := img
		if opacity < 1 {
			src = render.ScaleImage(img, opacity)
		}
		r := img.Bounds().Add(location)
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
		location = location.Add(image.Pt(0, lineHeight))
	}
}

func (m *Message) clear() {
	m.start = time.Time{}
	m.fadeStart = time.Time{}
	m.end = time.Time{}
}
