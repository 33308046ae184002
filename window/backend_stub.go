//go:build !ebiten

package window

import (
	"image"

	"github.com/lixenwraith/cardkit/engine"
)

// Backend is a placeholder for builds without a window system
type Backend struct {
	scale int
}

// New returns a backend that cannot be initialized
func New(opts ...Option) *Backend {
	b := &Backend{scale: DefaultScale}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init always fails with ErrUnavailable
func (b *Backend) Init(w, h int) error { return ErrUnavailable }

// PollEvents returns nothing
func (b *Backend) PollEvents() []engine.Event { return nil }

// Present always fails with ErrUnavailable
func (b *Backend) Present(frame *image.RGBA) error { return ErrUnavailable }

// Fini is a no-op
func (b *Backend) Fini() {}

// Available reports whether this build can open a window
const Available = false
