// Package window shows frames in a desktop window through Ebitengine.
// The window backend is only compiled with the ebiten build tag; without it
// New returns a backend whose Init fails with ErrUnavailable.
package window

import "errors"

// DefaultScale is the window size multiplier applied to the frame size
const DefaultScale = 1

// ErrUnavailable is returned by Init in builds without the ebiten tag
var ErrUnavailable = errors.New("window: built without the ebiten tag")

// Option configures a Backend
type Option func(*Backend)

// WithScale multiplies the initial window size; values below 1 are ignored
func WithScale(scale int) Option {
	return func(b *Backend) {
		if scale >= 1 {
			b.scale = scale
		}
	}
}
