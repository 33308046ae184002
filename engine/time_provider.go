package engine

import "time"

// TimeProvider is the clock shared by the loop and everything timed against it
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// Millis returns milliseconds elapsed since the provider was created
	Millis() int64
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct {
	start time.Time
}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{start: time.Now()}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// Millis returns milliseconds since the provider was created
func (p *MonotonicTimeProvider) Millis() int64 {
	return time.Since(p.start).Milliseconds()
}
