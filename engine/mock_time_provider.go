package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a clock that only moves when told to. Time is kept as an
// offset from the start, so Millis and Now always agree.
type MockTimeProvider struct {
	mu     sync.Mutex
	start  time.Time
	offset time.Duration
}

// NewMockTimeProvider creates a mock clock reading start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start.Add(m.offset)
}

func (m *MockTimeProvider) Millis() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset.Milliseconds()
}

// SetTime jumps to t, which may be before the start
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = t.Sub(m.start)
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset += d
}
