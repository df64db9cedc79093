package engine

import (
	"sync"
	"time"
)

// TimeSource supplies real time to a PausableClock
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the system clock with its monotonic component
type SystemTime struct{}

// Now returns time.Now()
func (SystemTime) Now() time.Time {
	return time.Now()
}

// MockTime is a controllable time source for tests
type MockTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTime creates a mock starting at start
func NewMockTime(start time.Time) *MockTime {
	return &MockTime{now: start}
}

// Now returns the current mocked time
func (m *MockTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps the mock to t
func (m *MockTime) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock forward by d
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
