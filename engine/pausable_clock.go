package engine

import (
	"sync"
	"time"
)

// PausableClock provides simulation time that freezes while paused
// Safe for concurrent use; the interactive loop reads it from the tick goroutine only
type PausableClock struct {
	mu sync.RWMutex

	src   TimeSource
	start time.Time // real time at creation, also the game epoch

	paused      bool
	pauseStart  time.Time     // real time the current pause began
	pausedTotal time.Duration // cumulative pause duration
}

// NewPausableClock creates a running clock over src; nil uses SystemTime
func NewPausableClock(src TimeSource) *PausableClock {
	if src == nil {
		src = SystemTime{}
	}
	return &PausableClock{src: src, start: src.Now()}
}

// Now returns game time: real elapsed minus time spent paused
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		// Frozen at the pause point
		return c.start.Add(c.pauseStart.Sub(c.start) - c.pausedTotal)
	}
	return c.start.Add(c.src.Now().Sub(c.start) - c.pausedTotal)
}

// RealTime returns source time, unaffected by pause
func (c *PausableClock) RealTime() time.Time {
	return c.src.Now()
}

// Pause stops game time; no-op when already paused
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.src.Now()
}

// Resume continues game time; no-op when running
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.pausedTotal += c.src.Now().Sub(c.pauseStart)
	c.pauseStart = time.Time{}
	c.paused = false
}

// IsPaused returns current pause state
func (c *PausableClock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// PausedFor returns cumulative pause time including the current pause
func (c *PausableClock) PausedFor() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.pausedTotal
	if c.paused {
		total += c.src.Now().Sub(c.pauseStart)
	}
	return total
}
