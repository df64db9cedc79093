package engine

import "github.com/lixenwraith/tendril/vmath"

// History is a fixed-capacity FIFO of position snapshots
// Snapshots are value copies; callers may keep mutating their source slices
type History struct {
	buf   [][]vmath.Vec2
	head  int // index of the oldest snapshot
	count int
}

// NewHistory creates a ring holding up to capacity snapshots; capacity < 0 is treated as 0
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{buf: make([][]vmath.Vec2, capacity)}
}

// Push copies snapshot into the ring, evicting the oldest when full
func (h *History) Push(snapshot []vmath.Vec2) {
	n := len(h.buf)
	if n == 0 {
		return
	}

	var slot int
	if h.count < n {
		slot = (h.head + h.count) % n
		h.count++
	} else {
		slot = h.head
		h.head = (h.head + 1) % n
	}
	// Reuse the evicted backing array when it is big enough
	h.buf[slot] = append(h.buf[slot][:0], snapshot...)
}

// Len returns the number of stored snapshots
func (h *History) Len() int { return h.count }

// Cap returns the ring capacity
func (h *History) Cap() int { return len(h.buf) }

// At returns snapshot i, 0 being the oldest
// INTERNAL USE ONLY - callers must not modify the returned slice
func (h *History) At(i int) []vmath.Vec2 {
	if i < 0 || i >= h.count {
		return nil
	}
	return h.buf[(h.head+i)%len(h.buf)]
}

// Each visits snapshots oldest first
func (h *History) Each(fn func(i int, snapshot []vmath.Vec2)) {
	for i := 0; i < h.count; i++ {
		fn(i, h.At(i))
	}
}

// Clear drops all snapshots
func (h *History) Clear() {
	h.head, h.count = 0, 0
}
