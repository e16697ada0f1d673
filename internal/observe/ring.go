package observe

import (
	"sync"

	"github.com/bft-labs/padstream/internal/domain"
)

// ring is a fixed-capacity frame buffer that overwrites its oldest unread
// entry when full. One writer (the scheduler), one reader (the observer);
// the mutex is held only for O(1) slot bookkeeping so the writer never waits
// on reader pace.
type ring struct {
	mu    sync.Mutex
	buf   []domain.Frame
	head  int // index of oldest unread entry
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]domain.Frame, capacity)}
}

// push appends a frame, dropping the oldest unread entry when full.
// Returns true when an entry was dropped.
func (r *ring) push(f domain.Frame) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == len(r.buf) {
		// Overwrite the oldest slot.
		r.buf[r.head] = f
		r.head = (r.head + 1) % len(r.buf)
		return true
	}

	r.buf[(r.head+r.count)%len(r.buf)] = f
	r.count++
	return false
}

// pop removes and returns the oldest unread frame.
func (r *ring) pop() (domain.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return domain.Frame{}, false
	}

	f := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return f, true
}

func (r *ring) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
