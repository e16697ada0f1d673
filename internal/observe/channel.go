// Package observe implements the observation channel: a bounded, drop-oldest
// broadcast of published frames to zero or more observers.
//
// The channel decouples a hard-real-time producer (the tick loop) from
// observers that read at their own pace, such as a debug viewer. Publish
// never blocks; when an observer's buffer is full the oldest unread frame is
// dropped. Frames may be dropped for observation but never reordered or
// duplicated.
package observe

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/padstream/internal/domain"
)

// Channel errors.
var (
	ErrObserverExists  = errors.New("observe: observer id already attached")
	ErrObserverUnknown = errors.New("observe: observer id not attached")
)

// Channel fans out published frames to attached observers.
// Publish is called by a single producer; Attach and Detach are safe to call
// concurrently from any goroutine, including while the producer is running.
type Channel struct {
	mu        sync.RWMutex
	capacity  int
	observers map[string]*Observer
	published uint64
}

// NewChannel creates a channel whose observers each buffer up to capacity
// frames.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel{
		capacity:  capacity,
		observers: make(map[string]*Observer),
	}
}

// Attach registers a new observer under id. The observer starts empty: no
// backlog of previously published frames is delivered.
func (c *Channel) Attach(id string) (*Observer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.observers[id]; exists {
		return nil, ErrObserverExists
	}

	o := &Observer{id: id, ring: newRing(c.capacity)}
	c.observers[id] = o
	return o, nil
}

// Detach unregisters the observer with the given id.
func (c *Channel) Detach(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.observers[id]; !exists {
		return ErrObserverUnknown
	}
	delete(c.observers, id)
	return nil
}

// Publish delivers a frame to every attached observer, dropping each
// observer's oldest unread frame when its buffer is full. Never blocks.
func (c *Channel) Publish(f domain.Frame) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	atomic.AddUint64(&c.published, 1)

	for _, o := range c.observers {
		if o.ring.push(f) {
			atomic.AddUint64(&o.dropped, 1)
		}
		atomic.AddUint64(&o.delivered, 1)
	}
}

// Published returns the total number of frames published to the channel.
func (c *Channel) Published() uint64 {
	return atomic.LoadUint64(&c.published)
}

// Observer reads published frames at its own pace.
type Observer struct {
	id        string
	ring      *ring
	delivered uint64
	dropped   uint64
}

// ID returns the observer's registration id.
func (o *Observer) ID() string { return o.id }

// Poll returns the oldest unread frame without blocking.
// ok is false when nothing is buffered.
func (o *Observer) Poll() (f domain.Frame, ok bool) {
	return o.ring.pop()
}

// Drain returns all buffered frames in publication order.
func (o *Observer) Drain() []domain.Frame {
	var out []domain.Frame
	for {
		f, ok := o.ring.pop()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

// Len returns the number of buffered unread frames.
func (o *Observer) Len() int { return o.ring.len() }

// Stats returns the number of frames delivered to this observer and the
// number dropped because its buffer was full.
func (o *Observer) Stats() (delivered, dropped uint64) {
	return atomic.LoadUint64(&o.delivered), atomic.LoadUint64(&o.dropped)
}
