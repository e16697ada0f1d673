package serialport

import (
	"context"
	"sync/atomic"

	"github.com/bft-labs/padstream/internal/wire"
)

// Noop is the headless transport: every operation succeeds without I/O.
// Used when no transport target is configured, so the pipeline can run for
// debugging and observation without a physical device.
type Noop struct {
	sends uint64
}

// NewNoop creates a no-op transport.
func NewNoop() *Noop {
	return &Noop{}
}

// Connect succeeds immediately.
func (n *Noop) Connect(ctx context.Context) error { return nil }

// Send discards the payload.
func (n *Noop) Send(payload []byte) error {
	atomic.AddUint64(&n.sends, 1)
	return nil
}

// PollStatus never has anything pending.
func (n *Noop) PollStatus() (wire.Status, bool) { return 0, false }

// Close succeeds immediately.
func (n *Noop) Close() error { return nil }

// Sends returns the number of payloads discarded.
func (n *Noop) Sends() uint64 {
	return atomic.LoadUint64(&n.sends)
}
