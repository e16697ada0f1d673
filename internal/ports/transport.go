package ports

import (
	"context"

	"github.com/bft-labs/padstream/internal/wire"
)

// Transport owns the serial link to the peripheral.
// Implementations handle connection lifecycle, writes, and draining of
// acknowledgement bytes.
type Transport interface {
	// Connect opens the link. Returns an error wrapping domain.ErrConnection
	// on failure; a connection failure is fatal to pipeline start.
	Connect(ctx context.Context) error

	// Send writes one encoded frame payload. Returns an error wrapping
	// domain.ErrWrite on I/O failure; the tick loop records it and continues.
	Send(payload []byte) error

	// PollStatus returns the next peripheral acknowledgement drained from the
	// link, without blocking. ok is false when none is pending.
	PollStatus() (status wire.Status, ok bool)

	// Close releases the link. Idempotent, runs unconditionally on every
	// pipeline exit path.
	Close() error
}
