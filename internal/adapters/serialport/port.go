// Package serialport implements the Transport port over a physical serial
// link, plus a no-op sink for headless operation and a mock port for tests.
package serialport

import "io"

// Porter is the minimal interface the transport needs from a serial port.
// go.bug.st/serial.Port satisfies it; MockPort satisfies it for tests.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// Opener opens (or reopens) the underlying port. Injected so tests can
// substitute a MockPort and so reconnects reuse the same dial parameters.
type Opener func() (Porter, error)
