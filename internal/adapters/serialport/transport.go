package serialport

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/bft-labs/padstream/internal/domain"
	"github.com/bft-labs/padstream/internal/wire"
)

// statusBufferSize bounds the drained acknowledgement bytes. The peripheral
// sends at most one byte per packet; anything beyond the buffer is dropped.
const statusBufferSize = 64

// Transport implements ports.Transport over a serial link.
//
// Writes happen on the tick loop's goroutine; a background reader drains
// acknowledgement bytes from the peripheral into a bounded channel so
// PollStatus never blocks. A failed write drops the link and later Sends
// attempt a reopen governed by exponential backoff, without ever sleeping on
// the tick path.
type Transport struct {
	open Opener
	log  zerolog.Logger

	mu      sync.Mutex
	port    Porter
	backoff *backoff

	statusCh chan byte
	readerWG sync.WaitGroup
}

// New creates a transport that opens the named port at the given baud rate
// with 8N1 framing.
func New(portName string, baudRate int, log zerolog.Logger) *Transport {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return NewWithOpener(func() (Porter, error) {
		return serial.Open(portName, mode)
	}, log.With().Str("port", portName).Logger())
}

// NewWithOpener creates a transport over a custom port opener. Used by tests
// and by callers that manage their own dial parameters.
func NewWithOpener(open Opener, log zerolog.Logger) *Transport {
	return &Transport{
		open:    open,
		log:     log,
		backoff: newBackoff(defaultBackoffInitial, defaultBackoffMax),
	}
}

// ListPorts enumerates the serial ports available on the host.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Connect opens the link and starts the acknowledgement reader.
// A failure here wraps domain.ErrConnection and is fatal to pipeline start.
func (t *Transport) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port != nil {
		return nil
	}

	port, err := t.open()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}

	t.port = port
	t.backoff.Reset()
	t.statusCh = make(chan byte, statusBufferSize)
	t.startReader(port, t.statusCh)

	t.log.Info().Msg("serial link connected")
	return nil
}

// Send writes one encoded frame payload. On I/O failure the link is dropped
// and the error wraps domain.ErrWrite; later Sends retry the link under
// backoff.
func (t *Transport) Send(payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		if !t.backoff.Ready() {
			return fmt.Errorf("%w: link down", domain.ErrWrite)
		}
		port, err := t.open()
		if err != nil {
			t.backoff.Bump()
			return fmt.Errorf("%w: reopen: %v", domain.ErrWrite, err)
		}
		t.port = port
		t.backoff.Reset()
		t.startReader(port, t.statusCh)
		t.log.Info().Msg("serial link reopened")
	}

	if _, err := t.port.Write(payload); err != nil {
		t.dropLinkLocked()
		t.backoff.Bump()
		return fmt.Errorf("%w: %v", domain.ErrWrite, err)
	}
	return nil
}

// PollStatus returns the next drained peripheral acknowledgement without
// blocking.
func (t *Transport) PollStatus() (wire.Status, bool) {
	t.mu.Lock()
	ch := t.statusCh
	t.mu.Unlock()

	if ch == nil {
		return 0, false
	}

	select {
	case b := <-ch:
		status, err := wire.DecodeStatusByte(b)
		if err != nil {
			t.log.Debug().Err(err).Msg("undecodable peripheral response")
		}
		return status, true
	default:
		return 0, false
	}
}

// Close releases the link and stops the reader. Idempotent; safe to call on
// a transport that never connected.
func (t *Transport) Close() error {
	t.mu.Lock()
	err := t.dropLinkLocked()
	t.mu.Unlock()

	// The reader exits once the port read fails after close.
	t.readerWG.Wait()

	if err != nil {
		return fmt.Errorf("close serial port: %w", err)
	}
	return nil
}

// dropLinkLocked closes and forgets the port. Caller holds t.mu.
func (t *Transport) dropLinkLocked() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		t.log.Warn().Err(err).Msg("error closing serial port")
	}
	return err
}

// startReader drains peripheral bytes into statusCh. Caller holds t.mu.
func (t *Transport) startReader(port Porter, statusCh chan byte) {
	t.readerWG.Add(1)
	go func() {
		defer t.readerWG.Done()

		buf := make([]byte, 16)
		for {
			n, err := port.Read(buf)
			for _, b := range buf[:n] {
				select {
				case statusCh <- b:
				default:
					// Peripheral chatter beyond the buffer is dropped;
					// acknowledgements are advisory only.
				}
			}
			if err != nil {
				return
			}
		}
	}()
}
