package serialport

import (
	"io"
	"sync"
)

// MockPort implements Porter for testing. Reads serve scripted peripheral
// bytes; writes are captured for assertion. Safe for concurrent use by the
// transport's reader goroutine and the test goroutine.
type MockPort struct {
	mu          sync.Mutex
	readData    []byte
	writtenData []byte
	writeErr    error
	closeErr    error
	closed      bool
}

// NewMockPort creates a mock port that will serve readData to the
// acknowledgement reader.
func NewMockPort(readData []byte) *MockPort {
	return &MockPort{readData: append([]byte(nil), readData...)}
}

// Read serves the scripted bytes, then reports io.EOF.
func (m *MockPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if len(m.readData) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.readData)
	m.readData = m.readData[n:]
	return n, nil
}

// Write captures the payload, or fails with the scripted error.
func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writtenData = append(m.writtenData, p...)
	return len(p), nil
}

// Close marks the port closed, or fails with the scripted error.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return m.closeErr
}

// FailWrites makes subsequent writes return err (nil restores success).
func (m *MockPort) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Written returns a copy of everything written so far.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.writtenData...)
}

// Closed reports whether Close was called.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
