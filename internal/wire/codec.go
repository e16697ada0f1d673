// Package wire implements the binary protocol spoken over the serial link.
//
// The packet layout is a frozen compatibility contract with the peripheral
// firmware. All multi-byte fields are little-endian:
//
//	offset  size  field
//	0       1     header, always 0xFF
//	1       2     button bitmask, bits 0..9, bit i = Buttons[i]
//	3       12    six axes, each int16 scaled by 32767
//	15      2     dpad x, y as signed bytes in {-1, 0, 1}
//	17      1     checksum: sum of bytes 1..16 mod 256
//
// 18 bytes total. Encoding is total for any frame satisfying the data-model
// invariants. The peripheral acknowledges each packet with a single status
// byte: 0x06 (ACK) or 0x15 (NAK); anything else is malformed.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bft-labs/padstream/internal/domain"
)

// Packet layout constants.
const (
	Header     = 0xFF
	PacketSize = 18

	// AxisScale is the int16 full-scale value for an axis at ±1.0.
	// Quantization error is at most 1/AxisScale per axis.
	AxisScale = math.MaxInt16
)

// Peripheral status bytes.
const (
	ackByte = 0x06
	nakByte = 0x15
)

// Status is the decoded peripheral acknowledgement for one packet.
type Status int

const (
	StatusOK Status = iota
	StatusNak
	StatusMalformed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNak:
		return "nak"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// EncodePacket serializes a frame into the fixed wire format.
func EncodePacket(f domain.Frame) []byte {
	buf := make([]byte, PacketSize)
	buf[0] = Header

	var mask uint16
	for i, pressed := range f.Buttons {
		if pressed {
			mask |= 1 << i
		}
	}
	binary.LittleEndian.PutUint16(buf[1:3], mask)

	for i, v := range f.Axes {
		q := int16(math.Round(domain.Clamp(v) * AxisScale))
		binary.LittleEndian.PutUint16(buf[3+2*i:], uint16(q))
	}

	buf[15] = byte(f.DPad[0])
	buf[16] = byte(f.DPad[1])

	buf[17] = checksum(buf[1:17])
	return buf
}

// DecodePacket parses a wire packet back into a frame. It rejects wrong
// lengths, bad headers, checksum mismatches, and out-of-range fields with an
// error wrapping domain.ErrValidation.
func DecodePacket(buf []byte) (domain.Frame, error) {
	if len(buf) != PacketSize {
		return domain.Frame{}, fmt.Errorf("%w: packet length %d, want %d", domain.ErrValidation, len(buf), PacketSize)
	}
	if buf[0] != Header {
		return domain.Frame{}, fmt.Errorf("%w: bad header 0x%02X", domain.ErrValidation, buf[0])
	}
	if got, want := buf[17], checksum(buf[1:17]); got != want {
		return domain.Frame{}, fmt.Errorf("%w: checksum 0x%02X, want 0x%02X", domain.ErrValidation, got, want)
	}

	var f domain.Frame

	mask := binary.LittleEndian.Uint16(buf[1:3])
	if mask>>domain.ButtonCount != 0 {
		return domain.Frame{}, fmt.Errorf("%w: button bits above %d set", domain.ErrValidation, domain.ButtonCount)
	}
	for i := range f.Buttons {
		f.Buttons[i] = mask&(1<<i) != 0
	}

	for i := range f.Axes {
		q := int16(binary.LittleEndian.Uint16(buf[3+2*i:]))
		f.Axes[i] = domain.Clamp(float64(q) / AxisScale)
	}

	for i, b := range buf[15:17] {
		d := int8(b)
		if d < -1 || d > 1 {
			return domain.Frame{}, fmt.Errorf("%w: dpad byte %d value %d", domain.ErrValidation, i, d)
		}
		f.DPad[i] = d
	}

	return f, nil
}

// DecodeStatus parses a peripheral acknowledgement. Responses of unexpected
// length or value decode as StatusMalformed with an error wrapping
// domain.ErrMalformedResponse.
func DecodeStatus(buf []byte) (Status, error) {
	if len(buf) != 1 {
		return StatusMalformed, fmt.Errorf("%w: response length %d, want 1", domain.ErrMalformedResponse, len(buf))
	}
	switch buf[0] {
	case ackByte:
		return StatusOK, nil
	case nakByte:
		return StatusNak, nil
	default:
		return StatusMalformed, fmt.Errorf("%w: status byte 0x%02X", domain.ErrMalformedResponse, buf[0])
	}
}

// DecodeStatusByte is DecodeStatus for the single-byte stream drained off the
// serial port.
func DecodeStatusByte(b byte) (Status, error) {
	return DecodeStatus([]byte{b})
}

func checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}
