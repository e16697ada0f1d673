package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/bft-labs/padstream/internal/domain"
)

func TestEncodePacket_Layout(t *testing.T) {
	f := domain.DefaultFrame().
		WithButton(domain.ButtonA, true).
		WithButton(domain.ButtonRS, true).
		WithAxis(domain.AxisLX, 1.0).
		WithAxis(domain.AxisLY, -1.0).
		WithDPad(-1, 1)

	buf := EncodePacket(f)

	if len(buf) != PacketSize {
		t.Fatalf("packet length = %d, want %d", len(buf), PacketSize)
	}
	if buf[0] != Header {
		t.Errorf("header = 0x%02X, want 0x%02X", buf[0], Header)
	}
	// Buttons A (bit 0) and RS (bit 9): mask 0x0201 little-endian.
	if buf[1] != 0x01 || buf[2] != 0x02 {
		t.Errorf("button bytes = %02X %02X, want 01 02", buf[1], buf[2])
	}
	// LX full positive: 0x7FFF LE.
	if buf[3] != 0xFF || buf[4] != 0x7F {
		t.Errorf("axis LX bytes = %02X %02X, want FF 7F", buf[3], buf[4])
	}
	// LY full negative: -32767 = 0x8001 LE.
	if buf[5] != 0x01 || buf[6] != 0x80 {
		t.Errorf("axis LY bytes = %02X %02X, want 01 80", buf[5], buf[6])
	}
	if int8(buf[15]) != -1 || int8(buf[16]) != 1 {
		t.Errorf("dpad bytes = %d %d, want -1 1", int8(buf[15]), int8(buf[16]))
	}

	var sum byte
	for _, b := range buf[1:17] {
		sum += b
	}
	if buf[17] != sum {
		t.Errorf("checksum = 0x%02X, want 0x%02X", buf[17], sum)
	}
}

func TestPacket_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame domain.Frame
	}{
		{"default", domain.DefaultFrame()},
		{"all pressed full deflection", func() domain.Frame {
			var f domain.Frame
			for i := range f.Buttons {
				f.Buttons[i] = true
			}
			for i := range f.Axes {
				f.Axes[i] = 1.0
			}
			return f.WithDPad(1, 1)
		}()},
		{"mixed", domain.DefaultFrame().
			WithButton(domain.ButtonStart, true).
			WithAxis(domain.AxisRX, 0.123).
			WithAxis(domain.AxisRT, -0.987).
			WithDPad(0, -1)},
	}

	const tolerance = 1.0 / AxisScale

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePacket(EncodePacket(tt.frame))
			if err != nil {
				t.Fatalf("DecodePacket() error = %v", err)
			}
			if got.Buttons != tt.frame.Buttons {
				t.Errorf("buttons = %v, want %v", got.Buttons, tt.frame.Buttons)
			}
			if got.DPad != tt.frame.DPad {
				t.Errorf("dpad = %v, want %v", got.DPad, tt.frame.DPad)
			}
			for i := range got.Axes {
				if math.Abs(got.Axes[i]-tt.frame.Axes[i]) > tolerance {
					t.Errorf("axes[%d] = %v, want %v within %v", i, got.Axes[i], tt.frame.Axes[i], tolerance)
				}
			}
		})
	}
}

func TestDecodePacket_Invalid(t *testing.T) {
	valid := EncodePacket(domain.DefaultFrame())

	corrupt := func(mutate func([]byte)) []byte {
		buf := append([]byte(nil), valid...)
		mutate(buf)
		return buf
	}

	tests := []struct {
		name string
		buf  []byte
	}{
		{"short", valid[:PacketSize-1]},
		{"long", append(append([]byte(nil), valid...), 0)},
		{"bad header", corrupt(func(b []byte) { b[0] = 0x00 })},
		{"bad checksum", corrupt(func(b []byte) { b[17] ^= 0xFF })},
		{"button bits above 9", corrupt(func(b []byte) {
			b[2] |= 0x04 // bit 10
			b[17] += 0x04
		})},
		{"dpad out of range", corrupt(func(b []byte) {
			b[15] = 2
			b[17] += 2
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePacket(tt.buf); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("DecodePacket() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		want    Status
		wantErr bool
	}{
		{"ack", []byte{0x06}, StatusOK, false},
		{"nak", []byte{0x15}, StatusNak, false},
		{"garbage byte", []byte{0x42}, StatusMalformed, true},
		{"empty", nil, StatusMalformed, true},
		{"too long", []byte{0x06, 0x06}, StatusMalformed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStatus(tt.buf)
			if got != tt.want {
				t.Errorf("DecodeStatus() = %v, want %v", got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("DecodeStatus() error = %v, want ErrMalformedResponse", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("DecodeStatus() error = %v, want nil", err)
			}
		})
	}
}
