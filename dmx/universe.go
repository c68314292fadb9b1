package dmx

import (
	"strconv"
	"strings"
)

// MaxChannels is the largest number of channels in a DMX512 universe.
const MaxChannels = 512

// Universe is one DMX frame: a start code at index 0 followed by N channel
// values at indices 1..N. Its length never changes after construction.
//
// The backing array is handed to a DMA channel by the engine that owns the
// universe. Reads and writes are plain byte accesses; see the package
// documentation for the consequences.
type Universe struct {
	buf []byte
}

// NewUniverse returns a zeroed universe of n channels (n+1 bytes).
func NewUniverse(n int) (*Universe, error) {
	if n < 1 || n > MaxChannels {
		return nil, ErrUniverseSize
	}
	return &Universe{buf: make([]byte, n+1)}, nil
}

// Channels returns N, the number of channels.
func (u *Universe) Channels() int { return len(u.buf) - 1 }

// Len returns the frame length in bytes, start code included.
func (u *Universe) Len() int { return len(u.buf) }

// StartCode returns byte 0 of the frame. It is 0 for dimmer data.
func (u *Universe) StartCode() byte { return u.buf[0] }

// SetStartCode sets byte 0 of the frame.
func (u *Universe) SetStartCode(code byte) { u.buf[0] = code }

// Channel returns the value of channel c, 1 <= c <= N.
func (u *Universe) Channel(c int) (byte, error) {
	if c < 1 || c >= len(u.buf) {
		return 0, ErrChannelRange
	}
	return u.buf[c], nil
}

// SetChannel sets channel c, 1 <= c <= N, to v, 0 <= v <= 255.
// Out of range channels or values are rejected, never clamped.
func (u *Universe) SetChannel(c, v int) error {
	if c < 1 || c >= len(u.buf) {
		return ErrChannelRange
	}
	if v < 0 || v > 255 {
		return ErrValueRange
	}
	u.buf[c] = byte(v)
	return nil
}

// SetChannels writes values to consecutive channels starting at first.
// Nothing is written if the range does not fit in the universe.
func (u *Universe) SetChannels(first int, values []byte) error {
	if first < 1 || first+len(values) > len(u.buf) {
		return ErrChannelRange
	}
	copy(u.buf[first:], values)
	return nil
}

// Read copies the whole frame, start code first, into dst and returns the
// number of bytes copied.
func (u *Universe) Read(dst []byte) int {
	return copy(dst, u.buf)
}

// Bytes returns the backing storage. It aliases the buffer the DMA channel
// reads or writes and must not be retained by the caller past the engine's life.
func (u *Universe) Bytes() []byte { return u.buf }

// String formats the universe 20 channels per row, in groups of 5.
func (u *Universe) String() string {
	var sb strings.Builder
	sb.WriteString("Start code: ")
	sb.WriteString(strconv.Itoa(int(u.buf[0])))
	var num [8]byte
	for c := 1; c < len(u.buf); c++ {
		if c%20 == 1 {
			sb.WriteString("\n")
			sb.Write(pad(num[:0], c, 3, '0'))
			sb.WriteString(":")
		}
		if c%5 == 1 {
			sb.WriteString("  ")
		}
		sb.WriteString(" ")
		sb.Write(pad(num[:0], int(u.buf[c]), 3, ' '))
		if c%100 == 0 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func pad(dst []byte, v, width int, fill byte) []byte {
	s := strconv.AppendInt(dst, int64(v), 10)
	for len(s) < width {
		s = append(s, 0)
		copy(s[1:], s)
		s[0] = fill
	}
	return s
}
