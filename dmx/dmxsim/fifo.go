// Package dmxsim simulates the PIO programs, DMA channels, frame timer and
// interrupt latency behind a dmx.Engine one microsecond at a time, so
// transmit and receive engines can be exercised on the host.
//
// Engines are built with dmx.NewEngine from the same code that runs on the
// RP2040; only the Hardware they drive is simulated.
package dmxsim

import (
	"github.com/tinygo-org/dmx/dmx"
)

// PIO FIFO depths.
const (
	TxFIFODepth = 8 // joined TX FIFO
	RxFIFODepth = 4
)

// FIFO is a bounded byte queue standing in for a PIO FIFO.
type FIFO struct {
	buf []byte
	cap int
}

var (
	_ dmx.ByteSource = (*FIFO)(nil)
	_ dmx.ByteSink   = (*FIFO)(nil)
)

func NewFIFO(depth int) *FIFO {
	return &FIFO{buf: make([]byte, 0, depth), cap: depth}
}

// Push appends b unless the FIFO is full.
func (f *FIFO) Push(b byte) bool {
	if len(f.buf) == f.cap {
		return false
	}
	f.buf = append(f.buf, b)
	return true
}

// Pull removes the oldest byte.
func (f *FIFO) Pull() (byte, bool) {
	if len(f.buf) == 0 {
		return 0, false
	}
	b := f.buf[0]
	copy(f.buf, f.buf[1:])
	f.buf = f.buf[:len(f.buf)-1]
	return b, true
}

func (f *FIFO) Len() int    { return len(f.buf) }
func (f *FIFO) Full() bool  { return len(f.buf) == f.cap }
func (f *FIFO) Empty() bool { return len(f.buf) == 0 }
func (f *FIFO) Clear()      { f.buf = f.buf[:0] }
