// Package dmatest provides an in-memory DMA register block that records every
// write, for checking register sequencing on the host.
package dmatest

import (
	"fmt"

	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// Write is a single register store.
type Write struct {
	Reg   dma.Reg
	Value uint32
}

func (w Write) String() string {
	return fmt.Sprintf("%v=%#08x", w.Reg, w.Value)
}

// Recorder implements dma.Registers. Stores land in Regs and are appended to
// Writes. CTRL_TRIG and AL1_CTRL alias the same control word as on hardware.
type Recorder struct {
	Regs   [5]uint32
	Writes []Write
}

var _ dma.Registers = (*Recorder)(nil)

func (r *Recorder) Load(reg dma.Reg) uint32 {
	if reg == dma.RegCtrlTrig {
		reg = dma.RegCtrl
	}
	return r.Regs[reg]
}

func (r *Recorder) Store(reg dma.Reg, value uint32) {
	r.Writes = append(r.Writes, Write{Reg: reg, Value: value})
	if reg == dma.RegCtrlTrig {
		reg = dma.RegCtrl
	}
	r.Regs[reg] = value
}

// Reset forgets recorded writes. Register contents are kept.
func (r *Recorder) Reset() { r.Writes = r.Writes[:0] }
