package dmxsim

import (
	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// DMA is a simulated DMA channel register block. It moves at most one byte
// per Step, when its transfer request is asserted. Only byte transfers are
// modelled; wider sizes still move one byte but advance the addresses by the
// configured width.
type DMA struct {
	bus       *Bus
	readAddr  uint32
	writeAddr uint32
	count     uint32
	ctrl      dma.Ctrl
	status    dma.Ctrl
	active    bool
	// Transfers counts every byte moved.
	Transfers int
}

var _ dma.Registers = (*DMA)(nil)

func NewDMA(bus *Bus) *DMA {
	return &DMA{bus: bus}
}

func (d *DMA) Load(r dma.Reg) uint32 {
	switch r {
	case dma.RegReadAddr:
		return d.readAddr
	case dma.RegWriteAddr:
		return d.writeAddr
	case dma.RegTransCount:
		return d.count
	case dma.RegCtrl, dma.RegCtrlTrig:
		c := d.ctrl | d.status
		if d.Busy() {
			c |= dma.CtrlBusy
		}
		return uint32(c)
	}
	panic("dmxsim: invalid DMA register")
}

func (d *DMA) Store(r dma.Reg, v uint32) {
	switch r {
	case dma.RegReadAddr:
		d.readAddr = v
	case dma.RegWriteAddr:
		d.writeAddr = v
	case dma.RegTransCount:
		d.count = v
	case dma.RegCtrl:
		d.ctrl = dma.Ctrl(v).Writable()
	case dma.RegCtrlTrig:
		d.ctrl = dma.Ctrl(v).Writable()
		d.status = 0
		d.active = d.ctrl.Enabled() && d.count > 0
	default:
		panic("dmxsim: invalid DMA register")
	}
}

// Busy reports whether the channel is triggered, enabled and has transfers left.
func (d *DMA) Busy() bool {
	return d.active && d.ctrl.Enabled() && d.count > 0
}

// Count returns the number of transfers left.
func (d *DMA) Count() uint32 { return d.count }

// WriteAddr returns the address the next transfer writes to.
func (d *DMA) WriteAddr() uint32 { return d.writeAddr }

// Step performs at most one transfer.
func (d *DMA) Step() {
	if !d.Busy() || !d.bus.Ready(d.ctrl.TREQ()) {
		return
	}
	v, ok := d.bus.ReadByte(d.readAddr)
	if !ok {
		d.fail(dma.CtrlReadError)
		return
	}
	if !d.bus.WriteByte(d.writeAddr, v) {
		d.fail(dma.CtrlWriteError)
		return
	}
	d.Transfers++
	width := d.ctrl.TransferSize().Bytes()
	if d.ctrl.ReadIncrement() {
		d.readAddr += width
	}
	if d.ctrl.WriteIncrement() {
		d.writeAddr += width
	}
	d.count--
	if d.count == 0 {
		d.active = false
	}
}

func (d *DMA) fail(bit dma.Ctrl) {
	d.status |= bit
	d.active = false
}
