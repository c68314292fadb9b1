package dmxsim

import (
	dma "github.com/tinygo-org/dmx/rp2-dma"
)

type region struct {
	base uint32
	mem  []byte
}

// Bus resolves the addresses a simulated DMA channel reads and writes:
// memory buffers registered with Map and FIFOs registered with Attach.
// Addresses of memory buffers are dma.BufferAddr values, the same ones the
// engines program into their channels.
type Bus struct {
	regions []region
	fifos   map[uint32]*FIFO
	dreqs   map[uint8]func() bool
}

func NewBus() *Bus {
	return &Bus{
		fifos: make(map[uint32]*FIFO),
		dreqs: make(map[uint8]func() bool),
	}
}

// Map makes buf addressable at dma.BufferAddr(buf).
func (b *Bus) Map(buf []byte) {
	b.regions = append(b.regions, region{base: dma.BufferAddr(buf), mem: buf})
}

// Attach places fifo at addr. dreq is raised while ready returns true.
func (b *Bus) Attach(addr uint32, fifo *FIFO, dreq uint8, ready func() bool) {
	b.fifos[addr] = fifo
	b.dreqs[dreq] = ready
}

// Ready reports whether transfer request treq is asserted.
func (b *Bus) Ready(treq uint8) bool {
	if treq == dma.TREQUnpaced {
		return true
	}
	ready, ok := b.dreqs[treq]
	return ok && ready()
}

// ReadByte reads the byte at addr. Reading an empty FIFO yields 0.
func (b *Bus) ReadByte(addr uint32) (v byte, ok bool) {
	if f, ok := b.fifos[addr]; ok {
		v, _ = f.Pull()
		return v, true
	}
	if mem, off, ok := b.find(addr); ok {
		return mem[off], true
	}
	return 0, false
}

// WriteByte writes v at addr. Writes to a full FIFO are lost.
func (b *Bus) WriteByte(addr uint32, v byte) bool {
	if f, ok := b.fifos[addr]; ok {
		f.Push(v)
		return true
	}
	if mem, off, ok := b.find(addr); ok {
		mem[off] = v
		return true
	}
	return false
}

func (b *Bus) find(addr uint32) ([]byte, uint32, bool) {
	for _, r := range b.regions {
		if addr >= r.base && addr-r.base < uint32(len(r.mem)) {
			return r.mem, addr - r.base, true
		}
	}
	return nil, 0, false
}
