package dmxsim

import (
	"github.com/tinygo-org/dmx/dmx"
	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// TxProgram runs a dmx.TxMachine off a simulated TX FIFO.
type TxProgram struct {
	m     *dmx.TxMachine
	fifo  *FIFO
	block uint8
	sm    uint8
}

var _ dmx.Program = (*TxProgram)(nil)

// NewTxProgram places the program's TX FIFO on bus at the address of the
// given PIO block and state machine.
func NewTxProgram(bus *Bus, block, sm uint8) *TxProgram {
	p := &TxProgram{m: dmx.NewTxMachine(), fifo: NewFIFO(TxFIFODepth), block: block, sm: sm}
	bus.Attach(p.FIFO(), p.fifo, p.DREQ(), func() bool { return !p.fifo.Full() })
	return p
}

func (p *TxProgram) Reset() {
	p.fifo.Clear()
	p.m.Reset()
}

func (p *TxProgram) SetEnabled(enabled bool) { p.m.SetEnabled(enabled) }
func (p *TxProgram) FIFO() uint32            { return dmx.TxFIFOAddr(p.block, p.sm) }
func (p *TxProgram) DREQ() uint8             { return dma.PIOTxDREQ(p.block, p.sm) }

// Machine returns the underlying model.
func (p *TxProgram) Machine() *dmx.TxMachine { return p.m }

// Queued returns the number of bytes waiting in the TX FIFO.
func (p *TxProgram) Queued() int { return p.fifo.Len() }

// Step runs one cycle and returns the line level.
func (p *TxProgram) Step() bool { return p.m.Step(p.fifo) }

// RxProgram runs a dmx.RxMachine into a simulated RX FIFO.
type RxProgram struct {
	m     *dmx.RxMachine
	fifo  *FIFO
	block uint8
	sm    uint8
	// Received lists every byte pushed to the FIFO, in order.
	Received []byte
	// Dropped counts bytes lost to a full FIFO.
	Dropped int
}

var _ dmx.Program = (*RxProgram)(nil)

// NewRxProgram places the program's RX FIFO on bus. channels is the universe
// size the program expects.
func NewRxProgram(bus *Bus, block, sm uint8, channels int) *RxProgram {
	p := &RxProgram{m: dmx.NewRxMachine(channels + 1), fifo: NewFIFO(RxFIFODepth), block: block, sm: sm}
	bus.Attach(p.FIFO(), p.fifo, p.DREQ(), func() bool { return !p.fifo.Empty() })
	return p
}

func (p *RxProgram) Reset() {
	p.fifo.Clear()
	p.m.Reset()
}

func (p *RxProgram) SetEnabled(enabled bool) { p.m.SetEnabled(enabled) }
func (p *RxProgram) FIFO() uint32            { return dmx.RxFIFOByteAddr(p.block, p.sm) }
func (p *RxProgram) DREQ() uint8             { return dma.PIORxDREQ(p.block, p.sm) }

// Machine returns the underlying model.
func (p *RxProgram) Machine() *dmx.RxMachine { return p.m }

// Push records b and hands it to the RX FIFO.
func (p *RxProgram) Push(b byte) bool {
	p.Received = append(p.Received, b)
	if !p.fifo.Push(b) {
		p.Dropped++
		return false
	}
	return true
}

// Step samples level for one cycle and returns the event the program raised.
func (p *RxProgram) Step(level bool) dmx.FrameEvent { return p.m.Step(level, p) }
