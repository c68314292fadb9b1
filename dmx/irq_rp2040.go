//go:build rp2040

package dmx

import (
	"device/rp"
	"runtime/interrupt"

	dma "github.com/tinygo-org/dmx/rp2-dma"
	pio "github.com/tinygo-org/pio/rp2-pio"
)

// rxBinding is a receiver waiting on a state machine's IRQ flag.
type rxBinding struct {
	handler FrameHandler
	ch      *dma.Channel
}

// pioIRQ dispatches the IRQ 0 line of one PIO block.
type pioIRQ struct {
	block    *pio.PIO
	intr     interrupt.Interrupt
	bindings [4]rxBinding
}

var pioIRQs = [2]pioIRQ{{block: pio.PIO0}, {block: pio.PIO1}}

func init() {
	pioIRQs[0].intr = interrupt.New(rp.IRQ_PIO0_IRQ_0, pioIRQs[0].handleInterrupt)
	pioIRQs[1].intr = interrupt.New(rp.IRQ_PIO1_IRQ_0, pioIRQs[1].handleInterrupt)
}

// bindReceiver routes the IRQ flag of prog's state machine to h. ch is the
// receiver's DMA channel, used to tell a complete frame from an early BREAK.
func bindReceiver(prog *pioProgram, ch *dma.Channel, h FrameHandler) {
	irq := &pioIRQs[prog.sm.PIO().BlockIndex()]
	irq.bindings[prog.sm.StateMachineIndex()] = rxBinding{handler: h, ch: ch}
	irq.block.ClearIRQ(1 << prog.sm.StateMachineIndex())
	prog.enableIRQ()
	irq.intr.Enable()
}

// unbindReceiver stops routing prog's IRQ flag.
func unbindReceiver(prog *pioProgram) {
	prog.disableIRQ()
	irq := &pioIRQs[prog.sm.PIO().BlockIndex()]
	irq.bindings[prog.sm.StateMachineIndex()] = rxBinding{}
}

func (p *pioIRQ) handleInterrupt(interrupt.Interrupt) {
	flags := p.block.GetIRQ() & 0xf
	p.block.ClearIRQ(flags)
	for sm := uint8(0); sm < 4; sm++ {
		if flags&(1<<sm) == 0 {
			continue
		}
		b := &p.bindings[sm]
		if b.handler == nil {
			continue
		}
		b.handler.HandleFrameEvent(ClassifyEvent(b.ch.TransferCount()))
	}
}
