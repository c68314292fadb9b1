//go:build rp2040

package dmx

import (
	"device/rp"
	"machine"

	dma "github.com/tinygo-org/dmx/rp2-dma"
	pio "github.com/tinygo-org/pio/rp2-pio"
)

// Both programs count in microseconds.
const pioFrequency = 1_000_000

// pioProgram is the transmit or receive program loaded into a PIO block and
// bound to one state machine.
type pioProgram struct {
	sm     pio.StateMachine
	offset uint8
	dir    Direction
	// frameLen is pushed to the receive program after every restart.
	frameLen uint32
}

var _ Program = (*pioProgram)(nil)

func pioBlock(index uint8) *pio.PIO {
	if index == 0 {
		return pio.PIO0
	}
	return pio.PIO1
}

// newPIOProgram loads and configures the program for cfg. The state machine
// is left disabled.
func newPIOProgram(cfg Config) (*pioProgram, error) {
	block := pioBlock(cfg.PIO)
	sm := block.StateMachine(cfg.StateMachine)
	sm.TryClaim() // SM should be claimed beforehand, we just guarantee it's claimed.

	whole, frac, err := pio.ClkDivFromFrequency(pioFrequency, machine.CPUFrequency())
	if err != nil {
		return nil, err
	}

	pin := machine.Pin(cfg.Pin)
	p := &pioProgram{sm: sm, dir: cfg.Direction}
	var sc pio.StateMachineConfig
	switch cfg.Direction {
	case Transmit:
		p.offset, err = block.AddProgram(txProgram, -1)
		if err != nil {
			return nil, err
		}
		pin.Configure(machine.PinConfig{Mode: block.PinMode()})
		sm.SetPinsConsecutive(pin, 1, true)
		sm.SetPindirsConsecutive(pin, 1, true)

		sc = pio.DefaultStateMachineConfig()
		sc.SetWrap(p.offset+txWrapTarget, p.offset+txWrap)
		sc.SetSidesetParams(txSidesetBits, true, false)
		sc.SetSidesetPins(pin)
		sc.SetOutPins(pin, 1)
		sc.SetOutShift(true, false, 32)
		// Only the TX FIFO is used.
		sc.SetFIFOJoin(pio.FifoJoinTx)

	case Receive:
		p.offset, err = block.AddProgram(rxProgram, -1)
		if err != nil {
			return nil, err
		}
		pin.Configure(machine.PinConfig{Mode: block.PinMode()})
		sm.SetPindirsConsecutive(pin, 1, false)
		p.frameLen = uint32(cfg.Channels)

		sc = pio.DefaultStateMachineConfig()
		sc.SetWrap(p.offset+rxWrapTarget, p.offset+rxWrap)
		sc.SetInPins(pin)
		sc.SetJmpPin(pin)
		sc.SetInShift(true, false, 32)

	default:
		return nil, ErrDirection
	}
	sc.SetClkDivIntFrac(whole, frac)
	sm.Init(p.offset, sc)
	return p, nil
}

// Reset restarts the program from its first instruction with empty FIFOs.
// See StateMachine.Init for reference on this sequence of operations.
func (p *pioProgram) Reset() {
	enabled := p.sm.IsEnabled()
	p.sm.SetEnabled(false)
	p.sm.ClearFIFOs()
	p.sm.Restart()
	p.sm.ClkDivRestart()
	p.sm.Exec(pio.EncodeJmp(p.offset, pio.JmpAlways))
	if p.dir == Receive {
		p.sm.TxPut(p.frameLen)
	}
	p.sm.SetEnabled(enabled)
}

func (p *pioProgram) SetEnabled(enabled bool) { p.sm.SetEnabled(enabled) }

// Release stops the state machine, unloads the program and unclaims the
// state machine.
func (p *pioProgram) Release() {
	p.sm.SetEnabled(false)
	if p.dir == Receive {
		unbindReceiver(p)
	}
	n := len(txProgram)
	if p.dir == Receive {
		n = len(rxProgram)
	}
	p.sm.PIO().ClearProgramSection(p.offset, uint8(n))
	p.sm.Unclaim()
}

func (p *pioProgram) FIFO() uint32 {
	block := p.sm.PIO().BlockIndex()
	if p.dir == Transmit {
		return TxFIFOAddr(block, p.sm.StateMachineIndex())
	}
	return RxFIFOByteAddr(block, p.sm.StateMachineIndex())
}

func (p *pioProgram) DREQ() uint8 {
	block := p.sm.PIO().BlockIndex()
	if p.dir == Transmit {
		return dma.PIOTxDREQ(block, p.sm.StateMachineIndex())
	}
	return dma.PIORxDREQ(block, p.sm.StateMachineIndex())
}

func (p *pioProgram) irqHW() *rp.PIO0_Type {
	if p.sm.PIO().BlockIndex() == 1 {
		return rp.PIO1
	}
	return rp.PIO0
}

func (p *pioProgram) irqBit() uint32 {
	return 1 << (rp.PIO0_IRQ0_INTE_SM0_Pos + uint32(p.sm.StateMachineIndex()))
}

// enableIRQ routes the state machine's relative IRQ flag to the block's IRQ 0 line.
func (p *pioProgram) enableIRQ() { p.irqHW().IRQ0_INTE.SetBits(p.irqBit()) }

func (p *pioProgram) disableIRQ() { p.irqHW().IRQ0_INTE.ClearBits(p.irqBit()) }
