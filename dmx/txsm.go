package dmx

// ByteSource feeds the transmit program, like the PIO TX FIFO does.
type ByteSource interface {
	// Pull removes the next byte. ok is false if none is ready.
	Pull() (b byte, ok bool)
}

// ByteSink drains the receive program, like the PIO RX FIFO does.
type ByteSink interface {
	// Push appends a byte and reports whether there was room for it.
	Push(b byte) bool
}

// TxPhase is the current phase of the transmit program.
type TxPhase uint8

const (
	// TxIdle holds the line high until the first byte of a frame is available.
	TxIdle TxPhase = iota
	TxBreak
	TxMAB
	TxStartBit
	TxDataBits
	// TxStopBits holds the line high for the stop bits and, while no byte is
	// ready, for as long as the FIFO stays empty. This is the idle state
	// between frames.
	TxStopBits
)

func (p TxPhase) String() string {
	switch p {
	case TxIdle:
		return "idle"
	case TxBreak:
		return "break"
	case TxMAB:
		return "MAB"
	case TxStartBit:
		return "start"
	case TxDataBits:
		return "data"
	case TxStopBits:
		return "stop"
	}
	return "invalid"
}

// TxMachine is a cycle accurate model of the transmit PIO program. Each Step
// is one PIO cycle (one [Tick]).
//
// The first byte pulled after Reset is sent after a BREAK and MAB; every
// following byte is sent straight after the previous byte's stop bits.
// Only Reset brings the machine back to the BREAK.
type TxMachine struct {
	phase   TxPhase
	left    int // ticks left in the current phase or bit
	bit     uint8
	data    byte
	pulled  bool
	stalled bool
	enabled bool
	level   bool
}

// NewTxMachine returns a disabled machine in the idle phase.
func NewTxMachine() *TxMachine {
	m := &TxMachine{}
	m.Reset()
	return m
}

// Reset returns to the idle phase, discarding any partly sent byte.
// The enabled state is kept.
func (m *TxMachine) Reset() {
	m.phase = TxIdle
	m.left = 0
	m.bit = 0
	m.data = 0
	m.pulled = false
	m.stalled = false
	m.level = true
}

// SetEnabled starts or freezes the machine. A frozen machine keeps driving
// its last level.
func (m *TxMachine) SetEnabled(enabled bool) { m.enabled = enabled }

// Enabled reports whether the machine is running.
func (m *TxMachine) Enabled() bool { return m.enabled }

// Phase returns the current phase.
func (m *TxMachine) Phase() TxPhase { return m.phase }

// Stalled reports whether the last step waited on an empty source.
func (m *TxMachine) Stalled() bool { return m.stalled }

// Level returns the line level driven during the last step.
func (m *TxMachine) Level() bool { return m.level }

// Step advances one tick and returns the line level for it.
func (m *TxMachine) Step(src ByteSource) bool {
	if !m.enabled {
		return m.level
	}
	switch m.phase {
	case TxIdle:
		m.level = true
		b, ok := src.Pull()
		m.stalled = !ok
		if ok {
			m.data = b
			m.enter(TxBreak, BreakTicks)
		}
		return m.level

	case TxBreak:
		m.level = false
		if m.tick() {
			m.enter(TxMAB, MABTicks)
		}

	case TxMAB:
		m.level = true
		if m.tick() {
			m.enter(TxStartBit, BitTicks)
		}

	case TxStartBit:
		m.level = false
		if m.tick() {
			m.bit = 0
			m.enter(TxDataBits, BitTicks)
		}

	case TxDataBits:
		m.level = m.data>>m.bit&1 != 0
		if m.tick() {
			m.bit++
			m.left = BitTicks
			if m.bit == 8 {
				m.pulled = false
				m.enter(TxStopBits, StopTicks)
			}
		}

	case TxStopBits:
		m.level = true
		if !m.pulled {
			b, ok := src.Pull()
			m.stalled = !ok
			if !ok {
				return m.level
			}
			m.data = b
			m.pulled = true
		}
		if m.tick() {
			m.enter(TxStartBit, BitTicks)
		}
	}
	return m.level
}

func (m *TxMachine) enter(p TxPhase, ticks int) {
	m.phase = p
	m.left = ticks
}

// tick consumes one tick of the current phase and reports whether it ended.
func (m *TxMachine) tick() bool {
	m.left--
	return m.left == 0
}
