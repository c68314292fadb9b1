package dmx

// RxPhase is the current phase of the receive program.
type RxPhase uint8

const (
	RxBreakDetect RxPhase = iota
	RxWaitMAB
	RxWaitStart
	RxDataBits
)

func (p RxPhase) String() string {
	switch p {
	case RxBreakDetect:
		return "break detect"
	case RxWaitMAB:
		return "wait MAB"
	case RxWaitStart:
		return "wait start"
	case RxDataBits:
		return "data"
	}
	return "invalid"
}

// RxMachine is a cycle accurate model of the receive PIO program. Each Step
// samples the line once per [Tick].
//
// A BREAK is RxBreakMinTicks consecutive low samples; a high sample restarts
// the count. After the BREAK any high level is taken as MAB. Each byte is
// sampled from the falling edge of its start bit, least significant bit
// first. A low stop bit means a new BREAK began: the byte is discarded,
// FramingError is reported and the machine goes back to BREAK detection
// needing only rxEarlyBreakTicks more low samples, whatever the line did
// before the stop sample. After frameLen good bytes FrameComplete is
// reported.
// The program reloads its break counter with 16 of its 3 cycle iterations
// after an early BREAK.
const rxEarlyBreakTicks = 16 * 3

type RxMachine struct {
	phase    RxPhase
	frameLen int
	left     int // bytes left in the frame
	lowRun   int
	elapsed  int // ticks since the start bit edge
	data     byte
	enabled  bool
}

// NewRxMachine returns a disabled machine expecting frames of frameLen bytes,
// start code included.
func NewRxMachine(frameLen int) *RxMachine {
	if frameLen < 1 {
		panic("dmx: invalid frame length")
	}
	m := &RxMachine{frameLen: frameLen}
	m.Reset()
	return m
}

// Reset returns to BREAK detection. The enabled state is kept.
func (m *RxMachine) Reset() {
	m.phase = RxBreakDetect
	m.left = m.frameLen
	m.lowRun = 0
	m.elapsed = 0
	m.data = 0
}

// SetEnabled starts or freezes the machine.
func (m *RxMachine) SetEnabled(enabled bool) { m.enabled = enabled }

// Enabled reports whether the machine is running.
func (m *RxMachine) Enabled() bool { return m.enabled }

// Phase returns the current phase.
func (m *RxMachine) Phase() RxPhase { return m.phase }

// FrameLen returns the number of bytes per frame, start code included.
func (m *RxMachine) FrameLen() int { return m.frameLen }

// Step samples level for one tick, pushing completed bytes to sink.
// Bytes that do not fit in sink are lost, as with a full RX FIFO.
func (m *RxMachine) Step(level bool, sink ByteSink) FrameEvent {
	if !m.enabled {
		return NoEvent
	}
	if level {
		m.lowRun = 0
	} else {
		m.lowRun++
	}

	switch m.phase {
	case RxBreakDetect:
		if m.lowRun >= RxBreakMinTicks {
			m.phase = RxWaitMAB
			m.left = m.frameLen
		}

	case RxWaitMAB:
		if level {
			m.phase = RxWaitStart
		}

	case RxWaitStart:
		if !level {
			m.phase = RxDataBits
			m.elapsed = 0
			m.data = 0
		}

	case RxDataBits:
		m.elapsed++
		switch {
		case m.elapsed < RxFirstSample:
		case m.elapsed < RxStopSample:
			if (m.elapsed-RxFirstSample)%BitTicks == 0 && level {
				m.data |= 1 << ((m.elapsed - RxFirstSample) / BitTicks)
			}
		default:
			if !level {
				m.phase = RxBreakDetect
				m.lowRun = RxBreakMinTicks - rxEarlyBreakTicks
				return FramingError
			}
			sink.Push(m.data)
			m.left--
			if m.left == 0 {
				m.phase = RxBreakDetect
				return FrameComplete
			}
			m.phase = RxWaitStart
		}
	}
	return NoEvent
}
