// Package dmx transmits and receives DMX512 frames on the RP2040 with a PIO
// state machine generating or sampling the line and a DMA channel moving
// bytes between the PIO FIFO and a [Universe].
//
// The processor never touches individual bits. A transmitter re-triggers the
// PIO program and the DMA channel from a periodic timer; a receiver re-arms its
// DMA channel from the PIO interrupt raised when a frame completes or a BREAK
// cuts a byte short.
//
// The universe buffer has no lock. DMA writes it one byte at a time, so a
// reader may observe a frame that is partly old and partly new. Receivers
// expose a frame counter that callers poll to notice new data.
//
// Everything except the *_rp2040.go files builds with the regular Go
// toolchain, and the protocol timing is modelled by [TxMachine] and
// [RxMachine] so it can be simulated on the host (see package dmxsim).
package dmx

import "errors"

// DMX errors.
var (
	ErrUniverseSize    = errors.New("dmx: universe size out of range")
	ErrChannelRange    = errors.New("dmx: channel out of range")
	ErrValueRange      = errors.New("dmx: value out of range")
	ErrNotTransmitter  = errors.New("dmx: engine is not a transmitter")
	ErrPeriodTooShort  = errors.New("dmx: frame period too short")
	ErrDirection       = errors.New("dmx: invalid direction")
	ErrPIO             = errors.New("dmx: invalid PIO block")
	ErrStateMachine    = errors.New("dmx: invalid state machine")
	ErrDMAChannel      = errors.New("dmx: invalid DMA channel")
	ErrPin             = errors.New("dmx: invalid pin")
	ErrNoTimer         = errors.New("dmx: no frame timer available")
	ErrMissingHardware = errors.New("dmx: missing program, DMA channel or timer")
)

const badFrameEvent = "dmx: invalid frame event"

// Direction selects whether an engine transmits or receives.
type Direction uint8

const (
	Receive Direction = iota
	Transmit
)

func (d Direction) String() string {
	switch d {
	case Receive:
		return "RX"
	case Transmit:
		return "TX"
	}
	return "invalid"
}

// FrameEvent is what the receive program reports through its interrupt.
type FrameEvent uint8

const (
	NoEvent FrameEvent = iota
	// FrameComplete is raised when the configured number of bytes has been received.
	FrameComplete
	// FramingError is raised when a stop bit is missing, which means a BREAK
	// started before the frame was complete.
	FramingError
)

func (e FrameEvent) String() string {
	switch e {
	case NoEvent:
		return "none"
	case FrameComplete:
		return "frame complete"
	case FramingError:
		return "framing error"
	}
	return "invalid"
}

// FrameHandler is notified of receive program events. HandleFrameEvent is
// called from interrupt context and must not allocate or block.
type FrameHandler interface {
	HandleFrameEvent(FrameEvent)
}
