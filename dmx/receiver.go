package dmx

import (
	"sync/atomic"

	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// Receiver fills its universe from the receive program. The DMA channel
// copies every byte the program pushes into the universe; each FrameComplete
// or FramingError event re-arms the channel at the start of the buffer.
//
// Nothing locks the universe. Readers poll Frames to notice new data and may
// see a frame that is partly overwritten by the next one.
type Receiver struct {
	u             *Universe
	prog          Program
	ch            *dma.Channel
	addr          uint32
	frames        atomic.Uint32
	framingErrors atomic.Uint32
}

var _ FrameHandler = (*Receiver)(nil)

// NewReceiver binds a universe, a receive program and a DMA channel.
// The program must expect frames of u.Len() bytes.
func NewReceiver(u *Universe, prog Program, ch *dma.Channel) *Receiver {
	ch.SetTREQ(prog.DREQ())
	ch.SetTransferSize(dma.Size8)
	ch.SetReadIncrement(false)
	ch.SetWriteIncrement(true)
	ch.SetChainTo(ch.Index())
	return &Receiver{
		u:    u,
		prog: prog,
		ch:   ch,
		addr: dma.BufferAddr(u.Bytes()),
	}
}

// Start arms the DMA channel for the first frame and restarts the receive
// program in BREAK detection.
func (r *Receiver) Start() {
	r.rearm()
	r.prog.Reset()
	r.prog.SetEnabled(true)
}

// Pause freezes the receive program. The DMA channel stays armed but idle.
func (r *Receiver) Pause() {
	r.prog.SetEnabled(false)
}

// Stop is Pause.
func (r *Receiver) Stop() {
	r.Pause()
}

// Close stops the receive program and disables the DMA channel.
func (r *Receiver) Close() {
	r.Pause()
	r.ch.Disable()
}

// HandleFrameEvent re-arms the DMA channel after a complete frame or an early
// BREAK. It runs in interrupt context.
func (r *Receiver) HandleFrameEvent(e FrameEvent) {
	switch e {
	case FrameComplete:
		r.frames.Add(1)
	case FramingError:
		r.framingErrors.Add(1)
	default:
		return
	}
	r.rearm()
}

// ClassifyEvent tells a complete frame from an early BREAK when the receive
// program raises its IRQ, from the DMA channel's remaining transfer count:
// a frame is complete once every byte has landed.
func ClassifyEvent(remaining uint32) FrameEvent {
	if remaining == 0 {
		return FrameComplete
	}
	return FramingError
}

func (r *Receiver) rearm() {
	r.ch.Configure(r.prog.FIFO(), r.addr, uint32(r.u.Len()), true)
}

// Frames returns the number of complete frames received. It only grows.
func (r *Receiver) Frames() uint32 { return r.frames.Load() }

// FramingErrors returns how many frames were cut short by a BREAK.
func (r *Receiver) FramingErrors() uint32 { return r.framingErrors.Load() }

// Read copies the universe into dst and returns the frame count observed
// before copying along with the number of bytes copied. If Frames differs
// from the returned count afterwards the copy may mix two frames.
func (r *Receiver) Read(dst []byte) (frames uint32, n int) {
	frames = r.frames.Load()
	return frames, r.u.Read(dst)
}

// Channel returns the last received value of channel c.
func (r *Receiver) Channel(c int) (byte, error) { return r.u.Channel(c) }

// Universe returns the frame buffer being filled.
func (r *Receiver) Universe() *Universe { return r.u }
