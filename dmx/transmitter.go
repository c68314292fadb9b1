package dmx

import (
	"sync/atomic"
	"time"

	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// FrameTimer calls tick every period until stopped. tick runs in interrupt
// context.
type FrameTimer interface {
	Start(period time.Duration, tick func())
	Stop()
}

// Transmitter sends its universe every period. On each timer tick the
// transmit program is reset, which makes it send a BREAK and MAB before the
// first byte, and the DMA channel is re-armed to copy the whole universe
// into the program's TX FIFO.
//
// The universe may be written at any time. A frame that is being sent while
// channels change can carry a mix of old and new values.
type Transmitter struct {
	u      *Universe
	prog   Program
	ch     *dma.Channel
	timer  FrameTimer
	period time.Duration
	addr   uint32
	frames atomic.Uint32
}

// NewTransmitter binds a universe, a transmit program, a DMA channel and a
// frame timer. A zero period means DefaultPeriod. Periods shorter than
// MinFramePeriod would cut frames short and are rejected.
func NewTransmitter(u *Universe, prog Program, ch *dma.Channel, timer FrameTimer, period time.Duration) (*Transmitter, error) {
	if period == 0 {
		period = DefaultPeriod
	}
	if period < MinFramePeriod(u.Channels()) {
		return nil, ErrPeriodTooShort
	}
	ch.SetTREQ(prog.DREQ())
	ch.SetTransferSize(dma.Size8)
	ch.SetReadIncrement(true)
	ch.SetWriteIncrement(false)
	ch.SetChainTo(ch.Index())
	return &Transmitter{
		u:      u,
		prog:   prog,
		ch:     ch,
		timer:  timer,
		period: period,
		addr:   dma.BufferAddr(u.Bytes()),
	}, nil
}

// Start sends a frame now and then one every period.
func (t *Transmitter) Start() {
	t.timer.Start(t.period, t.tick)
	t.tick()
}

// Pause stops re-triggering and freezes the transmit program, leaving the
// line at its current level. The DMA channel keeps its remaining count.
func (t *Transmitter) Pause() {
	t.timer.Stop()
	t.prog.SetEnabled(false)
}

// Stop pauses the transmitter and disables the DMA channel.
func (t *Transmitter) Stop() {
	t.Pause()
	t.ch.Disable()
}

func (t *Transmitter) tick() {
	t.prog.Reset()
	t.prog.SetEnabled(true)
	t.ch.Configure(t.addr, t.prog.FIFO(), uint32(t.u.Len()), true)
	t.frames.Add(1)
}

// Frames returns the number of frames started.
func (t *Transmitter) Frames() uint32 { return t.frames.Load() }

// Period returns the re-trigger period.
func (t *Transmitter) Period() time.Duration { return t.period }

// Universe returns the frame buffer being sent.
func (t *Transmitter) Universe() *Universe { return t.u }
