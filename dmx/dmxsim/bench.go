package dmxsim

import (
	"errors"
	"time"

	"github.com/tinygo-org/dmx/dmx"
	dma "github.com/tinygo-org/dmx/rp2-dma"
)

var (
	ErrTxAttached = errors.New("dmxsim: transmitter already attached")
	ErrRxAttached = errors.New("dmxsim: receiver already attached")
)

type txNode struct {
	eng   *dmx.Engine
	prog  *TxProgram
	dma   *DMA
	timer *Timer
}

type rxNode struct {
	eng  *dmx.Engine
	prog *RxProgram
	dma  *DMA
}

// Bench connects at most one transmit and one receive engine to a shared
// simulated line. Each Step is one microsecond:
//
//  1. the transmit frame timer fires if due
//  2. the transmit DMA channel moves a byte
//  3. the line is driven by the waveform, if one is loaded, else by the
//     transmit program, else held high
//  4. the receive program samples the line and may raise its IRQ flag
//  5. the receive DMA channel moves a byte
//  6. once the latency has elapsed since the flag was raised, the handler
//     classifies the event from the DMA transfer count, as the RP2040
//     handler does, and delivers it
//
// A flag raised again before the handler runs is not seen twice.
type Bench struct {
	now     int64
	bus     *Bus
	tx      *txNode
	rx      *rxNode
	latency int64
	irq     bool
	irqDue  int64
	wave    []bool
	line    bool
	// Trace records the line level of every step.
	Trace Trace
}

func NewBench() *Bench {
	return &Bench{bus: NewBus(), line: true}
}

// Attach builds an engine for cfg on simulated hardware. The engine is
// stopped; start it with Engine.Start.
func (b *Bench) Attach(cfg dmx.Config) (*dmx.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Direction {
	case dmx.Transmit:
		if b.tx != nil {
			return nil, ErrTxAttached
		}
		n := &txNode{
			prog:  NewTxProgram(b.bus, cfg.PIO, cfg.StateMachine),
			dma:   NewDMA(b.bus),
			timer: NewTimer(b.Now),
		}
		eng, err := dmx.NewEngine(cfg, dmx.Hardware{
			Program: n.prog,
			DMA:     dma.NewChannel(cfg.DMAChannel, n.dma),
			Timer:   n.timer,
		})
		if err != nil {
			return nil, err
		}
		n.eng = eng
		b.bus.Map(eng.Universe().Bytes())
		b.tx = n
		return eng, nil

	default:
		if b.rx != nil {
			return nil, ErrRxAttached
		}
		n := &rxNode{
			prog: NewRxProgram(b.bus, cfg.PIO, cfg.StateMachine, cfg.Channels),
			dma:  NewDMA(b.bus),
		}
		eng, err := dmx.NewEngine(cfg, dmx.Hardware{
			Program: n.prog,
			DMA:     dma.NewChannel(cfg.DMAChannel, n.dma),
		})
		if err != nil {
			return nil, err
		}
		n.eng = eng
		b.bus.Map(eng.Universe().Bytes())
		b.rx = n
		return eng, nil
	}
}

// SetLatency sets the delay between the receive program raising its IRQ and
// the handler running. It is rounded down to whole ticks.
func (b *Bench) SetLatency(d time.Duration) { b.latency = int64(d / dmx.Tick) }

// Drive queues levels to put on the line ahead of the transmit program.
func (b *Bench) Drive(w *Waveform) { b.wave = append(b.wave, w.Levels()...) }

// Now returns the current tick.
func (b *Bench) Now() int64 { return b.now }

// Elapsed returns the simulated time.
func (b *Bench) Elapsed() time.Duration { return time.Duration(b.now) * dmx.Tick }

// Line returns the level driven in the last step.
func (b *Bench) Line() bool { return b.line }

// Accessors for the simulated hardware, nil when no engine of that
// direction is attached.

func (b *Bench) TxProgram() *TxProgram {
	if b.tx == nil {
		return nil
	}
	return b.tx.prog
}

func (b *Bench) TxDMA() *DMA {
	if b.tx == nil {
		return nil
	}
	return b.tx.dma
}

func (b *Bench) RxProgram() *RxProgram {
	if b.rx == nil {
		return nil
	}
	return b.rx.prog
}

func (b *Bench) RxDMA() *DMA {
	if b.rx == nil {
		return nil
	}
	return b.rx.dma
}

// Step advances the simulation by one tick.
func (b *Bench) Step() {
	if b.tx != nil {
		b.tx.timer.Step()
		b.tx.dma.Step()
	}

	switch {
	case len(b.wave) > 0:
		b.line = b.wave[0]
		b.wave = b.wave[1:]
	case b.tx != nil:
		b.line = b.tx.prog.Step()
	default:
		b.line = true
	}
	b.Trace.Add(b.line)

	if b.rx != nil {
		if ev := b.rx.prog.Step(b.line); ev != dmx.NoEvent && !b.irq {
			b.irq = true
			b.irqDue = b.now + b.latency
		}
		b.rx.dma.Step()
		b.deliver()
	}
	b.now++
}

func (b *Bench) deliver() {
	if !b.irq || b.irqDue > b.now {
		return
	}
	b.irq = false
	b.rx.eng.Receiver().HandleFrameEvent(dmx.ClassifyEvent(b.rx.dma.Count()))
}

// Run steps for d of simulated time.
func (b *Bench) Run(d time.Duration) {
	for end := b.now + int64(d/dmx.Tick); b.now < end; {
		b.Step()
	}
}

// RunUntil steps until done returns true or limit elapses, and reports
// whether done returned true.
func (b *Bench) RunUntil(done func() bool, limit time.Duration) bool {
	for end := b.now + int64(limit/dmx.Tick); b.now < end; {
		b.Step()
		if done() {
			return true
		}
	}
	return false
}
