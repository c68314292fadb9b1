package dmx

import (
	"strconv"

	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// Hardware is what an engine drives. On the RP2040 [New] builds it from a
// Config; simulations and tests pass their own.
type Hardware struct {
	Program Program
	DMA     *dma.Channel
	// Timer re-triggers transmit frames. Receivers leave it nil.
	Timer FrameTimer
}

// A Program or FrameTimer that claims a shared resource, such as a state
// machine or a TIMER alarm, implements releaser to hand it back.
type releaser interface {
	Release()
}

func (hw Hardware) release() {
	if r, ok := hw.Program.(releaser); ok {
		r.Release()
	}
	if r, ok := hw.Timer.(releaser); ok {
		r.Release()
	}
}

// Engine is a DMX512 transmitter or receiver bound to one universe.
type Engine struct {
	cfg    Config
	hw     Hardware
	u      *Universe
	tx     *Transmitter
	rx     *Receiver
	closed bool
}

// NewEngine validates cfg and binds a new universe to hw. The engine is
// stopped; call Start to begin sending or receiving. The engine owns hw from
// here on: if NewEngine fails it releases hw, otherwise Close does.
func NewEngine(cfg Config, hw Hardware) (*Engine, error) {
	e, err := newEngine(cfg, hw)
	if err != nil {
		hw.release()
		return nil, err
	}
	return e, nil
}

func newEngine(cfg Config, hw Hardware) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw.Program == nil || hw.DMA == nil || (cfg.Direction == Transmit && hw.Timer == nil) {
		return nil, ErrMissingHardware
	}
	u, err := NewUniverse(cfg.Channels)
	if err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, hw: hw, u: u}
	if cfg.Direction == Transmit {
		e.tx, err = NewTransmitter(u, hw.Program, hw.DMA, hw.Timer, cfg.period())
		if err != nil {
			return nil, err
		}
	} else {
		e.rx = NewReceiver(u, hw.Program, hw.DMA)
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Direction() Direction { return e.cfg.Direction }

// Universe returns the engine's frame buffer.
func (e *Engine) Universe() *Universe { return e.u }

// Transmitter returns the transmit lifecycle manager, nil for receivers.
func (e *Engine) Transmitter() *Transmitter { return e.tx }

// Receiver returns the receive lifecycle manager, nil for transmitters.
func (e *Engine) Receiver() *Receiver { return e.rx }

// Send sets channel c to v for the following frames.
func (e *Engine) Send(c, v int) error {
	if e.tx == nil {
		return ErrNotTransmitter
	}
	return e.u.SetChannel(c, v)
}

// SetChannels sets consecutive channels starting at first.
func (e *Engine) SetChannels(first int, values []byte) error {
	if e.tx == nil {
		return ErrNotTransmitter
	}
	return e.u.SetChannels(first, values)
}

// Channel returns the current value of channel c: the value being sent by a
// transmitter or the last value received by a receiver.
func (e *Engine) Channel(c int) (byte, error) { return e.u.Channel(c) }

// Read copies the whole frame into dst. It returns the frame counter seen
// before the copy and the number of bytes copied.
func (e *Engine) Read(dst []byte) (frames uint32, n int) {
	if e.rx != nil {
		return e.rx.Read(dst)
	}
	frames = e.tx.Frames()
	return frames, e.u.Read(dst)
}

// Frames returns the number of frames sent or received.
func (e *Engine) Frames() uint32 {
	if e.rx != nil {
		return e.rx.Frames()
	}
	return e.tx.Frames()
}

func (e *Engine) Start() {
	if e.rx != nil {
		e.rx.Start()
		return
	}
	e.tx.Start()
}

func (e *Engine) Pause() {
	if e.rx != nil {
		e.rx.Pause()
		return
	}
	e.tx.Pause()
}

// Stop halts the PIO program. Transmitters also disable their DMA channel;
// receivers keep it armed, use Close to release it.
func (e *Engine) Stop() {
	if e.rx != nil {
		e.rx.Stop()
		return
	}
	e.tx.Stop()
}

// Close stops the engine, disables its DMA channel and releases the state
// machine and frame timer for other engines. Later calls do nothing.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.rx != nil {
		e.rx.Close()
	} else {
		e.tx.Stop()
	}
	e.hw.release()
}

// String describes the engine and the resources it uses, followed by the
// universe contents.
func (e *Engine) String() string {
	buf := make([]byte, 0, 64)
	buf = append(buf, "DMX "...)
	buf = append(buf, e.cfg.Direction.String()...)
	buf = append(buf, " pin "...)
	buf = strconv.AppendUint(buf, uint64(e.cfg.Pin), 10)
	buf = append(buf, " PIO"...)
	buf = strconv.AppendUint(buf, uint64(e.cfg.PIO), 10)
	buf = append(buf, " SM"...)
	buf = strconv.AppendUint(buf, uint64(e.cfg.StateMachine), 10)
	buf = append(buf, " DMA"...)
	buf = strconv.AppendUint(buf, uint64(e.cfg.DMAChannel), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(e.cfg.Channels), 10)
	buf = append(buf, " channels, "...)
	buf = strconv.AppendUint(buf, uint64(e.Frames()), 10)
	buf = append(buf, " frames\n"...)
	return string(buf) + e.u.String()
}
