//go:build rp2040

package dmx

import (
	dma "github.com/tinygo-org/dmx/rp2-dma"
)

// New configures the PIO state machine, DMA channel and, for transmitters,
// a TIMER alarm selected by cfg, and returns a stopped engine. Close the
// engine to make its state machine and alarm available again.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prog, err := newPIOProgram(cfg)
	if err != nil {
		return nil, err
	}
	hw := Hardware{
		Program: prog,
		DMA:     dma.HardwareChannel(cfg.DMAChannel),
	}
	if cfg.Direction == Transmit {
		timer, err := newAlarmTimer()
		if err != nil {
			prog.Release()
			return nil, err
		}
		hw.Timer = timer
	}
	// NewEngine releases hw when it fails.
	e, err := NewEngine(cfg, hw)
	if err != nil {
		return nil, err
	}
	if e.rx != nil {
		bindReceiver(prog, hw.DMA, e.rx)
	}
	println("dmx:", e.cfg.Direction.String(), "on pin", cfg.Pin, "PIO", cfg.PIO, "SM", cfg.StateMachine, "DMA", cfg.DMAChannel)
	return e, nil
}
