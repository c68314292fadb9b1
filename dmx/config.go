package dmx

import "time"

// Config selects the pin, direction, universe size and hardware resources of
// an engine. Nothing checks whether the PIO state machine or DMA channel is
// already used by something else; keeping them apart is up to the caller.
type Config struct {
	// Pin is the GPIO connected to the line driver or receiver.
	Pin       uint8
	Direction Direction
	// Channels is the universe size N, 1 to 512.
	Channels int
	// PIO block, 0 or 1.
	PIO uint8
	// StateMachine within the PIO block, 0 to 3.
	StateMachine uint8
	// DMAChannel, 0 to 11.
	DMAChannel uint8
	// Period is the transmit re-trigger period. Zero means DefaultPeriod.
	// Ignored by receivers.
	Period time.Duration
}

const maxPin = 29

// Validate reports the first setting that is out of range.
func (cfg Config) Validate() error {
	switch {
	case cfg.Channels < 1 || cfg.Channels > MaxChannels:
		return ErrUniverseSize
	case cfg.Direction != Receive && cfg.Direction != Transmit:
		return ErrDirection
	case cfg.PIO > 1:
		return ErrPIO
	case cfg.StateMachine > 3:
		return ErrStateMachine
	case cfg.DMAChannel >= 12:
		return ErrDMAChannel
	case cfg.Pin > maxPin:
		return ErrPin
	case cfg.Direction == Transmit && cfg.Period != 0 && cfg.Period < MinFramePeriod(cfg.Channels):
		return ErrPeriodTooShort
	}
	return nil
}

func (cfg Config) period() time.Duration {
	if cfg.Period == 0 {
		return DefaultPeriod
	}
	return cfg.Period
}
