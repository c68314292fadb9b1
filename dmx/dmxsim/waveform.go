package dmxsim

import "github.com/tinygo-org/dmx/dmx"

// Waveform is a line level sequence, one level per tick, for driving a
// receiver with timing the transmit program would never produce.
type Waveform struct {
	levels []bool
}

func (w *Waveform) level(high bool, ticks int) *Waveform {
	for i := 0; i < ticks; i++ {
		w.levels = append(w.levels, high)
	}
	return w
}

// Idle holds the line high.
func (w *Waveform) Idle(ticks int) *Waveform { return w.level(true, ticks) }

// Break holds the line low.
func (w *Waveform) Break(ticks int) *Waveform { return w.level(false, ticks) }

// Mark holds the line high, as after a BREAK.
func (w *Waveform) Mark(ticks int) *Waveform { return w.level(true, ticks) }

// Byte appends an 8N2 byte, least significant bit first.
func (w *Waveform) Byte(b byte) *Waveform {
	return w.ByteNoStop(b).level(true, dmx.StopTicks)
}

// ByteNoStop appends a start bit and 8 data bits without stop bits.
func (w *Waveform) ByteNoStop(b byte) *Waveform {
	w.level(false, dmx.BitTicks)
	for i := 0; i < 8; i++ {
		w.level(b>>i&1 != 0, dmx.BitTicks)
	}
	return w
}

// Frame appends a BREAK, MAB and data bytes.
func (w *Waveform) Frame(breakTicks, mabTicks int, data ...byte) *Waveform {
	w.Break(breakTicks).Mark(mabTicks)
	for _, b := range data {
		w.Byte(b)
	}
	return w
}

// Len returns the number of ticks.
func (w *Waveform) Len() int { return len(w.levels) }

// Levels returns the level of every tick.
func (w *Waveform) Levels() []bool { return w.levels }
