package dma

// Ctrl is the packed CTRL_TRIG/AL1_CTRL word of an RP2040 DMA channel.
// It holds the channel's behaviour (enable, priority, transfer size, address
// increments, ring, chaining, pacing) and, when read back from hardware,
// the read-only status bits.
//
// A Ctrl value is plain data: nothing reaches hardware until it is written by
// [Channel.Configure] or [Channel.Trigger].
type Ctrl uint32

// Control word field layout. See 2.5.7 List of Registers (CH0_CTRL_TRIG) in the
// RP2040 datasheet.
const (
	CtrlEnPos           = 0
	CtrlHighPriorityPos = 1
	CtrlDataSizePos     = 2
	CtrlIncrReadPos     = 4
	CtrlIncrWritePos    = 5
	CtrlRingSizePos     = 6
	CtrlRingSelPos      = 10
	CtrlChainToPos      = 11
	CtrlTREQSelPos      = 15
	CtrlIRQQuietPos     = 21
	CtrlBSwapPos        = 22
	CtrlSniffEnPos      = 23
	CtrlBusyPos         = 24
	CtrlWriteErrorPos   = 29
	CtrlReadErrorPos    = 30
	CtrlAHBErrorPos     = 31

	CtrlEn           Ctrl = 1 << CtrlEnPos
	CtrlHighPriority Ctrl = 1 << CtrlHighPriorityPos
	CtrlDataSizeMsk  Ctrl = 0x3 << CtrlDataSizePos
	CtrlIncrRead     Ctrl = 1 << CtrlIncrReadPos
	CtrlIncrWrite    Ctrl = 1 << CtrlIncrWritePos
	CtrlRingSizeMsk  Ctrl = 0xf << CtrlRingSizePos
	CtrlRingSel      Ctrl = 1 << CtrlRingSelPos
	CtrlChainToMsk   Ctrl = 0xf << CtrlChainToPos
	CtrlTREQSelMsk   Ctrl = 0x3f << CtrlTREQSelPos
	CtrlIRQQuiet     Ctrl = 1 << CtrlIRQQuietPos
	CtrlBSwap        Ctrl = 1 << CtrlBSwapPos
	CtrlSniffEn      Ctrl = 1 << CtrlSniffEnPos

	// Read-only status bits.
	CtrlBusy       Ctrl = 1 << CtrlBusyPos
	CtrlWriteError Ctrl = 1 << CtrlWriteErrorPos
	CtrlReadError  Ctrl = 1 << CtrlReadErrorPos
	CtrlAHBError   Ctrl = 1 << CtrlAHBErrorPos

	ctrlStatusMsk = CtrlBusy | CtrlWriteError | CtrlReadError | CtrlAHBError
)

// TransferSize is the width of a single DMA transfer.
type TransferSize uint8

const (
	Size8 TransferSize = iota
	Size16
	Size32
)

// Bytes returns the number of bytes moved per transfer.
func (s TransferSize) Bytes() uint32 {
	return 1 << s
}

func (s TransferSize) String() string {
	switch s {
	case Size8:
		return "byte"
	case Size16:
		return "halfword"
	case Size32:
		return "word"
	}
	return "invalid"
}

// DefaultCtrl returns the control word a channel starts out with:
// enabled, high priority, byte transfers, read and write increment,
// no ring, chained to itself (no chaining), unpaced and with the
// end-of-block IRQ suppressed. This is 0x003F8033 | channel<<11.
func DefaultCtrl(channel uint8) Ctrl {
	var c Ctrl
	c.SetEnable(true)
	c.SetHighPriority(true)
	c.SetTransferSize(Size8)
	c.SetReadIncrement(true)
	c.SetWriteIncrement(true)
	c.SetRing(false, 0)
	c.SetChainTo(channel)
	c.SetTREQ(TREQUnpaced)
	c.SetIRQQuiet(true)
	return c
}

func (c Ctrl) Enabled() bool        { return c&CtrlEn != 0 }
func (c Ctrl) HighPriority() bool   { return c&CtrlHighPriority != 0 }
func (c Ctrl) ReadIncrement() bool  { return c&CtrlIncrRead != 0 }
func (c Ctrl) WriteIncrement() bool { return c&CtrlIncrWrite != 0 }
func (c Ctrl) RingWrite() bool      { return c&CtrlRingSel != 0 }
func (c Ctrl) IRQQuiet() bool       { return c&CtrlIRQQuiet != 0 }
func (c Ctrl) ByteSwap() bool       { return c&CtrlBSwap != 0 }
func (c Ctrl) SniffEnable() bool    { return c&CtrlSniffEn != 0 }

// Busy reports the BUSY status bit. Only meaningful on a word read back from hardware.
func (c Ctrl) Busy() bool { return c&CtrlBusy != 0 }

// Err reports whether any of the error status bits are set.
func (c Ctrl) Err() bool { return c&(CtrlWriteError|CtrlReadError|CtrlAHBError) != 0 }

func (c Ctrl) TransferSize() TransferSize {
	return TransferSize((c & CtrlDataSizeMsk) >> CtrlDataSizePos)
}

// RingSize returns log2 of the ring size in bytes, 0 meaning no wrapping.
func (c Ctrl) RingSize() uint8 {
	return uint8((c & CtrlRingSizeMsk) >> CtrlRingSizePos)
}

// ChainTo returns the channel triggered when this one completes. A channel
// chained to itself does not chain.
func (c Ctrl) ChainTo() uint8 {
	return uint8((c & CtrlChainToMsk) >> CtrlChainToPos)
}

// TREQ returns the transfer request source pacing the channel.
func (c Ctrl) TREQ() uint8 {
	return uint8((c & CtrlTREQSelMsk) >> CtrlTREQSelPos)
}

func (c *Ctrl) SetEnable(enable bool)             { c.setBit(CtrlEn, enable) }
func (c *Ctrl) SetHighPriority(highPriority bool) { c.setBit(CtrlHighPriority, highPriority) }
func (c *Ctrl) SetReadIncrement(incr bool)        { c.setBit(CtrlIncrRead, incr) }
func (c *Ctrl) SetWriteIncrement(incr bool)       { c.setBit(CtrlIncrWrite, incr) }
func (c *Ctrl) SetIRQQuiet(quiet bool)            { c.setBit(CtrlIRQQuiet, quiet) }
func (c *Ctrl) SetByteSwap(bswap bool)            { c.setBit(CtrlBSwap, bswap) }
func (c *Ctrl) SetSniffEnable(sniff bool)         { c.setBit(CtrlSniffEn, sniff) }

// SetTransferSize sets the DATA_SIZE field. Values above Size32 are masked to two bits.
func (c *Ctrl) SetTransferSize(size TransferSize) {
	c.setField(CtrlDataSizeMsk, CtrlDataSizePos, uint32(size))
}

// SetRing sets the address wrap. sizeBits is log2 of the ring size in bytes
// (0 disables wrapping) and write selects whether the write or read address wraps.
func (c *Ctrl) SetRing(write bool, sizeBits uint8) {
	c.setField(CtrlRingSizeMsk, CtrlRingSizePos, uint32(sizeBits))
	c.setBit(CtrlRingSel, write)
}

// SetChainTo sets the channel triggered on completion. Only the low 4 bits are used.
func (c *Ctrl) SetChainTo(channel uint8) {
	c.setField(CtrlChainToMsk, CtrlChainToPos, uint32(channel))
}

// SetTREQ selects the transfer request signal. Only the low 6 bits are used:
// 0x00-0x3a select a DREQ, 0x3b-0x3e the pacing timers and 0x3f is unpaced.
func (c *Ctrl) SetTREQ(treq uint8) {
	c.setField(CtrlTREQSelMsk, CtrlTREQSelPos, uint32(treq))
}

// Writable returns the word with the read-only status bits cleared.
func (c Ctrl) Writable() Ctrl { return c &^ ctrlStatusMsk }

func (c *Ctrl) setField(msk Ctrl, pos uint32, v uint32) {
	*c = (*c &^ msk) | (Ctrl(v<<pos) & msk)
}

func (c *Ctrl) setBit(bit Ctrl, set bool) {
	if set {
		*c |= bit
	} else {
		*c &^= bit // unset bit.
	}
}
