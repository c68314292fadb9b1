// Package dma drives single RP2040 DMA channels through their four
// programmable registers: read address, write address, transfer count and
// control word.
//
// Hardware access goes through the [Registers] interface so the ordering rules
// of [Channel] can be exercised on the host against a recording mock
// (see the dmatest package).
package dma

import "unsafe"

// DMA register layout on the RP2040.
const (
	// Base is the bus address of channel 0's READ_ADDR register.
	Base = 0x50000000
	// ChannelStride is the distance between two channels' register blocks.
	ChannelStride = 0x40
	// NumChannels is the number of DMA channels on the RP2040.
	NumChannels = 12
)

// Reg identifies one register within a channel's register block.
type Reg uint8

const (
	// RegReadAddr is READ_ADDR at offset 0x00.
	RegReadAddr Reg = iota
	// RegWriteAddr is WRITE_ADDR at offset 0x04.
	RegWriteAddr
	// RegTransCount is TRANS_COUNT at offset 0x08.
	RegTransCount
	// RegCtrlTrig is CTRL_TRIG at offset 0x0C. Writing it starts the channel.
	RegCtrlTrig
	// RegCtrl is AL1_CTRL at offset 0x10, the same control word without the trigger.
	RegCtrl

	numRegs
)

const badReg = "dma: invalid register"

// Offset returns the register's byte offset from the channel base.
func (r Reg) Offset() uint32 {
	if r >= numRegs {
		panic(badReg)
	}
	return uint32(r) * 4
}

func (r Reg) String() string {
	switch r {
	case RegReadAddr:
		return "READ_ADDR"
	case RegWriteAddr:
		return "WRITE_ADDR"
	case RegTransCount:
		return "TRANS_COUNT"
	case RegCtrlTrig:
		return "CTRL_TRIG"
	case RegCtrl:
		return "AL1_CTRL"
	}
	return "invalid"
}

// RegisterAddr returns the bus address of register r of the given channel.
func RegisterAddr(channel uint8, r Reg) uint32 {
	return Base + uint32(channel)*ChannelStride + r.Offset()
}

// Registers is the register block of one DMA channel.
// Store must reach the hardware in call order.
type Registers interface {
	Load(r Reg) uint32
	Store(r Reg, value uint32)
}

// Channel controls a single DMA channel. It keeps an in-memory mirror of the
// control word; setters modify only the mirror, which is written to hardware
// by Configure and Trigger.
//
// Channel does not detect two owners driving the same hardware channel.
// Assigning channel indices is up to the caller.
type Channel struct {
	regs  Registers
	index uint8
	ctrl  Ctrl
}

const badChannelIndex = "dma: invalid channel index"

// NewChannel returns a controller for channel index backed by regs.
// The control word mirror starts as [DefaultCtrl].
func NewChannel(index uint8, regs Registers) *Channel {
	if index >= NumChannels {
		panic(badChannelIndex)
	}
	return &Channel{
		regs:  regs,
		index: index,
		ctrl:  DefaultCtrl(index),
	}
}

// Index returns the hardware channel number.
func (ch *Channel) Index() uint8 { return ch.index }

// Ctrl returns the in-memory control word.
func (ch *Channel) Ctrl() Ctrl { return ch.ctrl }

// SetCtrl replaces the in-memory control word. Status bits are dropped.
func (ch *Channel) SetCtrl(c Ctrl) { ch.ctrl = c.Writable() }

// Configure programs the channel's addresses and transfer count. The channel
// is disabled with a zero control word before any address or count register
// is touched, so a running transfer never sees a half written configuration.
// If trigger is set the control word is then written to CTRL_TRIG, which
// re-enables and starts the channel in one write.
func (ch *Channel) Configure(readAddr, writeAddr, count uint32, trigger bool) {
	ch.regs.Store(RegCtrl, 0)

	ch.regs.Store(RegReadAddr, readAddr)
	ch.regs.Store(RegWriteAddr, writeAddr)
	ch.regs.Store(RegTransCount, count)

	if trigger {
		ch.regs.Store(RegCtrlTrig, uint32(ch.ctrl))
	}
}

// Trigger writes the control word to CTRL_TRIG, (re)starting the channel with
// whatever addresses and count the registers currently hold.
func (ch *Channel) Trigger() {
	ch.regs.Store(RegCtrlTrig, uint32(ch.ctrl))
}

// Disable writes a zero control word without triggering. Transfers stop being
// issued; addresses and count are left as they are.
func (ch *Channel) Disable() {
	ch.regs.Store(RegCtrl, 0)
}

// Busy reports whether the hardware is still working through a transfer block.
func (ch *Channel) Busy() bool {
	return Ctrl(ch.regs.Load(RegCtrl)).Busy()
}

// TransferCount returns the number of transfers left in the current block.
func (ch *Channel) TransferCount() uint32 {
	return ch.regs.Load(RegTransCount)
}

// Status returns the control word as read back from hardware, including status bits.
func (ch *Channel) Status() Ctrl {
	return Ctrl(ch.regs.Load(RegCtrl))
}

// SetTREQ selects the transfer request source. The value is masked to 6 bits.
func (ch *Channel) SetTREQ(treq uint8) { ch.ctrl.SetTREQ(treq & 0x3f) }

// SetReadIncrement sets whether the read address advances after each transfer.
func (ch *Channel) SetReadIncrement(incr bool) { ch.ctrl.SetReadIncrement(incr) }

// SetWriteIncrement sets whether the write address advances after each transfer.
func (ch *Channel) SetWriteIncrement(incr bool) { ch.ctrl.SetWriteIncrement(incr) }

// SetChainTo sets the channel triggered when this one completes.
// Pass the channel's own index to disable chaining.
func (ch *Channel) SetChainTo(channel uint8) { ch.ctrl.SetChainTo(channel) }

// SetTransferSize sets the transfer width.
func (ch *Channel) SetTransferSize(size TransferSize) { ch.ctrl.SetTransferSize(size) }

// BufferAddr returns the bus address of the first byte of buf.
// buf must not be empty.
func BufferAddr(buf []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(&buf[0])))
}
