//go:build rp2040

package dma

import (
	"device/rp"
	"runtime/volatile"
	"unsafe"
)

// Single DMA channel register block. See rp.DMA_Type.
type channelHW struct {
	READ_ADDR   volatile.Register32
	WRITE_ADDR  volatile.Register32
	TRANS_COUNT volatile.Register32
	CTRL_TRIG   volatile.Register32
	AL1_CTRL    volatile.Register32
	_           [11]volatile.Register32 // remaining aliases
}

var channelsHW = (*[NumChannels]channelHW)(unsafe.Pointer(rp.DMA))

func (hw *channelHW) reg(r Reg) *volatile.Register32 {
	switch r {
	case RegReadAddr:
		return &hw.READ_ADDR
	case RegWriteAddr:
		return &hw.WRITE_ADDR
	case RegTransCount:
		return &hw.TRANS_COUNT
	case RegCtrlTrig:
		return &hw.CTRL_TRIG
	case RegCtrl:
		return &hw.AL1_CTRL
	}
	panic(badReg)
}

func (hw *channelHW) Load(r Reg) uint32 { return hw.reg(r).Get() }

func (hw *channelHW) Store(r Reg, value uint32) { hw.reg(r).Set(value) }

// ChannelRegisters returns the memory mapped register block of a hardware channel.
func ChannelRegisters(index uint8) Registers {
	if index >= NumChannels {
		panic(badChannelIndex)
	}
	return &channelsHW[index]
}

// HardwareChannel returns a controller for a hardware DMA channel.
func HardwareChannel(index uint8) *Channel {
	return NewChannel(index, ChannelRegisters(index))
}

// Abort cancels the channel's transfer sequence and waits until in-flight
// transfers have drained. It gives up after a bounded number of polls.
func (ch *Channel) Abort() bool {
	mask := uint32(1) << ch.index
	rp.DMA.CHAN_ABORT.Set(mask)
	for retries := 2048; retries > 0; retries-- {
		if rp.DMA.CHAN_ABORT.Get()&mask == 0 {
			return true
		}
	}
	println("dma: abort timeout on channel", ch.index)
	return false
}
