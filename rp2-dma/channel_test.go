package dma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dma "github.com/tinygo-org/dmx/rp2-dma"
	"github.com/tinygo-org/dmx/rp2-dma/dmatest"
)

func TestRegisterAddr(t *testing.T) {
	assert.Equal(t, uint32(0x50000000), dma.RegisterAddr(0, dma.RegReadAddr))
	assert.Equal(t, uint32(0x500000CC), dma.RegisterAddr(3, dma.RegCtrlTrig))
	assert.Equal(t, uint32(0x50000110), dma.RegisterAddr(4, dma.RegCtrl))
	assert.Equal(t, uint32(0x500002C8), dma.RegisterAddr(11, dma.RegTransCount))
}

func TestConfigureOrdering(t *testing.T) {
	var rec dmatest.Recorder
	ch := dma.NewChannel(5, &rec)
	ch.SetTREQ(dma.PIOTxDREQ(0, 1))
	ch.SetWriteIncrement(false)

	ch.Configure(0x20001000, 0x50200014, 513, true)

	want := []dmatest.Write{
		{Reg: dma.RegCtrl, Value: 0},
		{Reg: dma.RegReadAddr, Value: 0x20001000},
		{Reg: dma.RegWriteAddr, Value: 0x50200014},
		{Reg: dma.RegTransCount, Value: 513},
		{Reg: dma.RegCtrlTrig, Value: uint32(ch.Ctrl())},
	}
	require.Equal(t, want, rec.Writes)

	c := dma.Ctrl(rec.Regs[dma.RegCtrl])
	assert.True(t, c.Enabled())
	assert.Equal(t, uint8(dma.DREQ_PIO0_TX1), c.TREQ())
	assert.True(t, c.ReadIncrement())
	assert.False(t, c.WriteIncrement())
	assert.Equal(t, uint8(5), c.ChainTo())
}

func TestConfigureWithoutTrigger(t *testing.T) {
	var rec dmatest.Recorder
	ch := dma.NewChannel(0, &rec)
	ch.Configure(1, 2, 3, false)

	require.Len(t, rec.Writes, 4)
	assert.Equal(t, dma.RegCtrl, rec.Writes[0].Reg)
	assert.Equal(t, dma.RegTransCount, rec.Writes[3].Reg)
	assert.False(t, dma.Ctrl(rec.Load(dma.RegCtrl)).Enabled())
}

func TestDisableAndTrigger(t *testing.T) {
	var rec dmatest.Recorder
	ch := dma.NewChannel(2, &rec)
	ch.Trigger()
	assert.Equal(t, dma.DefaultCtrl(2), dma.Ctrl(rec.Load(dma.RegCtrl)))

	rec.Reset()
	ch.Disable()
	require.Equal(t, []dmatest.Write{{Reg: dma.RegCtrl, Value: 0}}, rec.Writes)

	rec.Regs[dma.RegTransCount] = 17
	assert.Equal(t, uint32(17), ch.TransferCount())
	rec.Regs[dma.RegCtrl] = uint32(dma.CtrlBusy)
	assert.True(t, ch.Busy())
}

func TestSetTREQMasks(t *testing.T) {
	var rec dmatest.Recorder
	ch := dma.NewChannel(0, &rec)
	ch.SetTREQ(0x7f)
	assert.Equal(t, uint8(0x3f), ch.Ctrl().TREQ())

	ch.SetCtrl(dma.DefaultCtrl(0) | dma.CtrlAHBError)
	assert.False(t, ch.Ctrl().Err())
}

func TestNewChannelRejectsIndex(t *testing.T) {
	assert.Panics(t, func() { dma.NewChannel(dma.NumChannels, &dmatest.Recorder{}) })
}

func TestPIODREQ(t *testing.T) {
	assert.Equal(t, uint8(dma.DREQ_PIO0_TX0), dma.PIOTxDREQ(0, 0))
	assert.Equal(t, uint8(dma.DREQ_PIO1_TX3), dma.PIOTxDREQ(1, 3))
	assert.Equal(t, uint8(dma.DREQ_PIO0_RX2), dma.PIORxDREQ(0, 2))
	assert.Equal(t, uint8(dma.DREQ_PIO1_RX0), dma.PIORxDREQ(1, 0))
	assert.Panics(t, func() { dma.PIORxDREQ(2, 0) })
}
