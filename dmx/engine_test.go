package dmx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dma "github.com/tinygo-org/dmx/rp2-dma"
	"github.com/tinygo-org/dmx/rp2-dma/dmatest"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{Pin: 2, Direction: Transmit, Channels: 512, PIO: 1, StateMachine: 3, DMAChannel: 11}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"zero channels", func(c *Config) { c.Channels = 0 }, ErrUniverseSize},
		{"513 channels", func(c *Config) { c.Channels = 513 }, ErrUniverseSize},
		{"direction", func(c *Config) { c.Direction = 2 }, ErrDirection},
		{"pio", func(c *Config) { c.PIO = 2 }, ErrPIO},
		{"state machine", func(c *Config) { c.StateMachine = 4 }, ErrStateMachine},
		{"dma channel", func(c *Config) { c.DMAChannel = 12 }, ErrDMAChannel},
		{"pin", func(c *Config) { c.Pin = 30 }, ErrPin},
		{"short period", func(c *Config) { c.Period = 20 * time.Millisecond }, ErrPeriodTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}

	// Receivers ignore the period.
	rx := valid
	rx.Direction = Receive
	rx.Period = time.Millisecond
	assert.NoError(t, rx.Validate())
}

func testHardware(dir Direction) Hardware {
	hw := Hardware{
		Program: &fakeProgram{},
		DMA:     dma.NewChannel(0, &dmatest.Recorder{}),
	}
	if dir == Transmit {
		hw.Timer = &fakeTimer{}
	}
	return hw
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(Config{Direction: Transmit, Channels: 0}, testHardware(Transmit))
	assert.ErrorIs(t, err, ErrUniverseSize)

	_, err = NewEngine(Config{Direction: Transmit, Channels: 3}, testHardware(Receive))
	assert.ErrorIs(t, err, ErrMissingHardware)

	e, err := NewEngine(Config{Direction: Transmit, Channels: 3}, testHardware(Transmit))
	require.NoError(t, err)
	assert.NotNil(t, e.Transmitter())
	assert.Nil(t, e.Receiver())
	assert.Equal(t, 4, e.Universe().Len())

	e, err = NewEngine(Config{Direction: Receive, Channels: 3}, testHardware(Receive))
	require.NoError(t, err)
	assert.Nil(t, e.Transmitter())
	assert.NotNil(t, e.Receiver())
}

func TestEngineSend(t *testing.T) {
	tx, err := NewEngine(Config{Direction: Transmit, Channels: 3}, testHardware(Transmit))
	require.NoError(t, err)
	require.NoError(t, tx.Send(1, 10))
	require.NoError(t, tx.SetChannels(2, []byte{20, 30}))
	assert.ErrorIs(t, tx.Send(4, 1), ErrChannelRange)
	assert.ErrorIs(t, tx.Send(1, 256), ErrValueRange)

	dst := make([]byte, 4)
	_, n := tx.Read(dst)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0, 10, 20, 30}, dst)

	rx, err := NewEngine(Config{Direction: Receive, Channels: 3}, testHardware(Receive))
	require.NoError(t, err)
	assert.ErrorIs(t, rx.Send(1, 10), ErrNotTransmitter)
	assert.ErrorIs(t, rx.SetChannels(1, []byte{1}), ErrNotTransmitter)
	v, err := rx.Channel(1)
	require.NoError(t, err)
	assert.Equal(t, byte(0), v)
}

func TestEngineLifecycle(t *testing.T) {
	hw := testHardware(Transmit)
	e, err := NewEngine(Config{Direction: Transmit, Channels: 3}, hw)
	require.NoError(t, err)
	prog := hw.Program.(*fakeProgram)
	timer := hw.Timer.(*fakeTimer)

	e.Start()
	assert.True(t, prog.enabled)
	assert.True(t, timer.running)
	assert.Equal(t, uint32(1), e.Frames())
	e.Pause()
	assert.False(t, prog.enabled)
	e.Start()
	e.Stop()
	assert.False(t, timer.running)
	assert.Equal(t, uint32(2), e.Frames())

	hw = testHardware(Receive)
	e, err = NewEngine(Config{Direction: Receive, Channels: 3}, hw)
	require.NoError(t, err)
	prog = hw.Program.(*fakeProgram)
	e.Start()
	assert.True(t, prog.enabled)
	e.Receiver().HandleFrameEvent(FrameComplete)
	assert.Equal(t, uint32(1), e.Frames())
	e.Close()
	assert.False(t, prog.enabled)
}

func TestEngineCloseReleasesHardware(t *testing.T) {
	hw := testHardware(Transmit)
	e, err := NewEngine(Config{Direction: Transmit, Channels: 3}, hw)
	require.NoError(t, err)
	prog := hw.Program.(*fakeProgram)
	timer := hw.Timer.(*fakeTimer)
	e.Start()
	e.Close()
	assert.False(t, timer.running)
	assert.Equal(t, 1, prog.released)
	assert.Equal(t, 1, timer.released)

	e.Close()
	assert.Equal(t, 1, prog.released, "released once")
	assert.Equal(t, 1, timer.released, "released once")

	hw = testHardware(Receive)
	e, err = NewEngine(Config{Direction: Receive, Channels: 3}, hw)
	require.NoError(t, err)
	e.Stop()
	assert.Zero(t, hw.Program.(*fakeProgram).released, "stop keeps the state machine")
	e.Close()
	assert.Equal(t, 1, hw.Program.(*fakeProgram).released)
}

func TestNewEngineReleasesOnError(t *testing.T) {
	hw := testHardware(Transmit)
	_, err := NewEngine(Config{Direction: Transmit, Channels: 512, Period: 20 * time.Millisecond}, hw)
	require.ErrorIs(t, err, ErrPeriodTooShort)
	assert.Equal(t, 1, hw.Program.(*fakeProgram).released)
	assert.Equal(t, 1, hw.Timer.(*fakeTimer).released)

	// A transmitter without a timer still hands back its program.
	hw = testHardware(Receive)
	_, err = NewEngine(Config{Direction: Transmit, Channels: 3}, hw)
	require.ErrorIs(t, err, ErrMissingHardware)
	assert.Equal(t, 1, hw.Program.(*fakeProgram).released)
}

func TestEngineString(t *testing.T) {
	e, err := NewEngine(Config{Pin: 15, Direction: Receive, Channels: 5, PIO: 1, StateMachine: 2, DMAChannel: 6}, testHardware(Receive))
	require.NoError(t, err)
	s := e.String()
	assert.True(t, strings.HasPrefix(s, "DMX RX pin 15 PIO1 SM2 DMA6 5 channels, 0 frames\nStart code: 0\n"), s)
}
