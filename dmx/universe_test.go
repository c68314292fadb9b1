package dmx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniverseSizes(t *testing.T) {
	for n := 1; n <= MaxChannels; n++ {
		u, err := NewUniverse(n)
		require.NoError(t, err)
		require.Equal(t, n+1, u.Len())
		require.Equal(t, n, u.Channels())
	}
	for _, n := range []int{-1, 0, 513, 1000} {
		_, err := NewUniverse(n)
		assert.ErrorIs(t, err, ErrUniverseSize, "n=%d", n)
	}
}

func TestUniverseSetGet(t *testing.T) {
	u, err := NewUniverse(16)
	require.NoError(t, err)
	for c := 1; c <= 16; c++ {
		for _, v := range []int{0, 1, 127, 128, 255} {
			require.NoError(t, u.SetChannel(c, v))
			got, err := u.Channel(c)
			require.NoError(t, err)
			require.Equal(t, byte(v), got)
		}
	}
	assert.Equal(t, byte(0), u.StartCode())
}

func TestUniverseRejects(t *testing.T) {
	u, err := NewUniverse(8)
	require.NoError(t, err)
	require.NoError(t, u.SetChannel(3, 42))

	tests := []struct {
		c, v int
		err  error
	}{
		{0, 1, ErrChannelRange},
		{9, 1, ErrChannelRange},
		{-1, 1, ErrChannelRange},
		{3, -1, ErrValueRange},
		{3, 256, ErrValueRange},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, u.SetChannel(tt.c, tt.v), tt.err, "c=%d v=%d", tt.c, tt.v)
	}
	// Nothing was clamped or written.
	v, _ := u.Channel(3)
	assert.Equal(t, byte(42), v)
	assert.Equal(t, make([]byte, 1), u.Bytes()[:1])

	_, err = u.Channel(0)
	assert.ErrorIs(t, err, ErrChannelRange)
	_, err = u.Channel(9)
	assert.ErrorIs(t, err, ErrChannelRange)
}

func TestUniverseSetChannels(t *testing.T) {
	u, err := NewUniverse(4)
	require.NoError(t, err)
	require.NoError(t, u.SetChannels(2, []byte{7, 8, 9}))
	dst := make([]byte, 8)
	n := u.Read(dst)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{0, 0, 7, 8, 9}, dst[:n])

	assert.ErrorIs(t, u.SetChannels(3, []byte{1, 2, 3}), ErrChannelRange)
	assert.ErrorIs(t, u.SetChannels(0, []byte{1}), ErrChannelRange)
	assert.Equal(t, []byte{0, 0, 7, 8, 9}, u.Bytes())
}

func TestUniverseString(t *testing.T) {
	u, err := NewUniverse(25)
	require.NoError(t, err)
	u.SetStartCode(0xcc)
	require.NoError(t, u.SetChannel(1, 255))
	require.NoError(t, u.SetChannel(21, 7))

	lines := strings.Split(u.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Start code: 204", lines[0])
	assert.Equal(t, "001:   255   0   0   0   0     0   0   0   0   0     0   0   0   0   0     0   0   0   0   0", lines[1])
	assert.Equal(t, "021:     7   0   0   0   0", lines[2])
	assert.Equal(t, "", lines[3])
}
