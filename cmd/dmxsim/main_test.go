package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"", nil, false},
		{"1", []byte{1}, false},
		{"10, 20,0x1e", []byte{10, 20, 30}, false},
		{"255", []byte{255}, false},
		{"256", nil, true},
		{"1,,2", nil, true},
		{"x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseValues(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRun(t *testing.T) {
	*channels = 3
	*values = "10,20,30"
	*frames = 2
	*trace = false
	require.NoError(t, run())

	*channels = 0
	assert.Error(t, run())
}
