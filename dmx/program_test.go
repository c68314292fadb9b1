package dmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	opMsk  = 0xe000
	opJmp  = 0x0000
	opSet  = 0xe000
	opWait = 0x2000
)

// cycles returns how long an instruction takes when it does not stall.
func cycles(instr uint16, delayBits uint) int {
	delay := int(instr>>8) & (1<<delayBits - 1)
	return 1 + delay
}

func TestTxProgramTiming(t *testing.T) {
	const delayBits = 3 // 5 bits minus side-set and its enable flag
	p := txProgram
	require.Len(t, p, txWrap+1)

	// set x, n; jmp x-- loops n+1 times.
	require.Equal(t, uint16(opSet), p[1]&opMsk)
	loops := int(p[1]&0x1f) + 1
	brk := cycles(p[1], delayBits) + loops*cycles(p[2], delayBits)
	assert.Equal(t, BreakTicks, brk)

	assert.Equal(t, MABTicks, cycles(p[3], delayBits)+cycles(p[4], delayBits))
	assert.Equal(t, BitTicks, cycles(p[5], delayBits))
	assert.Equal(t, BitTicks, cycles(p[6], delayBits)+cycles(p[7], delayBits))
	assert.Equal(t, StopTicks, cycles(p[8], delayBits))
	assert.Equal(t, 7, int(p[5]&0x1f), "8 data bits")
}

func TestRxProgramTiming(t *testing.T) {
	const delayBits = 5
	p := rxProgram
	require.Len(t, p, rxWrap+1)

	loops := int(p[1]&0x1f) + 1
	brk := loops * (cycles(p[2], delayBits) + cycles(p[3], delayBits))
	assert.InDelta(t, RxBreakMinTicks, brk, 2)

	require.Equal(t, uint16(opWait), p[6]&opMsk)
	assert.Equal(t, RxFirstSample, cycles(p[6], delayBits)+cycles(p[7], delayBits))
	assert.Equal(t, BitTicks, cycles(p[8], delayBits)+cycles(p[9], delayBits))
	assert.Equal(t, 7, int(p[7]&0x1f))

	// Early BREAK: set x, n; jmp break_loop.
	require.Equal(t, uint16(opSet), p[12]&opMsk)
	early := (int(p[12]&0x1f) + 1) * (cycles(p[2], delayBits) + cycles(p[3], delayBits))
	assert.Equal(t, rxEarlyBreakTicks, early)
}

func TestProgramJumpsInRange(t *testing.T) {
	for name, p := range map[string][]uint16{"tx": txProgram, "rx": rxProgram} {
		for i, instr := range p {
			if instr&opMsk != opJmp {
				continue
			}
			target := int(instr & 0x1f)
			assert.Less(t, target, len(p), "%s: jmp at %d", name, i)
		}
	}
}

func TestFIFOAddrs(t *testing.T) {
	assert.Equal(t, uint32(0x50200010), TxFIFOAddr(0, 0))
	assert.Equal(t, uint32(0x5030001c), TxFIFOAddr(1, 3))
	assert.Equal(t, uint32(0x50200023), RxFIFOByteAddr(0, 0))
	assert.Equal(t, uint32(0x5030002b), RxFIFOByteAddr(1, 2))
}
