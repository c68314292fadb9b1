package dmx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingConstants(t *testing.T) {
	assert.Equal(t, 176*time.Microsecond, BreakTime)
	assert.Equal(t, 16*time.Microsecond, MABTime)
	assert.Equal(t, 44*time.Microsecond, ByteTime)
	assert.Equal(t, RxFirstSample+8*BitTicks, RxStopSample)
	assert.Equal(t, 38, RxStopSample)
}

func TestMinFramePeriod(t *testing.T) {
	for _, n := range []int{1, 3, 24, 512} {
		want := time.Duration(n+1)*44*time.Microsecond + 192*time.Microsecond
		assert.Equal(t, want, MinFramePeriod(n), "n=%d", n)
	}
	assert.Equal(t, 22764*time.Microsecond, MinFramePeriod(512))
	assert.Less(t, MinFramePeriod(512), DefaultPeriod)
}

func TestTimingTables(t *testing.T) {
	var total time.Duration
	for _, p := range TransmitTiming {
		if p.Phase == PhaseData {
			total += 8 * p.Duration
		} else {
			total += p.Duration
		}
	}
	assert.Equal(t, FrameTime(0), total)

	for i, rx := range ReceiveTiming {
		tx := TransmitTiming[i]
		assert.Equal(t, tx.Phase, rx.Phase)
		assert.Equal(t, tx.Level, rx.Level)
		assert.LessOrEqual(t, rx.Duration, tx.Duration, "%v", rx.Phase)
	}
}

func TestRearmDeadline(t *testing.T) {
	assert.Equal(t, 192*time.Microsecond, RearmDeadline(BreakTime, MABTime))
	assert.Equal(t, 104*time.Microsecond, RearmDeadline(RxBreakMin, RxMABMin))
}
