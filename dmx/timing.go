package dmx

import "time"

// Both PIO programs run at 1 MHz, so one instruction cycle is one microsecond.
const Tick = time.Microsecond

// Generated line timing, in ticks.
const (
	BreakTicks = 176
	MABTicks   = 16
	BitTicks   = 4
	StopTicks  = 8
	// ByteTicks covers start bit, 8 data bits and 2 stop bits.
	ByteTicks = BitTicks + 8*BitTicks + StopTicks
)

// Generated line timing.
const (
	BreakTime = BreakTicks * Tick
	MABTime   = MABTicks * Tick
	BitTime   = BitTicks * Tick
	StopTime  = StopTicks * Tick
	ByteTime  = ByteTicks * Tick
)

// Receive minimums. The receive program enforces RxBreakMin only; any high
// level after a BREAK is accepted as MAB.
const (
	RxBreakMinTicks = 92
	RxMABMinTicks   = 12

	RxBreakMin = RxBreakMinTicks * Tick
	RxMABMin   = RxMABMinTicks * Tick
)

// Receiver sample points, in ticks after the falling edge of the start bit.
// Data bit j is sampled at RxFirstSample + j*BitTicks; the stop bit is checked
// at RxStopSample.
const (
	RxFirstSample = 6
	RxStopSample  = RxFirstSample + 8*BitTicks
)

// DefaultPeriod is the transmit re-trigger period used when none is configured.
const DefaultPeriod = 50 * time.Millisecond

// Phase names one segment of the line timing.
type Phase uint8

const (
	PhaseBreak Phase = iota
	PhaseMAB
	PhaseStart
	PhaseData
	PhaseStop
)

func (p Phase) String() string {
	switch p {
	case PhaseBreak:
		return "BREAK"
	case PhaseMAB:
		return "MAB"
	case PhaseStart:
		return "start"
	case PhaseData:
		return "data"
	case PhaseStop:
		return "stop"
	}
	return "invalid"
}

// PhaseTiming is the level and duration of a phase. Data bits list the
// duration of a single bit; the level depends on the data.
type PhaseTiming struct {
	Phase    Phase
	Level    bool
	Duration time.Duration
}

// TransmitTiming is the timing the transmit program generates for a frame.
// The last three entries repeat for every byte.
var TransmitTiming = []PhaseTiming{
	{PhaseBreak, false, BreakTime},
	{PhaseMAB, true, MABTime},
	{PhaseStart, false, BitTime},
	{PhaseData, false, BitTime},
	{PhaseStop, true, StopTime},
}

// ReceiveTiming lists the minimum durations the receive program accepts.
var ReceiveTiming = []PhaseTiming{
	{PhaseBreak, false, RxBreakMin},
	{PhaseMAB, true, RxMABMin},
	{PhaseStart, false, BitTime},
	{PhaseData, false, BitTime},
	{PhaseStop, true, StopTime},
}

// FrameTime is how long the transmit program takes to put a frame of n
// channels plus start code on the line.
func FrameTime(n int) time.Duration {
	return BreakTime + MABTime + time.Duration(n+1)*ByteTime
}

// MinFramePeriod is the shortest re-trigger period that lets a frame of n
// channels drain completely before the next BREAK: (n+1)*44µs + 192µs,
// 22.764ms for a full universe.
func MinFramePeriod(n int) time.Duration {
	return FrameTime(n)
}

// RearmDeadline is the interrupt latency a receiver must beat when a BREAK
// cuts a frame short. The receive program reports the early BREAK when it
// finds the stop bit missing, RxStopSample ticks after the BREAK began where
// the next start bit would have been. The start code of the next frame is
// pushed the same RxStopSample ticks after its own start bit, so the DMA
// channel must be re-armed within the BREAK and MAB that separate the two.
// Latency must be strictly less than the returned duration; otherwise the
// start code lands at the stale DMA write position.
func RearmDeadline(breakTime, mabTime time.Duration) time.Duration {
	return breakTime + mabTime
}
