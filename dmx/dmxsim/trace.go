package dmxsim

import (
	"strconv"
	"strings"
	"time"

	"github.com/tinygo-org/dmx/dmx"
)

// Segment is a stretch of constant line level.
type Segment struct {
	Level    bool
	Duration time.Duration
}

func (s Segment) String() string {
	l := "L"
	if s.Level {
		l = "H"
	}
	return l + strconv.FormatInt(int64(s.Duration/dmx.Tick), 10)
}

// Trace records the line level once per tick.
type Trace struct {
	segs []Segment
}

// Add records level for one tick.
func (t *Trace) Add(level bool) {
	if n := len(t.segs); n > 0 && t.segs[n-1].Level == level {
		t.segs[n-1].Duration += dmx.Tick
		return
	}
	t.segs = append(t.segs, Segment{Level: level, Duration: dmx.Tick})
}

// Segments returns the recorded segments, oldest first.
func (t *Trace) Segments() []Segment { return t.segs }

// Reset forgets everything recorded.
func (t *Trace) Reset() { t.segs = t.segs[:0] }

// String lists the segments as levels with durations in ticks, "H1 L176 H16 ...".
func (t *Trace) String() string {
	parts := make([]string, len(t.segs))
	for i, s := range t.segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
