package dmxsim

import (
	"time"

	"github.com/tinygo-org/dmx/dmx"
)

// Timer is a dmx.FrameTimer on simulated time.
type Timer struct {
	now     func() int64
	period  int64
	next    int64
	tick    func()
	running bool
}

var _ dmx.FrameTimer = (*Timer)(nil)

// NewTimer returns a stopped timer reading the current tick from now.
func NewTimer(now func() int64) *Timer {
	return &Timer{now: now}
}

func (t *Timer) Start(period time.Duration, tick func()) {
	t.period = int64(period / dmx.Tick)
	t.next = t.now() + t.period
	t.tick = tick
	t.running = true
}

func (t *Timer) Stop() { t.running = false }

// Running reports whether the timer is started.
func (t *Timer) Running() bool { return t.running }

// Step fires the tick if it is due at the current time.
func (t *Timer) Step() {
	if !t.running || t.now() < t.next {
		return
	}
	t.next += t.period
	t.tick()
}
