//go:build rp2040

package dmx

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"time"
	"unsafe"
)

// alarmTimer is a FrameTimer on one of the RP2040 TIMER alarms. Alarm 0 is
// used by the TinyGo runtime for sleeping, so transmitters get alarms 3 and 2.
type alarmTimer struct {
	num    uint8
	intr   interrupt.Interrupt
	period uint32 // µs
	target uint32
	tick   func()
	used   bool
}

var alarmTimers = [2]alarmTimer{{num: 3}, {num: 2}}

func init() {
	alarmTimers[0].intr = interrupt.New(rp.IRQ_TIMER_IRQ_3, alarmTimers[0].handleInterrupt)
	alarmTimers[1].intr = interrupt.New(rp.IRQ_TIMER_IRQ_2, alarmTimers[1].handleInterrupt)
}

// newAlarmTimer hands out the next free alarm.
func newAlarmTimer() (*alarmTimer, error) {
	for i := range alarmTimers {
		t := &alarmTimers[i]
		if !t.used {
			t.used = true
			return t, nil
		}
	}
	return nil, ErrNoTimer
}

func (t *alarmTimer) alarmReg() *volatile.Register32 {
	base := unsafe.Pointer(&rp.TIMER.ALARM0)
	return (*volatile.Register32)(unsafe.Add(base, uintptr(t.num)*4))
}

func (t *alarmTimer) Start(period time.Duration, tick func()) {
	t.Stop()
	t.period = uint32(period / time.Microsecond)
	t.tick = tick
	mask := uint32(1) << t.num
	rp.TIMER.INTR.Set(mask)
	rp.TIMER.INTE.SetBits(mask)
	t.intr.Enable()
	t.target = rp.TIMER.TIMERAWL.Get() + t.period
	t.alarmReg().Set(t.target)
}

func (t *alarmTimer) Stop() {
	mask := uint32(1) << t.num
	rp.TIMER.INTE.ClearBits(mask)
	rp.TIMER.ARMED.Set(mask)
	rp.TIMER.INTR.Set(mask)
	t.tick = nil
}

// Release stops the timer and makes the alarm available to newAlarmTimer.
func (t *alarmTimer) Release() {
	t.Stop()
	t.used = false
}

func (t *alarmTimer) handleInterrupt(interrupt.Interrupt) {
	mask := uint32(1) << t.num
	rp.TIMER.INTR.Set(mask)
	if t.tick == nil {
		return
	}
	// Relative to the previous target, not to now.
	t.target += t.period
	t.alarmReg().Set(t.target)
	t.tick()
}
