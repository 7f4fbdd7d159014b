// Package alarmtimer layers the relative-interval hal.Timer capability
// on top of any absolute-tic hal.Alarm. The adapter owns the alarm's
// client slot and tracks the next absolute target itself.
package alarmtimer

import (
	"clockhal/hal"
	"clockhal/irq"
	"clockhal/trace"
)

type mode uint8

const (
	modeNone mode = iota
	modeOneshot
	modeRepeating
)

// Timer adapts a hal.Alarm into a hal.Timer. Repeating timers re-arm at
// previous_target + interval before the client callback runs, so
// callback latency never delays the next period.
type Timer struct {
	alarm hal.Alarm

	// Guarded by irq critical sections; Fired runs in the alarm's
	// servicing context and races caller-context Cancel.
	client   hal.TimerClient
	interval hal.Ticks
	target   hal.Ticks
	mode     mode
	armed    bool
}

var (
	_ hal.Timer       = (*Timer)(nil)
	_ hal.AlarmClient = (*Timer)(nil)
)

// New wraps alarm in a Timer. The adapter registers itself as the
// alarm's client; the alarm must not be shared with other users (use an
// alarmmux.VirtualAlarm to share one physical alarm).
func New(alarm hal.Alarm) *Timer {
	t := &Timer{alarm: alarm}
	alarm.SetClient(t)
	return t
}

// Now returns the underlying clock's current tick count.
func (t *Timer) Now() hal.Ticks {
	return t.alarm.Now()
}

// IsArmed reports whether a firing is pending.
func (t *Timer) IsArmed() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return t.armed
}

// Disable silences the timer. Equivalent to Cancel.
func (t *Timer) Disable() {
	t.Cancel()
}

// SetClient installs the callback target, replacing any prior one.
func (t *Timer) SetClient(client hal.TimerClient) {
	state := irq.Disable()
	defer irq.Restore(state)
	t.client = client
}

// Oneshot arms the timer to fire once, interval tics from now.
func (t *Timer) Oneshot(interval hal.Ticks) {
	t.arm(modeOneshot, interval)
}

// Repeat arms the timer to fire every interval tics.
func (t *Timer) Repeat(interval hal.Ticks) {
	t.arm(modeRepeating, interval)
}

func (t *Timer) arm(m mode, interval hal.Ticks) {
	now := t.alarm.Now()
	target := now.Add(interval)

	state := irq.Disable()
	t.mode = m
	t.interval = interval
	t.target = target
	t.armed = true
	irq.Restore(state)

	trace.Record(trace.EvtTimerArm, uint32(now), uint32(interval))
	t.alarm.SetAlarm(target)
}

// Interval returns the configured relative interval.
func (t *Timer) Interval() hal.Ticks {
	state := irq.Disable()
	defer irq.Restore(state)
	return t.interval
}

// IsOneshot reports whether the last arming was a one-shot.
func (t *Timer) IsOneshot() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return t.mode == modeOneshot
}

// IsRepeating reports whether the last arming was repeating.
func (t *Timer) IsRepeating() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return t.mode == modeRepeating
}

// TimeRemaining returns target - Now(), clamped to 0 once the target
// has passed or the timer is disabled. Never wraps to a large value.
func (t *Timer) TimeRemaining() hal.Ticks {
	state := irq.Disable()
	armed := t.armed
	target := t.target
	irq.Restore(state)

	if !armed {
		return 0
	}
	d := target.Sub(t.alarm.Now())
	if d >= hal.HalfRange {
		return 0 // Target already passed, not yet serviced
	}
	return d
}

// IsEnabled reports whether a firing is pending.
func (t *Timer) IsEnabled() bool {
	return t.IsArmed()
}

// Cancel disarms the timer and masks the underlying alarm. Cancelling
// an idle or already-fired timer is a successful no-op.
func (t *Timer) Cancel() hal.Status {
	state := irq.Disable()
	t.armed = false
	irq.Restore(state)

	t.alarm.Disable()
	trace.Record(trace.EvtCancel, uint32(t.alarm.Now()), uint32(t.interval))
	return hal.StatusOK
}

// Fired services the underlying alarm's notification. For a repeating
// timer the next target is computed from the previous target, not from
// Now(), and re-armed before the client callback runs. A Cancel that
// won the race against the alarm match suppresses the callback here.
func (t *Timer) Fired() {
	state := irq.Disable()
	if !t.armed {
		irq.Restore(state)
		return
	}
	rearm := t.mode == modeRepeating
	if rearm {
		t.target = t.target.Add(t.interval)
	} else {
		t.armed = false
	}
	next := t.target
	interval := t.interval
	client := t.client
	irq.Restore(state)

	if rearm {
		t.alarm.SetAlarm(next)
		trace.Record(trace.EvtTimerRearm, uint32(next), uint32(interval))
	}
	if client != nil {
		client.Fired()
	}
}
