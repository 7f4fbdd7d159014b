// Package softclock provides a software-backed counter and alarm whose
// tick source is advanced explicitly by the caller. It is the host-side
// backend: board simulation, tests, and any target without a usable
// hardware compare unit drive it from a polling loop.
package softclock

import (
	"clockhal/hal"
	"clockhal/irq"
	"clockhal/trace"
)

// Clock implements hal.Counter and hal.Alarm over an in-memory tick
// count. Time only moves when the caller invokes Advance or SetTicks;
// due alarms are serviced on Poll (Advance polls once on its own).
type Clock struct {
	freq hal.Frequency

	// Guarded by irq critical sections, matching how a hardware
	// backend guards its registers against its own interrupt path.
	ticks     hal.Ticks
	running   bool
	target    hal.Ticks
	hasTarget bool
	armed     bool
	client    hal.AlarmClient
}

var (
	_ hal.Counter = (*Clock)(nil)
	_ hal.Alarm   = (*Clock)(nil)
)

// New returns a stopped clock at tick zero running at frequency f.
func New(f hal.Frequency) *Clock {
	return &Clock{freq: f}
}

// Frequency returns the clock's rate tag for tic conversion by callers.
func (c *Clock) Frequency() hal.Frequency {
	return c.freq
}

// Now returns the current tick count.
func (c *Clock) Now() hal.Ticks {
	state := irq.Disable()
	defer irq.Restore(state)
	return c.ticks
}

// IsArmed reports whether an alarm firing is pending.
func (c *Clock) IsArmed() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return c.armed
}

// Disable masks any pending alarm. Idempotent; the stored target is
// kept and can be re-armed with Enable.
func (c *Clock) Disable() {
	state := irq.Disable()
	c.armed = false
	now := c.ticks
	irq.Restore(state)
	trace.Record(trace.EvtCancel, uint32(now), uint32(c.target))
}

// Start begins the free-running count. Starting a running clock is a
// successful no-op.
func (c *Clock) Start() hal.Status {
	state := irq.Disable()
	defer irq.Restore(state)
	c.running = true
	return hal.StatusOK
}

// Stop halts the count. Stopping a stopped clock is a successful no-op.
func (c *Clock) Stop() hal.Status {
	state := irq.Disable()
	defer irq.Restore(state)
	c.running = false
	return hal.StatusOK
}

// IsRunning reports whether the count advances.
func (c *Clock) IsRunning() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return c.running
}

// SetAlarm records tics as the absolute target and arms the alarm.
func (c *Clock) SetAlarm(tics hal.Ticks) {
	state := irq.Disable()
	c.target = tics
	c.hasTarget = true
	c.armed = true
	now := c.ticks
	irq.Restore(state)

	trace.Record(trace.EvtAlarmSet, uint32(now), uint32(tics))
	if tics.ReachedBy(now) {
		trace.Record(trace.EvtAlarmPast, uint32(now), uint32(tics))
	}
}

// Alarm returns the last target passed to SetAlarm.
func (c *Clock) Alarm() hal.Ticks {
	state := irq.Disable()
	defer irq.Restore(state)
	return c.target
}

// SetClient installs the callback target, replacing any prior one.
func (c *Clock) SetClient(client hal.AlarmClient) {
	state := irq.Disable()
	defer irq.Restore(state)
	c.client = client
}

// IsEnabled reports whether the alarm is armed.
func (c *Clock) IsEnabled() bool {
	return c.IsArmed()
}

// Enable re-arms the alarm at the stored target. Returns StatusInvalid
// if SetAlarm has never been called.
func (c *Clock) Enable() hal.Status {
	state := irq.Disable()
	defer irq.Restore(state)
	if !c.hasTarget {
		return hal.StatusInvalid
	}
	c.armed = true
	return hal.StatusOK
}

// SetTicks jumps the counter to an arbitrary value without servicing
// the alarm. Used to model hardware state at test setup.
func (c *Clock) SetTicks(tics hal.Ticks) {
	state := irq.Disable()
	c.ticks = tics
	irq.Restore(state)
}

// Advance moves the counter forward by d tics if the clock is running,
// then services any due alarm. A stopped clock does not move.
func (c *Clock) Advance(d hal.Ticks) {
	state := irq.Disable()
	if c.running {
		c.ticks = c.ticks.Add(d)
	}
	irq.Restore(state)
	c.Poll()
}

// Poll services the alarm: if armed and the target has been reached,
// the alarm is disarmed and the client signaled exactly once. The armed
// flag is cleared before the callback runs, so a Disable racing the
// match either suppresses the callback or lets exactly one through.
func (c *Clock) Poll() {
	state := irq.Disable()
	due := c.armed && c.client != nil && c.target.ReachedBy(c.ticks)
	var client hal.AlarmClient
	var now, target hal.Ticks
	if due {
		c.armed = false
		client = c.client
		now, target = c.ticks, c.target
	}
	irq.Restore(state)

	if due {
		trace.Record(trace.EvtAlarmFire, uint32(now), uint32(target))
		client.Fired()
	}
}
