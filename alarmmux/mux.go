// Package alarmmux fans a single physical hal.Alarm out to any number
// of virtual alarms. The underlying counter is one physical resource
// holding one client; this layer is the coordination point for callers
// that need independent alarms on the same clock.
package alarmmux

import (
	"clockhal/hal"
	"clockhal/irq"
)

// Mux owns the physical alarm and a pending list of virtual alarms
// sorted by target in circular order from the current count. The
// physical alarm is always targeted at the head of the list.
type Mux struct {
	alarm hal.Alarm

	// Guarded by irq critical sections.
	pending *VirtualAlarm
}

var _ hal.AlarmClient = (*Mux)(nil)

// New wraps alarm in a Mux. The mux takes the alarm's client slot.
func New(alarm hal.Alarm) *Mux {
	m := &Mux{alarm: alarm}
	alarm.SetClient(m)
	return m
}

// NewAlarm returns a fresh virtual alarm on this mux. Virtual alarms
// live for the life of the system; there is no destruction path.
func (m *Mux) NewAlarm() *VirtualAlarm {
	return &VirtualAlarm{mux: m}
}

// Fired services the physical alarm: every due virtual alarm is popped
// and signaled, then the physical alarm is re-targeted at the earliest
// survivor. Clients may re-arm from inside their callback.
func (m *Mux) Fired() {
	for {
		state := irq.Disable()
		now := m.alarm.Now()
		head := m.pending
		if head == nil || !head.target.ReachedBy(now) {
			irq.Restore(state)
			break
		}
		m.pending = head.next
		head.next = nil
		head.queued = false
		head.armed = false
		client := head.client
		irq.Restore(state)

		if client != nil {
			client.Fired()
		}
	}
	m.retarget()
}

// insert links v into the pending list in firing order. Caller holds
// the critical section.
func (m *Mux) insert(v *VirtualAlarm, now hal.Ticks) {
	v.queued = true
	if m.pending == nil || v.target.OrdersBefore(m.pending.target, now) {
		v.next = m.pending
		m.pending = v
		return
	}
	cur := m.pending
	for cur.next != nil && cur.next.target.OrdersBefore(v.target, now) {
		cur = cur.next
	}
	v.next = cur.next
	cur.next = v
}

// remove unlinks v from the pending list if queued. Caller holds the
// critical section.
func (m *Mux) remove(v *VirtualAlarm) {
	if !v.queued {
		return
	}
	v.queued = false
	if m.pending == v {
		m.pending = v.next
		v.next = nil
		return
	}
	for cur := m.pending; cur != nil; cur = cur.next {
		if cur.next == v {
			cur.next = v.next
			v.next = nil
			return
		}
	}
}

// retarget points the physical alarm at the head of the pending list,
// or masks it when nothing is queued.
func (m *Mux) retarget() {
	state := irq.Disable()
	head := m.pending
	irq.Restore(state)

	if head == nil {
		m.alarm.Disable()
		return
	}
	m.alarm.SetAlarm(head.target)
}

// VirtualAlarm is one multiplexed alarm. It implements the full
// hal.Alarm contract against the mux's shared clock.
type VirtualAlarm struct {
	mux    *Mux
	client hal.AlarmClient

	// Guarded by the mux's critical sections.
	target    hal.Ticks
	hasTarget bool
	armed     bool
	queued    bool
	next      *VirtualAlarm
}

var _ hal.Alarm = (*VirtualAlarm)(nil)

// Now returns the shared clock's current tick count.
func (v *VirtualAlarm) Now() hal.Ticks {
	return v.mux.alarm.Now()
}

// IsArmed reports whether a firing is pending for this virtual alarm.
func (v *VirtualAlarm) IsArmed() bool {
	state := irq.Disable()
	defer irq.Restore(state)
	return v.armed
}

// Disable masks this virtual alarm without touching its siblings.
func (v *VirtualAlarm) Disable() {
	state := irq.Disable()
	v.mux.remove(v)
	v.armed = false
	irq.Restore(state)

	v.mux.retarget()
}

// SetAlarm records tics as the absolute target and queues this virtual
// alarm on the mux.
func (v *VirtualAlarm) SetAlarm(tics hal.Ticks) {
	state := irq.Disable()
	now := v.mux.alarm.Now()
	v.mux.remove(v)
	v.target = tics
	v.hasTarget = true
	v.armed = true
	v.mux.insert(v, now)
	irq.Restore(state)

	v.mux.retarget()
}

// Alarm returns the last target passed to SetAlarm.
func (v *VirtualAlarm) Alarm() hal.Ticks {
	state := irq.Disable()
	defer irq.Restore(state)
	return v.target
}

// SetClient installs the callback target, replacing any prior one.
func (v *VirtualAlarm) SetClient(client hal.AlarmClient) {
	state := irq.Disable()
	defer irq.Restore(state)
	v.client = client
}

// IsEnabled reports whether this virtual alarm is armed.
func (v *VirtualAlarm) IsEnabled() bool {
	return v.IsArmed()
}

// Enable re-queues this virtual alarm at the stored target. Returns
// StatusInvalid if SetAlarm has never been called.
func (v *VirtualAlarm) Enable() hal.Status {
	state := irq.Disable()
	hasTarget := v.hasTarget
	target := v.target
	irq.Restore(state)

	if !hasTarget {
		return hal.StatusInvalid
	}
	v.SetAlarm(target)
	return hal.StatusOK
}
