//go:build rp2040 || rp2350

// Package rp2040 implements the clock HAL against the RP2040/RP2350
// TIMER peripheral: a 64-bit microsecond counter at 1MHz with four
// 32-bit compare alarms. This backend uses ALARM0.
package rp2040

import (
	"runtime/volatile"
	"unsafe"

	"clockhal/hal"
	"clockhal/irq"
	"clockhal/trace"
)

// TIMER peripheral memory map
const (
	timerBase   = 0x40054000
	timerALARM0 = timerBase + 0x10 // Alarm 0 compare value
	timerARMED  = timerBase + 0x20 // Armed bits, write 1 to disarm
	timerRAWH   = timerBase + 0x24 // Raw counter high word
	timerRAWL   = timerBase + 0x28 // Raw counter low word
	timerPAUSE  = timerBase + 0x30 // Pause the counter
	timerINTR   = timerBase + 0x34 // Raw interrupt, write 1 to clear
	timerINTE   = timerBase + 0x38 // Interrupt enable
	timerINTS   = timerBase + 0x40 // Interrupt status after mask
)

const alarm0Bit = 1 << 0

var (
	regALARM0 = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM0)))
	regARMED  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerARMED)))
	regRAWH   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerRAWH)))
	regRAWL   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerRAWL)))
	regPAUSE  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerPAUSE)))
	regINTR   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	regINTE   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))
	regINTS   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTS)))
)

// Clock drives ALARM0 of the TIMER peripheral. The counter itself is
// shared chip infrastructure; Stop pauses it for every consumer, which
// is why Start/Stop report a Status the caller must check.
type Clock struct {
	client    hal.AlarmClient
	target    hal.Ticks
	hasTarget bool
}

var (
	_ hal.Counter = (*Clock)(nil)
	_ hal.Alarm   = (*Clock)(nil)
)

// NewClock returns the ALARM0-backed clock. At most one should exist;
// layer an alarmmux.Mux on top to share it.
func NewClock() *Clock {
	return &Clock{}
}

// Frequency returns the TIMER tick rate (1MHz).
func (c *Clock) Frequency() hal.Frequency {
	return hal.Freq1MHz{}
}

// Now returns the low 32 bits of the microsecond counter.
func (c *Clock) Now() hal.Ticks {
	return hal.Ticks(regRAWL.Get())
}

// Uptime reads the full 64-bit counter. High must be read before and
// after low to detect a rollover mid-read.
func (c *Clock) Uptime() uint64 {
	for {
		high1 := regRAWH.Get()
		low := regRAWL.Get()
		high2 := regRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// IsArmed reports whether ALARM0 is armed in hardware.
func (c *Clock) IsArmed() bool {
	return regARMED.Get()&alarm0Bit != 0
}

// Disable disarms ALARM0 and clears any latched match. Idempotent.
func (c *Clock) Disable() {
	state := irq.Disable()
	regARMED.Set(alarm0Bit)
	regINTR.Set(alarm0Bit)
	irq.Restore(state)
	trace.Record(trace.EvtCancel, regRAWL.Get(), uint32(c.target))
}

// Start unpauses the counter. A running counter is a successful no-op.
func (c *Clock) Start() hal.Status {
	regPAUSE.Set(0)
	return hal.StatusOK
}

// Stop pauses the counter. This halts time for every TIMER consumer on
// the chip, including the other three alarms.
func (c *Clock) Stop() hal.Status {
	regPAUSE.Set(1)
	return hal.StatusOK
}

// IsRunning reports whether the counter is unpaused.
func (c *Clock) IsRunning() bool {
	return regPAUSE.Get()&1 == 0
}

// SetAlarm writes tics to the ALARM0 compare register, which arms it in
// hardware. A target that has already circularly passed will not match
// for a full counter wrap, so it is flagged and caught by Poll instead.
func (c *Clock) SetAlarm(tics hal.Ticks) {
	state := irq.Disable()
	c.target = tics
	c.hasTarget = true
	regINTE.SetBits(alarm0Bit)
	regALARM0.Set(uint32(tics))
	now := hal.Ticks(regRAWL.Get())
	irq.Restore(state)

	trace.Record(trace.EvtAlarmSet, uint32(now), uint32(tics))
	if tics.ReachedBy(now) {
		trace.Record(trace.EvtAlarmPast, uint32(now), uint32(tics))
	}
}

// Alarm returns the last target passed to SetAlarm.
func (c *Clock) Alarm() hal.Ticks {
	return c.target
}

// SetClient installs the callback target, replacing any prior one.
func (c *Clock) SetClient(client hal.AlarmClient) {
	state := irq.Disable()
	c.client = client
	irq.Restore(state)
}

// IsEnabled reports whether ALARM0 is armed.
func (c *Clock) IsEnabled() bool {
	return c.IsArmed()
}

// Enable re-arms ALARM0 at the stored target. Returns StatusInvalid if
// SetAlarm has never been called.
func (c *Clock) Enable() hal.Status {
	state := irq.Disable()
	defer irq.Restore(state)
	if !c.hasTarget {
		return hal.StatusInvalid
	}
	regINTE.SetBits(alarm0Bit)
	regALARM0.Set(uint32(c.target))
	return hal.StatusOK
}

// ServiceInterrupt dispatches a pending ALARM0 match to the client.
// Board code calls this from its TIMER_IRQ_0 handler.
func (c *Clock) ServiceInterrupt() {
	state := irq.Disable()
	pending := regINTS.Get()&alarm0Bit != 0
	var client hal.AlarmClient
	if pending {
		regINTR.Set(alarm0Bit)
		regARMED.Set(alarm0Bit)
		client = c.client
	}
	irq.Restore(state)

	if pending {
		trace.Record(trace.EvtAlarmFire, regRAWL.Get(), uint32(c.target))
		if client != nil {
			client.Fired()
		}
	}
}

// Poll services ALARM0 from a main loop instead of an interrupt. It
// also catches targets that were already past at SetAlarm time, which
// the hardware comparator would miss until the next wrap.
func (c *Clock) Poll() {
	state := irq.Disable()
	armed := regARMED.Get()&alarm0Bit != 0
	now := hal.Ticks(regRAWL.Get())
	matched := regINTS.Get()&alarm0Bit != 0
	due := armed && (matched || c.target.ReachedBy(now))
	var client hal.AlarmClient
	if due {
		regINTR.Set(alarm0Bit)
		regARMED.Set(alarm0Bit)
		client = c.client
	}
	irq.Restore(state)

	if due {
		trace.Record(trace.EvtAlarmFire, uint32(now), uint32(c.target))
		if client != nil {
			client.Fired()
		}
	}
}
