// Package trace captures timing-critical scheduling events in a fixed
// ring buffer for post-mortem analysis. Recording is non-blocking and
// allocation-free so it is safe from the alarm servicing path; output
// only happens when a platform explicitly dumps the ring.
package trace

import "strconv"

// Writer is the platform-specific debug output function (UART, USB,
// stdout on host). No-op by default.
type Writer func(string)

// Event type codes
const (
	EvtAlarmSet   = 1 // Absolute target armed
	EvtAlarmFire  = 2 // Alarm client signaled
	EvtAlarmPast  = 3 // Target already past when armed
	EvtTimerArm   = 4 // Relative timer armed
	EvtTimerRearm = 5 // Repeating timer re-armed
	EvtCancel     = 6 // Alarm or timer disarmed
)

// Event is one captured scheduling event.
type Event struct {
	Kind  uint8  // Event type code (Evt*)
	Clock uint32 // Counter value at capture
	Value uint32 // Context-dependent (target, interval, ...)
}

const ringSize = 32 // Keep last 32 events for post-mortem

var (
	writer  Writer = func(string) {}
	enabled bool   = true

	ring     [ringSize]Event
	ringHead uint8
)

// SetWriter installs the platform debug output function.
func SetWriter(w Writer) {
	writer = w
}

// SetEnabled turns event capture on or off. Useful for benchmarks where
// even the ring write would affect timing.
func SetEnabled(on bool) {
	enabled = on
}

// Record captures an event. Always non-blocking and fast.
func Record(kind uint8, clock, value uint32) {
	if !enabled {
		return
	}
	idx := ringHead
	ring[idx] = Event{Kind: kind, Clock: clock, Value: value}
	ringHead = (idx + 1) % ringSize
}

// Dump writes the captured events, oldest first, through the installed
// writer. Call after stopping time-critical code.
func Dump() {
	writer("[trace] === scheduling ring ===")
	start := ringHead
	for i := uint8(0); i < ringSize; i++ {
		idx := (start + i) % ringSize
		evt := &ring[idx]
		if evt.Kind == 0 {
			continue // Empty slot
		}
		writer("[trace] " + kindName(evt.Kind) +
			" clock=" + strconv.FormatUint(uint64(evt.Clock), 10) +
			" value=" + strconv.FormatUint(uint64(evt.Value), 10))
	}
	writer("[trace] === end ===")
}

// Clear empties the ring.
func Clear() {
	for i := range ring {
		ring[i] = Event{}
	}
	ringHead = 0
}

func kindName(kind uint8) string {
	switch kind {
	case EvtAlarmSet:
		return "ALARM_SET"
	case EvtAlarmFire:
		return "ALARM_FIRE"
	case EvtAlarmPast:
		return "ALARM_PAST"
	case EvtTimerArm:
		return "TIMER_ARM"
	case EvtTimerRearm:
		return "TIMER_REARM"
	case EvtCancel:
		return "CANCEL"
	}
	return "UNKNOWN"
}
