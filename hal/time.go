// Hardware-agnostic interfaces for counter-like resources.
//
// The capability hierarchy is Time at the base with Counter, Alarm and
// Timer layered on top via interface embedding. Platform code implements
// these against real registers; everything above the driver layer
// programs against the interfaces only.
package hal

// Time is the base capability every clock-like resource provides. All
// methods are bounded, non-blocking reads or in-memory updates and are
// safe to call from a client callback.
type Time interface {
	// Now returns the current time in hardware clock units.
	Now() Ticks

	// IsArmed reports whether a future notification is pending.
	IsArmed() bool

	// Disable silences any outstanding alarm or timer on this
	// resource. Calling it with nothing armed is a no-op.
	Disable()
}

// Counter adds start/stop control over a free-running clock. Some
// hardware counters are shared or cannot be halted in certain modes, so
// Start and Stop report a Status the caller must check. Re-starting a
// running counter is a successful no-op.
type Counter interface {
	Time

	Start() Status
	Stop() Status
	IsRunning() bool
}
