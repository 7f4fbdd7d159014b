//go:build !tinygo

// Package irq provides the critical-section primitive shared by every
// stateful clock backend. On host Go builds there are no interrupts, so
// the operations are no-ops and the tests exercise the same code paths
// the device runs.
package irq

// State holds the interrupt state to restore after a critical section.
type State uintptr

// Disable is a no-op on regular Go (for testing).
func Disable() State {
	return 0
}

// Restore is a no-op on regular Go (for testing).
func Restore(state State) {
}
