//go:build tinygo

package irq

import "runtime/interrupt"

// State holds the interrupt state to restore after a critical section.
type State = interrupt.State

// Disable masks interrupts and returns the previous state.
func Disable() State {
	return interrupt.Disable()
}

// Restore restores the interrupt state saved by Disable.
func Restore(state State) {
	interrupt.Restore(state)
}
