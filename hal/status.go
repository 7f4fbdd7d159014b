package hal

// Status is the shared result code returned by fallible HAL operations.
// This layer is kernel-side code: a genuine hardware fault surfaces as a
// code to the caller, never as a panic.
type Status int8

const (
	StatusOK      Status = iota // Operation completed
	StatusFail                  // Generic hardware failure
	StatusBusy                  // Resource held in an incompatible mode
	StatusInvalid               // Precondition violated (e.g. Enable with no target)
)

// OK reports whether the operation succeeded.
func (s Status) OK() bool {
	return s == StatusOK
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFail:
		return "fail"
	case StatusBusy:
		return "busy"
	case StatusInvalid:
		return "invalid"
	}
	return "unknown"
}
