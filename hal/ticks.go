package hal

// Ticks is a clock value in native hardware tic units. Tick counters are
// 32 bits wide and free-running, so values wrap to zero past the maximum
// and form a circular space. Two Ticks can only be compared through the
// methods below; a native < or >= breaks across the wrap boundary.
type Ticks uint32

// HalfRange is the firing window. A target is "reached" once now has
// advanced to within HalfRange past it, which bounds alarms to at most
// half the counter range into the future.
const HalfRange Ticks = 1 << 31

// Add returns t + d modulo 2^32.
func (t Ticks) Add(d Ticks) Ticks {
	return t + d
}

// Sub returns t - u modulo 2^32.
func (t Ticks) Sub(u Ticks) Ticks {
	return t - u
}

// ReachedBy reports whether now has met or circularly passed t. The rule
// is now - t (mod 2^32) < HalfRange, so a target skipped over between two
// polls is still seen as due.
func (t Ticks) ReachedBy(now Ticks) bool {
	return now-t < HalfRange
}

// OrdersBefore reports whether t comes due no later than u, viewed from
// the reference point ref (normally the current counter value).
func (t Ticks) OrdersBefore(u, ref Ticks) bool {
	return t-ref <= u-ref
}
