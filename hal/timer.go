package hal

// Timer models relative-interval scheduling: one-shot or repeating
// notifications some number of tics from now, typically layered on an
// Alarm by an adapter that tracks the absolute target.
type Timer interface {
	Time

	// SetClient installs the callback target, replacing any prior
	// registration.
	SetClient(client TimerClient)

	// Oneshot arms the timer to fire once, interval tics from now.
	Oneshot(interval Ticks)

	// Repeat arms the timer to fire every interval tics. Each firing
	// schedules the next target at previous_target + interval, not
	// Now() + interval, so callback latency never accumulates drift.
	Repeat(interval Ticks)

	// Interval returns the configured relative interval. Stable
	// across firings for a repeating timer.
	Interval() Ticks

	IsOneshot() bool
	IsRepeating() bool

	// TimeRemaining returns target - Now(), clamped to 0 once the
	// target has passed or the timer is disabled.
	TimeRemaining() Ticks

	IsEnabled() bool

	// Cancel disarms the timer. Cancelling an idle or already-fired
	// timer is a successful no-op.
	Cancel() Status
}

// TimerClient receives the notification when a Timer's interval elapses.
type TimerClient interface {
	Fired()
}
