package hal

// Alarm models a wrapping counter that can notify when the count reaches
// a pre-set value. Implementors signal the registered AlarmClient when
// Now has met or circularly passed the target (the Ticks.ReachedBy rule).
//
// Targets more than HalfRange tics ahead are indistinguishable from
// already-past values and fire immediately on the next service pass.
type Alarm interface {
	Time

	// SetAlarm records tics as the absolute target and arms the
	// alarm. Firing is one-shot: the client is signaled exactly once,
	// after which the alarm is disarmed until re-armed.
	//
	//	alarm.SetAlarm(alarm.Now().Add(delta))
	SetAlarm(tics Ticks)

	// Alarm returns the last value passed to SetAlarm, regardless of
	// armed state, until overwritten.
	Alarm() Ticks

	// SetClient installs the callback target, replacing any prior
	// registration. A client must be installed before arming.
	SetClient(client AlarmClient)

	IsEnabled() bool

	// Enable re-arms the alarm at the stored target. It returns
	// StatusInvalid if no target has ever been set. SetAlarm arms on
	// its own; Enable and Disable are independent mask controls.
	Enable() Status
}

// AlarmClient receives the notification from an Alarm implementor's
// servicing context (interrupt handler or polling loop). Re-arming the
// alarm from inside Fired is supported.
type AlarmClient interface {
	Fired()
}
