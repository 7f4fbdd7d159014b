package hal

// Frequency tags a clock with its rate in Hz. Implementations are
// zero-sized so the constant is resolved at compile time; a tick value
// has no real-time meaning without one. The HAL itself never converts
// between tics and time units, that is left to calling code.
type Frequency interface {
	Hertz() uint32
}

// Freq16MHz is a 16 MHz clock.
type Freq16MHz struct{}

func (Freq16MHz) Hertz() uint32 { return 16000000 }

// Freq1MHz is a 1 MHz clock (the RP2040 TIMER rate).
type Freq1MHz struct{}

func (Freq1MHz) Hertz() uint32 { return 1000000 }

// Freq32KHz is a 32.768 kHz clock.
type Freq32KHz struct{}

func (Freq32KHz) Hertz() uint32 { return 32768 }

// Freq16KHz is a 16 kHz clock.
type Freq16KHz struct{}

func (Freq16KHz) Hertz() uint32 { return 16000 }

// Freq1KHz is a 1 kHz clock.
type Freq1KHz struct{}

func (Freq1KHz) Hertz() uint32 { return 1000 }

// TicksFromMicros converts microseconds to tics of a clock running at f.
func TicksFromMicros(f Frequency, us uint32) Ticks {
	return Ticks(uint64(us) * uint64(f.Hertz()) / 1000000)
}

// MicrosFromTicks converts tics of a clock running at f to microseconds.
func MicrosFromTicks(f Frequency, t Ticks) uint32 {
	return uint32(uint64(t) * 1000000 / uint64(f.Hertz()))
}
