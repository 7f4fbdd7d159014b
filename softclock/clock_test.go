package softclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockhal/hal"
)

type countingClient struct {
	fires int
}

func (c *countingClient) Fired() {
	c.fires++
}

func newStarted(t *testing.T) (*Clock, *countingClient) {
	t.Helper()
	c := New(hal.Freq16MHz{})
	client := &countingClient{}
	c.SetClient(client)
	require.True(t, c.Start().OK())
	return c, client
}

func TestAlarmTargetRoundTrip(t *testing.T) {
	c, _ := newStarted(t)

	c.SetAlarm(1337)
	assert.Equal(t, hal.Ticks(1337), c.Alarm())

	// Disabling masks the alarm but keeps the stored target.
	c.Disable()
	assert.Equal(t, hal.Ticks(1337), c.Alarm())
}

func TestSetAlarmArmsAutomatically(t *testing.T) {
	c, _ := newStarted(t)

	assert.False(t, c.IsArmed())
	c.SetAlarm(100)
	assert.True(t, c.IsArmed())
	assert.True(t, c.IsEnabled())
}

func TestEnableRequiresTarget(t *testing.T) {
	c, _ := newStarted(t)

	assert.Equal(t, hal.StatusInvalid, c.Enable())

	c.SetAlarm(100)
	c.Disable()
	assert.False(t, c.IsArmed())
	assert.Equal(t, hal.StatusOK, c.Enable())
	assert.True(t, c.IsArmed())
}

func TestDisableIdempotent(t *testing.T) {
	c, client := newStarted(t)

	c.Disable()
	c.Disable()
	assert.False(t, c.IsArmed())

	c.SetAlarm(50)
	c.Disable()
	c.Disable()
	c.Advance(100)
	assert.Equal(t, 0, client.fires)
}

func TestCounterControlIdempotent(t *testing.T) {
	c := New(hal.Freq1MHz{})

	assert.False(t, c.IsRunning())
	assert.Equal(t, hal.StatusOK, c.Start())
	assert.Equal(t, hal.StatusOK, c.Start())
	assert.True(t, c.IsRunning())

	assert.Equal(t, hal.StatusOK, c.Stop())
	assert.Equal(t, hal.StatusOK, c.Stop())
	assert.False(t, c.IsRunning())
}

func TestStoppedClockHoldsStill(t *testing.T) {
	c := New(hal.Freq1MHz{})
	c.SetTicks(100)

	c.Advance(50)
	assert.Equal(t, hal.Ticks(100), c.Now())

	c.Start()
	c.Advance(50)
	assert.Equal(t, hal.Ticks(150), c.Now())
}

func TestAlarmFiresExactlyOnce(t *testing.T) {
	c, client := newStarted(t)

	c.SetAlarm(100)
	c.Advance(99)
	assert.Equal(t, 0, client.fires)

	c.Advance(1)
	assert.Equal(t, 1, client.fires)
	assert.False(t, c.IsArmed(), "alarm disarms after firing")

	c.Advance(1000)
	assert.Equal(t, 1, client.fires, "one-shot must not fire again")
}

func TestWrapScenario16MHz(t *testing.T) {
	// Counter at 0xFFFFFFF0, delta 0x20: target is 0x10 after the
	// wrap and must not fire before now passes it.
	c, client := newStarted(t)
	c.SetTicks(0xFFFFFFF0)

	c.SetAlarm(c.Now().Add(0x20))
	assert.Equal(t, hal.Ticks(0x10), c.Alarm())

	c.Advance(0x10) // now = 0
	assert.Equal(t, 0, client.fires)

	c.Advance(0x0F) // now = 0x0F
	assert.Equal(t, 0, client.fires)

	c.Advance(0x01) // now = 0x10
	assert.Equal(t, 1, client.fires)

	c.Advance(0x1000)
	assert.Equal(t, 1, client.fires)
}

func TestFullRangeCrossingFiresOnce(t *testing.T) {
	// Walk now circularly through the entire 32-bit range starting
	// just before the target; exactly one firing, wherever the
	// crossing lands.
	for _, target := range []hal.Ticks{0x10, 0x80000000, 0xFFFFFFFA} {
		c, client := newStarted(t)
		c.SetTicks(target.Sub(5))
		c.SetAlarm(target)

		// 4096 steps of 2^20 tics cover the full 2^32 range.
		for i := 0; i < 4096; i++ {
			c.Advance(1 << 20)
		}
		assert.Equal(t, 1, client.fires, "target %#x", uint32(target))
	}
}

func TestClientReplacement(t *testing.T) {
	c, first := newStarted(t)
	second := &countingClient{}
	c.SetClient(second)

	c.SetAlarm(10)
	c.Advance(10)
	assert.Equal(t, 0, first.fires, "replaced client receives nothing")
	assert.Equal(t, 1, second.fires)
}

func TestDisableSuppressesPendingMatch(t *testing.T) {
	c, client := newStarted(t)

	c.SetAlarm(100)
	c.Advance(99)
	c.Disable()
	c.Advance(50)
	assert.Equal(t, 0, client.fires)
}

func TestPastTargetFiresOnNextPoll(t *testing.T) {
	c, client := newStarted(t)
	c.SetTicks(1000)

	c.SetAlarm(c.Now().Sub(1))
	c.Poll()
	assert.Equal(t, 1, client.fires)
}

func TestFrequencyAccessor(t *testing.T) {
	c := New(hal.Freq32KHz{})
	assert.Equal(t, uint32(32768), c.Frequency().Hertz())
}
