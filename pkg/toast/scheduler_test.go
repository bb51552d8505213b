package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_fires_in_deadline_order(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string

	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, time.Unix(0, 0).Add(30*time.Millisecond), clock.Now())
}

func TestManualClock_callbacks_can_schedule(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var at []time.Duration

	clock.AfterFunc(10*time.Millisecond, func() {
		at = append(at, clock.Now().Sub(time.Unix(0, 0)))
		clock.AfterFunc(5*time.Millisecond, func() {
			at = append(at, clock.Now().Sub(time.Unix(0, 0)))
		})
	})

	clock.Advance(time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, at)
}

func TestManualClock_stop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	clock.Advance(time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, clock.Pending())
}
