package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestFakeAdvanceFiresInDeadlineOrder(t *testing.T) {
	f := NewFake()
	var fired []string

	f.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	f.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	f.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, f.Pending())

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, f.Pending())
}

func TestFakeChainedTimersWithinOneAdvance(t *testing.T) {
	f := NewFake()
	start := f.Now()
	var at []time.Duration

	var tick func()
	tick = func() {
		at = append(at, f.Now().Sub(start))
		if len(at) < 3 {
			f.AfterFunc(5*time.Millisecond, tick)
		}
	}
	f.AfterFunc(5*time.Millisecond, tick)

	f.Advance(time.Second)
	assert.Equal(t, []time.Duration{5 * time.Millisecond, 10 * time.Millisecond, 15 * time.Millisecond}, at)
	assert.Equal(t, time.Second, f.Now().Sub(start))
}

func TestFakeStop(t *testing.T) {
	f := NewFake()
	called := false
	timer := f.AfterFunc(time.Millisecond, func() { called = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	f.Advance(time.Second)
	assert.False(t, called)
}

func TestSleep(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("Fake clock wakes sleeper", func(t *testing.T) {
		f := NewFake()
		result := make(chan bool)
		go func() { result <- Sleep(f, time.Second, nil) }()

		f.BlockUntil(1)
		f.Advance(time.Second)
		assert.True(t, <-result)
	})

	t.Run("Done cancels and stops the timer", func(t *testing.T) {
		f := NewFake()
		done := make(chan struct{})
		result := make(chan bool)
		go func() { result <- Sleep(f, time.Hour, done) }()

		f.BlockUntil(1)
		close(done)
		assert.False(t, <-result)
		assert.Equal(t, 0, f.Pending())
	})

	t.Run("Real clock", func(t *testing.T) {
		assert.True(t, Sleep(Real(), time.Millisecond, nil))
	})
}
