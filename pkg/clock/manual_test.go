package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 11, 5, 13, 57, 0, 0, time.UTC)

func TestManualFiresInOrder(t *testing.T) {
	m := NewManual(epoch)
	var fired []string
	var at []time.Time
	record := func(name string) func() {
		return func() {
			fired = append(fired, name)
			at = append(at, m.Now())
		}
	}

	m.AfterFunc(3*time.Second, record("c"))
	m.AfterFunc(1*time.Second, record("a"))
	m.AfterFunc(2*time.Second, record("b"))
	m.AfterFunc(2*time.Second, record("b2"))
	require.Equal(t, 4, m.Pending())

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b", "b2"}, fired)
	assert.Equal(t, []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second), epoch.Add(2 * time.Second)}, at)
	assert.Equal(t, epoch.Add(2*time.Second), m.Now())

	m.Advance(time.Hour)
	assert.Equal(t, []string{"a", "b", "b2", "c"}, fired)
	assert.Equal(t, epoch.Add(2*time.Second+time.Hour), m.Now())
	assert.Zero(t, m.Pending())
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	timer := m.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Minute)
	assert.False(t, ran)
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(time.Second, func() {})
	m.Advance(time.Second)
	assert.False(t, timer.Stop())
}

func TestManualCallbackSchedulesWithinWindow(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var again func()
	again = func() {
		count++
		if count < 5 {
			m.AfterFunc(time.Second, again)
		}
	}
	m.AfterFunc(time.Second, again)

	m.Advance(3 * time.Second)
	assert.Equal(t, 3, count)
	m.Advance(10 * time.Second)
	assert.Equal(t, 5, count)
}

func TestManualZeroDelayRunsOnNextAdvance(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	m.AfterFunc(0, func() { ran = true })
	assert.False(t, ran)
	m.Advance(0)
	assert.True(t, ran)
}

func TestManualNeverMovesBackwards(t *testing.T) {
	m := NewManual(epoch)
	m.Set(epoch.Add(-time.Hour))
	assert.Equal(t, epoch, m.Now())
}
