package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSourceTicksOnSecondBoundaries(t *testing.T) {
	m := NewManual(epoch.Add(300 * time.Millisecond))
	s := NewSource(m, time.Second)
	var ticks []time.Time
	s.Start(func(now time.Time) { ticks = append(ticks, now) })

	m.Advance(3 * time.Second)
	assert.Equal(t, []time.Time{
		epoch.Add(1 * time.Second),
		epoch.Add(2 * time.Second),
		epoch.Add(3 * time.Second),
	}, ticks)
}

func TestSourceStop(t *testing.T) {
	m := NewManual(epoch)
	s := NewSource(m, 0)
	n := 0
	s.Start(func(time.Time) { n++ })

	m.Advance(2 * time.Second)
	assert.Equal(t, 2, n)

	s.Stop()
	s.Stop()
	m.Advance(5 * time.Second)
	assert.Equal(t, 2, n)
	assert.Zero(t, m.Pending())
}

func TestSourceStopFromCallback(t *testing.T) {
	m := NewManual(epoch)
	s := NewSource(m, time.Second)
	n := 0
	s.Start(func(time.Time) {
		n++
		s.Stop()
	})
	m.Advance(5 * time.Second)
	assert.Equal(t, 1, n)
}

func TestSourceRestartReplacesCallback(t *testing.T) {
	m := NewManual(epoch)
	s := NewSource(m, time.Second)
	var a, b int
	s.Start(func(time.Time) { a++ })
	m.Advance(time.Second)
	s.Start(func(time.Time) { b++ })
	m.Advance(2 * time.Second)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, m.Pending())
}
