package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuneForEveryMelody(t *testing.T) {
	for _, m := range models.Melodies {
		tune := TuneFor(m)
		assert.NotEmpty(t, tune.Notes, m)
	}
	assert.Equal(t, TuneFor(models.MelodyCall), TuneFor(models.Melody("Kazoo")))
}

func TestCallRepeatsAfterPause(t *testing.T) {
	tune := TuneFor(models.MelodyCall)
	require.Len(t, tune.Notes, 16)

	first, again := tune.Notes[:8], tune.Notes[8:]
	for i := range first {
		assert.Equal(t, first[i].Frequency, again[i].Frequency)
		assert.Equal(t, first[i].Delay+2*time.Second, again[i].Delay)
	}
	assert.Equal(t, noteC4, first[0].Frequency)
	assert.Equal(t, noteE5, first[7].Frequency)
	assert.Equal(t, 3600*time.Millisecond, tune.Length())
}

func TestSynthesizeLength(t *testing.T) {
	tune := Tune{Notes: []Note{{Frequency: noteA4, Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond}}}
	pcm := Synthesize(tune, 8000, 1)
	assert.Len(t, pcm, 2*1200)

	// leading delay is silent
	for i := 0; i < 400; i++ {
		assert.Zero(t, pcm[i*2], "sample %d", i)
		assert.Zero(t, pcm[i*2+1], "sample %d", i)
	}

	var peak int16
	for i := 400; i < 1200; i++ {
		if v := int16(binary.LittleEndian.Uint16(pcm[i*2:])); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, int16(0))
}

func TestSynthesizeMutedAndClamped(t *testing.T) {
	tune := TuneFor(models.MelodyBugle)

	for _, b := range Synthesize(tune, 8000, 0) {
		require.Zero(t, b)
	}
	assert.Equal(t, Synthesize(tune, 8000, 1), Synthesize(tune, 8000, 7))
}

func TestOscillatorBounds(t *testing.T) {
	for _, w := range []Waveform{Sine, Square, Triangle} {
		for i := 0; i < 100; i++ {
			v := oscillate(w, float64(i)/37)
			assert.LessOrEqual(t, v, 1.0)
			assert.GreaterOrEqual(t, v, -1.0)
		}
	}
	assert.Equal(t, 1.0, oscillate(Square, 0.25))
	assert.Equal(t, -1.0, oscillate(Square, 0.75))
	assert.InDelta(t, 1.0, oscillate(Triangle, 0.5), 1e-9)
}

func TestStopNilPlayer(t *testing.T) {
	var p *Player
	assert.NotPanics(t, p.Stop)

	p = &Player{stopChan: make(chan struct{})}
	p.Stop()
	assert.NotPanics(t, p.Stop)
}
