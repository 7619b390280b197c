package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/borgmon/race-alarm/pkg/models"
)

// Waveform is the oscillator shape used for a note.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
)

// Note is one tone of a tune. Delay is measured from the start of the tune.
type Note struct {
	Frequency float64
	Duration  time.Duration
	Delay     time.Duration
}

// Tune is a melody ready to be synthesised.
type Tune struct {
	Waveform Waveform
	Notes    []Note
}

// Length is the time from the start of the tune to the end of its last note.
func (t Tune) Length() time.Duration {
	var end time.Duration
	for _, n := range t.Notes {
		if e := n.Delay + n.Duration; e > end {
			end = e
		}
	}
	return end
}

const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteF5 = 698.46
	noteG5 = 783.99
)

// arpeggio lays out freqs back to back starting at offset.
func arpeggio(offset, step time.Duration, freqs ...float64) []Note {
	notes := make([]Note, len(freqs))
	for i, f := range freqs {
		notes[i] = Note{Frequency: f, Duration: step, Delay: offset + time.Duration(i)*step}
	}
	return notes
}

func repeat(notes []Note, gap time.Duration) []Note {
	out := append([]Note(nil), notes...)
	for _, n := range notes {
		n.Delay += gap
		out = append(out, n)
	}
	return out
}

var tunes = map[models.Melody]Tune{
	models.MelodyCall: {
		Waveform: Sine,
		Notes: repeat(arpeggio(0, 200*time.Millisecond,
			noteC4, noteE4, noteG4, noteC5, noteA4, noteC5, noteD5, noteE5), 2*time.Second),
	},
	models.MelodyBugle: {
		Waveform: Square,
		Notes: []Note{
			{Frequency: noteG4, Duration: 150 * time.Millisecond, Delay: 0},
			{Frequency: noteC5, Duration: 150 * time.Millisecond, Delay: 200 * time.Millisecond},
			{Frequency: noteE5, Duration: 150 * time.Millisecond, Delay: 400 * time.Millisecond},
			{Frequency: noteG5, Duration: 400 * time.Millisecond, Delay: 600 * time.Millisecond},
			{Frequency: noteE5, Duration: 150 * time.Millisecond, Delay: 1100 * time.Millisecond},
			{Frequency: noteG5, Duration: 700 * time.Millisecond, Delay: 1300 * time.Millisecond},
		},
	},
	models.MelodyHawaii: {
		Waveform: Triangle,
		Notes: repeat(arpeggio(0, 300*time.Millisecond,
			noteF5, noteD5, noteB4, noteG4, noteA4, noteC5), 2200*time.Millisecond),
	},
}

// TuneFor returns the tune for m, or the default melody's tune when m is unknown.
func TuneFor(m models.Melody) Tune {
	if t, ok := tunes[m]; ok {
		return t
	}
	return tunes[models.DefaultMelody]
}

const (
	envelopeAttack  = 10 * time.Millisecond
	envelopeRelease = 30 * time.Millisecond
	peakAmplitude   = 0.6
)

// Synthesize renders t as mono signed 16-bit little-endian PCM. Volume is
// clamped to [0, 1] and scales the amplitude.
func Synthesize(t Tune, sampleRate int, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	total := samplesFor(t.Length(), sampleRate)
	mix := make([]float64, total)

	attack := float64(samplesFor(envelopeAttack, sampleRate))
	release := float64(samplesFor(envelopeRelease, sampleRate))

	for _, n := range t.Notes {
		start := samplesFor(n.Delay, sampleRate)
		length := samplesFor(n.Duration, sampleRate)
		for i := 0; i < length && start+i < total; i++ {
			phase := n.Frequency * float64(i) / float64(sampleRate)
			gain := 1.0
			if fi := float64(i); fi < attack {
				gain = fi / attack
			} else if rest := float64(length - i); rest < release {
				gain = rest / release
			}
			mix[start+i] += oscillate(t.Waveform, phase) * gain
		}
	}

	pcm := make([]byte, total*2)
	for i, v := range mix {
		v = math.Max(-1, math.Min(1, v*peakAmplitude*volume))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return pcm
}

func oscillate(w Waveform, phase float64) float64 {
	_, frac := math.Modf(phase)
	switch w {
	case Square:
		if frac < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(frac-0.5)
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}
