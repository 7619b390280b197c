package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusPriority(t *testing.T) {
	id := ascot.ID()
	both := Set{id: {}}
	none := Set{}

	tests := []struct {
		name    string
		now     time.Time
		armed   Set
		warning Set
		want    Label
	}{
		{name: "idle", now: at(13, 0, 0), armed: none, warning: none, want: LabelIdle},
		{name: "armed", now: at(13, 0, 0), armed: both, warning: none, want: LabelArmed},
		{name: "warning beats armed", now: at(13, 58, 0), armed: both, warning: both, want: LabelWarning},
		{name: "at the off is not yet off", now: at(14, 0, 0), armed: both, warning: both, want: LabelWarning},
		{name: "off beats warning", now: at(14, 0, 1), armed: both, warning: both, want: LabelOff},
		{name: "off when idle", now: at(14, 0, 1), armed: none, warning: none, want: LabelOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(ascot, tt.now, tt.armed, tt.warning)
			assert.Equal(t, tt.want, got.Label)
			assert.Equal(t, tt.want == LabelOff, got.Finished)
			assert.NotEmpty(t, got.Tone)
		})
	}
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
		ok   bool
	}{
		{name: "thirty seconds", now: at(13, 59, 30), want: "00:00:30", ok: true},
		{name: "floors fractions", now: at(13, 59, 30).Add(600 * time.Millisecond), want: "00:00:29", ok: true},
		{name: "hours", now: at(9, 14, 5), want: "04:45:55", ok: true},
		{name: "at the off", now: at(14, 0, 0), ok: false},
		{name: "after the off", now: at(14, 0, 1), ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Countdown("14:00", tt.now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetClone(t *testing.T) {
	s := Set{}
	s.Add("a")
	c := s.Clone()
	s.Remove("a")
	assert.True(t, c.Has("a"))
	assert.False(t, s.Has("a"))
}
