package alarm

import (
	"fmt"
	"time"

	"github.com/borgmon/race-alarm/pkg/models"
)

type Label string

const (
	LabelOff     Label = "Race OFF"
	LabelWarning Label = "Warning"
	LabelArmed   Label = "Alarm Set"
	LabelIdle    Label = "Not Set"
)

// Status is what the board shows for a race.
type Status struct {
	Label    Label
	Tone     string // hex colour
	Finished bool   // race is off; toggling is disabled
}

// StatusOf applies the display priority: a race that is off always reports
// Race OFF, then Warning, then Alarm Set, then Not Set.
func StatusOf(race models.Race, now time.Time, armed, warning Set) Status {
	id := race.ID()
	switch {
	case race.StartOn(now).Before(now):
		return Status{Label: LabelOff, Tone: "#888888", Finished: true}
	case warning.Has(id):
		return Status{Label: LabelWarning, Tone: "#FFA500"}
	case armed.Has(id):
		return Status{Label: LabelArmed, Tone: "#34A853"}
	default:
		return Status{Label: LabelIdle, Tone: "#E02020"}
	}
}

// Countdown formats the time left until wallClock's start as zero-padded
// "HH:MM:SS", flooring to whole seconds. It returns false once the start
// is not in the future.
func Countdown(wallClock string, now time.Time) (string, bool) {
	diff := models.Resolve(wallClock, now).Sub(now)
	if diff <= 0 {
		return "", false
	}
	secs := int64(diff / time.Second)
	hours := (secs / 3600) % 24
	minutes := (secs / 60) % 60
	seconds := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds), true
}
