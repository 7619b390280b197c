package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WarningLead is how long before the off a race's warning fires.
const WarningLead = 2 * time.Minute

// RaceID identifies a race within a day's catalog ("HH:MM-Place").
type RaceID string

// Race is one entry of the daily race catalog. Races are immutable once
// loaded; the JSON field names match the published catalog feed.
type Race struct {
	Time    string `json:"time"`    // wall clock start, 24-hour "HH:MM"
	Place   string `json:"place"`   // course name
	Details string `json:"details"` // race title/conditions
	Runners int    `json:"runners"` // declared runners
}

// ID returns the key used for all per-race alarm state.
func (r Race) ID() RaceID {
	return RaceID(r.Time + "-" + r.Place)
}

// StartOn resolves the race's wall clock time against the calendar day of ref.
func (r Race) StartOn(ref time.Time) time.Time {
	return Resolve(r.Time, ref)
}

// TriggerOn returns the warning time for the race on the day of ref.
func (r Race) TriggerOn(ref time.Time) time.Time {
	return r.StartOn(ref).Add(-WarningLead)
}

// Resolve combines an "HH:MM" wall clock value with the year, month and day
// of ref, in ref's location, with seconds and nanoseconds zeroed.
//
// Callers pass a fresh ref on every call so that day rollover follows the
// clock. Malformed values resolve to the zero time, which always compares as
// past; catalogs are expected to be validated before use.
func Resolve(wallClock string, ref time.Time) time.Time {
	hour, minute, err := ParseWallClock(wallClock)
	if err != nil {
		return time.Time{}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location())
}

// ParseWallClock splits a 24-hour "HH:MM" string into hour and minute.
func ParseWallClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("invalid wall clock %q: want HH:MM", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	if minute, err = strconv.Atoi(mm); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// WallClock formats t as the catalog's "HH:MM" form.
func WallClock(t time.Time) string {
	return t.Format("15:04")
}
