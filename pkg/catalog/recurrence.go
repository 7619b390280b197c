package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// occurrenceOn returns the start of the recurring event's occurrence on day's
// calendar date, if it has one. Cards published as a standing fixture list
// carry an RRULE instead of one VEVENT per meeting.
func occurrenceOn(comp *ical.Component, dtstart, day time.Time) (time.Time, bool, error) {
	ruleProp := comp.Props.Get(ical.PropRecurrenceRule)
	r, err := rrule.StrToRRule(ruleProp.Value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s %q: %w", ical.PropRecurrenceRule, ruleProp.Value, err)
	}
	r.DTStart(dtstart)

	var set rrule.Set
	set.RRule(r)

	exdates, err := exceptionDates(comp, dtstart.Location())
	if err != nil {
		return time.Time{}, false, err
	}
	for _, ex := range exdates {
		set.ExDate(ex)
	}

	loc := day.Location()
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	for _, occ := range set.Between(from.In(dtstart.Location()), to.In(dtstart.Location()), true) {
		if occ.Before(to) {
			return occ.In(loc), true, nil
		}
	}
	return time.Time{}, false, nil
}

// exceptionDates collects every EXDATE, including comma-separated lists.
func exceptionDates(comp *ical.Component, loc *time.Location) ([]time.Time, error) {
	var out []time.Time
	for _, prop := range comp.Props.Values(ical.PropExceptionDates) {
		for _, value := range strings.Split(prop.Value, ",") {
			single := prop
			single.Value = strings.TrimSpace(value)
			t, err := parseDateTimeProperty(&single, loc)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", ical.PropExceptionDates, err)
			}
			out = append(out, t.In(loc))
		}
	}
	return out, nil
}
