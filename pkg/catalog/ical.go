package catalog

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/emersion/go-ical"
)

// PropRunners is the non-standard property carrying the declared runners.
const PropRunners = "X-RUNNERS"

// DecodeICal reads an iCalendar feed and returns the races that start on
// day's calendar date, ordered by start time. DTSTART gives the wall clock,
// LOCATION the course, SUMMARY the details and X-RUNNERS the runners.
// Recurring events contribute their occurrence on day, if any.
func DecodeICal(r io.Reader, day time.Time) ([]models.Race, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}
	if err := validateICalFormat(string(body)); err != nil {
		return nil, err
	}

	loc := day.Location()
	y, m, d := day.Date()

	type dated struct {
		race  models.Race
		start time.Time
	}
	var found []dated

	decoder := ical.NewDecoder(strings.NewReader(string(body)))
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			normalizeComponentTimezones(comp)

			race, start, err := parseRace(comp, loc)
			if err != nil {
				return nil, err
			}
			if comp.Props.Get(ical.PropRecurrenceRule) != nil {
				occ, ok, err := occurrenceOn(comp, start, day)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				start = occ
				race.Time = models.WallClock(occ)
			}
			if sy, sm, sd := start.Date(); sy != y || sm != m || sd != d {
				continue
			}
			found = append(found, dated{race: race, start: start})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start.Before(found[j].start) })
	races := make([]models.Race, len(found))
	for i, f := range found {
		races[i] = f.race
	}
	return races, nil
}

func parseRace(comp *ical.Component, loc *time.Location) (models.Race, time.Time, error) {
	var race models.Race

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return race, time.Time{}, fmt.Errorf("event without %s", ical.PropDateTimeStart)
	}
	start, err := parseDateTimeProperty(startProp, loc)
	if err != nil {
		return race, time.Time{}, err
	}
	race.Time = models.WallClock(start)

	if locProp := comp.Props.Get(ical.PropLocation); locProp != nil {
		race.Place = strings.TrimSpace(locProp.Value)
	}
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		race.Details = strings.TrimSpace(summaryProp.Value)
	}
	if runnersProp := comp.Props.Get(PropRunners); runnersProp != nil {
		n, err := strconv.Atoi(strings.TrimSpace(runnersProp.Value))
		if err != nil {
			return race, time.Time{}, fmt.Errorf("invalid %s %q: %w", PropRunners, runnersProp.Value, err)
		}
		race.Runners = n
	}
	return race, start, nil
}

func parseDateTimeProperty(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	if t, err := prop.DateTime(loc); err == nil {
		return t.In(loc), nil
	}

	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

func validateICalFormat(body string) error {
	trimmed := strings.TrimSpace(body)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		preview := trimmed
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", preview)
	}
	return nil
}
