package catalog

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func icalFeed(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//Race Cards//EN"}, lines...)
	all = append(all, "END:VCALENDAR", "")
	return strings.Join(all, "\r\n")
}

func vevent(uid, dtstart, summary, location, runners string) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:20251105T080000Z",
		dtstart,
		"SUMMARY:" + summary,
		"LOCATION:" + location,
	}
	if runners != "" {
		lines = append(lines, "X-RUNNERS:"+runners)
	}
	return append(lines, "END:VEVENT")
}

func TestDecodeICal(t *testing.T) {
	var lines []string
	lines = append(lines, vevent("1@cards", "DTSTART:20251105T143000", "Maiden Stakes", "York", "11")...)
	lines = append(lines, vevent("2@cards", "DTSTART:20251105T140000", "Handicap", "Ascot", "8")...)
	lines = append(lines, vevent("3@cards", "DTSTART:20251106T120000", "Tomorrow's race", "Kelso", "5")...)
	lines = append(lines, vevent("4@cards", "DTSTART;TZID=GMT Standard Time:20251105T150500", "Grade 2 Hurdle", "Cheltenham", "")...)

	day := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	races, err := DecodeICal(strings.NewReader(icalFeed(lines...)), day)
	require.NoError(t, err)

	assert.Equal(t, []models.Race{
		{Time: "14:00", Place: "Ascot", Details: "Handicap", Runners: 8},
		{Time: "14:30", Place: "York", Details: "Maiden Stakes", Runners: 11},
		{Time: "15:05", Place: "Cheltenham", Details: "Grade 2 Hurdle", Runners: 0},
	}, races)
}

func TestDecodeICalRejectsHTML(t *testing.T) {
	_, err := DecodeICal(strings.NewReader("<!DOCTYPE html><html></html>"), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")
}

func TestDecodeICalRejectsBadRunners(t *testing.T) {
	feed := icalFeed(vevent("1@cards", "DTSTART:20251105T143000", "Maiden", "York", "many")...)
	_, err := DecodeICal(strings.NewReader(feed), time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC))
	assert.ErrorContains(t, err, "X-RUNNERS")
}

func TestDecodeICalRecurring(t *testing.T) {
	var lines []string
	weekly := vevent("w@cards", "DTSTART:20251001T193000", "Evening Handicap", "Wolverhampton", "12")
	weekly = append(weekly[:len(weekly)-1], "RRULE:FREQ=WEEKLY;BYDAY=WE", "END:VEVENT")
	lines = append(lines, weekly...)

	daily := vevent("d@cards", "DTSTART:20251101T120000", "Lunchtime Sprint", "Kempton", "6")
	daily = append(daily[:len(daily)-1], "RRULE:FREQ=DAILY", "EXDATE:20251104T120000,20251105T120000", "END:VEVENT")
	lines = append(lines, daily...)

	ended := vevent("e@cards", "DTSTART:20251001T150000", "Finished Series", "Kelso", "")
	ended = append(ended[:len(ended)-1], "RRULE:FREQ=DAILY;COUNT=3", "END:VEVENT")
	lines = append(lines, ended...)

	feed := icalFeed(lines...)

	races, err := DecodeICal(strings.NewReader(feed), time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []models.Race{
		{Time: "19:30", Place: "Wolverhampton", Details: "Evening Handicap", Runners: 12},
	}, races)

	races, err = DecodeICal(strings.NewReader(feed), time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []models.Race{
		{Time: "12:00", Place: "Kempton", Details: "Lunchtime Sprint", Runners: 6},
	}, races)
}
