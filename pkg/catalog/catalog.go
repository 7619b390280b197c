// Package catalog loads the day's race catalog from the published feed, an
// iCalendar feed, or a local file, falling back to the bundled card when the
// source is unavailable.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/borgmon/race-alarm/pkg/models"
)

//go:embed static/races.json
var staticJSON []byte

// ErrEmpty is returned when a source decodes to no races.
var ErrEmpty = errors.New("catalog is empty")

// ValidationError describes one invalid catalog entry.
type ValidationError struct {
	Index  int    // position in the catalog
	Field  string // time, place, runners or id
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("race %d: invalid %s %q: %s", e.Index, e.Field, e.Value, e.Reason)
}

// Validate checks every race and returns all problems joined, or nil.
func Validate(races []models.Race) error {
	if len(races) == 0 {
		return ErrEmpty
	}
	var errs []error
	seen := make(map[models.RaceID]int, len(races))
	for i, race := range races {
		if _, _, err := models.ParseWallClock(race.Time); err != nil {
			errs = append(errs, &ValidationError{Index: i, Field: "time", Value: race.Time, Reason: "want 24-hour HH:MM"})
		}
		if strings.TrimSpace(race.Place) == "" {
			errs = append(errs, &ValidationError{Index: i, Field: "place", Value: race.Place, Reason: "must not be empty"})
		}
		if race.Runners < 0 {
			errs = append(errs, &ValidationError{Index: i, Field: "runners", Value: fmt.Sprint(race.Runners), Reason: "must not be negative"})
		}
		if first, dup := seen[race.ID()]; dup {
			errs = append(errs, &ValidationError{Index: i, Field: "id", Value: string(race.ID()), Reason: fmt.Sprintf("duplicates race %d", first)})
			continue
		}
		seen[race.ID()] = i
	}
	return errors.Join(errs...)
}

// DecodeJSON reads the published JSON feed: an array of
// {"time","place","details","runners"} objects.
func DecodeJSON(r io.Reader) ([]models.Race, error) {
	var races []models.Race
	if err := json.NewDecoder(r).Decode(&races); err != nil {
		return nil, fmt.Errorf("failed to decode race json: %w", err)
	}
	return races, nil
}

// Static returns the bundled fallback card.
func Static() []models.Race {
	races, err := DecodeJSON(bytes.NewReader(staticJSON))
	if err != nil {
		panic("catalog: bundled races.json: " + err.Error())
	}
	return races
}
