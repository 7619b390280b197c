package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/race-alarm/pkg/models"
)

const (
	prefMelody    = "selected_melody"
	prefVolume    = "volume"
	prefAutoStart = "auto_start"

	defaultVolume = 1.0
)

// PreferenceStore persists user preferences using Fyne preferences
type PreferenceStore struct {
	prefs fyne.Preferences
}

// NewPreferenceStore creates a PreferenceStore on the application's preferences
func NewPreferenceStore(app fyne.App) *PreferenceStore {
	return &PreferenceStore{prefs: app.Preferences()}
}

// Melody returns the selected warning melody. Unknown stored values fall back
// to the default.
func (ps *PreferenceStore) Melody() models.Melody {
	return models.ParseMelody(ps.prefs.StringWithFallback(prefMelody, string(models.DefaultMelody)))
}

func (ps *PreferenceStore) SetMelody(m models.Melody) {
	if !m.Valid() {
		m = models.DefaultMelody
	}
	ps.prefs.SetString(prefMelody, string(m))
}

// Volume returns the playback volume in [0, 1].
func (ps *PreferenceStore) Volume() float64 {
	return clampVolume(ps.prefs.FloatWithFallback(prefVolume, defaultVolume))
}

func (ps *PreferenceStore) SetVolume(v float64) {
	ps.prefs.SetFloat(prefVolume, clampVolume(v))
}

func (ps *PreferenceStore) AutoStart() bool {
	return ps.prefs.BoolWithFallback(prefAutoStart, false)
}

func (ps *PreferenceStore) SetAutoStart(enabled bool) {
	ps.prefs.SetBool(prefAutoStart, enabled)
}

func clampVolume(v float64) float64 {
	switch {
	case v != v: // NaN
		return defaultVolume
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
