package models

// Melody is the alarm tone the user picked. The set is closed.
type Melody string

const (
	MelodyCall   Melody = "Call"
	MelodyBugle  Melody = "Bugle"
	MelodyHawaii Melody = "Hawaii"
)

// DefaultMelody is used when no preference is stored or the stored one is unknown.
const DefaultMelody = MelodyCall

// Melodies lists every selectable melody in display order.
var Melodies = []Melody{MelodyCall, MelodyBugle, MelodyHawaii}

// Valid reports whether m is one of the known melodies.
func (m Melody) Valid() bool {
	for _, known := range Melodies {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMelody maps a stored value to a melody, falling back to DefaultMelody.
func ParseMelody(s string) Melody {
	if m := Melody(s); m.Valid() {
		return m
	}
	return DefaultMelody
}

// MelodyNames returns the melodies as strings, for select widgets and flags.
func MelodyNames() []string {
	names := make([]string, len(Melodies))
	for i, m := range Melodies {
		names[i] = string(m)
	}
	return names
}
