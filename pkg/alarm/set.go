package alarm

import "github.com/borgmon/race-alarm/pkg/models"

// Set is a set of race ids.
type Set map[models.RaceID]struct{}

func (s Set) Has(id models.RaceID) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id models.RaceID) {
	s[id] = struct{}{}
}

func (s Set) Remove(id models.RaceID) {
	delete(s, id)
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
