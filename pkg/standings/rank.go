package standings

import (
	"fmt"
	"sort"
)

// Rank returns a copy of t ordered by points descending, then NRR descending.
// Ties keep their original relative order.
func Rank(t Table) Table {
	ranked := t.Clone()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].NRR > ranked[j].NRR
	})
	return ranked
}

// At returns the entry ranked at the 1-based position.
func At(t Table, position int) (Entry, error) {
	if position < 1 || position > len(t) {
		return Entry{}, fmt.Errorf("%w: position %d, table has %d teams", ErrPositionOutOfRange, position, len(t))
	}
	return Rank(t)[position-1], nil
}

// Find returns the entry for the named team.
func Find(t Table, team string) (Entry, error) {
	for _, e := range t {
		if e.Team == team {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrTeamNotFound, team)
}

// RankOf returns the 1-based ranked position of the named team.
func RankOf(t Table, team string) (int, error) {
	for i, e := range Rank(t) {
		if e.Team == team {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrTeamNotFound, team)
}
