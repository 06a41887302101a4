// Package standings holds tournament points tables: ranking, lookup, a
// versioned in-process store, and import from files and HTML pages.
package standings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nrrscope/nrrscope/pkg/overs"
)

var (
	// ErrTeamNotFound is returned when a team name is absent from a table.
	ErrTeamNotFound = errors.New("team not found")
	// ErrPositionOutOfRange is returned for positions outside 1..len(table).
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrInvalidTable is returned by Validate.
	ErrInvalidTable = errors.New("invalid points table")
)

// Entry is one team's row in the points table.
type Entry struct {
	Position     int         `json:"position"`
	Team         string      `json:"team"`
	Matches      int         `json:"matches"`
	Won          int         `json:"won"`
	Lost         int         `json:"lost"`
	Points       int         `json:"points"`
	NRR          float64     `json:"nrr"`
	RunsFor      int         `json:"runsFor"`
	OversFor     overs.Value `json:"oversFor"`
	RunsAgainst  int         `json:"runsAgainst"`
	OversAgainst overs.Value `json:"oversAgainst"`
}

// Table is an ordered points table. The stored order and Position fields are
// not necessarily in ranked order; use Rank for that.
type Table []Entry

// Clone returns a copy that shares no backing array with t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Validate checks that the table is non-empty, team names are present and
// unique, and counts are non-negative.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no teams", ErrInvalidTable)
	}

	var problems []string
	seen := make(map[string]bool, len(t))
	for i, e := range t {
		name := strings.TrimSpace(e.Team)
		if name == "" {
			problems = append(problems, fmt.Sprintf("row %d: team name is required", i+1))
			continue
		}
		if seen[name] {
			problems = append(problems, fmt.Sprintf("row %d: duplicate team %q", i+1, name))
		}
		seen[name] = true

		if e.Matches < 0 || e.Won < 0 || e.Lost < 0 || e.Points < 0 {
			problems = append(problems, fmt.Sprintf("row %d: negative match or points count", i+1))
		}
		if e.RunsFor < 0 || e.RunsAgainst < 0 || e.OversFor < 0 || e.OversAgainst < 0 {
			problems = append(problems, fmt.Sprintf("row %d: negative runs or overs", i+1))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(problems, "; "))
	}
	return nil
}

// Snapshot is a published version of the points table. Immutable once
// returned by a Store.
type Snapshot struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Entries   Table     `json:"entries"`
}
