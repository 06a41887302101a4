package scenario

import (
	"fmt"
	"strings"
)

// DefaultMaxPosition is the highest position a request may ask for when no
// other limit is configured.
const DefaultMaxPosition = 10

// MaxMatchOvers is the longest limited-overs allotment a request may name.
const MaxMatchOvers = 50

// ValidationError lists every problem found in a Request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validate checks the request-level invariants the search relies on.
// maxPosition <= 0 means DefaultMaxPosition.
func (r Request) Validate(maxPosition int) error {
	if maxPosition <= 0 {
		maxPosition = DefaultMaxPosition
	}

	var problems []string
	if strings.TrimSpace(r.YourTeam) == "" {
		problems = append(problems, "your team is required")
	}
	if strings.TrimSpace(r.OppositionTeam) == "" {
		problems = append(problems, "opposition team is required")
	}
	if r.YourTeam != "" && r.YourTeam == r.OppositionTeam {
		problems = append(problems, "your team and opposition team cannot be the same")
	}
	if r.MatchOvers <= 0 {
		problems = append(problems, "match overs must be a positive number")
	} else if r.MatchOvers > MaxMatchOvers {
		problems = append(problems, fmt.Sprintf("match overs cannot exceed %d", MaxMatchOvers))
	}
	if r.DesiredPosition < 1 || r.DesiredPosition > maxPosition {
		problems = append(problems, fmt.Sprintf("desired position must be a number between 1 and %d", maxPosition))
	}
	if r.Direction.Key() == "" {
		problems = append(problems, `toss result must be either "Batting First" or "Bowling First"`)
	}
	if r.Runs < 0 {
		problems = append(problems, "runs must be a non-negative number")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
