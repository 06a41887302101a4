// Package scenario answers "what result does my team need?" questions: given a
// team's record, the toss direction, match length and a desired table
// position, it finds the range of opposition outcomes that lifts the team's
// NRR to the NRR of the team currently holding that position.
package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// PointsForWin is the number of points a win awards.
const PointsForWin = 2

// ErrInvalidDirection is returned for toss directions other than
// BattingFirst and BowlingFirst.
var ErrInvalidDirection = errors.New("invalid toss direction")

// Direction is the toss outcome for the team under analysis.
type Direction string

const (
	BattingFirst Direction = "Batting First"
	BowlingFirst Direction = "Bowling First"
)

// ParseDirection accepts the wire values ("Batting First", "Bowling First")
// and the short forms "batting" and "bowling".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "batting first", "batting", "batting_first", "bat":
		return BattingFirst, nil
	case "bowling first", "bowling", "bowling_first", "bowl":
		return BowlingFirst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Key returns the machine key used in answers: "batting_first" or "bowling_first".
func (d Direction) Key() string {
	switch d {
	case BattingFirst:
		return "batting_first"
	case BowlingFirst:
		return "bowling_first"
	}
	return ""
}

// Request describes one scenario question. Runs is the runs scored when
// batting first, or the opposition total being chased when bowling first.
type Request struct {
	YourTeam        string    `json:"your_team"`
	OppositionTeam  string    `json:"opposition_team"`
	MatchOvers      int       `json:"match_overs"`
	DesiredPosition int       `json:"desired_position"`
	Direction       Direction `json:"direction"`
	Runs            int       `json:"runs"`
}

// Reason explains why an outcome is not achievable.
type Reason string

const (
	ReasonPointsInsufficient Reason = "points_insufficient"
	ReasonNRRUnreachable     Reason = "nrr_unreachable"
)

// RunsRange bounds the opposition total when batting first.
type RunsRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// OversRange bounds the overs taken to complete a chase, in "W.B" notation.
type OversRange struct {
	Min      string `json:"min"`
	Max      string `json:"max"`
	MinBalls int    `json:"min_balls"`
	MaxBalls int    `json:"max_balls"`
}

// NRRRange is the band of revised NRR values over a feasible range.
type NRRRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Outcome is the answer for one direction. Restrict is set for BattingFirst
// and Chase for BowlingFirst.
type Outcome struct {
	Type        string      `json:"type"`
	Achievable  bool        `json:"achievable"`
	Reason      Reason      `json:"reason,omitempty"`
	Restrict    *RunsRange  `json:"restrict_between,omitempty"`
	Chase       *OversRange `json:"chase_between,omitempty"`
	NRR         NRRRange    `json:"nrr_range"`
	BestCaseNRR float64     `json:"best_case_nrr"`
	TargetNRR   float64     `json:"target_nrr"`
	TargetTeam  string      `json:"target_team"`
}

// Result is the full answer to a Request, echoing the inputs alongside the
// current standing of both the team and the target.
type Result struct {
	Request         Request `json:"request"`
	CurrentPosition int     `json:"current_position"`
	CurrentNRR      float64 `json:"current_nrr"`
	CurrentPoints   int     `json:"current_points"`
	PointsAfterWin  int     `json:"points_after_win"`
	TargetTeam      string  `json:"target_team"`
	TargetNRR       float64 `json:"target_nrr"`
	TargetPoints    int     `json:"target_points"`
	Answer          Outcome `json:"answer"`
}
