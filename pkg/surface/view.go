package surface

import (
	"github.com/nrrscope/nrrscope/pkg/nrr"
	"github.com/nrrscope/nrrscope/pkg/scenario"
)

// View is the display form of a scenario.Result: NRR values are fixed to
// three decimals and the answer carries its sentence.
type View struct {
	Scenario        string     `json:"scenario"`
	YourTeam        string     `json:"yourTeam"`
	OppositionTeam  string     `json:"oppositionTeam"`
	CurrentPosition int        `json:"currentPosition"`
	DesiredPosition int        `json:"desiredPosition"`
	CurrentNRR      string     `json:"currentNRR"`
	CurrentPoints   int        `json:"currentPoints"`
	PointsAfterWin  int        `json:"pointsAfterWin"`
	TargetTeam      string     `json:"targetTeam"`
	TargetNRR       string     `json:"targetNRR"`
	TargetPoints    int        `json:"targetPoints"`
	MatchOvers      int        `json:"matchOvers"`
	Runs            int        `json:"runs"`
	Answer          AnswerView `json:"answer"`
}

// AnswerView is the display form of a scenario.Outcome.
type AnswerView struct {
	Type            string              `json:"type"`
	Achievable      bool                `json:"achievable"`
	Reason          string              `json:"reason,omitempty"`
	Message         *string             `json:"message"`
	FormattedAnswer string              `json:"formattedAnswer"`
	RunsScored      *int                `json:"runsScored,omitempty"`
	TargetRuns      *int                `json:"targetRuns,omitempty"`
	RestrictBetween *scenario.RunsRange `json:"restrictBetween,omitempty"`
	ChaseBetween    *Span               `json:"chaseBetween,omitempty"`
	NRRRange        Span                `json:"nrrRange"`
	BestCaseNRR     string              `json:"bestCaseNRR,omitempty"`
}

// Span is a min/max pair of display strings.
type Span struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// NewView converts a result to its display form.
func NewView(r *scenario.Result) View {
	req := r.Request
	a := r.Answer

	v := View{
		Scenario:        string(req.Direction),
		YourTeam:        req.YourTeam,
		OppositionTeam:  req.OppositionTeam,
		CurrentPosition: r.CurrentPosition,
		DesiredPosition: req.DesiredPosition,
		CurrentNRR:      nrr.Format(r.CurrentNRR),
		CurrentPoints:   r.CurrentPoints,
		PointsAfterWin:  r.PointsAfterWin,
		TargetTeam:      r.TargetTeam,
		TargetNRR:       nrr.Format(r.TargetNRR),
		TargetPoints:    r.TargetPoints,
		MatchOvers:      req.MatchOvers,
		Runs:            req.Runs,
	}

	summary := r.Summary()
	av := AnswerView{
		Type:            a.Type,
		Achievable:      a.Achievable,
		Reason:          string(a.Reason),
		FormattedAnswer: summary,
		NRRRange:        Span{Min: nrr.Format(a.NRR.Min), Max: nrr.Format(a.NRR.Max)},
	}
	if !a.Achievable {
		av.Message = &summary
	}

	switch {
	case a.Reason == scenario.ReasonPointsInsufficient:
		// Both ranges are zeroed so clients can read either shape.
		av.RestrictBetween = &scenario.RunsRange{}
		av.ChaseBetween = &Span{Min: "0.0", Max: "0.0"}
	case a.Restrict != nil:
		runs := req.Runs
		av.RunsScored = &runs
		rr := *a.Restrict
		av.RestrictBetween = &rr
	case a.Chase != nil:
		runs := req.Runs
		av.TargetRuns = &runs
		av.ChaseBetween = &Span{Min: a.Chase.Min, Max: a.Chase.Max}
	}
	if a.Reason == scenario.ReasonNRRUnreachable {
		av.BestCaseNRR = nrr.Format(a.BestCaseNRR)
	}

	v.Answer = av
	return v
}
