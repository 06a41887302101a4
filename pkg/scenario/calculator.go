package scenario

import (
	"fmt"

	"github.com/nrrscope/nrrscope/pkg/nrr"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// Calculate answers req against table. Unknown teams and positions are
// errors; an unreachable position is an Outcome with Achievable false.
//
// When the points the team would hold after a win still fall short of the
// target team's points, the NRR search is skipped and the answer carries
// ReasonPointsInsufficient.
func Calculate(table standings.Table, req Request) (*Result, error) {
	own, err := standings.Find(table, req.YourTeam)
	if err != nil {
		return nil, err
	}
	if _, err := standings.Find(table, req.OppositionTeam); err != nil {
		return nil, err
	}
	if req.Direction.Key() == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, req.Direction)
	}

	target, err := standings.At(table, req.DesiredPosition)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Request:         req,
		CurrentPosition: own.Position,
		CurrentNRR:      own.NRR,
		CurrentPoints:   own.Points,
		PointsAfterWin:  own.Points + PointsForWin,
		TargetTeam:      target.Team,
		TargetNRR:       target.NRR,
		TargetPoints:    target.Points,
	}

	if res.PointsAfterWin < target.Points {
		res.Answer = pointsInsufficient(req.Direction, target)
		return res, nil
	}

	res.Answer, err = search(own, target, req)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func pointsInsufficient(d Direction, target standings.Entry) Outcome {
	out := Outcome{
		Type:       d.Key(),
		Reason:     ReasonPointsInsufficient,
		TargetNRR:  target.NRR,
		TargetTeam: target.Team,
	}
	if d == BattingFirst {
		out.Restrict = &RunsRange{}
	} else {
		out.Chase = &OversRange{Min: "0.0", Max: "0.0"}
	}
	return out
}

// Summary is a one-sentence description of the result.
func (r *Result) Summary() string {
	req := r.Request
	a := r.Answer

	switch {
	case a.Reason == ReasonPointsInsufficient:
		return fmt.Sprintf("Not possible: even after winning, %s will have %d points, but %s at position %d has %d points.",
			req.YourTeam, r.PointsAfterWin, r.TargetTeam, req.DesiredPosition, r.TargetPoints)
	case !a.Achievable:
		return fmt.Sprintf("Cannot achieve position %d. Required NRR: %s, best possible NRR: %s.",
			req.DesiredPosition, nrr.FormatSigned(a.TargetNRR), nrr.FormatSigned(a.BestCaseNRR))
	case a.Restrict != nil:
		return fmt.Sprintf("If %s scores %d runs in %d overs, %s needs to restrict %s between %d and %d runs in %d overs. Revised NRR of %s will be between %s and %s.",
			req.YourTeam, req.Runs, req.MatchOvers, req.YourTeam, req.OppositionTeam,
			a.Restrict.Min, a.Restrict.Max, req.MatchOvers,
			req.YourTeam, nrr.FormatSigned(a.NRR.Min), nrr.FormatSigned(a.NRR.Max))
	case a.Chase != nil:
		return fmt.Sprintf("%s needs to chase %d runs between %s and %s overs. Revised NRR of %s will be between %s and %s.",
			req.YourTeam, req.Runs+1, a.Chase.Min, a.Chase.Max,
			req.YourTeam, nrr.FormatSigned(a.NRR.Min), nrr.FormatSigned(a.NRR.Max))
	}
	return ""
}
