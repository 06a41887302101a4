package scenario

import (
	"sort"

	"github.com/nrrscope/nrrscope/pkg/nrr"
	"github.com/nrrscope/nrrscope/pkg/overs"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// Search resolves the team at req.DesiredPosition and runs the search for own
// against that team's NRR. It does not apply the points gate; see Calculate.
func Search(table standings.Table, own standings.Entry, req Request) (Outcome, error) {
	target, err := standings.At(table, req.DesiredPosition)
	if err != nil {
		return Outcome{}, err
	}
	return search(own, target, req)
}

func search(own, target standings.Entry, req Request) (Outcome, error) {
	var out Outcome
	switch req.Direction {
	case BattingFirst:
		out = searchBattingFirst(own, target.NRR, req.MatchOvers, req.Runs)
	case BowlingFirst:
		out = searchBowlingFirst(own, target.NRR, req.MatchOvers, req.Runs)
	default:
		return Outcome{}, ErrInvalidDirection
	}
	out.TargetTeam = target.Team
	return out, nil
}

// searchBattingFirst scans opposition totals 0..runsScored-1, the opposition
// always using the full allotment of overs.
func searchBattingFirst(own standings.Entry, targetNRR float64, matchOvers, runsScored int) Outcome {
	runsFor := own.RunsFor + runsScored
	oversFor := own.OversFor.Decimal() + float64(matchOvers)
	oversAgainst := own.OversAgainst.Decimal() + float64(matchOvers)

	rateAt := func(oppRuns int) float64 {
		return nrr.Compute(runsFor, oversFor, own.RunsAgainst+oppRuns, oversAgainst).Float()
	}

	out := Outcome{Type: BattingFirst.Key(), TargetNRR: targetNRR}

	lo, hi, ok := feasibleRange(0, runsScored-1, rateAt, targetNRR)
	if !ok {
		best := rateAt(0)
		out.Reason = ReasonNRRUnreachable
		out.Restrict = &RunsRange{}
		out.NRR = NRRRange{Min: best, Max: best}
		out.BestCaseNRR = best
		return out
	}

	out.Achievable = true
	out.Restrict = &RunsRange{Min: lo, Max: hi}
	out.NRR = NRRRange{Min: rateAt(hi), Max: rateAt(lo)}
	out.BestCaseNRR = out.NRR.Max
	return out
}

// searchBowlingFirst scans chase lengths of 1..matchOvers*6 balls. The team
// scores targetRuns+1; the opposition is charged the full allotment.
func searchBowlingFirst(own standings.Entry, targetNRR float64, matchOvers, targetRuns int) Outcome {
	runsFor := own.RunsFor + targetRuns + 1
	runsAgainst := own.RunsAgainst + targetRuns
	oversAgainst := own.OversAgainst.Decimal() + float64(matchOvers)

	rateAt := func(balls int) float64 {
		oversFor := own.OversFor.Decimal() + overs.FromBalls(balls)
		return nrr.Compute(runsFor, oversFor, runsAgainst, oversAgainst).Float()
	}

	out := Outcome{Type: BowlingFirst.Key(), TargetNRR: targetNRR}

	lo, hi, ok := feasibleRange(1, matchOvers*overs.BallsPerOver, rateAt, targetNRR)
	if !ok {
		best := rateAt(1)
		out.Reason = ReasonNRRUnreachable
		out.Chase = &OversRange{Min: "0.1", Max: "0.1", MinBalls: 1, MaxBalls: 1}
		out.NRR = NRRRange{Min: best, Max: best}
		out.BestCaseNRR = best
		return out
	}

	out.Achievable = true
	out.Chase = &OversRange{
		Min:      overs.Notation(overs.FromBalls(lo)),
		Max:      overs.Notation(overs.FromBalls(hi)),
		MinBalls: lo,
		MaxBalls: hi,
	}
	out.NRR = NRRRange{Min: rateAt(hi), Max: rateAt(lo)}
	out.BestCaseNRR = out.NRR.Max
	return out
}

// feasibleRange returns the points of [from, to] whose rate meets target.
// rate must be non-increasing over the domain, which makes the feasible set a
// prefix; the prefix end is found by binary search.
func feasibleRange(from, to int, rate func(int) float64, target float64) (lo, hi int, ok bool) {
	if to < from {
		return 0, 0, false
	}
	n := sort.Search(to-from+1, func(i int) bool {
		return rate(from+i) < target
	})
	if n == 0 {
		return 0, 0, false
	}
	return from, from + n - 1, true
}
