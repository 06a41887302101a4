package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nrrscope/nrrscope/internal/logging"
	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/standings"
	"github.com/nrrscope/nrrscope/pkg/surface"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// flexInt accepts a JSON number or a numeric string. Strings are read with
// leading-integer semantics, so "20 overs" is 20. Anything unreadable leaves
// the value unset.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	f.Value, f.Set = n, true
	return nil
}

// matchRequest is the JSON body for POST /api/match.
type matchRequest struct {
	YourTeam        string  `json:"yourTeam"`
	OppositionTeam  string  `json:"oppositionTeam"`
	Overs           flexInt `json:"overs"`
	DesiredPosition flexInt `json:"desiredPosition"`
	TossResult      string  `json:"tossResult"`
	Runs            flexInt `json:"runs"`
}

// toRequest converts the body and collects every validation problem.
func (m matchRequest) toRequest(maxPosition int) (scenario.Request, []string) {
	var problems []string
	if !m.Overs.Set {
		problems = append(problems, "match overs is required")
	}
	if !m.DesiredPosition.Set {
		problems = append(problems, "desired position is required")
	}
	if !m.Runs.Set {
		problems = append(problems, "runs is required")
	}

	req := scenario.Request{
		YourTeam:        m.YourTeam,
		OppositionTeam:  m.OppositionTeam,
		MatchOvers:      m.Overs.Value,
		DesiredPosition: m.DesiredPosition.Value,
		Runs:            m.Runs.Value,
	}
	// Only the two wire values are accepted here; the short forms are a CLI nicety.
	switch scenario.Direction(m.TossResult) {
	case scenario.BattingFirst, scenario.BowlingFirst:
		req.Direction = scenario.Direction(m.TossResult)
	}

	var verr *scenario.ValidationError
	if err := req.Validate(maxPosition); errors.As(err, &verr) {
		for _, p := range verr.Problems {
			if !duplicateOfMissing(p, m) {
				problems = append(problems, p)
			}
		}
	}
	return req, problems
}

// duplicateOfMissing drops the range problem for a field already reported as missing.
func duplicateOfMissing(problem string, m matchRequest) bool {
	switch {
	case !m.Overs.Set && strings.HasPrefix(problem, "match overs"):
		return true
	case !m.DesiredPosition.Set && strings.HasPrefix(problem, "desired position"):
		return true
	case !m.Runs.Set && strings.HasPrefix(problem, "runs"):
		return true
	}
	return false
}

// handleMatch handles POST /api/match.
func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var body matchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", "invalid JSON body: "+err.Error())
		return
	}

	req, problems := body.toRequest(h.maxPosition)
	if len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", problems...)
		return
	}

	snap := h.store.Current()
	key := cacheKey(snap.Version, req)
	res, hit := h.cache.Get(r.Context(), key)
	if !hit {
		var err error
		res, err = scenario.Calculate(snap.Entries, req)
		if err != nil {
			h.writeScenarioError(w, err)
			return
		}
		h.cache.Put(r.Context(), key, res)
	}

	logging.Log.WithFields(logrus.Fields{
		"team":       req.YourTeam,
		"direction":  req.Direction.Key(),
		"position":   req.DesiredPosition,
		"achievable": res.Answer.Achievable,
		"cached":     hit,
	}).Debug("scenario calculated")

	msg := "NRR scenarios calculated successfully"
	if res.Answer.Reason == scenario.ReasonPointsInsufficient {
		msg = "Position not achievable due to insufficient points"
	}
	writeOK(w, surface.NewView(res), msg)
}

func (h *Handler) writeScenarioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, standings.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "Team not found", err.Error())
	case errors.Is(err, standings.ErrPositionOutOfRange), errors.Is(err, scenario.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		logging.Log.WithError(err).Error("scenario calculation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// cacheKey identifies a request against one table version. Team names are
// quoted since they may contain the separator.
func cacheKey(version string, req scenario.Request) string {
	return fmt.Sprintf("nrr:result:%s:%s:%s:%d:%d:%s:%d",
		version, strconv.Quote(req.YourTeam), strconv.Quote(req.OppositionTeam), req.MatchOvers,
		req.DesiredPosition, req.Direction.Key(), req.Runs)
}
