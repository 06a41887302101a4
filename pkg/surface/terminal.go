package surface

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nrrscope/nrrscope/pkg/nrr"
	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func verdictColor(a scenario.Outcome) string {
	if noColor() {
		return ""
	}
	switch {
	case a.Achievable:
		return colorGreen
	case a.Reason == scenario.ReasonNRRUnreachable:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scenario.Result) error {
	req := result.Request
	a := result.Answer

	verdict := "Achievable"
	if !a.Achievable {
		verdict = "Not achievable"
	}

	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("nrrscope: %s vs %s, %s, %d overs",
			req.YourTeam, req.OppositionTeam, req.Direction, req.MatchOvers)))

	fmt.Fprintf(w, "Current:  position %d, %d points, NRR %s\n",
		result.CurrentPosition, result.CurrentPoints, nrr.FormatSigned(result.CurrentNRR))
	fmt.Fprintf(w, "Target:   position %d held by %s, %d points, NRR %s\n",
		req.DesiredPosition, bold(result.TargetTeam), result.TargetPoints, nrr.FormatSigned(result.TargetNRR))
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("After a win: %d points", result.PointsAfterWin)))

	fmt.Fprintf(w, "%s\n", bold(colored(verdict, verdictColor(a))))

	switch {
	case a.Achievable && a.Restrict != nil:
		fmt.Fprintf(w, "  Restrict %s to %d-%d runs\n", req.OppositionTeam, a.Restrict.Min, a.Restrict.Max)
		fmt.Fprintf(w, "  Revised NRR %s to %s\n", nrr.FormatSigned(a.NRR.Min), nrr.FormatSigned(a.NRR.Max))
	case a.Achievable && a.Chase != nil:
		fmt.Fprintf(w, "  Chase %d runs in %s-%s overs\n", req.Runs+1, a.Chase.Min, a.Chase.Max)
		fmt.Fprintf(w, "  Revised NRR %s to %s\n", nrr.FormatSigned(a.NRR.Min), nrr.FormatSigned(a.NRR.Max))
	}
	fmt.Fprintln(w)

	for _, line := range wrapText(result.Summary(), 70) {
		fmt.Fprintf(w, "%s\n", dim(line))
	}
	return nil
}

// RenderTable prints the ranked table with aligned columns.
func (r *TerminalRenderer) RenderTable(w io.Writer, table standings.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, bold("POS\tTEAM\tM\tW\tL\tPTS\tNRR\tFOR\tAGAINST"))
	for i, e := range standings.Rank(table) {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%d/%s\t%d/%s\n",
			i+1, e.Team, e.Matches, e.Won, e.Lost, e.Points, nrr.FormatSigned(e.NRR),
			e.RunsFor, e.OversFor, e.RunsAgainst, e.OversAgainst)
	}
	return tw.Flush()
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
