package standings

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nrrscope/nrrscope/pkg/overs"
)

// column identifies a points table column recognised by ParseHTML.
type column int

const (
	colUnknown column = iota
	colPosition
	colTeam
	colMatches
	colWon
	colLost
	colPoints
	colNRR
	colFor
	colAgainst
)

var headerAliases = map[string]column{
	"pos":      colPosition,
	"#":        colPosition,
	"position": colPosition,
	"team":     colTeam,
	"teams":    colTeam,
	"m":        colMatches,
	"p":        colMatches,
	"mat":      colMatches,
	"matches":  colMatches,
	"played":   colMatches,
	"w":        colWon,
	"won":      colWon,
	"l":        colLost,
	"lost":     colLost,
	"pts":      colPoints,
	"points":   colPoints,
	"nrr":      colNRR,
	"net rr":   colNRR,
	"for":      colFor,
	"against":  colAgainst,
}

// ParseHTML extracts a points table from the first HTML table whose header
// row names at least a team, points and NRR column. For and Against cells are
// read in "runs/overs" form, e.g. "1462/160.0".
func ParseHTML(r io.Reader) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var (
		table    Table
		parseErr error
		found    bool
	)

	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rows := sel.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		cols := headerColumns(rows.First())
		if !hasColumns(cols, colTeam, colPoints, colNRR) {
			return true
		}

		found = true
		rows.Slice(1, goquery.ToEnd).EachWithBreak(func(i int, row *goquery.Selection) bool {
			var cells []string
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) == 0 {
				return true
			}

			e, err := parseRow(cols, cells)
			if err != nil {
				parseErr = fmt.Errorf("row %d: %w", i+1, err)
				return false
			}
			if e.Position == 0 {
				e.Position = len(table) + 1
			}
			table = append(table, e)
			return true
		})
		return false
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if !found {
		return nil, fmt.Errorf("%w: no points table found in page", ErrInvalidTable)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func headerColumns(row *goquery.Selection) []column {
	var cols []column
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(cell.Text()))
		cols = append(cols, headerAliases[name])
	})
	return cols
}

func hasColumns(cols []column, want ...column) bool {
	for _, w := range want {
		ok := false
		for _, c := range cols {
			if c == w {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func parseRow(cols []column, cells []string) (Entry, error) {
	var e Entry
	for i, c := range cols {
		if i >= len(cells) {
			break
		}
		v := cells[i]

		var err error
		switch c {
		case colPosition:
			e.Position, err = strconv.Atoi(v)
		case colTeam:
			e.Team = v
		case colMatches:
			e.Matches, err = strconv.Atoi(v)
		case colWon:
			e.Won, err = strconv.Atoi(v)
		case colLost:
			e.Lost, err = strconv.Atoi(v)
		case colPoints:
			e.Points, err = strconv.Atoi(v)
		case colNRR:
			e.NRR, err = strconv.ParseFloat(strings.TrimPrefix(v, "+"), 64)
		case colFor:
			e.RunsFor, e.OversFor, err = parseAggregate(v)
		case colAgainst:
			e.RunsAgainst, e.OversAgainst, err = parseAggregate(v)
		}
		if err != nil {
			return Entry{}, fmt.Errorf("column %d (%q): %w", i+1, v, err)
		}
	}
	return e, nil
}

// parseAggregate reads "runs/overs".
func parseAggregate(s string) (int, overs.Value, error) {
	runsPart, oversPart, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("expected runs/overs")
	}
	runs, err := strconv.Atoi(strings.TrimSpace(runsPart))
	if err != nil {
		return 0, 0, err
	}
	o, err := overs.Parse(oversPart)
	if err != nil {
		return 0, 0, err
	}
	return runs, overs.Value(o), nil
}
