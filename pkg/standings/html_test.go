package standings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointsPage = `<html><body>
<table><tr><th>Fixture</th><th>Venue</th></tr><tr><td>A v B</td><td>X</td></tr></table>
<table class="standings">
  <thead><tr><th>Pos</th><th>Team</th><th>M</th><th>W</th><th>L</th><th>Pts</th><th>NRR</th><th>For</th><th>Against</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Rajasthan Royals</td><td>8</td><td>6</td><td>2</td><td>12</td><td>+0.561</td><td>1462/160.0</td><td>1362/160.0</td></tr>
    <tr><td>2</td><td>Gujarat Titans</td><td>8</td><td>6</td><td>2</td><td>12</td><td>+0.371</td><td>1345/159.4</td><td>1285/160.0</td></tr>
    <tr><td>3</td><td>Mumbai Indians</td><td>8</td><td>0</td><td>8</td><td>0</td><td>-1.000</td><td>1305/160.0</td><td>1420/160.0</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseHTML(t *testing.T) {
	table, err := ParseHTML(strings.NewReader(pointsPage))
	require.NoError(t, err)
	require.Len(t, table, 3)

	rr := table[0]
	assert.Equal(t, 1, rr.Position)
	assert.Equal(t, "Rajasthan Royals", rr.Team)
	assert.Equal(t, 12, rr.Points)
	assert.Equal(t, 0.561, rr.NRR)
	assert.Equal(t, 1462, rr.RunsFor)
	assert.Equal(t, 160.0, rr.OversFor.Decimal())

	assert.Equal(t, "159.4", table[1].OversFor.String())
	assert.Equal(t, -1.0, table[2].NRR)
}

func TestParseHTMLErrors(t *testing.T) {
	_, err := ParseHTML(strings.NewReader(`<table><tr><th>Fixture</th></tr><tr><td>x</td></tr></table>`))
	assert.ErrorIs(t, err, ErrInvalidTable)

	bad := strings.Replace(pointsPage, "1462/160.0", "1462/160.9", 1)
	_, err = ParseHTML(strings.NewReader(bad))
	assert.Error(t, err)
}
