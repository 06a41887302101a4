package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersByPointsThenNRR(t *testing.T) {
	table := DefaultTable()
	ranked := Rank(table)

	want := []string{
		"Rajasthan Royals",
		"Gujarat Titans",
		"Sunrisers Hyderabad",
		"Lucknow Super Giants",
		"Royal Challengers Bangalore",
		"Delhi Capitals",
		"Punjab Kings",
		"Kolkata Knight Riders",
		"Chennai Super Kings",
		"Mumbai Indians",
	}
	require.Len(t, ranked, len(want))
	for i, name := range want {
		assert.Equal(t, name, ranked[i].Team, "rank %d", i+1)
	}

	// Input order is untouched.
	assert.Equal(t, "Gujarat Titans", table[0].Team)
}

func TestRankIsStable(t *testing.T) {
	table := Table{
		{Team: "A", Points: 4, NRR: 0.1},
		{Team: "B", Points: 6, NRR: 0.2},
		{Team: "C", Points: 4, NRR: 0.1},
		{Team: "D", Points: 4, NRR: 0.1},
	}

	ranked := Rank(table)
	var got []string
	for _, e := range ranked {
		got = append(got, e.Team)
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, got)
}

func TestAt(t *testing.T) {
	table := DefaultTable()

	e, err := At(table, 3)
	require.NoError(t, err)
	assert.Equal(t, "Sunrisers Hyderabad", e.Team)
	assert.Equal(t, 0.6, e.NRR)

	for _, pos := range []int{0, -1, 11} {
		_, err := At(table, pos)
		assert.ErrorIs(t, err, ErrPositionOutOfRange, "position %d", pos)
	}
}

func TestFindAndRankOf(t *testing.T) {
	table := DefaultTable()

	e, err := Find(table, "Delhi Capitals")
	require.NoError(t, err)
	assert.Equal(t, 8, e.Points)

	pos, err := RankOf(table, "Rajasthan Royals")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	_, err = Find(table, "Invalid Team Name")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	_, err = RankOf(table, "Invalid Team Name")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{"default table", DefaultTable(), false},
		{"empty", Table{}, true},
		{"blank team", Table{{Team: " "}}, true},
		{"duplicate team", Table{{Team: "A"}, {Team: "A"}}, true},
		{"negative points", Table{{Team: "A", Points: -2}}, true},
		{"negative overs", Table{{Team: "A", OversFor: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
