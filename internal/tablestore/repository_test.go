package tablestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrrscope/nrrscope/pkg/standings"
)

func TestNewRepository(t *testing.T) {
	// NewRepository should not panic with nil db (it just stores the reference).
	if NewRepository(nil) == nil {
		t.Fatal("NewRepository returned nil")
	}
}

func TestSplitColumns(t *testing.T) {
	table := standings.DefaultTable()
	cols := splitColumns(table)

	require.Len(t, cols.teams, len(table))
	for _, col := range [][]int64{cols.positions, cols.matches, cols.won, cols.lost, cols.points, cols.runsFor, cols.runsAgainst} {
		assert.Len(t, col, len(table))
	}

	rr, err := standings.Find(table, "Rajasthan Royals")
	require.NoError(t, err)

	var idx = -1
	for i, name := range cols.teams {
		if name == rr.Team {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, int64(rr.RunsFor), cols.runsFor[idx])
	assert.Equal(t, 160.0, cols.oversFor[idx])
	assert.Equal(t, rr.NRR, cols.nrr[idx])
}

func TestSplitColumnsEmpty(t *testing.T) {
	cols := splitColumns(nil)
	assert.Empty(t, cols.teams)
	assert.Empty(t, cols.oversAgainst)
}

func TestSaveRejectsBadVersion(t *testing.T) {
	// The version is checked before the database is touched.
	err := NewRepository(nil).Save(context.Background(), "not-a-uuid", standings.DefaultTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-uuid")
}
