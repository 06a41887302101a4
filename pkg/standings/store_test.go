package standings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreReplaceKeepsOldSnapshot(t *testing.T) {
	store, err := NewStore(DefaultTable())
	require.NoError(t, err)

	before := store.Current()
	require.NotNil(t, before)
	require.Len(t, before.Entries, 10)

	next := Table{{Position: 1, Team: "Only Team", Points: 2}}
	after, err := store.Replace(next)
	require.NoError(t, err)

	assert.NotEqual(t, before.Version, after.Version)
	assert.Len(t, before.Entries, 10, "published snapshot must not change")
	assert.Same(t, after, store.Current())

	// The store holds its own copy of the input.
	next[0].Team = "Mutated"
	assert.Equal(t, "Only Team", store.Current().Entries[0].Team)
}

func TestStoreRejectsInvalidTable(t *testing.T) {
	store, err := NewStore(DefaultTable())
	require.NoError(t, err)
	version := store.Current().Version

	_, err = store.Replace(Table{{Team: "A"}, {Team: "A"}})
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Equal(t, version, store.Current().Version)

	_, err = NewStore(nil)
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestStoreTableIsPrivateCopy(t *testing.T) {
	store, err := NewStore(DefaultTable())
	require.NoError(t, err)

	tbl := store.Table()
	tbl[0].Points = 99
	assert.NotEqual(t, 99, store.Current().Entries[0].Points)
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "table.json")
	require.NoError(t, SaveFile(path, DefaultTable()))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "Rajasthan Royals", got[1].Team)
	assert.Equal(t, "160.0", got[1].OversFor.String())
	assert.Equal(t, 180.0, got[4].OversAgainst.Decimal())
}

func TestDecodeRejectsMalformedOvers(t *testing.T) {
	_, err := Decode([]byte(`[{"team":"A","oversFor":"19.7","oversAgainst":"20.0"}]`))
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"team":"A","unknown":1}]`))
	assert.Error(t, err)

	tbl, err := Decode([]byte(`[{"team":"A","oversFor":19.5,"oversAgainst":"19.5"}]`))
	require.NoError(t, err)
	assert.Equal(t, 19.5, tbl[0].OversFor.Decimal())
	assert.InDelta(t, 19+5.0/6, tbl[0].OversAgainst.Decimal(), 1e-12)
}

func TestStoreRestoreKeepsVersion(t *testing.T) {
	store, err := NewStore(DefaultTable())
	require.NoError(t, err)

	at := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)
	snap, err := store.Restore("stored-version", at, DefaultTable()[:3])
	require.NoError(t, err)
	assert.Equal(t, "stored-version", snap.Version)
	assert.Equal(t, at, snap.CreatedAt)
	assert.Same(t, snap, store.Current())

	_, err = store.Restore("bad", at, nil)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Same(t, snap, store.Current())
}
