package standings

import (
	_ "embed"
)

//go:embed default_table.json
var defaultTableJSON []byte

// DefaultTable returns the seeded ten-team table the service starts with
// when no other source is configured.
func DefaultTable() Table {
	t, err := Decode(defaultTableJSON)
	if err != nil {
		panic("standings: embedded default table: " + err.Error())
	}
	return t
}
