package surface

import (
	"encoding/json"
	"io"

	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *scenario.Result) error {
	return encode(w, NewView(result))
}

func (r *JSONRenderer) RenderTable(w io.Writer, table standings.Table) error {
	return encode(w, standings.Rank(table))
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
