// Package surface defines output rendering for nrrscope results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// Renderer produces formatted output from scenario results and points tables.
type Renderer interface {
	// Render writes the formatted scenario result to the writer.
	Render(w io.Writer, result *scenario.Result) error
	// RenderTable writes a ranked points table to the writer.
	RenderTable(w io.Writer, table standings.Table) error
}

// New returns the renderer for an --output value: "json" or "text".
func New(format string) Renderer {
	if format == "json" {
		return &JSONRenderer{}
	}
	return &TerminalRenderer{}
}
