package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrrscope/nrrscope/pkg/surface"
)

func newTableCmd(g *globalOpts) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the ranked points table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.Context(), g, outputFmt)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	return cmd
}

func runTable(ctx context.Context, g *globalOpts, outputFmt string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	table, err := g.loadTable(cfg)
	if err != nil {
		return err
	}
	return surface.New(outputFmt).RenderTable(os.Stdout, table)
}
