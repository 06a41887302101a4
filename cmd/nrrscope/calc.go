package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrrscope/nrrscope/pkg/scenario"
	"github.com/nrrscope/nrrscope/pkg/surface"
)

func newCalcCmd(g *globalOpts) *cobra.Command {
	var (
		team       string
		opposition string
		overs      int
		position   int
		toss       string
		runs       int
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the result needed to reach a table position",
		Long: `Calculates the range of opposition totals (batting first) or chase
overs (bowling first) that lift your team's NRR to that of the team at the
desired position.`,
		Example: `  nrrscope calc --team "Rajasthan Royals" --opposition "Delhi Capitals" \
    --position 3 --toss batting --runs 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd.Context(), g, calcOpts{
				team:       team,
				opposition: opposition,
				overs:      overs,
				position:   position,
				toss:       toss,
				runs:       runs,
				outputFmt:  outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Your team (required)")
	cmd.Flags().StringVar(&opposition, "opposition", "", "Opposition team (required)")
	cmd.Flags().IntVar(&overs, "overs", 0, "Overs per innings (default: scenario.default_overs from config)")
	cmd.Flags().IntVar(&position, "position", 0, "Desired table position (required)")
	cmd.Flags().StringVar(&toss, "toss", "", "Toss result: batting or bowling (required)")
	cmd.Flags().IntVar(&runs, "runs", 0, "Runs scored batting first, or the total to chase bowling first")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("opposition")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("toss")

	return cmd
}

type calcOpts struct {
	team       string
	opposition string
	overs      int
	position   int
	toss       string
	runs       int
	outputFmt  string
}

func runCalc(ctx context.Context, g *globalOpts, opts calcOpts) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	table, err := g.loadTable(cfg)
	if err != nil {
		return err
	}

	dir, err := scenario.ParseDirection(opts.toss)
	if err != nil {
		return err
	}
	if opts.overs == 0 {
		opts.overs = cfg.Scenario.DefaultOvers
	}

	req := scenario.Request{
		YourTeam:        opts.team,
		OppositionTeam:  opts.opposition,
		MatchOvers:      opts.overs,
		DesiredPosition: opts.position,
		Direction:       dir,
		Runs:            opts.runs,
	}
	if err := req.Validate(cfg.Scenario.MaxPosition); err != nil {
		return err
	}

	res, err := scenario.Calculate(table, req)
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}
	return surface.New(opts.outputFmt).Render(os.Stdout, res)
}
