// Package main provides the nrrscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrrscope/nrrscope/internal/logging"
	"github.com/nrrscope/nrrscope/pkg/config"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

var version = "dev"

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	configPath string
	tablePath  string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "nrrscope",
		Short: "Net run rate scenarios for cricket points tables",
		Long: `nrrscope works out the match result a team needs to climb to a target
position in a points table, by runs to restrict the opposition to or overs
to chase a total in.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.SetLevel(g.logLevel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to config file (default: search for .nrrscope/config.yaml)")
	pf.StringVar(&g.tablePath, "table", "", "Path to a JSON points table (default: built-in table)")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newCalcCmd(g),
		newTableCmd(g),
		newImportCmd(g),
	)
	return rootCmd
}

// loadConfig reads the config named by --config, or the nearest one found
// from the working directory.
func (g *globalOpts) loadConfig() (*config.Config, error) {
	path := g.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = config.FindConfigFile(wd)
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// loadTable resolves the points table: --table, then the configured seed
// file, then the built-in table.
func (g *globalOpts) loadTable(cfg *config.Config) (standings.Table, error) {
	path := firstNonEmpty(g.tablePath, cfg.Storage.SeedFile)
	if path == "" {
		return standings.DefaultTable(), nil
	}
	logging.Log.WithField("path", path).Debug("loading points table")
	return standings.LoadFile(path)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
