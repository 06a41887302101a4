package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nrrscope/nrrscope/internal/ingestion"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

func newImportCmd(g *globalOpts) *cobra.Command {
	var (
		url      string
		htmlFile string
		outPath  string
		retries  int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert an HTML points table page to a JSON table",
		Long: `Reads the first points table in an HTML page, from --url or --file, and
writes it as JSON for use with --table or PUT /api/points-table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), importOpts{
				url:      url,
				htmlFile: htmlFile,
				outPath:  outPath,
				retries:  retries,
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Page URL to fetch")
	cmd.Flags().StringVar(&htmlFile, "file", "", "Local HTML file to read")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output JSON path (default: stdout)")
	cmd.Flags().IntVar(&retries, "retries", 3, "Retries for failed fetches")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")

	return cmd
}

type importOpts struct {
	url      string
	htmlFile string
	outPath  string
	retries  int
}

func runImport(ctx context.Context, opts importOpts) error {
	var (
		table standings.Table
		err   error
	)
	if opts.url != "" {
		fmt.Fprintf(os.Stderr, "Fetching %s...\n", opts.url)
		table, err = ingestion.NewFetcher(opts.retries, 30*time.Second).Fetch(ctx, opts.url)
	} else {
		table, err = readHTMLFile(opts.htmlFile)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Parsed %d teams\n", len(table))

	if opts.outPath == "" {
		data, err := standings.Encode(table)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := standings.SaveFile(opts.outPath, table); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", opts.outPath)
	return nil
}

func readHTMLFile(path string) (standings.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return standings.ParseHTML(f)
}
