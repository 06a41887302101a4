package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nrrscope/nrrscope/pkg/config"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

func TestCalcCmdFlags(t *testing.T) {
	cmd := newCalcCmd(&globalOpts{})
	f := cmd.Flags()

	// Test default output format
	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	for _, flag := range []string{"team", "opposition", "overs", "position", "toss", "runs", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestImportCmdFlags(t *testing.T) {
	cmd := newImportCmd(&globalOpts{})
	f := cmd.Flags()

	retries, _ := f.GetInt("retries")
	if retries != 3 {
		t.Errorf("default retries = %d, want 3", retries)
	}
	for _, flag := range []string{"url", "file", "out", "retries"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestRootPersistentFlags(t *testing.T) {
	root := newRootCmd()
	pf := root.PersistentFlags()

	level, _ := pf.GetString("log-level")
	if level != "warn" {
		t.Errorf("default log-level = %q, want warn", level)
	}
	for _, flag := range []string{"config", "table", "log-level"} {
		if pf.Lookup(flag) == nil {
			t.Errorf("missing persistent flag: %s", flag)
		}
	}

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calc", "table", "import"} {
		if !names[want] {
			t.Errorf("missing subcommand: %s", want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.json")
	if err := standings.SaveFile(path, standings.DefaultTable()[:4]); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	tests := []struct {
		name     string
		flagPath string
		seedFile string
		want     int
	}{
		{name: "built-in", want: 10},
		{name: "flag", flagPath: path, want: 4},
		{name: "config seed file", seedFile: path, want: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Storage.SeedFile = tc.seedFile
			g := &globalOpts{tablePath: tc.flagPath}

			table, err := g.loadTable(cfg)
			if err != nil {
				t.Fatalf("loadTable: %v", err)
			}
			if len(table) != tc.want {
				t.Errorf("len(table) = %d, want %d", len(table), tc.want)
			}
		})
	}
}

func TestRunCalc(t *testing.T) {
	g := &globalOpts{configPath: filepath.Join(t.TempDir(), "missing.yaml")}

	err := runCalc(context.Background(), g, calcOpts{
		team:       "Rajasthan Royals",
		opposition: "Delhi Capitals",
		position:   3,
		toss:       "batting",
		runs:       120,
		outputFmt:  "json",
	})
	if err != nil {
		t.Fatalf("runCalc: %v", err)
	}

	err = runCalc(context.Background(), g, calcOpts{
		team:       "Rajasthan Royals",
		opposition: "Delhi Capitals",
		position:   3,
		toss:       "sideways",
		runs:       120,
	})
	if err == nil {
		t.Error("expected error for unknown toss direction")
	}
}

func TestRunImportFile(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "page.html")
	page := `<table>
<tr><th>Team</th><th>Pts</th><th>NRR</th><th>For</th><th>Against</th></tr>
<tr><td>Alpha</td><td>4</td><td>+1.250</td><td>340/40.0</td><td>290/40.0</td></tr>
</table>`
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	outPath := filepath.Join(dir, "out", "table.json")
	if err := runImport(context.Background(), importOpts{htmlFile: htmlPath, outPath: outPath}); err != nil {
		t.Fatalf("runImport: %v", err)
	}

	table, err := standings.LoadFile(outPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(table) != 1 || table[0].Team != "Alpha" {
		t.Errorf("unexpected table %+v", table)
	}
}
