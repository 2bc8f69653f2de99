package data

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/transfer"
)

type ExportCmd struct {
	Format string `help:"json (re-importable snapshot) or xlsx (progress report)." enum:"json,xlsx" default:"json" short:"f"`
	Output string `help:"Output file; '-' or empty writes to stdout." short:"o"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	format := c.Format
	if c.Output != "" && c.Output != "-" && strings.EqualFold(filepath.Ext(c.Output), ".xlsx") {
		format = "xlsx"
	}

	var w io.Writer = os.Stdout
	if c.Output != "" && c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	} else if format == "xlsx" {
		return fmt.Errorf("xlsx export needs an output file (-o report.xlsx)")
	}

	switch format {
	case "xlsx":
		err = transfer.WriteWorkbook(w, t.Report())
	default:
		var data []byte
		if data, err = transfer.Marshal(t.Export()); err == nil {
			_, err = w.Write(data)
		}
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if w != os.Stdout {
		fmt.Fprintf(os.Stderr, "✓ Exported %d habit(s) to %s\n", len(t.Habits("")), c.Output)
	}
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON document written by 'habitual export'; '-' reads stdin."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var (
		raw []byte
		err error
	)
	if c.File == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	out, err := t.Import(raw)
	if err != nil {
		return err
	}

	p := t.Profile()
	fmt.Printf("✓ Imported: %d habit(s), level %d, %d badge(s).\n", len(t.Habits("")), p.Level, len(p.Badges))
	ctx.Report(out)
	return nil
}

type ResetCmd struct {
	Yes bool `help:"Do not ask for confirmation." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  This deletes every habit, badge and assessment answer.")
		if !ctx.Confirm("Reset all data?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()

	out := t.Reset()
	fmt.Println("✓ All data reset.")
	ctx.Report(out)
	return nil
}
