package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/core/geom"
	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/workbench"
	"github.com/colonyops/hexbench/pkg/hexfmt"
)

type DumpCmd struct {
	flags *Flags
	app   *workbench.App

	open   OpenFlags
	cols   uint64
	noText bool
}

// NewDumpCmd creates a new dump command
func NewDumpCmd(flags *Flags, app *workbench.App) *DumpCmd {
	return &DumpCmd{flags: flags, app: app}
}

// Register adds the dump command to the application
func (cmd *DumpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dump",
		Usage:     "Print a hex dump of a file to stdout",
		UsageText: "hexbench dump [options] FILE",
		Description: `Renders offset, hex and text columns, honoring --seek and --take to
dump a sub-range. The column count defaults to the configured TUI width.`,
		Flags: append(cmd.open.CLIFlags(),
			&cli.Uint64Flag{
				Name:        "cols",
				Usage:       "bytes per row (defaults to tui.cols from config)",
				Destination: &cmd.cols,
			},
			&cli.BoolFlag{
				Name:        "no-text",
				Usage:       "omit the text column",
				Destination: &cmd.noText,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *DumpCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected FILE argument")
	}

	cols := cmd.cols
	if cols == 0 {
		cols = cmd.flags.Config.TUI.Cols
	}

	cmd.open.ReadOnly = true
	spec, err := cmd.open.Spec(c.Args().First())
	if err != nil {
		return err
	}

	handle, err := source.Open(spec)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = handle.Close() }()

	return writeDump(os.Stdout, handle.Source(), cmd.open.Seek, cols, !cmd.noText)
}

// writeDump renders the whole source as offset/hex/text rows. base is
// added to displayed offsets so a --seek dump shows file offsets, not
// offsets into the slice that was read.
func writeDump(w io.Writer, src source.Source, base, cols uint64, withText bool) error {
	n := src.Len()
	if n == 0 {
		return nil
	}

	p := geom.Perspective{Region: geom.NewRegion(0, n-1), Cols: cols}
	for row := uint64(0); row < p.Rows(); row++ {
		rowStart, ok := p.ByteOffsetOfRowCol(row, 0)
		if !ok {
			break
		}
		rowEnd := min(rowStart+cols-1, n-1)
		data := src.ReadRangeBounded(rowStart, rowEnd-rowStart+1)

		if _, err := fmt.Fprint(w, renderDumpRow(base+rowStart, data, cols, withText)); err != nil {
			return err
		}
	}
	return nil
}

// renderDumpRow formats one row: "00000010  48 65 6C ...  |Hel...|".
// Short trailing rows pad the hex column so the text column stays aligned.
func renderDumpRow(offset uint64, data []byte, cols uint64, withText bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%08X ", offset)

	for i := uint64(0); i < cols; i++ {
		if i < uint64(len(data)) {
			b.WriteByte(' ')
			b.WriteString(hexfmt.UpperHex(data[i]))
		} else {
			b.WriteString("   ")
		}
	}

	if withText {
		b.WriteString("  |")
		for _, c := range data {
			b.WriteByte(hexfmt.Printable(c))
		}
		b.WriteByte('|')
	}

	b.WriteByte('\n')
	return b.String()
}
