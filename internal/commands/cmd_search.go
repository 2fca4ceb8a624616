package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/workbench"
	"github.com/colonyops/hexbench/pkg/hexfmt"
)

type SearchCmd struct {
	flags *Flags
	app   *workbench.App

	open  OpenFlags
	text  bool
	limit int
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags, app *workbench.App) *SearchCmd {
	return &SearchCmd{flags: flags, app: app}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Find a byte pattern in a file",
		UsageText: "hexbench search [options] FILE PATTERN",
		Description: `Prints the byte offset of every match, one per line, including
overlapping matches. PATTERN is a hex string ("deadbeef", "de ad be ef",
"0xDEADBEEF") unless --text is given, in which case it is matched as
literal bytes.`,
		Flags: append(cmd.open.CLIFlags(),
			&cli.BoolFlag{
				Name:        "text",
				Usage:       "treat PATTERN as literal text instead of hex digits",
				Destination: &cmd.text,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "stop after this many matches (0 = all)",
				Destination: &cmd.limit,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected FILE and PATTERN arguments")
	}

	needle, err := cmd.parsePattern(c.Args().Get(1))
	if err != nil {
		return err
	}

	cmd.open.ReadOnly = true
	spec, err := cmd.open.Spec(c.Args().Get(0))
	if err != nil {
		return err
	}

	handle, err := source.Open(spec)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = handle.Close() }()

	found := 0
	for off := range handle.Source().Find(needle) {
		fmt.Fprintf(os.Stdout, "0x%08X\n", off)
		found++
		if cmd.limit > 0 && found >= cmd.limit {
			break
		}
	}

	if found == 0 {
		fmt.Fprintln(os.Stderr, "no matches")
	}
	return nil
}

func (cmd *SearchCmd) parsePattern(raw string) ([]byte, error) {
	if cmd.text {
		if raw == "" {
			return nil, fmt.Errorf("empty text pattern")
		}
		return []byte(raw), nil
	}
	needle, err := hexfmt.ParseHexPattern(raw)
	if err != nil {
		return nil, fmt.Errorf("parse pattern: %w", err)
	}
	return needle, nil
}
