package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/workbench"
)

type RecentCmd struct {
	flags *Flags
	app   *workbench.App

	limit  int
	forget string
}

// NewRecentCmd creates a new recent command
func NewRecentCmd(flags *Flags, app *workbench.App) *RecentCmd {
	return &RecentCmd{flags: flags, app: app}
}

// Register adds the recent command to the application
func (cmd *RecentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recent",
		Usage:     "List recently opened files",
		UsageText: "hexbench recent [--limit N] [--forget PATH]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "show at most N entries (0 = all)",
				Value:       20,
				Destination: &cmd.limit,
			},
			&cli.StringFlag{
				Name:        "forget",
				Usage:       "drop PATH from the history instead of listing",
				Destination: &cmd.forget,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RecentCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.forget != "" {
		if err := cmd.app.Recent.Remove(ctx, cmd.forget); err != nil {
			return fmt.Errorf("forget %q: %w", cmd.forget, err)
		}
		return nil
	}

	entries, err := cmd.app.Recent.List(ctx, cmd.limit)
	if err != nil {
		return fmt.Errorf("list recent files: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no recent files")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tCURSOR\tCOLS\tOPENED")
	for _, rf := range entries {
		fmt.Fprintf(w, "%s\t0x%X\t%d\t%s\n",
			rf.Path, rf.Cursor, rf.Cols, rf.OpenedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
