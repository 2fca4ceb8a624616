package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/workbench"
)

type InfoCmd struct {
	flags *Flags
	app   *workbench.App

	open OpenFlags
}

// NewInfoCmd creates a new info command
func NewInfoCmd(flags *Flags, app *workbench.App) *InfoCmd {
	return &InfoCmd{flags: flags, app: app}
}

// Register adds the info command to the application
func (cmd *InfoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "info",
		Usage:     "Show source attributes and stored metadata for a file",
		UsageText: "hexbench info [options] FILE",
		Flags:     cmd.open.CLIFlags(),
		Action:    cmd.run,
	})

	return app
}

func (cmd *InfoCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected FILE argument")
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

	attrs := handle.Attrs()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "path\t%s\n", handle.Path())
	fmt.Fprintf(w, "bytes\t%d\n", handle.Source().Len())
	fmt.Fprintf(w, "seekable\t%t\n", attrs.Seekable)
	fmt.Fprintf(w, "stream\t%t\n", attrs.Stream)
	fmt.Fprintf(w, "writable\t%t\n", attrs.Perms.Write)

	if bak, err := handle.BackupPath(); err == nil {
		_, statErr := os.Stat(bak)
		fmt.Fprintf(w, "backup\t%t\n", statErr == nil)
	}

	if !attrs.Stream {
		meta, err := cmd.app.Meta.Load(ctx, handle.Path())
		if err != nil {
			return fmt.Errorf("load metadata: %w", err)
		}
		fmt.Fprintf(w, "regions\t%d\n", len(meta.RegionKeys()))
		fmt.Fprintf(w, "perspectives\t%d\n", len(meta.PerspectiveKeys()))
		fmt.Fprintf(w, "bookmarks\t%d\n", len(meta.Bookmarks()))

		if rf, err := cmd.app.Recent.Get(ctx, handle.Path()); err == nil {
			fmt.Fprintf(w, "last opened\t%s\n", rf.OpenedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "last cursor\t0x%X\n", rf.Cursor)
		}
	}

	return w.Flush()
}
