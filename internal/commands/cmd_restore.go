package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/workbench"
)

type RestoreCmd struct {
	flags *Flags
	app   *workbench.App
}

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(flags *Flags, app *workbench.App) *RestoreCmd {
	return &RestoreCmd{flags: flags, app: app}
}

// Register adds the restore command to the application
func (cmd *RestoreCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "restore",
		Usage:     "Overwrite a file with its backup sibling",
		UsageText: "hexbench restore FILE",
		Description: `Copies FILE` + source.BackupSuffix + ` back over FILE. Fails when no
backup exists.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RestoreCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected FILE argument")
	}

	open := OpenFlags{Take: -1}
	spec, err := open.Spec(c.Args().First())
	if err != nil {
		return err
	}

	handle, err := source.Open(spec)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = handle.Close() }()

	if err := handle.RestoreBackup(); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	bak, _ := handle.BackupPath()
	fmt.Fprintf(os.Stdout, "restored %s from %s\n", handle.Path(), bak)
	return nil
}
