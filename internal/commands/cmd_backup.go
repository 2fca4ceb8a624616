package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/workbench"
)

type BackupCmd struct {
	flags *Flags
	app   *workbench.App
}

// NewBackupCmd creates a new backup command
func NewBackupCmd(flags *Flags, app *workbench.App) *BackupCmd {
	return &BackupCmd{flags: flags, app: app}
}

// Register adds the backup command to the application
func (cmd *BackupCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "backup",
		Usage:     "Copy a file to its backup sibling",
		UsageText: "hexbench backup FILE",
		Description: `Creates FILE` + source.BackupSuffix + ` next to the file, overwriting any
previous backup. Restore it later with 'hexbench restore'.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *BackupCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected FILE argument")
	}

	open := OpenFlags{Take: -1, ReadOnly: true}
	spec, err := open.Spec(c.Args().First())
	if err != nil {
		return err
	}

	handle, err := source.Open(spec)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = handle.Close() }()

	if err := handle.Backup(); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	bak, _ := handle.BackupPath()
	fmt.Fprintf(os.Stdout, "backed up to %s\n", bak)
	return nil
}
