package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/tui"
	"github.com/colonyops/hexbench/internal/workbench"
)

type EditCmd struct {
	flags *Flags
	app   *workbench.App

	open OpenFlags
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *workbench.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Flags returns the edit-specific flags for registration on the root
// command, where edit doubles as the default action.
func (cmd *EditCmd) Flags() []cli.Flag {
	return cmd.open.CLIFlags()
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open a file in the interactive hex editor",
		UsageText: "hexbench edit [options] FILE",
		Description: `Opens FILE in the TUI. Use "-" to edit data piped into stdin
(read-only, no save). This is also the default action:
'hexbench FILE' is equivalent to 'hexbench edit FILE'.`,
		Flags:  cmd.open.CLIFlags(),
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected FILE argument")
	}

	spec, err := cmd.open.Spec(c.Args().First())
	if err != nil {
		return err
	}

	sess, err := cmd.app.OpenSession(ctx, spec)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session")
		}
	}()

	model := tui.New(tui.Deps{
		Session: sess,
		Config:  cmd.app.Config,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	cols := cmd.app.Config.TUI.Cols
	if m, ok := final.(*tui.Model); ok {
		cols = m.Cols()
	}
	if err := cmd.app.PersistSession(ctx, sess, cols); err != nil {
		log.Warn().Err(err).Msg("failed to persist session state")
	}

	return nil
}
