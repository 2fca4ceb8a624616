package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexbench/internal/commands"
	"github.com/colonyops/hexbench/internal/core/config"
	"github.com/colonyops/hexbench/internal/data/db"
	"github.com/colonyops/hexbench/internal/data/stores"
	"github.com/colonyops/hexbench/internal/workbench"
	"github.com/colonyops/hexbench/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		benchApp  = &workbench.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "hexbench",
		Usage:     "Inspect and edit binary files from the terminal",
		UsageText: "hexbench [global options] [command] FILE",
		Description: `A hex-editing workbench. Opening a file without a subcommand starts the
interactive editor; subcommands cover scripted use (search, dump, backup,
restore, info).

Use "-" as the file to read from stdin (read-only).`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("HEXBENCH_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/hexbench.log)",
				Sources:     cli.EnvVars("HEXBENCH_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("HEXBENCH_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("HEXBENCH_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			// Always log to a file; the terminal belongs to the TUI.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "hexbench.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DataDir, dbOpts)
			if err != nil && stores.IsCorruptionError(err) {
				// The metadata database only caches convenience state; move
				// the bad file aside and start fresh rather than refusing to
				// run.
				log.Warn().Err(err).Msg("metadata database corrupted, recreating")
				if rerr := stores.RecoverFromCorruption(cfg.DataDir); rerr != nil {
					return ctx, fmt.Errorf("recover database: %w", rerr)
				}
				database, err = db.Open(cfg.DataDir, dbOpts)
			}
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*benchApp = *workbench.NewApp(cfg, database, log.Logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	editCmd := commands.NewEditCmd(flags, benchApp)

	app = editCmd.Register(app)
	app = commands.NewSearchCmd(flags, benchApp).Register(app)
	app = commands.NewDumpCmd(flags, benchApp).Register(app)
	app = commands.NewBackupCmd(flags, benchApp).Register(app)
	app = commands.NewRestoreCmd(flags, benchApp).Register(app)
	app = commands.NewInfoCmd(flags, benchApp).Register(app)
	app = commands.NewRecentCmd(flags, benchApp).Register(app)

	// Register the open flags on the root command so 'hexbench FILE' works
	app.Flags = append(app.Flags, editCmd.Flags()...)

	// Opening a file with no subcommand starts the editor
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return fmt.Errorf("missing FILE argument. Run 'hexbench --help' for usage")
		}
		return editCmd.Run(ctx, c)
	}

	exitCode := 0
	if runErr := app.Run(ctx, os.Args); runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}
	os.Exit(exitCode)
}
