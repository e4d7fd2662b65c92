package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/sessiontodo/internal/config"
	"github.com/idilsaglam/sessiontodo/internal/logging"
	"github.com/idilsaglam/sessiontodo/internal/session"
	"github.com/idilsaglam/sessiontodo/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError reports bad arguments with exit code 2.
func usageError(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), ExitUsage)
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitError
}

// NewRoot builds the command tree. version is shown by --version.
func NewRoot(flags *Flags, version string) *cli.Command {
	var (
		logCloser func()
		app       = &App{}
	)

	root := &cli.Command{
		Name:      "todo",
		Usage:     "A session-scoped todo list",
		UsageText: "todo [global options] [command [command options]]",
		Description: `Keeps a todo list per session and checkpoints every change.

Run 'todo' with no arguments to open the interactive list.
Run 'todo add "Buy milk"' to add a todo from the shell.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); defaults to the config value",
				Sources:     cli.EnvVars("TODO_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/todo.log)",
				Sources:     cli.EnvVars("TODO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml, .yml or .toml)",
				Sources:     cli.EnvVars("TODO_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TODO_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "session",
				Aliases:     []string{"s"},
				Usage:       "session name",
				Sources:     cli.EnvVars("TODO_SESSION"),
				Destination: &flags.Session,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage driver (memory, file, sqlite)",
				Sources:     cli.EnvVars("TODO_STORAGE"),
				Destination: &flags.Storage,
			},
		},
		// exit codes are mapped by the caller through ExitCode
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if err := applyFlags(cfg, flags); err != nil {
				return ctx, err
			}

			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "todo.log")
			}
			level := flags.LogLevel
			if level == "" {
				level = cfg.LogLevel
			}
			logger, closer, err := logging.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			ui.SetTheme(cfg.Theme)

			opened, err := openApp(cfg)
			if err != nil {
				return ctx, err
			}
			*app = *opened

			log.Debug().
				Str("session", app.Session).
				Str("driver", app.Driver).
				Int("todos", app.Store.Len()).
				Msg("session opened")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := app.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close session storage")
				return err
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = NewTodoCmd(flags, app).Register(root)
	root = NewSessionCmd(flags, app).Register(root)
	root = tuiCmd.Register(root)

	// the interactive list is the default action
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return usageError("unknown command %q. Run 'todo --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}

// applyFlags lets the global flags override the loaded config.
func applyFlags(cfg *config.Config, flags *Flags) error {
	changed := false
	if flags.Session != "" {
		cfg.Session = flags.Session
		changed = true
	}
	if flags.Storage != "" {
		cfg.Storage.Driver = flags.Storage
		cfg.Storage.Enabled = flags.Storage != session.DriverMemory
		changed = true
	}
	if !changed {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return usageError("invalid flags: %v", err)
	}
	return nil
}
