package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/sessiontodo/internal/session"
	"github.com/idilsaglam/sessiontodo/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive todo list (default)",
		Action: cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(_ context.Context, _ *cli.Command) error {
	log.Debug().Str("session", cmd.app.Session).Msg("starting tui")

	opts := tui.Options{AppName: cmd.app.Config.AppName}
	if cmd.app.Driver != session.DriverMemory {
		opts.Session = cmd.app.Session
	}
	if err := tui.Run(cmd.app.Store, opts); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
