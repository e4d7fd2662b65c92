package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/sessiontodo/internal/session"
	"github.com/idilsaglam/sessiontodo/internal/todo"
	"github.com/idilsaglam/sessiontodo/internal/ui"
)

type SessionCmd struct {
	flags *Flags
	app   *App

	// flags
	yes bool

	// confirm asks before ending a session; replaced in tests.
	confirm func(title, description string) (bool, error)
}

// NewSessionCmd creates a new session command
func NewSessionCmd(flags *Flags, app *App) *SessionCmd {
	return &SessionCmd{flags: flags, app: app, confirm: confirmPrompt}
}

// Register adds the session command to the application
func (cmd *SessionCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "session",
		Usage: "Session management commands",
		Description: `Commands for inspecting and ending the current session.

The session is selected with --session (default "default").`,
		Commands: []*cli.Command{
			cmd.infoCmd(),
			cmd.endCmd(),
		},
	})
	return app
}

func (cmd *SessionCmd) infoCmd() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "Show current session information",
		Action: cmd.runInfo,
	}
}

func (cmd *SessionCmd) endCmd() *cli.Command {
	return &cli.Command{
		Name:  "end",
		Usage: "End the current session, discarding its stored todos",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.runEnd,
	}
}

func (cmd *SessionCmd) runInfo(_ context.Context, _ *cli.Command) error {
	t := ui.Current()
	label := func(s string) string { return ui.C(t.Muted, fmt.Sprintf("%-10s", s)) }

	available := ui.C(t.Success, "yes")
	if !cmd.app.Storage.Available() {
		available = ui.C(t.Error, "no")
	}

	lines := []string{
		ui.C(t.Title, "Session"),
		"",
		label("name") + cmd.app.Session,
		label("driver") + cmd.app.Driver,
		label("key") + cmd.app.Config.Storage.Key,
		label("available") + available,
		label("todos") + fmt.Sprintf("%d (%s)", cmd.app.Store.Len(), todo.ItemsLeft(cmd.app.Store.ActiveCount())),
	}

	switch b := cmd.app.Storage.Backend().(type) {
	case *session.FileBackend:
		lines = append(lines, label("dir")+b.Dir())
	case *session.SQLite:
		others, err := b.Sessions()
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		lines = append(lines, label("sessions")+fmt.Sprintf("%d stored", len(others)))
	}

	ui.Panel(lines)
	return nil
}

func (cmd *SessionCmd) runEnd(_ context.Context, _ *cli.Command) error {
	if !cmd.yes {
		ok, err := cmd.confirm(
			"End session "+cmd.app.Session+"?",
			fmt.Sprintf("%d todos will be discarded.", cmd.app.Store.Len()),
		)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ui.Warn("cancelled")
				return nil
			}
			return err
		}
		if !ok {
			ui.Warn("cancelled")
			return nil
		}
	}

	if !cmd.app.Storage.Clear() {
		return fmt.Errorf("end session %s: storage could not be cleared", cmd.app.Session)
	}
	ui.OK("ended session " + cmd.app.Session)
	return nil
}

func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Run()
	return ok, err
}
