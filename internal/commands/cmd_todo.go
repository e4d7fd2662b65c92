package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/sessiontodo/internal/model"
	"github.com/idilsaglam/sessiontodo/internal/todo"
	"github.com/idilsaglam/sessiontodo/internal/ui"
)

// TodoCmd holds the one-shot commands that drive the store of the current
// session.
type TodoCmd struct {
	flags *Flags
	app   *App

	// flags
	filter string
	group  bool
}

// NewTodoCmd creates the todo commands
func NewTodoCmd(flags *Flags, app *App) *TodoCmd {
	return &TodoCmd{flags: flags, app: app}
}

// Register adds add, ls, toggle, edit, rm and clear-completed to the application
func (cmd *TodoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "add",
			Usage:     "Add a todo",
			ArgsUsage: "<text...>",
			Action:    cmd.runAdd,
		},
		&cli.Command{
			Name:    "ls",
			Aliases: []string{"list"},
			Usage:   "List todos",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "filter",
					Aliases:     []string{"f"},
					Usage:       "which todos to show (all, active, completed)",
					Value:       model.All.String(),
					Destination: &cmd.filter,
				},
				&cli.BoolFlag{
					Name:        "group",
					Usage:       "group output by active/completed",
					Destination: &cmd.group,
				},
			},
			Action: cmd.runList,
		},
		&cli.Command{
			Name:      "toggle",
			Aliases:   []string{"done"},
			Usage:     "Flip the completed flag of a todo",
			ArgsUsage: "<id>",
			Action:    cmd.runToggle,
		},
		&cli.Command{
			Name:      "edit",
			Usage:     "Replace the text of a todo; empty text removes it",
			ArgsUsage: "<id> <text...>",
			Action:    cmd.runEdit,
		},
		&cli.Command{
			Name:      "rm",
			Usage:     "Remove a todo",
			ArgsUsage: "<id>",
			Action:    cmd.runRemove,
		},
		&cli.Command{
			Name:   "clear-completed",
			Usage:  "Remove every completed todo",
			Action: cmd.runClearCompleted,
		},
	)
	return app
}

func (cmd *TodoCmd) runAdd(_ context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return usageError("usage: todo add <text...>")
	}
	t, ok := cmd.app.Store.Add(strings.Join(c.Args().Slice(), " "))
	if !ok {
		return usageError("add: empty text")
	}
	ui.OK(fmt.Sprintf("added #%d", t.ID))
	return nil
}

func (cmd *TodoCmd) runList(_ context.Context, _ *cli.Command) error {
	f, err := model.ParseFilter(cmd.filter)
	if err != nil {
		return usageError("ls: %v", err)
	}
	store := cmd.app.Store
	store.SetFilter(f)

	all := store.Todos()
	active := store.ActiveCount()
	done := len(all) - active

	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, cmd.app.Config.AppName),
		ui.C(t.Success, t.SymDone), done,
		ui.C(t.Pending, t.SymUnchecked), active,
		ui.C(t.Accent, "Total"), len(all),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(done, len(all), 28)))
	lines = append(lines, "")

	visible := store.Visible()
	if cmd.group {
		lines = append(lines, groupLines(visible)...)
	} else {
		lines = append(lines, flatLines(visible)...)
	}
	lines = append(lines, "")

	footer := todo.ItemsLeft(active)
	if f != model.All {
		footer += ui.C(t.Muted, "  ·  showing "+f.String())
	}
	lines = append(lines, footer)
	if store.Len() == 0 {
		lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	}
	ui.Panel(lines)
	return nil
}

func (cmd *TodoCmd) runToggle(_ context.Context, c *cli.Command) error {
	id, err := singleID(c, "toggle")
	if err != nil {
		return err
	}
	if !cmd.app.Store.Toggle(id) {
		return unknownID(id)
	}
	t, _ := cmd.app.Store.Get(id)
	state := "active"
	if t.Completed {
		state = "completed"
	}
	ui.OK(fmt.Sprintf("toggled #%d (%s)", id, state))
	return nil
}

func (cmd *TodoCmd) runEdit(_ context.Context, c *cli.Command) error {
	if c.Args().Len() < 1 {
		return usageError("usage: todo edit <id> <text...>")
	}
	id, err := parseID(c.Args().First(), "edit")
	if err != nil {
		return err
	}
	text := strings.Join(c.Args().Tail(), " ")
	if !cmd.app.Store.Edit(id, text) {
		return unknownID(id)
	}
	if _, still := cmd.app.Store.Get(id); !still {
		ui.OK(fmt.Sprintf("removed #%d", id))
		return nil
	}
	ui.OK(fmt.Sprintf("edited #%d", id))
	return nil
}

func (cmd *TodoCmd) runRemove(_ context.Context, c *cli.Command) error {
	id, err := singleID(c, "rm")
	if err != nil {
		return err
	}
	if !cmd.app.Store.Delete(id) {
		return unknownID(id)
	}
	ui.OK(fmt.Sprintf("removed #%d", id))
	return nil
}

func (cmd *TodoCmd) runClearCompleted(_ context.Context, _ *cli.Command) error {
	n := cmd.app.Store.ClearCompleted()
	if n == 0 {
		ui.Warn("nothing to clear")
		return nil
	}
	ui.OK("cleared " + english.Plural(n, "completed todo", ""))
	return nil
}

// -------------- argument helpers ----------------

func singleID(c *cli.Command, name string) (model.ID, error) {
	if c.Args().Len() != 1 {
		return 0, usageError("usage: todo %s <id>", name)
	}
	return parseID(c.Args().First(), name)
}

func parseID(s, name string) (model.ID, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, usageError("%s: not an id: %s", name, s)
	}
	return model.ID(n), nil
}

// unknownID reports an id that is not in the session. The store call was
// already a no-op.
func unknownID(id model.ID) error {
	ui.Fail(fmt.Sprintf("no todo with id %d", id))
	fmt.Fprintln(ui.Stderr, ui.Dim("Hint: run `todo ls` to see valid ids"))
	return cli.Exit("", ExitUsage)
}

// -------------- rendering helpers --------------

func flatLines(todos []model.Todo) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	// panel borders, id column, box and spacing
	maxText := max(ui.Width()-12, 20)
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		idx := fmt.Sprintf("%3s", "#"+strconv.FormatInt(int64(td.ID), 10))
		box, color := t.BoxUnchecked, t.Muted
		if td.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), truncate(td.Text, maxText)))
	}
	return out
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func groupLines(todos []model.Todo) []string {
	t := ui.Current()
	var active, done []model.Todo
	for _, td := range todos {
		if td.Completed {
			done = append(done, td)
		} else {
			active = append(active, td)
		}
	}

	var lines []string
	lines = append(lines, ui.C(t.Accent, model.Active.Label()))
	if len(active) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(active)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, model.Completed.Label()))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
