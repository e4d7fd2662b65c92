package todo

import (
	"github.com/samber/lo"

	"github.com/idilsaglam/sessiontodo/internal/model"
)

// Pure transitions. Each returns a fresh slice and never mutates its input,
// so a caller can commit or discard the result as a whole.

func appendTodo(todos []model.Todo, t model.Todo) []model.Todo {
	out := make([]model.Todo, 0, len(todos)+1)
	out = append(out, todos...)
	return append(out, t)
}

func indexOf(todos []model.Todo, id model.ID) int {
	_, idx, found := lo.FindIndexOf(todos, func(t model.Todo) bool { return t.ID == id })
	if !found {
		return -1
	}
	return idx
}

func toggle(todos []model.Todo, id model.ID) ([]model.Todo, bool) {
	idx := indexOf(todos, id)
	if idx < 0 {
		return todos, false
	}
	out := lo.Map(todos, func(t model.Todo, _ int) model.Todo { return t })
	out[idx].Completed = !out[idx].Completed
	return out, true
}

func remove(todos []model.Todo, id model.ID) ([]model.Todo, bool) {
	if indexOf(todos, id) < 0 {
		return todos, false
	}
	return lo.Reject(todos, func(t model.Todo, _ int) bool { return t.ID == id }), true
}

// retext expects text to be trimmed and non-empty.
func retext(todos []model.Todo, id model.ID, text string) ([]model.Todo, bool) {
	idx := indexOf(todos, id)
	if idx < 0 {
		return todos, false
	}
	out := lo.Map(todos, func(t model.Todo, _ int) model.Todo { return t })
	out[idx].Text = text
	return out, true
}

func clearCompleted(todos []model.Todo) ([]model.Todo, int) {
	out := lo.Reject(todos, func(t model.Todo, _ int) bool { return t.Completed })
	return out, len(todos) - len(out)
}

func visible(todos []model.Todo, f model.Filter) []model.Todo {
	return lo.Filter(todos, func(t model.Todo, _ int) bool { return f.Match(t) })
}

func activeCount(todos []model.Todo) int {
	return lo.CountBy(todos, func(t model.Todo) bool { return !t.Completed })
}

func hasCompleted(todos []model.Todo) bool {
	return lo.SomeBy(todos, func(t model.Todo) bool { return t.Completed })
}
