// Package todo holds the todo list state machine.
//
// A Store owns the ordered collection and the active filter. Every operation
// computes the next collection from the current one and commits it in a single
// assignment; when the collection changed, the whole of it is handed to the
// Checkpointer before the call returns. A Store is not safe for concurrent use:
// it is driven by one event loop.
package todo

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/sessiontodo/internal/model"
)

// Store is the todo list plus its view filter.
type Store struct {
	todos  []model.Todo
	filter model.Filter

	cp  Checkpointer
	ids IDSource
	log zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for checkpoint failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDSource replaces the default monotonic counter.
func WithIDSource(src IDSource) Option {
	return func(s *Store) { s.ids = src }
}

// NewStore hydrates a Store from cp. The filter always starts at All.
func NewStore(cp Checkpointer, opts ...Option) *Store {
	s := &Store{
		cp:     cp,
		filter: model.All,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.todos = cp.Restore()
	if s.todos == nil {
		s.todos = []model.Todo{}
	}
	if s.ids == nil {
		s.ids = NewCounter(s.todos)
	} else {
		for _, t := range s.todos {
			s.ids.Observe(t.ID)
		}
	}
	return s
}

// commit swaps in next and checkpoints it. A failed checkpoint leaves the
// in-memory state as committed.
func (s *Store) commit(next []model.Todo, op string) {
	s.todos = next
	if !s.cp.Checkpoint(next) {
		s.log.Warn().Str("op", op).Int("todos", len(next)).Msg("checkpoint failed; keeping in-memory state")
	}
}

// Add appends a new active todo with the trimmed text. Empty or
// whitespace-only text is ignored.
func (s *Store) Add(raw string) (model.Todo, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return model.Todo{}, false
	}
	t := model.Todo{ID: s.ids.Next(), Text: text}
	s.commit(appendTodo(s.todos, t), "add")
	return t, true
}

// Toggle flips the completed flag of id. Reports whether id exists.
func (s *Store) Toggle(id model.ID) bool {
	next, ok := toggle(s.todos, id)
	if !ok {
		return false
	}
	s.commit(next, "toggle")
	return true
}

// Delete removes id. Reports whether id existed.
func (s *Store) Delete(id model.ID) bool {
	next, ok := remove(s.todos, id)
	if !ok {
		return false
	}
	s.commit(next, "delete")
	return true
}

// Edit replaces the text of id with the trimmed text. Clearing the text
// deletes the todo instead. Reports whether id existed.
func (s *Store) Edit(id model.ID, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Delete(id)
	}
	next, ok := retext(s.todos, id, text)
	if !ok {
		return false
	}
	s.commit(next, "edit")
	return true
}

// ClearCompleted removes every completed todo and returns how many went.
func (s *Store) ClearCompleted() int {
	next, n := clearCompleted(s.todos)
	if n == 0 {
		return 0
	}
	s.commit(next, "clear_completed")
	return n
}

// SetFilter changes the view filter. The collection is untouched.
func (s *Store) SetFilter(f model.Filter) { s.filter = f }

// Filter returns the active view filter.
func (s *Store) Filter() model.Filter { return s.filter }

// Todos returns a copy of the full collection in insertion order.
func (s *Store) Todos() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Visible returns the todos matching the active filter, in collection order.
func (s *Store) Visible() []model.Todo { return visible(s.todos, s.filter) }

// ActiveCount is the number of todos not yet completed.
func (s *Store) ActiveCount() int { return activeCount(s.todos) }

// HasCompleted reports whether any todo is completed.
func (s *Store) HasCompleted() bool { return hasCompleted(s.todos) }

// Len is the size of the full collection.
func (s *Store) Len() int { return len(s.todos) }

// Get looks up a todo by id.
func (s *Store) Get(id model.ID) (model.Todo, bool) {
	idx := indexOf(s.todos, id)
	if idx < 0 {
		return model.Todo{}, false
	}
	return s.todos[idx], true
}
