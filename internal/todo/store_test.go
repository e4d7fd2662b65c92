package todo

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sessiontodo/internal/model"
	"github.com/idilsaglam/sessiontodo/internal/session"
)

// recorder is a Checkpointer that keeps every checkpoint it receives.
type recorder struct {
	initial []model.Todo
	saves   [][]model.Todo
	fail    bool
}

func (r *recorder) Restore() []model.Todo { return r.initial }

func (r *recorder) Checkpoint(todos []model.Todo) bool {
	cp := make([]model.Todo, len(todos))
	copy(cp, todos)
	r.saves = append(r.saves, cp)
	return !r.fail
}

func (r *recorder) last() []model.Todo {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func newTestStore(t *testing.T, initial ...model.Todo) (*Store, *recorder) {
	t.Helper()
	rec := &recorder{initial: initial}
	return NewStore(rec), rec
}

func texts(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Text)
	}
	return out
}

func TestStore_Add(t *testing.T) {
	t.Run("trims and appends an active todo", func(t *testing.T) {
		s, rec := newTestStore(t)

		todo, ok := s.Add("  Buy milk  ")
		require.True(t, ok)
		assert.Equal(t, "Buy milk", todo.Text)
		assert.False(t, todo.Completed)
		assert.Equal(t, []model.Todo{todo}, s.Todos())
		assert.Equal(t, s.Todos(), rec.last())
	})

	t.Run("ignores empty and whitespace-only text", func(t *testing.T) {
		s, rec := newTestStore(t)
		s.Add("keep")
		before := s.Todos()
		saves := len(rec.saves)

		for _, in := range []string{"", " ", "   ", "\t\n", " \r\n\t "} {
			_, ok := s.Add(in)
			assert.False(t, ok, "%q", in)
		}
		assert.Equal(t, before, s.Todos())
		assert.Len(t, rec.saves, saves, "rejected input must not checkpoint")
	})

	t.Run("appends at the end and grows by one", func(t *testing.T) {
		s, _ := newTestStore(t)
		for i, in := range []string{"a", "b", "c"} {
			s.Add(in)
			assert.Equal(t, i+1, s.Len())
		}
		assert.Equal(t, []string{"a", "b", "c"}, texts(s.Todos()))
	})

	t.Run("ids are unique under rapid inserts", func(t *testing.T) {
		s, _ := newTestStore(t)
		seen := map[model.ID]bool{}
		for i := 0; i < 500; i++ {
			todo, _ := s.Add("x")
			require.False(t, seen[todo.ID], "duplicate id %d", todo.ID)
			seen[todo.ID] = true
		}
	})

	t.Run("ids continue above hydrated todos", func(t *testing.T) {
		s, _ := newTestStore(t, model.Todo{ID: 41, Text: "old"}, model.Todo{ID: 7, Text: "older"})
		todo, _ := s.Add("new")
		assert.Greater(t, todo.ID, model.ID(41))
	})
}

func TestStore_Toggle(t *testing.T) {
	s, rec := newTestStore(t)
	todo, _ := s.Add("task")

	require.True(t, s.Toggle(todo.ID))
	got, _ := s.Get(todo.ID)
	assert.True(t, got.Completed)
	assert.True(t, rec.last()[0].Completed)

	require.True(t, s.Toggle(todo.ID))
	got, _ = s.Get(todo.ID)
	assert.False(t, got.Completed, "toggling twice restores the flag")

	saves := len(rec.saves)
	assert.False(t, s.Toggle(9999))
	assert.Len(t, rec.saves, saves, "unknown id is a silent no-op")
}

func TestStore_Delete(t *testing.T) {
	s, rec := newTestStore(t)
	a, _ := s.Add("a")
	s.Add("b")

	require.True(t, s.Delete(a.ID))
	assert.Equal(t, []string{"b"}, texts(s.Todos()))
	assert.Equal(t, []string{"b"}, texts(rec.last()))

	saves := len(rec.saves)
	assert.False(t, s.Delete(a.ID))
	assert.Len(t, rec.saves, saves)
}

func TestStore_Edit(t *testing.T) {
	t.Run("replaces trimmed text and keeps completed", func(t *testing.T) {
		s, _ := newTestStore(t)
		todo, _ := s.Add("Original")
		s.Toggle(todo.ID)

		require.True(t, s.Edit(todo.ID, "  Updated "))
		got, _ := s.Get(todo.ID)
		assert.Equal(t, "Updated", got.Text)
		assert.True(t, got.Completed)
	})

	t.Run("empty text deletes like Delete", func(t *testing.T) {
		for _, in := range []string{"", "   "} {
			edited, _ := newTestStore(t)
			deleted, _ := newTestStore(t)
			for _, s := range []*Store{edited, deleted} {
				s.Add("a")
				s.Add("b")
			}
			id := edited.Todos()[0].ID

			assert.True(t, edited.Edit(id, in))
			deleted.Delete(id)
			assert.Equal(t, deleted.Todos(), edited.Todos(), "%q", in)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, rec := newTestStore(t)
		s.Add("a")
		saves := len(rec.saves)
		assert.False(t, s.Edit(404, "b"))
		assert.False(t, s.Edit(404, ""))
		assert.Equal(t, []string{"a"}, texts(s.Todos()))
		assert.Len(t, rec.saves, saves)
	})
}

func TestStore_ClearCompleted(t *testing.T) {
	s, rec := newTestStore(t)
	var ids []model.ID
	for _, in := range []string{"a", "b", "c", "d", "e"} {
		todo, _ := s.Add(in)
		ids = append(ids, todo.ID)
	}
	s.Toggle(ids[1])
	s.Toggle(ids[3])

	assert.Equal(t, 2, s.ClearCompleted())
	assert.Equal(t, []string{"a", "c", "e"}, texts(s.Todos()))
	assert.False(t, s.HasCompleted())

	saves := len(rec.saves)
	assert.Equal(t, 0, s.ClearCompleted(), "second call is a no-op")
	assert.Len(t, rec.saves, saves)
}

func TestStore_FilterAndDerivations(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.Add("a")
	s.Add("b")
	c, _ := s.Add("c")
	s.Toggle(a.ID)
	s.Toggle(c.ID)

	assert.Equal(t, model.All, s.Filter())
	assert.Equal(t, []string{"a", "b", "c"}, texts(s.Visible()))

	s.SetFilter(model.Active)
	assert.Equal(t, []string{"b"}, texts(s.Visible()))

	s.SetFilter(model.Completed)
	assert.Equal(t, []string{"a", "c"}, texts(s.Visible()))

	assert.Equal(t, 3, s.Len(), "filter never touches the collection")
	assert.Equal(t, 1, s.ActiveCount())
	assert.True(t, s.HasCompleted())
}

func TestStore_ActiveAndCompletedPartitionCollection(t *testing.T) {
	s, _ := newTestStore(t)
	for i, in := range []string{"a", "b", "c", "d", "e", "f"} {
		todo, _ := s.Add(in)
		if i%2 == 0 {
			s.Toggle(todo.ID)
		}
	}
	s.Edit(s.Todos()[1].ID, "")

	s.SetFilter(model.Active)
	active := s.Visible()
	s.SetFilter(model.Completed)
	completed := s.Visible()

	union := map[model.ID]model.Todo{}
	for _, td := range active {
		union[td.ID] = td
	}
	for _, td := range completed {
		_, dup := union[td.ID]
		assert.False(t, dup, "active and completed overlap")
		union[td.ID] = td
	}
	require.Len(t, union, s.Len())
	for _, todo := range s.Todos() {
		assert.Equal(t, todo, union[todo.ID])
	}
}

func TestStore_CheckpointFailureKeepsState(t *testing.T) {
	var logs bytes.Buffer
	rec := &recorder{fail: true}
	s := NewStore(rec, WithLogger(zerolog.New(&logs)))

	todo, ok := s.Add("still here")
	require.True(t, ok)
	assert.Equal(t, []model.Todo{todo}, s.Todos())
	assert.Contains(t, logs.String(), "checkpoint failed")
}

func TestStore_TodosReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("a")
	out := s.Todos()
	out[0].Text = "mutated"
	assert.Equal(t, "a", s.Todos()[0].Text)
}

func TestScenario_AddToggleClear(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add("Buy milk")
	s.Add("  ")
	s.Add("Walk dog")
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.ActiveCount())

	s.Toggle(s.Todos()[0].ID)
	assert.Equal(t, 1, s.ActiveCount())
	assert.True(t, s.HasCompleted())

	s.ClearCompleted()
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Walk dog", s.Todos()[0].Text)
}

func TestScenario_EditToEmptyRemoves(t *testing.T) {
	s, _ := newTestStore(t)
	todo, _ := s.Add("X")
	s.Edit(todo.ID, "")
	assert.Equal(t, 0, s.Len())
}

func TestScenario_PersistsAcrossRemount(t *testing.T) {
	st := session.New(session.NewMemory(0), zerolog.Nop())
	cp := NewSessionCheckpoint(st, "")

	first := NewStore(cp)
	first.Add("Persistent todo")
	first.SetFilter(model.Completed)

	second := NewStore(cp)
	assert.Equal(t, []string{"Persistent todo"}, texts(second.Todos()))
	assert.Equal(t, model.All, second.Filter(), "filter is not persisted")
}

func TestSeedDemo(t *testing.T) {
	s, _ := newTestStore(t)
	require.True(t, SeedDemo(s))
	assert.Equal(t, len(demoTodos), s.Len())
	assert.True(t, s.HasCompleted())

	assert.False(t, SeedDemo(s), "never seeds over existing todos")
	assert.Equal(t, len(demoTodos), s.Len())
}

func TestItemsLeft(t *testing.T) {
	assert.Equal(t, "0 items left", ItemsLeft(0))
	assert.Equal(t, "1 item left", ItemsLeft(1))
	assert.Equal(t, "5 items left", ItemsLeft(5))
}
