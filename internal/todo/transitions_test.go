package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/sessiontodo/internal/model"
)

func TestTransitionsDoNotMutateInput(t *testing.T) {
	in := []model.Todo{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Completed: true},
	}
	snapshot := append([]model.Todo(nil), in...)

	toggle(in, 1)
	retext(in, 2, "z")
	remove(in, 1)
	clearCompleted(in)
	appendTodo(in, model.Todo{ID: 3, Text: "c"})

	assert.Equal(t, snapshot, in)
}

func TestCounter(t *testing.T) {
	c := NewCounter(nil)
	assert.Equal(t, model.ID(1), c.Next())
	assert.Equal(t, model.ID(2), c.Next())

	c.Observe(10)
	assert.Equal(t, model.ID(11), c.Next())

	c.Observe(3)
	assert.Equal(t, model.ID(12), c.Next(), "observing a lower id never rewinds")
}
