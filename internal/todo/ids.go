package todo

import (
	"github.com/samber/lo"

	"github.com/idilsaglam/sessiontodo/internal/model"
)

// IDSource hands out identifiers for new todos.
type IDSource interface {
	Next() model.ID
	// Observe tells the source about an id already in use.
	Observe(id model.ID)
}

// Counter is a monotonic IDSource. After Observe(n), Next never returns a
// value <= n.
type Counter struct {
	last model.ID
}

// NewCounter starts after the highest id in todos.
func NewCounter(todos []model.Todo) *Counter {
	c := &Counter{}
	c.Observe(lo.MaxBy(todos, func(a, b model.Todo) bool { return a.ID > b.ID }).ID)
	return c
}

func (c *Counter) Next() model.ID {
	c.last++
	return c.last
}

func (c *Counter) Observe(id model.ID) {
	if id > c.last {
		c.last = id
	}
}
