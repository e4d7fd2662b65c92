package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/sessiontodo/internal/model"
	"github.com/idilsaglam/sessiontodo/internal/session"
)

// DefaultKey is the storage key of the todo collection.
const DefaultKey = "todos"

// Checkpointer seeds a Store on startup and receives the full collection
// after every change.
type Checkpointer interface {
	Restore() []model.Todo
	Checkpoint(todos []model.Todo) bool
}

//go:embed todos.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("todos.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// ValidatePayload checks a stored collection against the todo schema and
// rejects duplicate ids.
func ValidatePayload(raw []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("invalid todo payload: %s", flattenSchemaError(err))
	}

	var todos []model.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[model.ID]struct{}, len(todos))
	for _, t := range todos {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("invalid todo payload: duplicate id %d", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func flattenSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.InstanceLocation, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}

// SessionCheckpoint persists the collection as a single value in a
// session.Storage under Key.
type SessionCheckpoint struct {
	Storage *session.Storage
	Key     string
}

var _ Checkpointer = SessionCheckpoint{}

// NewSessionCheckpoint uses DefaultKey when key is empty.
func NewSessionCheckpoint(st *session.Storage, key string) SessionCheckpoint {
	if key == "" {
		key = DefaultKey
	}
	return SessionCheckpoint{Storage: st, Key: key}
}

func (c SessionCheckpoint) Restore() []model.Todo {
	todos := session.Load(c.Storage, c.Key, []model.Todo{}, ValidatePayload)
	if todos == nil {
		return []model.Todo{}
	}
	return todos
}

func (c SessionCheckpoint) Checkpoint(todos []model.Todo) bool {
	return session.Save(c.Storage, c.Key, todos)
}
