package model

import (
	"fmt"
	"strings"
)

// Filter selects which todos are visible. It is view state and is never
// persisted with the collection.
type Filter int

const (
	All Filter = iota
	Active
	Completed
)

// Filters returns every filter in display order.
func Filters() []Filter { return []Filter{All, Active, Completed} }

func (f Filter) String() string {
	switch f {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "all"
	}
}

// Label is the capitalized name shown on filter tabs.
func (f Filter) Label() string {
	switch f {
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// ParseFilter accepts the lower-case names used on the command line.
// An empty string means All.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return All, fmt.Errorf("unknown filter %q: must be one of all, active, completed", s)
}
