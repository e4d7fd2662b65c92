package tui

import "github.com/idilsaglam/sessiontodo/internal/model"

// editState is per-item view state, never part of the Todo itself.
// It is either viewing or editing.
type editState interface {
	isEditState()
}

type viewing struct{}

// editing holds the text the item had when edit mode was entered.
type editing struct {
	id       model.ID
	snapshot string
}

func (viewing) isEditState() {}
func (editing) isEditState() {}

// editingID returns the id under edit, if any.
func editingID(s editState) (model.ID, bool) {
	e, ok := s.(editing)
	return e.id, ok
}
