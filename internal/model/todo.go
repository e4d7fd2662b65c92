package model

// ID identifies a Todo within a collection. Unique at any instant.
type ID int64

// Todo is the domain model for a todo entry.
// Text is trimmed and never empty once it is part of a collection.
type Todo struct {
	ID        ID     `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
