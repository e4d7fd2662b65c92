package todo

// demoTodos are added by SeedDemo. The last one starts completed so every
// filter has something to show.
var demoTodos = []struct {
	text string
	done bool
}{
	{"Buy milk", false},
	{"Walk the dog", false},
	{"Read the manual", true},
}

// SeedDemo fills an empty store with sample todos. It does nothing when the
// store already holds todos and reports whether it seeded.
func SeedDemo(s *Store) bool {
	if s.Len() > 0 {
		return false
	}
	for _, d := range demoTodos {
		t, ok := s.Add(d.text)
		if ok && d.done {
			s.Toggle(t.ID)
		}
	}
	return true
}
