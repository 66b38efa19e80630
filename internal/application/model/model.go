// Package model ties the record store to its undo history and the active filters
// of the four displayed lists.
package model

import (
	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/history"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/store"
)

// Predicate selects the records shown in a filtered list. A nil predicate shows everything.
type Predicate[T any] func(T) bool

// Model is the state a command executes against.
// It is not safe for concurrent use; callers serialise access.
type Model struct {
	store   *store.Store
	history *history.Manager

	personFilter   Predicate[person.Person]
	capEntryFilter Predicate[capentry.Entry]
	homeworkFilter Predicate[homework.Homework]
	noteFilter     Predicate[note.Note]
}

// New creates a model over s. The history starts with the current contents of s.
func New(s *store.Store, opts ...history.Option) *Model {
	return &Model{
		store:   s,
		history: history.New(s, opts...),
	}
}

// Store returns the underlying record store.
func (m *Model) Store() *store.Store {
	return m.store
}

// History returns the undo history.
func (m *Model) History() *history.Manager {
	return m.history
}

// Snapshot returns a copy of the current records.
func (m *Model) Snapshot() store.Snapshot {
	return m.store.Snapshot()
}

// ══════════════════════════════════════════════════════════════════════════════
// HISTORY
// ══════════════════════════════════════════════════════════════════════════════

// Commit records the current state as a new undo step.
func (m *Model) Commit() history.Entry {
	return m.history.Commit()
}

// CanUndo reports whether Undo would succeed.
func (m *Model) CanUndo() bool { return m.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (m *Model) CanRedo() bool { return m.history.CanRedo() }

// Undo restores the previous committed state.
func (m *Model) Undo() error { return m.history.Undo() }

// Redo restores the most recently undone state.
func (m *Model) Redo() error { return m.history.Redo() }

// ══════════════════════════════════════════════════════════════════════════════
// FILTERED VIEWS
// ══════════════════════════════════════════════════════════════════════════════

// FilteredPersons returns the persons matching the active filter, in store order.
func (m *Model) FilteredPersons() []person.Person {
	return filter(m.store.Persons(), m.personFilter)
}

// FilteredCapEntries returns the CAP entries matching the active filter.
func (m *Model) FilteredCapEntries() []capentry.Entry {
	return filter(m.store.CapEntries(), m.capEntryFilter)
}

// FilteredHomework returns the homework matching the active filter.
func (m *Model) FilteredHomework() []homework.Homework {
	return filter(m.store.Homework(), m.homeworkFilter)
}

// FilteredNotes returns the notes matching the active filter.
func (m *Model) FilteredNotes() []note.Note {
	return filter(m.store.Notes(), m.noteFilter)
}

// UpdatePersonFilter replaces the person filter. nil shows all persons.
func (m *Model) UpdatePersonFilter(p Predicate[person.Person]) { m.personFilter = p }

// UpdateCapEntryFilter replaces the CAP entry filter. nil shows all entries.
func (m *Model) UpdateCapEntryFilter(p Predicate[capentry.Entry]) { m.capEntryFilter = p }

// UpdateHomeworkFilter replaces the homework filter. nil shows all homework.
func (m *Model) UpdateHomeworkFilter(p Predicate[homework.Homework]) { m.homeworkFilter = p }

// UpdateNoteFilter replaces the note filter. nil shows all notes.
func (m *Model) UpdateNoteFilter(p Predicate[note.Note]) { m.noteFilter = p }

// ShowAll clears every filter.
func (m *Model) ShowAll() {
	m.personFilter = nil
	m.capEntryFilter = nil
	m.homeworkFilter = nil
	m.noteFilter = nil
}

// CAP computes the summary over all stored CAP entries, ignoring the filter.
func (m *Model) CAP() capentry.Summary {
	return m.store.CAP()
}

func filter[T any](items []T, keep Predicate[T]) []T {
	if keep == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
