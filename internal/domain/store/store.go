// Package store holds the four record collections that make up the user's data.
package store

import (
	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/unique"
)

// Record kind names, used in user-facing error messages.
const (
	KindPerson   = "person"
	KindCapEntry = "cap entry"
	KindHomework = "homework"
	KindNote     = "note"
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is a detached copy of the store's contents.
// Records are immutable values so copying the slices is enough.
type Snapshot struct {
	Persons    []person.Person
	CapEntries []capentry.Entry
	Homework   []homework.Homework
	Notes      []note.Note
}

// Equal reports whether both snapshots hold fully equal records in the same order.
func (s Snapshot) Equal(other Snapshot) bool {
	return unique.EqualSlices(s.Persons, other.Persons) &&
		unique.EqualSlices(s.CapEntries, other.CapEntries) &&
		unique.EqualSlices(s.Homework, other.Homework) &&
		unique.EqualSlices(s.Notes, other.Notes)
}

// Size returns the total number of records.
func (s Snapshot) Size() int {
	return len(s.Persons) + len(s.CapEntries) + len(s.Homework) + len(s.Notes)
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store aggregates the person, CAP entry, homework and note collections.
// It is not safe for concurrent use.
type Store struct {
	persons    *unique.List[person.Person]
	capEntries *unique.List[capentry.Entry]
	homework   *unique.List[homework.Homework]
	notes      *unique.List[note.Note]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		persons:    unique.New[person.Person](KindPerson),
		capEntries: unique.New[capentry.Entry](KindCapEntry),
		homework:   unique.New[homework.Homework](KindHomework),
		notes:      unique.New[note.Note](KindNote),
	}
}

// FromSnapshot creates a store holding the snapshot's records.
func FromSnapshot(snap Snapshot) (*Store, error) {
	s := New()
	if err := s.Reset(snap); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns a copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Persons:    s.persons.Items(),
		CapEntries: s.capEntries.Items(),
		Homework:   s.homework.Items(),
		Notes:      s.notes.Items(),
	}
}

// Reset replaces all contents with the snapshot's records.
// Every list is checked before any is swapped in, so a duplicate leaves the store untouched.
func (s *Store) Reset(snap Snapshot) error {
	switch {
	case !unique.AreUnique(snap.Persons):
		return duplicateOnReset(KindPerson)
	case !unique.AreUnique(snap.CapEntries):
		return duplicateOnReset(KindCapEntry)
	case !unique.AreUnique(snap.Homework):
		return duplicateOnReset(KindHomework)
	case !unique.AreUnique(snap.Notes):
		return duplicateOnReset(KindNote)
	}

	// Cannot fail after the checks above.
	_ = s.persons.SetAll(snap.Persons)
	_ = s.capEntries.SetAll(snap.CapEntries)
	_ = s.homework.SetAll(snap.Homework)
	_ = s.notes.SetAll(snap.Notes)
	return nil
}

// Clear removes every record of every kind.
func (s *Store) Clear() {
	_ = s.Reset(Snapshot{})
}

func duplicateOnReset(kind string) error {
	return shared.NewDomainError(kind, "Reset", shared.ErrDuplicate, "The "+kind+" list contains duplicate "+kind+"s")
}

// ═══════════════════════════════════════════════════════════════════════════
// Persons
// ═══════════════════════════════════════════════════════════════════════════

func (s *Store) HasPerson(p person.Person) bool     { return s.persons.Contains(p) }
func (s *Store) AddPerson(p person.Person) error    { return s.persons.Add(p) }
func (s *Store) DeletePerson(p person.Person) error { return s.persons.Remove(p) }
func (s *Store) SetPerson(target, edited person.Person) error {
	return s.persons.Replace(target, edited)
}
func (s *Store) Persons() []person.Person { return s.persons.Items() }

// ═══════════════════════════════════════════════════════════════════════════
// CAP entries
// ═══════════════════════════════════════════════════════════════════════════

func (s *Store) HasCapEntry(e capentry.Entry) bool     { return s.capEntries.Contains(e) }
func (s *Store) AddCapEntry(e capentry.Entry) error    { return s.capEntries.Add(e) }
func (s *Store) DeleteCapEntry(e capentry.Entry) error { return s.capEntries.Remove(e) }
func (s *Store) SetCapEntry(target, edited capentry.Entry) error {
	return s.capEntries.Replace(target, edited)
}
func (s *Store) CapEntries() []capentry.Entry { return s.capEntries.Items() }

// CAP computes the summary over every stored CAP entry.
func (s *Store) CAP() capentry.Summary {
	return capentry.Compute(s.capEntries.Items())
}

// ═══════════════════════════════════════════════════════════════════════════
// Homework
// ═══════════════════════════════════════════════════════════════════════════

func (s *Store) HasHomework(h homework.Homework) bool     { return s.homework.Contains(h) }
func (s *Store) AddHomework(h homework.Homework) error    { return s.homework.Add(h) }
func (s *Store) DeleteHomework(h homework.Homework) error { return s.homework.Remove(h) }
func (s *Store) SetHomework(target, edited homework.Homework) error {
	return s.homework.Replace(target, edited)
}
func (s *Store) Homework() []homework.Homework { return s.homework.Items() }

// ═══════════════════════════════════════════════════════════════════════════
// Notes
// ═══════════════════════════════════════════════════════════════════════════

func (s *Store) HasNote(n note.Note) bool               { return s.notes.Contains(n) }
func (s *Store) AddNote(n note.Note) error              { return s.notes.Add(n) }
func (s *Store) DeleteNote(n note.Note) error           { return s.notes.Remove(n) }
func (s *Store) SetNote(target, edited note.Note) error { return s.notes.Replace(target, edited) }
func (s *Store) Notes() []note.Note                     { return s.notes.Items() }
