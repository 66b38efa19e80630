package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

func alice() person.Person {
	return person.New("Alice", "12345", "alice@example.com", "Kent Ridge", nil)
}

func bob() person.Person {
	return person.New("Bob", "67890", "bob@example.com", "Clementi", shared.TagsOf("friend"))
}

func entry(code string, grade capentry.Grade) capentry.Entry {
	return capentry.NewEntry(shared.ModuleCode(code), grade, 4, "Y1S1", nil)
}

func TestStore_AddAndDuplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(alice()))
	assert.True(t, s.HasPerson(alice()))
	assert.False(t, s.HasNote(note.New("CS2103T", "Read chapter 4")))

	err := s.AddPerson(person.New("Alice", "999", "x@y.z", "Elsewhere", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
	assert.Equal(t, "This person already exists", shared.Feedback(err))
	assert.Len(t, s.Persons(), 1)
}

func TestStore_SetAndDelete(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(alice()))
	require.NoError(t, s.AddPerson(bob()))

	// renaming alice to bob collides
	renamed := person.New("Bob", "12345", "alice@example.com", "Kent Ridge", nil)
	assert.ErrorIs(t, s.SetPerson(alice(), renamed), shared.ErrDuplicate)

	moved := person.New("Alice", "12345", "alice@example.com", "Jurong", nil)
	require.NoError(t, s.SetPerson(alice(), moved))
	assert.Equal(t, []person.Person{moved, bob()}, s.Persons())

	assert.ErrorIs(t, s.DeletePerson(alice()), shared.ErrNotFound)
	require.NoError(t, s.DeletePerson(moved))
	assert.Equal(t, []person.Person{bob()}, s.Persons())
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(alice()))

	snap := s.Snapshot()
	require.NoError(t, s.AddPerson(bob()))

	assert.Len(t, snap.Persons, 1)
	assert.False(t, snap.Equal(s.Snapshot()))
}

func TestStore_ResetIsAtomic(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCapEntry(entry("CS1101S", "A")))
	before := s.Snapshot()

	bad := Snapshot{
		Persons: []person.Person{bob()},
		Notes: []note.Note{
			note.New("CS2103T", "same"),
			note.New("MA1521", "same"),
		},
	}
	err := s.Reset(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
	assert.True(t, before.Equal(s.Snapshot()))

	require.NoError(t, s.Reset(Snapshot{Persons: []person.Person{bob()}}))
	assert.Equal(t, 1, s.Snapshot().Size())
}

func TestStore_ClearAndCAP(t *testing.T) {
	s := New()
	require.NoError(t, s.AddCapEntry(entry("CS1101S", "A")))
	require.NoError(t, s.AddCapEntry(entry("MA1521", "B")))
	require.NoError(t, s.AddCapEntry(entry("GEA1000", "S")))

	sum := s.CAP()
	assert.True(t, sum.HasGradedEntry)
	assert.InDelta(t, 4.25, sum.CAP, 1e-9)

	s.Clear()
	assert.Equal(t, 0, s.Snapshot().Size())
	assert.False(t, s.CAP().HasGradedEntry)
}

func TestFromSnapshot(t *testing.T) {
	_, err := FromSnapshot(Snapshot{Persons: []person.Person{alice(), alice()}})
	assert.ErrorIs(t, err, shared.ErrDuplicate)

	s, err := FromSnapshot(Snapshot{Persons: []person.Person{alice(), bob()}})
	require.NoError(t, err)
	assert.Len(t, s.Persons(), 2)
}
