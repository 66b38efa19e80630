// Package persistencetest provides fixtures and a shared behaviour suite for
// persistence.Storage implementations.
package persistencetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
)

// Sample returns a snapshot with records of every kind, tags included.
func Sample() store.Snapshot {
	return store.Snapshot{
		Persons: []person.Person{
			person.New("Alice Pauline", "94351253", "alice@example.com", "123, Jurong West Ave 6, #08-111",
				shared.TagsOf("friends")),
			person.New("Benson Meier", "98765432", "johnd@example.com", "311, Clementi Ave 2, #02-25",
				shared.TagsOf("owesMoney", "friends")),
		},
		CapEntries: []capentry.Entry{
			capentry.NewEntry("CS2103T", "A", 4, "Y2S1", shared.TagsOf("core")),
			capentry.NewEntry("GER1000", "S", 4, "Y1S1", nil),
			capentry.NewEntry("MA1521", "B+", 4, "Y1S1", nil),
		},
		Homework: []homework.Homework{
			homework.New("CS2103T", "Lab1", shared.Date{Year: 2020, Month: 1, Day: 1}, homework.PriorityHigh),
			homework.New("MA1521", "Tutorial 3", shared.Date{Year: 2020, Month: 2, Day: 29}, homework.PriorityLow),
		},
		Notes: []note.Note{
			note.New("CS2103T", "Remember to tag the release"),
		},
	}
}

// Run checks the behaviour every Storage must share. newStorage must return
// a storage with nothing saved yet.
func Run(t *testing.T, newStorage func(t *testing.T) persistence.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("load before save reports not found", func(t *testing.T) {
		s := newStorage(t)
		_, err := s.Load(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrDataNotFound)
	})

	t.Run("save then load returns equal records in order", func(t *testing.T) {
		s := newStorage(t)
		want := Sample()
		require.NoError(t, s.Save(ctx, want))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "got %+v", got)
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Save(ctx, Sample()))

		smaller := Sample()
		smaller.Persons = smaller.Persons[:1]
		smaller.Notes = nil
		require.NoError(t, s.Save(ctx, smaller))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.True(t, smaller.Equal(got))
		assert.Empty(t, got.Notes)
	})

	t.Run("empty store round trips", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Save(ctx, store.Snapshot{}))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Size())
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStorage(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, s.Save(cctx, Sample()))
	})
}
