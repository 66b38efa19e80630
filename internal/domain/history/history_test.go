package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
)

func addNote(t *testing.T, s *store.Store, content string) {
	t.Helper()
	require.NoError(t, s.AddNote(note.New("CS2103T", note.Content(content))))
}

func TestManager_New(t *testing.T) {
	s := store.New()
	addNote(t, s, "existing")

	fixed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := New(s, WithClock(func() time.Time { return fixed }))

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, fixed, m.Current().CapturedAt)
	assert.Len(t, m.Current().Snapshot.Notes, 1)
}

func TestManager_UndoRedo(t *testing.T) {
	s := store.New()
	m := New(s)

	addNote(t, s, "first")
	m.Commit()
	addNote(t, s, "second")
	m.Commit()
	assert.Equal(t, 3, m.Len())

	require.NoError(t, m.Undo())
	assert.Len(t, s.Notes(), 1)
	require.NoError(t, m.Undo())
	assert.Empty(t, s.Notes())

	err := m.Undo()
	assert.ErrorIs(t, err, shared.ErrNoUndo)
	assert.Equal(t, 0, m.Cursor())

	require.NoError(t, m.Redo())
	require.NoError(t, m.Redo())
	assert.Len(t, s.Notes(), 2)
	assert.ErrorIs(t, m.Redo(), shared.ErrNoRedo)
}

func TestManager_CommitDiscardsRedo(t *testing.T) {
	s := store.New()
	m := New(s)

	addNote(t, s, "first")
	m.Commit()
	addNote(t, s, "second")
	m.Commit()

	require.NoError(t, m.Undo())
	addNote(t, s, "third")
	m.Commit()

	assert.False(t, m.CanRedo())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())

	require.NoError(t, m.Undo())
	assert.Len(t, s.Notes(), 1)
	assert.Equal(t, note.Content("first"), s.Notes()[0].Content())
}

func TestManager_RestoredStateIsNotAliased(t *testing.T) {
	s := store.New()
	m := New(s)

	addNote(t, s, "first")
	m.Commit()
	require.NoError(t, m.Undo())

	// mutating the live store after undo must not touch the stored entry
	addNote(t, s, "other")
	require.NoError(t, m.Redo())
	require.Len(t, s.Notes(), 1)
	assert.Equal(t, note.Content("first"), s.Notes()[0].Content())
}

func TestManager_EntriesHaveDistinctIDs(t *testing.T) {
	s := store.New()
	m := New(s)
	first := m.Current().ID
	second := m.Commit().ID
	assert.NotEqual(t, first, second)
}
