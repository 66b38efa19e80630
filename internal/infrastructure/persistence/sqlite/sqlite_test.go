package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/persistencetest"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "ultistudent.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_Contract(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.Storage {
		return openTemp(t)
	})
}

func TestStorage_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ultistudent.db")

	s, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, persistencetest.Sample()))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, persistencetest.Sample().Equal(got))
}

func TestStorage_LoadRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Save(ctx, persistencetest.Sample()))

	_, err := s.db.ExecContext(ctx, `UPDATE cap_entries SET grade = 'Z' WHERE position = 0`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, shared.ErrDataMalformed)
}

func TestStorage_LoadRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Save(ctx, persistencetest.Sample()))

	_, err := s.db.ExecContext(ctx, `UPDATE notes SET content = 'dup'`)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO notes (position, module_code, content) VALUES (1, 'MA1521', 'dup')`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, shared.ErrDuplicateOnLoad)
}

func TestTags(t *testing.T) {
	assert.Equal(t, "a b", joinTags([]string{"a", "b"}))
	assert.Empty(t, splitTags(""))
	assert.Equal(t, []string{"a", "b"}, splitTags("a b"))
}
