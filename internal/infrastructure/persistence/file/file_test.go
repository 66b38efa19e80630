package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/persistencetest"
)

func TestStorage_JSON(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.Storage {
		return New(filepath.Join(t.TempDir(), "data", "ultistudent.json"))
	})
}

func TestStorage_YAML(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.Storage {
		return New(filepath.Join(t.TempDir(), "ultistudent.yaml"))
	})
}

func TestStorage_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "ultistudent.json"))

	require.NoError(t, s.Save(context.Background(), persistencetest.Sample()))
	require.NoError(t, s.Save(context.Background(), persistencetest.Sample()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ultistudent.json", entries[0].Name())
}

func TestStorage_WritesReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ultistudent.json")
	require.NoError(t, New(path).Save(context.Background(), persistencetest.Sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"capEntryList"`)
	assert.Contains(t, string(data), `"moduleCode": "CS2103T"`)
}

func TestStorage_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ultistudent.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := New(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrDataMalformed)
	assert.NotErrorIs(t, err, shared.ErrDataNotFound)
}

func TestStorage_LoadDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ultistudent.json")
	doc := `{"persons": [
		{"name": "Alice", "phone": "123", "email": "a@b.c", "address": "x", "tagged": []},
		{"name": "Alice", "phone": "456", "email": "d@e.f", "address": "y", "tagged": []}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := New(path).Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrDuplicateOnLoad)
}

func TestStorage_FormatOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ultistudent.data")
	s := New(path, WithFormat(persistence.FormatYAML))
	require.NoError(t, s.Save(context.Background(), persistencetest.Sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "capEntryList:")
	assert.Equal(t, path, s.Path())
}
