package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence/persistencetest"
)

func TestDocument_RoundTrip(t *testing.T) {
	want := persistencetest.Sample()
	doc := persistence.FromSnapshot(want)

	require.Len(t, doc.Persons, 2)
	assert.Equal(t, []string{"friends", "owesMoney"}, doc.Persons[1].Tagged)
	assert.Equal(t, "4", doc.CapEntries[0].Credits)
	assert.Equal(t, "29/02/2020", doc.Homework[1].Deadline)

	got, err := doc.Snapshot()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestDocument_EmptyEncodesEmptyLists(t *testing.T) {
	data, err := persistence.Encode(persistence.FromSnapshot(store.Snapshot{}), persistence.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"persons":[],"capEntryList":[],"homeworkList":[],"noteList":[]}`, string(data))
}

func TestDocument_Invalid(t *testing.T) {
	valid := func() persistence.Document { return persistence.FromSnapshot(persistencetest.Sample()) }

	tests := []struct {
		name    string
		mutate  func(d *persistence.Document)
		kind    error
		message string
	}{
		{
			name:    "missing person name",
			mutate:  func(d *persistence.Document) { d.Persons[0].Name = "" },
			kind:    shared.ErrDataMalformed,
			message: "Person's Name field is missing!",
		},
		{
			name:   "invalid phone",
			mutate: func(d *persistence.Document) { d.Persons[0].Phone = "+651234" },
			kind:   shared.ErrDataMalformed,
		},
		{
			name:   "invalid tag",
			mutate: func(d *persistence.Document) { d.Persons[0].Tagged = []string{"#friend"} },
			kind:   shared.ErrDataMalformed,
		},
		{
			name:    "missing grade",
			mutate:  func(d *persistence.Document) { d.CapEntries[0].Grade = "" },
			kind:    shared.ErrDataMalformed,
			message: "CapEntry's Grade field is missing!",
		},
		{
			name:   "invalid deadline",
			mutate: func(d *persistence.Document) { d.Homework[0].Deadline = "31/02/2020" },
			kind:   shared.ErrDataMalformed,
		},
		{
			name:   "invalid priority",
			mutate: func(d *persistence.Document) { d.Homework[0].Priority = "urgent" },
			kind:   shared.ErrDataMalformed,
		},
		{
			name:   "invalid note content",
			mutate: func(d *persistence.Document) { d.Notes[0].Content = " leading space!" },
			kind:   shared.ErrDataMalformed,
		},
		{
			name:    "duplicate person",
			mutate:  func(d *persistence.Document) { d.Persons[1].Name = d.Persons[0].Name },
			kind:    shared.ErrDuplicateOnLoad,
			message: persistence.MessageDuplicatePerson,
		},
		{
			name:    "duplicate cap entry",
			mutate:  func(d *persistence.Document) { d.CapEntries[1].ModuleCode = "cs2103t" },
			kind:    shared.ErrDuplicateOnLoad,
			message: persistence.MessageDuplicateCapEntry,
		},
		{
			name:    "duplicate note",
			mutate:  func(d *persistence.Document) { d.Notes = append(d.Notes, d.Notes[0]) },
			kind:    shared.ErrDuplicateOnLoad,
			message: persistence.MessageDuplicateNote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid()
			tt.mutate(&doc)

			_, err := doc.Snapshot()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, shared.Feedback(err))
			}
		})
	}
}

func TestDocument_MissingPriorityDefaultsToMedium(t *testing.T) {
	doc := persistence.Document{
		Homework: []persistence.HomeworkRecord{{ModuleCode: "CS2103T", Name: "Lab1", Deadline: "1/1/2020"}},
	}
	snap, err := doc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Homework, 1)
	assert.Equal(t, homework.PriorityMedium, snap.Homework[0].Priority())
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
persons: []
capEntryList:
  - moduleCode: CS2103T
    grade: A
    credits: 4
    semester: Y2S1
homeworkList: []
noteList:
  - moduleCode: CS2103T
    content: hello
`)
	snap, err := persistence.DecodeSnapshot(data, persistence.FormatYAML)
	require.NoError(t, err)
	require.Len(t, snap.CapEntries, 1)
	assert.Equal(t, 4, snap.CapEntries[0].Credits().Int())
	assert.Len(t, snap.Notes, 1)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := persistence.Decode([]byte(`{"persons": [`), persistence.FormatJSON)
	assert.ErrorIs(t, err, shared.ErrDataMalformed)

	_, err = persistence.Decode([]byte("persons: {"), persistence.FormatYAML)
	assert.ErrorIs(t, err, shared.ErrDataMalformed)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, persistence.FormatJSON, persistence.FormatForPath("data/ultistudent.json"))
	assert.Equal(t, persistence.FormatYAML, persistence.FormatForPath("data.YAML"))
	assert.Equal(t, persistence.FormatYAML, persistence.FormatForPath("data.yml"))
	assert.Equal(t, persistence.FormatJSON, persistence.FormatForPath("data"))
}

func TestDigestOf(t *testing.T) {
	a, err := persistence.DigestOf(persistencetest.Sample())
	require.NoError(t, err)
	b, err := persistence.DigestOf(persistencetest.Sample())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := persistencetest.Sample()
	changed.Notes = nil
	c, err := persistence.DigestOf(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMemory(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.Storage {
		return persistence.NewMemory()
	})

	m := persistence.NewMemory()
	boom := errors.New("disk full")
	m.FailWith(boom)
	assert.ErrorIs(t, m.Save(context.Background(), persistencetest.Sample()), boom)
	assert.Equal(t, 0, m.Saves())
}
