package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultistudent/ultistudent/internal/application/command"
	"github.com/ultistudent/ultistudent/internal/application/logic"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

func runREPL(t *testing.T, input string, opts ...replOption) (string, *logic.Logic) {
	t.Helper()
	l, err := logic.New(store.Snapshot{})
	require.NoError(t, err)

	var out bytes.Buffer
	r := newREPL(l, strings.NewReader(input), &out, opts...)
	require.NoError(t, r.Run(context.Background()))
	return out.String(), l
}

func TestREPL_PrintsFeedbackAndView(t *testing.T) {
	out, l := runREPL(t, "addNote mc/CS2103T c/Read chapter 4\naddNote mc/MA1521 c/Tutorial 3\nlistNote\n")

	assert.Contains(t, out, "1. CS2103T: Read chapter 4\n2. MA1521: Tutorial 3\n")
	assert.Contains(t, out, "Listed all notes")
	assert.Len(t, l.FilteredNotes(), 2)
}

func TestREPL_StopsOnExit(t *testing.T) {
	out, l := runREPL(t, "exit\naddNote mc/CS2103T c/never\n")

	assert.Contains(t, out, command.MessageExit)
	assert.Empty(t, l.FilteredNotes())
}

func TestREPL_PrintsErrors(t *testing.T) {
	out, _ := runREPL(t, "deleteNote 1\nfrobnicate\n")

	assert.Contains(t, out, command.MessageInvalidNoteIndex)
	assert.Contains(t, out, command.MessageUnknownCommand)
}

func TestREPL_Help(t *testing.T) {
	out, _ := runREPL(t, "help\n")

	assert.Contains(t, out, command.MessageHelp)
	for _, word := range helpOrder {
		assert.Contains(t, out, command.Usage[word], word)
	}
	assert.Len(t, helpOrder, len(command.Usage))
}

func TestREPL_CapViewShowsSummaryOnce(t *testing.T) {
	out, _ := runREPL(t, "addCapEntry mc/CS2103T g/A cr/4 s/Y2S1\naddCapEntry mc/GER1000 g/S cr/4 s/Y1S1\n")

	assert.Contains(t, out, "CAP: 5.00 (4 MCs)\n")
	// one summary per command, carried in the feedback
	assert.Equal(t, 2, strings.Count(out, "CAP: "))
}

func TestREPL_HomeworkDueIn(t *testing.T) {
	clock := func() time.Time { return timeutil.Date(2020, 1, 1).Add(15 * time.Hour) }
	out, _ := runREPL(t, "addHomework hw/Lab1 mc/CS2103T d/03/01/2020\naddHomework hw/Lab0 mc/CS2103T d/31/12/2019\n",
		withClock(clock))

	assert.Contains(t, out, "Lab1; Deadline: 03/01/2020; Priority: medium (due in 2 days)")
	assert.Contains(t, out, "Lab0; Deadline: 31/12/2019; Priority: medium (overdue by 1 day)")
}

func TestREPL_Prompt(t *testing.T) {
	out, _ := runREPL(t, "list\n", withPrompt("> "))
	assert.True(t, strings.HasPrefix(out, "> "))
	assert.True(t, strings.HasSuffix(out, "> "))
}

func TestREPL_CancelledContext(t *testing.T) {
	l, err := logic.New(store.Snapshot{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := newREPL(l, strings.NewReader("addNote mc/CS2103T c/x\n"), &out)
	require.NoError(t, r.Run(ctx))
	assert.Empty(t, l.FilteredNotes())
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ultistudent version dev (build: unknown)\n", out)
}

func TestExecCommand_PersistsBetweenRuns(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.json")

	out, err := execute(t, "--data", data, "exec", "addHomework hw/Lab1 mc/CS2103T d/01/01/2020 p/high")
	require.NoError(t, err)
	assert.Contains(t, out, "Lab1")

	out, err = execute(t, "--data", data, "exec", "listHomework")
	require.NoError(t, err)
	assert.Contains(t, out, "Listed all homework")
	assert.Contains(t, out, "1. CS2103T; Lab1; Deadline: 01/01/2020; Priority: high")
}

func TestExecCommand_ReportsFailure(t *testing.T) {
	out, err := execute(t, "--backend", "memory", "exec", "deleteNote 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrIndexOutOfBounds)

	var fe *feedbackError
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, out, command.MessageInvalidNoteIndex)
}

func TestExecCommand_BadConfig(t *testing.T) {
	_, err := execute(t, "--backend", "floppy", "exec", "list")
	require.Error(t, err)

	var fe *feedbackError
	assert.False(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), "failed to load config")
}
