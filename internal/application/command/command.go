// Package command contains the typed commands accepted by UltiStudent and the
// executor that applies them to the model.
package command

import (
	"context"
	"fmt"

	"github.com/ultistudent/ultistudent/internal/application/model"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// Command is one of the fixed set of commands defined in this package.
// The unexported method keeps the set closed.
type Command interface {
	// Word returns the command word the user typed.
	Word() string
	// Mutates reports whether the command may change the stored records.
	Mutates() bool

	sealed()
}

// View names the list the presentation layer should switch to.
type View string

const (
	ViewNone     View = ""
	ViewPersons  View = "persons"
	ViewCap      View = "cap"
	ViewHomework View = "homework"
	ViewNotes    View = "notes"
)

// Result is what the presentation layer receives after a command ran.
type Result struct {
	// Feedback is shown to the user.
	Feedback string

	// ShowHelp asks the presentation layer to display help.
	ShowHelp bool

	// Exit asks the presentation layer to terminate.
	Exit bool

	// View is the list to switch to, or ViewNone to keep the current one.
	View View

	// Committed is true when the command recorded a new undo step.
	Committed bool
}

func feedback(view View, format string, args ...any) *Result {
	return &Result{Feedback: fmt.Sprintf(format, args...), View: view}
}

// InputLog provides the command lines entered so far.
type InputLog interface {
	// Lines returns the entered lines, most recent first.
	Lines() []string
}

// ══════════════════════════════════════════════════════════════════════════════
// EXECUTOR
// ══════════════════════════════════════════════════════════════════════════════

// Executor applies commands to a model.
// A failed command leaves the model exactly as it was.
type Executor struct {
	model  *model.Model
	inputs InputLog
}

// NewExecutor creates an executor. inputs may be nil when the history command is not needed.
func NewExecutor(m *model.Model, inputs InputLog) *Executor {
	return &Executor{model: m, inputs: inputs}
}

// Execute runs cmd. State-changing commands commit exactly one undo step on success.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	switch c := cmd.(type) {
	// Persons
	case AddPerson:
		return e.addPerson(c)
	case EditPerson:
		return e.editPerson(c)
	case DeletePerson:
		return e.deletePerson(c)
	case FindPersons:
		return e.findPersons(c)
	case ListPersons:
		return e.listPersons()

	// CAP entries
	case AddCapEntry:
		return e.addCapEntry(c)
	case EditCapEntry:
		return e.editCapEntry(c)
	case DeleteCapEntry:
		return e.deleteCapEntry(c)
	case FindCapEntries:
		return e.findCapEntries(c)
	case ListCapEntries:
		return e.listCapEntries()

	// Homework
	case AddHomework:
		return e.addHomework(c)
	case EditHomework:
		return e.editHomework(c)
	case DeleteHomework:
		return e.deleteHomework(c)
	case FindHomework:
		return e.findHomework(c)
	case ListHomework:
		return e.listHomework()

	// Notes
	case AddNote:
		return e.addNote(c)
	case EditNote:
		return e.editNote(c)
	case DeleteNote:
		return e.deleteNote(c)
	case FindNotes:
		return e.findNotes(c)
	case ListNotes:
		return e.listNotes()

	// General
	case Clear:
		return e.clear()
	case Undo:
		return e.undo()
	case Redo:
		return e.redo()
	case History:
		return e.history()
	case Help:
		return &Result{Feedback: MessageHelp, ShowHelp: true}, nil
	case Exit:
		return &Result{Feedback: MessageExit, Exit: true}, nil
	}

	return nil, shared.NewDomainError("command", "Execute", shared.ErrUnknownCommand, MessageUnknownCommand)
}

// commit records the undo step for a successful mutation and marks the result.
func (e *Executor) commit(r *Result) (*Result, error) {
	e.model.Commit()
	r.Committed = true
	return r, nil
}

// at resolves a one-based index against the displayed list.
func at[T any](items []T, idx shared.Index, domain, message string) (T, error) {
	if !idx.InRange(len(items)) {
		var zero T
		return zero, shared.NewDomainError(domain, "Resolve", shared.ErrIndexOutOfBounds, message)
	}
	return items[idx.Zero()], nil
}

// duplicate rejects an add whose record is already stored.
func duplicate(domain, op, message string) error {
	return shared.NewDomainError(domain, op, shared.ErrDuplicate, message)
}
