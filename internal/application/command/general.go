package command

import (
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// GENERAL COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// Clear removes every record of every kind.
type Clear struct{}

// Undo restores the state before the last committed command.
type Undo struct{}

// Redo reapplies the last undone command.
type Redo struct{}

// History lists the entered command lines.
type History struct{}

// Help asks the presentation layer to show help.
type Help struct{}

// Exit asks the presentation layer to terminate.
type Exit struct{}

func (Clear) Word() string   { return WordClear }
func (Undo) Word() string    { return WordUndo }
func (Redo) Word() string    { return WordRedo }
func (History) Word() string { return WordHistory }
func (Help) Word() string    { return WordHelp }
func (Exit) Word() string    { return WordExit }

func (Clear) Mutates() bool   { return true }
func (Undo) Mutates() bool    { return true }
func (Redo) Mutates() bool    { return true }
func (History) Mutates() bool { return false }
func (Help) Mutates() bool    { return false }
func (Exit) Mutates() bool    { return false }

func (Clear) sealed()   {}
func (Undo) sealed()    {}
func (Redo) sealed()    {}
func (History) sealed() {}
func (Help) sealed()    {}
func (Exit) sealed()    {}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (e *Executor) clear() (*Result, error) {
	e.model.Store().Clear()
	e.model.ShowAll()
	return e.commit(&Result{Feedback: MessageClear})
}

// undo and redo move the history cursor; they never commit.
func (e *Executor) undo() (*Result, error) {
	if err := e.model.Undo(); err != nil {
		return nil, err
	}
	e.model.ShowAll()
	return &Result{Feedback: MessageUndo}, nil
}

func (e *Executor) redo() (*Result, error) {
	if err := e.model.Redo(); err != nil {
		return nil, err
	}
	e.model.ShowAll()
	return &Result{Feedback: MessageRedo}, nil
}

func (e *Executor) history() (*Result, error) {
	var lines []string
	if e.inputs != nil {
		lines = e.inputs.Lines()
	}
	if len(lines) == 0 {
		return &Result{Feedback: MessageNoHistory}, nil
	}
	return feedback(ViewNone, MessageHistory, strings.Join(lines, "\n")), nil
}
