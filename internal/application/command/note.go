package command

import (
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddNote adds a note.
type AddNote struct {
	Note note.Note
}

// NoteChanges holds the fields an edit overwrites. nil fields are left unchanged.
type NoteChanges struct {
	ModuleCode *shared.ModuleCode
	Content    *note.Content
}

// IsAnyFieldEdited reports whether at least one field is set.
func (c NoteChanges) IsAnyFieldEdited() bool {
	return c.ModuleCode != nil || c.Content != nil
}

// Apply returns n with the changes applied.
func (c NoteChanges) Apply(n note.Note) note.Note {
	code, content := n.ModuleCode(), n.Content()
	if c.ModuleCode != nil {
		code = *c.ModuleCode
	}
	if c.Content != nil {
		content = *c.Content
	}
	return note.New(code, content)
}

// EditNote overwrites fields of the displayed note at Index.
type EditNote struct {
	Index   shared.Index
	Changes NoteChanges
}

// DeleteNote removes the displayed note at Index.
type DeleteNote struct {
	Index shared.Index
}

// FindNotes filters the note list by module code or content words.
type FindNotes struct {
	Keywords []string
}

// ListNotes shows every note.
type ListNotes struct{}

func (AddNote) Word() string    { return WordAddNote }
func (EditNote) Word() string   { return WordEditNote }
func (DeleteNote) Word() string { return WordDeleteNote }
func (FindNotes) Word() string  { return WordFindNote }
func (ListNotes) Word() string  { return WordListNote }

func (AddNote) Mutates() bool    { return true }
func (EditNote) Mutates() bool   { return true }
func (DeleteNote) Mutates() bool { return true }
func (FindNotes) Mutates() bool  { return false }
func (ListNotes) Mutates() bool  { return false }

func (AddNote) sealed()    {}
func (EditNote) sealed()   {}
func (DeleteNote) sealed() {}
func (FindNotes) sealed()  {}
func (ListNotes) sealed()  {}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (e *Executor) addNote(c AddNote) (*Result, error) {
	if e.model.Store().HasNote(c.Note) {
		return nil, duplicate("note", "addNote", MessageDuplicateNote)
	}
	if err := e.model.Store().AddNote(c.Note); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewNotes, "New note added: %s", c.Note))
}

func (e *Executor) editNote(c EditNote) (*Result, error) {
	target, err := at(e.model.FilteredNotes(), c.Index, "note", MessageInvalidNoteIndex)
	if err != nil {
		return nil, err
	}
	edited := c.Changes.Apply(target)
	if err := e.model.Store().SetNote(target, edited); err != nil {
		return nil, err
	}
	e.model.UpdateNoteFilter(nil)
	return e.commit(feedback(ViewNotes, "Edited Note: %s", edited))
}

func (e *Executor) deleteNote(c DeleteNote) (*Result, error) {
	target, err := at(e.model.FilteredNotes(), c.Index, "note", MessageInvalidNoteIndex)
	if err != nil {
		return nil, err
	}
	if err := e.model.Store().DeleteNote(target); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewNotes, "Deleted Note: %s", target))
}

func (e *Executor) findNotes(c FindNotes) (*Result, error) {
	e.model.UpdateNoteFilter(note.MatchesKeywords(c.Keywords))
	return feedback(ViewNotes, MessageNotesListed, len(e.model.FilteredNotes())), nil
}

func (e *Executor) listNotes() (*Result, error) {
	e.model.UpdateNoteFilter(nil)
	return feedback(ViewNotes, "Listed all notes"), nil
}
