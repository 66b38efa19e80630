package command

import (
	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CAP ENTRY COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddCapEntry adds a graded module.
type AddCapEntry struct {
	Entry capentry.Entry
}

// CapEntryChanges holds the fields an edit overwrites. nil fields are left unchanged.
type CapEntryChanges struct {
	ModuleCode *shared.ModuleCode
	Grade      *capentry.Grade
	Credits    *capentry.Credits
	Semester   *capentry.Semester
	Tags       *shared.Tags
}

// IsAnyFieldEdited reports whether at least one field is set.
func (c CapEntryChanges) IsAnyFieldEdited() bool {
	return c.ModuleCode != nil || c.Grade != nil || c.Credits != nil || c.Semester != nil || c.Tags != nil
}

// Apply returns entry with the changes applied.
func (c CapEntryChanges) Apply(entry capentry.Entry) capentry.Entry {
	code, grade, credits, semester, tags := entry.ModuleCode(), entry.Grade(), entry.Credits(), entry.Semester(), entry.Tags()
	if c.ModuleCode != nil {
		code = *c.ModuleCode
	}
	if c.Grade != nil {
		grade = *c.Grade
	}
	if c.Credits != nil {
		credits = *c.Credits
	}
	if c.Semester != nil {
		semester = *c.Semester
	}
	if c.Tags != nil {
		tags = *c.Tags
	}
	return capentry.NewEntry(code, grade, credits, semester, tags)
}

// EditCapEntry overwrites fields of the displayed CAP entry at Index.
type EditCapEntry struct {
	Index   shared.Index
	Changes CapEntryChanges
}

// DeleteCapEntry removes the displayed CAP entry at Index.
type DeleteCapEntry struct {
	Index shared.Index
}

// FindCapEntries filters the CAP list by module code.
type FindCapEntries struct {
	Keywords []string
}

// ListCapEntries shows every CAP entry.
type ListCapEntries struct{}

func (AddCapEntry) Word() string    { return WordAddCapEntry }
func (EditCapEntry) Word() string   { return WordEditCapEntry }
func (DeleteCapEntry) Word() string { return WordDeleteCapEntry }
func (FindCapEntries) Word() string { return WordFindCapEntry }
func (ListCapEntries) Word() string { return WordListCapEntry }

func (AddCapEntry) Mutates() bool    { return true }
func (EditCapEntry) Mutates() bool   { return true }
func (DeleteCapEntry) Mutates() bool { return true }
func (FindCapEntries) Mutates() bool { return false }
func (ListCapEntries) Mutates() bool { return false }

func (AddCapEntry) sealed()    {}
func (EditCapEntry) sealed()   {}
func (DeleteCapEntry) sealed() {}
func (FindCapEntries) sealed() {}
func (ListCapEntries) sealed() {}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (e *Executor) addCapEntry(c AddCapEntry) (*Result, error) {
	if e.model.Store().HasCapEntry(c.Entry) {
		return nil, duplicate("cap entry", "addCapEntry", MessageDuplicateCapEntry)
	}
	if err := e.model.Store().AddCapEntry(c.Entry); err != nil {
		return nil, err
	}
	return e.commit(e.withCAP(feedback(ViewCap, "New cap entry added: %s", c.Entry)))
}

func (e *Executor) editCapEntry(c EditCapEntry) (*Result, error) {
	target, err := at(e.model.FilteredCapEntries(), c.Index, "cap entry", MessageInvalidCapEntryIndex)
	if err != nil {
		return nil, err
	}
	edited := c.Changes.Apply(target)
	if err := e.model.Store().SetCapEntry(target, edited); err != nil {
		return nil, err
	}
	e.model.UpdateCapEntryFilter(nil)
	return e.commit(e.withCAP(feedback(ViewCap, "Edited Cap Entry: %s", edited)))
}

func (e *Executor) deleteCapEntry(c DeleteCapEntry) (*Result, error) {
	target, err := at(e.model.FilteredCapEntries(), c.Index, "cap entry", MessageInvalidCapEntryIndex)
	if err != nil {
		return nil, err
	}
	if err := e.model.Store().DeleteCapEntry(target); err != nil {
		return nil, err
	}
	return e.commit(e.withCAP(feedback(ViewCap, "Deleted Cap Entry: %s", target)))
}

func (e *Executor) findCapEntries(c FindCapEntries) (*Result, error) {
	e.model.UpdateCapEntryFilter(capentry.ModuleCodeContainsKeywords(c.Keywords))
	return e.withCAP(feedback(ViewCap, MessageCapEntriesListed, len(e.model.FilteredCapEntries()))), nil
}

func (e *Executor) listCapEntries() (*Result, error) {
	e.model.UpdateCapEntryFilter(nil)
	return e.withCAP(feedback(ViewCap, "Listed all cap entries")), nil
}

// withCAP appends the current CAP to the feedback. It is computed after the mutation.
func (e *Executor) withCAP(r *Result) *Result {
	r.Feedback += "\n" + e.model.CAP().String()
	return r
}
