package command

import (
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HOMEWORK COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddHomework adds a homework item.
type AddHomework struct {
	Homework homework.Homework
}

// HomeworkChanges holds the fields an edit overwrites. nil fields are left unchanged.
type HomeworkChanges struct {
	ModuleCode *shared.ModuleCode
	Name       *homework.Name
	Deadline   *shared.Date
	Priority   *homework.Priority
}

// IsAnyFieldEdited reports whether at least one field is set.
func (c HomeworkChanges) IsAnyFieldEdited() bool {
	return c.ModuleCode != nil || c.Name != nil || c.Deadline != nil || c.Priority != nil
}

// Apply returns h with the changes applied.
func (c HomeworkChanges) Apply(h homework.Homework) homework.Homework {
	code, name, deadline, priority := h.ModuleCode(), h.Name(), h.Deadline(), h.Priority()
	if c.ModuleCode != nil {
		code = *c.ModuleCode
	}
	if c.Name != nil {
		name = *c.Name
	}
	if c.Deadline != nil {
		deadline = *c.Deadline
	}
	if c.Priority != nil {
		priority = *c.Priority
	}
	return homework.New(code, name, deadline, priority)
}

// EditHomework overwrites fields of the displayed homework at Index.
type EditHomework struct {
	Index   shared.Index
	Changes HomeworkChanges
}

// DeleteHomework removes the displayed homework at Index.
type DeleteHomework struct {
	Index shared.Index
}

// FindHomework filters the homework list by module code.
type FindHomework struct {
	Keywords []string
}

// ListHomework shows every homework item.
type ListHomework struct{}

func (AddHomework) Word() string    { return WordAddHomework }
func (EditHomework) Word() string   { return WordEditHomework }
func (DeleteHomework) Word() string { return WordDeleteHomework }
func (FindHomework) Word() string   { return WordFindHomework }
func (ListHomework) Word() string   { return WordListHomework }

func (AddHomework) Mutates() bool    { return true }
func (EditHomework) Mutates() bool   { return true }
func (DeleteHomework) Mutates() bool { return true }
func (FindHomework) Mutates() bool   { return false }
func (ListHomework) Mutates() bool   { return false }

func (AddHomework) sealed()    {}
func (EditHomework) sealed()   {}
func (DeleteHomework) sealed() {}
func (FindHomework) sealed()   {}
func (ListHomework) sealed()   {}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (e *Executor) addHomework(c AddHomework) (*Result, error) {
	if e.model.Store().HasHomework(c.Homework) {
		return nil, duplicate("homework", "addHomework", MessageDuplicateHomework)
	}
	if err := e.model.Store().AddHomework(c.Homework); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewHomework, "New homework added: %s", c.Homework))
}

func (e *Executor) editHomework(c EditHomework) (*Result, error) {
	target, err := at(e.model.FilteredHomework(), c.Index, "homework", MessageInvalidHomeworkIndex)
	if err != nil {
		return nil, err
	}
	edited := c.Changes.Apply(target)
	if err := e.model.Store().SetHomework(target, edited); err != nil {
		return nil, err
	}
	e.model.UpdateHomeworkFilter(nil)
	return e.commit(feedback(ViewHomework, "Edited Homework: %s", edited))
}

func (e *Executor) deleteHomework(c DeleteHomework) (*Result, error) {
	target, err := at(e.model.FilteredHomework(), c.Index, "homework", MessageInvalidHomeworkIndex)
	if err != nil {
		return nil, err
	}
	if err := e.model.Store().DeleteHomework(target); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewHomework, "Deleted Homework: %s", target))
}

func (e *Executor) findHomework(c FindHomework) (*Result, error) {
	e.model.UpdateHomeworkFilter(homework.ModuleCodeContainsKeywords(c.Keywords))
	return feedback(ViewHomework, MessageHomeworkListed, len(e.model.FilteredHomework())), nil
}

func (e *Executor) listHomework() (*Result, error) {
	e.model.UpdateHomeworkFilter(nil)
	return feedback(ViewHomework, "Listed all homework"), nil
}
