package command

import (
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddPerson adds a contact.
type AddPerson struct {
	Person person.Person
}

// PersonChanges holds the fields an edit overwrites. nil fields are left unchanged.
// A non-nil empty Tags clears all tags.
type PersonChanges struct {
	Name    *person.Name
	Phone   *person.Phone
	Email   *person.Email
	Address *person.Address
	Tags    *shared.Tags
}

// IsAnyFieldEdited reports whether at least one field is set.
func (c PersonChanges) IsAnyFieldEdited() bool {
	return c.Name != nil || c.Phone != nil || c.Email != nil || c.Address != nil || c.Tags != nil
}

// Apply returns p with the changes applied.
func (c PersonChanges) Apply(p person.Person) person.Person {
	name, phone, email, address, tags := p.Name(), p.Phone(), p.Email(), p.Address(), p.Tags()
	if c.Name != nil {
		name = *c.Name
	}
	if c.Phone != nil {
		phone = *c.Phone
	}
	if c.Email != nil {
		email = *c.Email
	}
	if c.Address != nil {
		address = *c.Address
	}
	if c.Tags != nil {
		tags = *c.Tags
	}
	return person.New(name, phone, email, address, tags)
}

// EditPerson overwrites fields of the displayed person at Index.
type EditPerson struct {
	Index   shared.Index
	Changes PersonChanges
}

// DeletePerson removes the displayed person at Index.
type DeletePerson struct {
	Index shared.Index
}

// FindPersons filters the person list by name keywords.
type FindPersons struct {
	Keywords []string
}

// ListPersons shows every person.
type ListPersons struct{}

func (AddPerson) Word() string    { return WordAdd }
func (EditPerson) Word() string   { return WordEdit }
func (DeletePerson) Word() string { return WordDelete }
func (FindPersons) Word() string  { return WordFind }
func (ListPersons) Word() string  { return WordList }

func (AddPerson) Mutates() bool    { return true }
func (EditPerson) Mutates() bool   { return true }
func (DeletePerson) Mutates() bool { return true }
func (FindPersons) Mutates() bool  { return false }
func (ListPersons) Mutates() bool  { return false }

func (AddPerson) sealed()    {}
func (EditPerson) sealed()   {}
func (DeletePerson) sealed() {}
func (FindPersons) sealed()  {}
func (ListPersons) sealed()  {}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (e *Executor) addPerson(c AddPerson) (*Result, error) {
	if e.model.Store().HasPerson(c.Person) {
		return nil, duplicate("person", "add", MessageDuplicatePerson)
	}
	if err := e.model.Store().AddPerson(c.Person); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewPersons, "New person added: %s", c.Person))
}

func (e *Executor) editPerson(c EditPerson) (*Result, error) {
	target, err := at(e.model.FilteredPersons(), c.Index, "person", MessageInvalidPersonIndex)
	if err != nil {
		return nil, err
	}
	edited := c.Changes.Apply(target)
	if err := e.model.Store().SetPerson(target, edited); err != nil {
		return nil, err
	}
	e.model.UpdatePersonFilter(nil)
	return e.commit(feedback(ViewPersons, "Edited Person: %s", edited))
}

func (e *Executor) deletePerson(c DeletePerson) (*Result, error) {
	target, err := at(e.model.FilteredPersons(), c.Index, "person", MessageInvalidPersonIndex)
	if err != nil {
		return nil, err
	}
	if err := e.model.Store().DeletePerson(target); err != nil {
		return nil, err
	}
	return e.commit(feedback(ViewPersons, "Deleted Person: %s", target))
}

func (e *Executor) findPersons(c FindPersons) (*Result, error) {
	e.model.UpdatePersonFilter(person.NameContainsKeywords(c.Keywords))
	return feedback(ViewPersons, MessagePersonsListed, len(e.model.FilteredPersons())), nil
}

func (e *Executor) listPersons() (*Result, error) {
	e.model.UpdatePersonFilter(nil)
	return feedback(ViewPersons, "Listed all persons"), nil
}
