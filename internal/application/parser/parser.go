// Package parser turns a line of user input into a typed command.
//
// Parsing never touches the model. Every failure is a *shared.DomainError whose
// message can be shown to the user as is.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ultistudent/ultistudent/internal/application/command"
	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

var commandFormat = regexp.MustCompile(`(?s)^\s*(\S+)(.*)$`)

type parseFunc func(args string) (command.Command, error)

var table map[string]parseFunc

func init() {
	table = map[string]parseFunc{
		command.WordAdd:    parseAddPerson,
		command.WordEdit:   parseEditPerson,
		command.WordDelete: deleteParser(command.WordDelete, func(i shared.Index) command.Command { return command.DeletePerson{Index: i} }),
		command.WordFind:   findParser(command.WordFind, func(k []string) command.Command { return command.FindPersons{Keywords: k} }),
		command.WordList:   fixed(command.ListPersons{}),

		command.WordAddCapEntry:    parseAddCapEntry,
		command.WordEditCapEntry:   parseEditCapEntry,
		command.WordDeleteCapEntry: deleteParser(command.WordDeleteCapEntry, func(i shared.Index) command.Command { return command.DeleteCapEntry{Index: i} }),
		command.WordFindCapEntry:   findParser(command.WordFindCapEntry, func(k []string) command.Command { return command.FindCapEntries{Keywords: k} }),
		command.WordListCapEntry:   fixed(command.ListCapEntries{}),

		command.WordAddHomework:    parseAddHomework,
		command.WordEditHomework:   parseEditHomework,
		command.WordDeleteHomework: deleteParser(command.WordDeleteHomework, func(i shared.Index) command.Command { return command.DeleteHomework{Index: i} }),
		command.WordFindHomework:   findParser(command.WordFindHomework, func(k []string) command.Command { return command.FindHomework{Keywords: k} }),
		command.WordListHomework:   fixed(command.ListHomework{}),

		command.WordAddNote:    parseAddNote,
		command.WordEditNote:   parseEditNote,
		command.WordDeleteNote: deleteParser(command.WordDeleteNote, func(i shared.Index) command.Command { return command.DeleteNote{Index: i} }),
		command.WordFindNote:   findParser(command.WordFindNote, func(k []string) command.Command { return command.FindNotes{Keywords: k} }),
		command.WordListNote:   fixed(command.ListNotes{}),

		command.WordClear:   fixed(command.Clear{}),
		command.WordUndo:    fixed(command.Undo{}),
		command.WordRedo:    fixed(command.Redo{}),
		command.WordHistory: fixed(command.History{}),
		command.WordHelp:    fixed(command.Help{}),
		command.WordExit:    fixed(command.Exit{}),
	}
}

// Parse parses one line of input.
func Parse(input string) (command.Command, error) {
	m := commandFormat.FindStringSubmatch(input)
	if m == nil {
		return nil, invalidFormat(command.WordHelp)
	}
	word, args := m[1], m[2]

	parse, ok := table[word]
	if !ok {
		return nil, shared.NewDomainError("parser", "Parse", shared.ErrUnknownCommand, command.MessageUnknownCommand)
	}
	return parse(args)
}

// Words returns every known command word.
func Words() []string {
	words := make([]string, 0, len(table))
	for w := range table {
		words = append(words, w)
	}
	return words
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

func invalidFormat(word string) error {
	return shared.NewDomainError("parser", word, shared.ErrInvalidFormat,
		fmt.Sprintf(command.MessageInvalidCommandFormat, command.Usage[word]))
}

// invalidValue reports a value rejected by its constructor together with the usage text.
func invalidValue(word string, err error) error {
	return shared.WrapError("parser", word, shared.ErrInvalidFormat,
		shared.Feedback(err)+"\n"+command.Usage[word], err)
}

func nothingToEdit(word string) error {
	return shared.NewDomainError("parser", word, shared.ErrNothingToEdit, command.MessageNotEdited)
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// required converts a mandatory value.
func required[T any](word string, args *Arguments, p Prefix, ctor func(string) (T, error)) (T, error) {
	raw, _ := args.Value(p)
	v, err := ctor(raw)
	if err != nil {
		var zero T
		return zero, invalidValue(word, err)
	}
	return v, nil
}

// optional converts a value if its prefix was given; it returns nil otherwise.
func optional[T any](word string, args *Arguments, p Prefix, ctor func(string) (T, error)) (*T, error) {
	if !args.Has(p) {
		return nil, nil
	}
	v, err := required(word, args, p, ctor)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func tags(word string, args *Arguments) (shared.Tags, error) {
	t, err := shared.NewTags(args.AllValues(PrefixTag))
	if err != nil {
		return nil, invalidValue(word, err)
	}
	return t, nil
}

// tagsForEdit returns nil when no t/ was given and an empty set for a single empty t/.
func tagsForEdit(word string, args *Arguments) (*shared.Tags, error) {
	values := args.AllValues(PrefixTag)
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) == 1 && values[0] == "" {
		return &shared.Tags{}, nil
	}
	t, err := tags(word, args)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func index(word, raw string) (shared.Index, error) {
	idx, err := shared.ParseIndex(raw)
	if err != nil {
		return 0, invalidFormat(word)
	}
	return idx, nil
}

func deleteParser(word string, build func(shared.Index) command.Command) parseFunc {
	return func(args string) (command.Command, error) {
		idx, err := index(word, args)
		if err != nil {
			return nil, err
		}
		return build(idx), nil
	}
}

func findParser(word string, build func([]string) command.Command) parseFunc {
	return func(args string) (command.Command, error) {
		keywords := strings.Fields(args)
		if len(keywords) == 0 {
			return nil, invalidFormat(word)
		}
		return build(keywords), nil
	}
}

// fixed parses commands that take no arguments. Trailing text is ignored.
func fixed(c command.Command) parseFunc {
	return func(string) (command.Command, error) {
		return c, nil
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSONS
// ══════════════════════════════════════════════════════════════════════════════

func parseAddPerson(raw string) (command.Command, error) {
	const word = command.WordAdd
	args := Tokenize(raw, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	if !args.Has(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress) || args.Preamble() != "" {
		return nil, invalidFormat(word)
	}

	name, err := required(word, args, PrefixName, person.NewName)
	if err != nil {
		return nil, err
	}
	phone, err := required(word, args, PrefixPhone, person.NewPhone)
	if err != nil {
		return nil, err
	}
	email, err := required(word, args, PrefixEmail, person.NewEmail)
	if err != nil {
		return nil, err
	}
	address, err := required(word, args, PrefixAddress, person.NewAddress)
	if err != nil {
		return nil, err
	}
	t, err := tags(word, args)
	if err != nil {
		return nil, err
	}

	return command.AddPerson{Person: person.New(name, phone, email, address, t)}, nil
}

func parseEditPerson(raw string) (command.Command, error) {
	const word = command.WordEdit
	args := Tokenize(raw, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	idx, err := index(word, args.Preamble())
	if err != nil {
		return nil, err
	}

	var c command.PersonChanges
	if c.Name, err = optional(word, args, PrefixName, person.NewName); err != nil {
		return nil, err
	}
	if c.Phone, err = optional(word, args, PrefixPhone, person.NewPhone); err != nil {
		return nil, err
	}
	if c.Email, err = optional(word, args, PrefixEmail, person.NewEmail); err != nil {
		return nil, err
	}
	if c.Address, err = optional(word, args, PrefixAddress, person.NewAddress); err != nil {
		return nil, err
	}
	if c.Tags, err = tagsForEdit(word, args); err != nil {
		return nil, err
	}
	if !c.IsAnyFieldEdited() {
		return nil, nothingToEdit(word)
	}

	return command.EditPerson{Index: idx, Changes: c}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CAP ENTRIES
// ══════════════════════════════════════════════════════════════════════════════

func parseAddCapEntry(raw string) (command.Command, error) {
	const word = command.WordAddCapEntry
	args := Tokenize(raw, PrefixModuleCode, PrefixGrade, PrefixCredits, PrefixSemester, PrefixTag)
	if !args.Has(PrefixModuleCode, PrefixGrade, PrefixCredits, PrefixSemester) || args.Preamble() != "" {
		return nil, invalidFormat(word)
	}

	code, err := required(word, args, PrefixModuleCode, shared.NewModuleCode)
	if err != nil {
		return nil, err
	}
	grade, err := required(word, args, PrefixGrade, capentry.NewGrade)
	if err != nil {
		return nil, err
	}
	credits, err := required(word, args, PrefixCredits, capentry.NewCredits)
	if err != nil {
		return nil, err
	}
	semester, err := required(word, args, PrefixSemester, capentry.NewSemester)
	if err != nil {
		return nil, err
	}
	t, err := tags(word, args)
	if err != nil {
		return nil, err
	}

	return command.AddCapEntry{Entry: capentry.NewEntry(code, grade, credits, semester, t)}, nil
}

func parseEditCapEntry(raw string) (command.Command, error) {
	const word = command.WordEditCapEntry
	args := Tokenize(raw, PrefixModuleCode, PrefixGrade, PrefixCredits, PrefixSemester, PrefixTag)
	idx, err := index(word, args.Preamble())
	if err != nil {
		return nil, err
	}

	var c command.CapEntryChanges
	if c.ModuleCode, err = optional(word, args, PrefixModuleCode, shared.NewModuleCode); err != nil {
		return nil, err
	}
	if c.Grade, err = optional(word, args, PrefixGrade, capentry.NewGrade); err != nil {
		return nil, err
	}
	if c.Credits, err = optional(word, args, PrefixCredits, capentry.NewCredits); err != nil {
		return nil, err
	}
	if c.Semester, err = optional(word, args, PrefixSemester, capentry.NewSemester); err != nil {
		return nil, err
	}
	if c.Tags, err = tagsForEdit(word, args); err != nil {
		return nil, err
	}
	if !c.IsAnyFieldEdited() {
		return nil, nothingToEdit(word)
	}

	return command.EditCapEntry{Index: idx, Changes: c}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HOMEWORK
// ══════════════════════════════════════════════════════════════════════════════

func parseAddHomework(raw string) (command.Command, error) {
	const word = command.WordAddHomework
	args := Tokenize(raw, PrefixHomework, PrefixModuleCode, PrefixDeadline, PrefixPriority)
	if !args.Has(PrefixHomework, PrefixModuleCode, PrefixDeadline) || args.Preamble() != "" {
		return nil, invalidFormat(word)
	}

	name, err := required(word, args, PrefixHomework, homework.NewName)
	if err != nil {
		return nil, err
	}
	code, err := required(word, args, PrefixModuleCode, shared.NewModuleCode)
	if err != nil {
		return nil, err
	}
	deadline, err := required(word, args, PrefixDeadline, shared.NewDate)
	if err != nil {
		return nil, err
	}
	priority := homework.DefaultPriority
	if p, err := optional(word, args, PrefixPriority, homework.NewPriority); err != nil {
		return nil, err
	} else if p != nil {
		priority = *p
	}

	return command.AddHomework{Homework: homework.New(code, name, deadline, priority)}, nil
}

func parseEditHomework(raw string) (command.Command, error) {
	const word = command.WordEditHomework
	args := Tokenize(raw, PrefixHomework, PrefixModuleCode, PrefixDeadline, PrefixPriority)
	idx, err := index(word, args.Preamble())
	if err != nil {
		return nil, err
	}

	var c command.HomeworkChanges
	if c.Name, err = optional(word, args, PrefixHomework, homework.NewName); err != nil {
		return nil, err
	}
	if c.ModuleCode, err = optional(word, args, PrefixModuleCode, shared.NewModuleCode); err != nil {
		return nil, err
	}
	if c.Deadline, err = optional(word, args, PrefixDeadline, shared.NewDate); err != nil {
		return nil, err
	}
	if c.Priority, err = optional(word, args, PrefixPriority, homework.NewPriority); err != nil {
		return nil, err
	}
	if !c.IsAnyFieldEdited() {
		return nil, nothingToEdit(word)
	}

	return command.EditHomework{Index: idx, Changes: c}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// NOTES
// ══════════════════════════════════════════════════════════════════════════════

func parseAddNote(raw string) (command.Command, error) {
	const word = command.WordAddNote
	args := Tokenize(raw, PrefixModuleCode, PrefixContent)
	if !args.Has(PrefixModuleCode, PrefixContent) || args.Preamble() != "" {
		return nil, invalidFormat(word)
	}

	code, err := required(word, args, PrefixModuleCode, shared.NewModuleCode)
	if err != nil {
		return nil, err
	}
	content, err := required(word, args, PrefixContent, note.NewContent)
	if err != nil {
		return nil, err
	}

	return command.AddNote{Note: note.New(code, content)}, nil
}

func parseEditNote(raw string) (command.Command, error) {
	const word = command.WordEditNote
	args := Tokenize(raw, PrefixModuleCode, PrefixContent)
	idx, err := index(word, args.Preamble())
	if err != nil {
		return nil, err
	}

	var c command.NoteChanges
	if c.ModuleCode, err = optional(word, args, PrefixModuleCode, shared.NewModuleCode); err != nil {
		return nil, err
	}
	if c.Content, err = optional(word, args, PrefixContent, note.NewContent); err != nil {
		return nil, err
	}
	if !c.IsAnyFieldEdited() {
		return nil, nothingToEdit(word)
	}

	return command.EditNote{Index: idx, Changes: c}, nil
}
