// Package persistence stores UltiStudent records outside the process.
//
// Every backend reads and writes a whole store.Snapshot at once. The on-disk
// shape is Document, shared by the file, SQLite, PostgreSQL and Redis backends,
// so data can be moved between them by loading from one and saving to another.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/domain/unique"
)

// Storage loads and saves the full set of records.
//
// Load returns an error matching shared.ErrDataNotFound when nothing has been
// saved yet, shared.ErrDataMalformed when stored values cannot be decoded or
// fail validation, and shared.ErrDuplicateOnLoad when two records share an identity.
type Storage interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
}

// Closer is implemented by backends holding connections.
type Closer interface {
	Close() error
}

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT
// ══════════════════════════════════════════════════════════════════════════════

// Document is the serialised form of a snapshot.
type Document struct {
	Persons    []PersonRecord   `json:"persons" yaml:"persons"`
	CapEntries []CapEntryRecord `json:"capEntryList" yaml:"capEntryList"`
	Homework   []HomeworkRecord `json:"homeworkList" yaml:"homeworkList"`
	Notes      []NoteRecord     `json:"noteList" yaml:"noteList"`
}

// PersonRecord is the stored form of a person.
type PersonRecord struct {
	Name    string   `json:"name" yaml:"name"`
	Phone   string   `json:"phone" yaml:"phone"`
	Email   string   `json:"email" yaml:"email"`
	Address string   `json:"address" yaml:"address"`
	Tagged  []string `json:"tagged" yaml:"tagged"`
}

// CapEntryRecord is the stored form of a CAP entry.
type CapEntryRecord struct {
	ModuleCode string   `json:"moduleCode" yaml:"moduleCode"`
	Grade      string   `json:"grade" yaml:"grade"`
	Credits    string   `json:"credits" yaml:"credits"`
	Semester   string   `json:"semester" yaml:"semester"`
	Tagged     []string `json:"tagged" yaml:"tagged"`
}

// HomeworkRecord is the stored form of a homework item.
type HomeworkRecord struct {
	ModuleCode string `json:"moduleCode" yaml:"moduleCode"`
	Name       string `json:"homeworkName" yaml:"homeworkName"`
	Deadline   string `json:"deadline" yaml:"deadline"`
	Priority   string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// NoteRecord is the stored form of a note.
type NoteRecord struct {
	ModuleCode string `json:"moduleCode" yaml:"moduleCode"`
	Content    string `json:"content" yaml:"content"`
}

// FromSnapshot converts records into their stored form.
// Slices are never nil so an empty store encodes as empty lists.
func FromSnapshot(snap store.Snapshot) Document {
	doc := Document{
		Persons:    make([]PersonRecord, 0, len(snap.Persons)),
		CapEntries: make([]CapEntryRecord, 0, len(snap.CapEntries)),
		Homework:   make([]HomeworkRecord, 0, len(snap.Homework)),
		Notes:      make([]NoteRecord, 0, len(snap.Notes)),
	}
	for _, p := range snap.Persons {
		doc.Persons = append(doc.Persons, PersonRecord{
			Name:    string(p.Name()),
			Phone:   string(p.Phone()),
			Email:   string(p.Email()),
			Address: string(p.Address()),
			Tagged:  p.Tags().Strings(),
		})
	}
	for _, e := range snap.CapEntries {
		doc.CapEntries = append(doc.CapEntries, CapEntryRecord{
			ModuleCode: e.ModuleCode().String(),
			Grade:      e.Grade().String(),
			Credits:    e.Credits().String(),
			Semester:   e.Semester().String(),
			Tagged:     e.Tags().Strings(),
		})
	}
	for _, h := range snap.Homework {
		doc.Homework = append(doc.Homework, HomeworkRecord{
			ModuleCode: h.ModuleCode().String(),
			Name:       h.Name().String(),
			Deadline:   h.Deadline().String(),
			Priority:   h.Priority().String(),
		})
	}
	for _, n := range snap.Notes {
		doc.Notes = append(doc.Notes, NoteRecord{
			ModuleCode: n.ModuleCode().String(),
			Content:    n.Content().String(),
		})
	}
	return doc
}

// Snapshot validates every record and rebuilds the snapshot.
func (d Document) Snapshot() (store.Snapshot, error) {
	var snap store.Snapshot

	for _, r := range d.Persons {
		p, err := r.toPerson()
		if err != nil {
			return store.Snapshot{}, err
		}
		snap.Persons = append(snap.Persons, p)
	}
	for _, r := range d.CapEntries {
		e, err := r.toEntry()
		if err != nil {
			return store.Snapshot{}, err
		}
		snap.CapEntries = append(snap.CapEntries, e)
	}
	for _, r := range d.Homework {
		h, err := r.toHomework()
		if err != nil {
			return store.Snapshot{}, err
		}
		snap.Homework = append(snap.Homework, h)
	}
	for _, r := range d.Notes {
		n, err := r.toNote()
		if err != nil {
			return store.Snapshot{}, err
		}
		snap.Notes = append(snap.Notes, n)
	}

	if err := checkUnique(snap); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

// Duplicate messages shown when stored data repeats an identity.
const (
	MessageDuplicatePerson   = "Persons list contains duplicate person(s)."
	MessageDuplicateCapEntry = "Cap Entry list contains duplicate cap entry(s)."
	MessageDuplicateHomework = "Homework list contains duplicate homework."
	MessageDuplicateNote     = "Note list contains duplicate note(s)."
)

func checkUnique(snap store.Snapshot) error {
	var msg string
	switch {
	case !unique.AreUnique(snap.Persons):
		msg = MessageDuplicatePerson
	case !unique.AreUnique(snap.CapEntries):
		msg = MessageDuplicateCapEntry
	case !unique.AreUnique(snap.Homework):
		msg = MessageDuplicateHomework
	case !unique.AreUnique(snap.Notes):
		msg = MessageDuplicateNote
	default:
		return nil
	}
	return shared.NewDomainError("storage", "Load", shared.ErrDuplicateOnLoad, msg)
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD CONVERSION
// ══════════════════════════════════════════════════════════════════════════════

// MissingFieldFormat is used when a stored record lacks a required field.
const MissingFieldFormat = "%s's %s field is missing!"

func missing(kind, name string) error {
	return shared.NewDomainError("storage", "Load", shared.ErrDataMalformed, fmt.Sprintf(MissingFieldFormat, kind, name))
}

func malformed(err error) error {
	return shared.WrapError("storage", "Load", shared.ErrDataMalformed, shared.Feedback(err), err)
}

// field validates one stored value with its constructor.
func field[T any](raw, kind, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	if raw == "" {
		return zero, missing(kind, name)
	}
	v, err := parse(raw)
	if err != nil {
		return zero, malformed(err)
	}
	return v, nil
}

func (r PersonRecord) toPerson() (person.Person, error) {
	name, err := field(r.Name, "Person", "Name", person.NewName)
	if err != nil {
		return person.Person{}, err
	}
	phone, err := field(r.Phone, "Person", "Phone", person.NewPhone)
	if err != nil {
		return person.Person{}, err
	}
	email, err := field(r.Email, "Person", "Email", person.NewEmail)
	if err != nil {
		return person.Person{}, err
	}
	address, err := field(r.Address, "Person", "Address", person.NewAddress)
	if err != nil {
		return person.Person{}, err
	}
	tags, err := shared.NewTags(r.Tagged)
	if err != nil {
		return person.Person{}, malformed(err)
	}
	return person.New(name, phone, email, address, tags), nil
}

func (r CapEntryRecord) toEntry() (capentry.Entry, error) {
	code, err := field(r.ModuleCode, "CapEntry", "ModuleCode", shared.NewModuleCode)
	if err != nil {
		return capentry.Entry{}, err
	}
	grade, err := field(r.Grade, "CapEntry", "Grade", capentry.NewGrade)
	if err != nil {
		return capentry.Entry{}, err
	}
	credits, err := field(r.Credits, "CapEntry", "Credits", capentry.NewCredits)
	if err != nil {
		return capentry.Entry{}, err
	}
	semester, err := field(r.Semester, "CapEntry", "Semester", capentry.NewSemester)
	if err != nil {
		return capentry.Entry{}, err
	}
	tags, err := shared.NewTags(r.Tagged)
	if err != nil {
		return capentry.Entry{}, malformed(err)
	}
	return capentry.NewEntry(code, grade, credits, semester, tags), nil
}

func (r HomeworkRecord) toHomework() (homework.Homework, error) {
	code, err := field(r.ModuleCode, "Homework", "ModuleCode", shared.NewModuleCode)
	if err != nil {
		return homework.Homework{}, err
	}
	name, err := field(r.Name, "Homework", "Name", homework.NewName)
	if err != nil {
		return homework.Homework{}, err
	}
	deadline, err := field(r.Deadline, "Homework", "Deadline", shared.NewDate)
	if err != nil {
		return homework.Homework{}, err
	}
	priority := homework.DefaultPriority
	if r.Priority != "" {
		if priority, err = homework.NewPriority(r.Priority); err != nil {
			return homework.Homework{}, malformed(err)
		}
	}
	return homework.New(code, name, deadline, priority), nil
}

func (r NoteRecord) toNote() (note.Note, error) {
	code, err := field(r.ModuleCode, "Note", "ModuleCode", shared.NewModuleCode)
	if err != nil {
		return note.Note{}, err
	}
	content, err := field(r.Content, "Note", "Content", note.NewContent)
	if err != nil {
		return note.Note{}, err
	}
	return note.New(code, content), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DIGEST
// ══════════════════════════════════════════════════════════════════════════════

// Digest is a content hash of a snapshot.
type Digest [blake2b.Size256]byte

// DigestOf hashes the canonical JSON encoding of snap.
// Two snapshots with equal records in equal order have equal digests.
func DigestOf(snap store.Snapshot) (Digest, error) {
	data, err := json.Marshal(FromSnapshot(snap))
	if err != nil {
		return Digest{}, fmt.Errorf("persistence: encode for digest: %w", err)
	}
	return blake2b.Sum256(data), nil
}
