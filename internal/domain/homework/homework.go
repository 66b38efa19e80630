// Package homework contains the homework manager's records.
package homework

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Name is the title of a homework item, e.g. "Lab 1".
type Name string

// NameConstraints is shown to the user when a homework name is rejected.
const NameConstraints = "Homework names should not be blank and be at most 100 characters long"

// MaxNameLength bounds the length of a homework name.
const MaxNameLength = 100

// NewName creates a new Name with validation.
func NewName(value string) (Name, error) {
	n := strings.TrimSpace(value)
	if n == "" || utf8.RuneCountInString(n) > MaxNameLength {
		return "", shared.NewDomainError("homework", "NewName", shared.ErrInvalidFormat, NameConstraints)
	}
	return Name(n), nil
}

// String returns the string representation.
func (n Name) String() string {
	return string(n)
}

// Priority ranks how urgent a homework item is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is used when none is given.
const DefaultPriority = PriorityMedium

// PriorityConstraints is shown to the user when a priority is rejected.
const PriorityConstraints = "Priority should be one of high, medium or low"

// NewPriority creates a new Priority with validation. Input is case-insensitive.
func NewPriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", shared.NewDomainError("homework", "NewPriority", shared.ErrInvalidFormat, PriorityConstraints)
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// ══════════════════════════════════════════════════════════════════════════════
// HOMEWORK
// ══════════════════════════════════════════════════════════════════════════════

// Homework is an immutable piece of coursework with a deadline.
type Homework struct {
	moduleCode shared.ModuleCode
	name       Name
	deadline   shared.Date
	priority   Priority
}

// New creates a Homework from validated fields. An empty priority becomes DefaultPriority.
func New(code shared.ModuleCode, name Name, deadline shared.Date, priority Priority) Homework {
	if priority == "" {
		priority = DefaultPriority
	}
	return Homework{
		moduleCode: code,
		name:       name,
		deadline:   deadline,
		priority:   priority,
	}
}

func (h Homework) ModuleCode() shared.ModuleCode { return h.moduleCode }
func (h Homework) Name() Name                    { return h.name }
func (h Homework) Deadline() shared.Date         { return h.deadline }
func (h Homework) Priority() Priority            { return h.priority }

// IdentityEquals compares every field; two homework items are the same only if nothing differs.
func (h Homework) IdentityEquals(other Homework) bool {
	return h.FullEquals(other)
}

// FullEquals compares every field.
func (h Homework) FullEquals(other Homework) bool {
	return h == other
}

// String renders the homework for feedback messages.
func (h Homework) String() string {
	return fmt.Sprintf("%s; %s; Deadline: %s; Priority: %s", h.moduleCode, h.name, h.deadline, h.priority)
}

// ModuleCodeContainsKeywords matches homework whose module code equals any keyword, ignoring case.
func ModuleCodeContainsKeywords(keywords []string) func(Homework) bool {
	return func(h Homework) bool {
		return shared.ContainsAnyWord(string(h.moduleCode), keywords)
	}
}
