// Package note contains the notes manager's records.
package note

import (
	"regexp"
	"strings"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// Content is the body of a note.
type Content string

// ContentConstraints is shown to the user when content is rejected.
const ContentConstraints = "Content should only contain alphanumeric characters and spaces, and it should not be blank"

// First character must not be whitespace, otherwise " " would be valid.
var contentRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

// NewContent creates a new Content with validation.
func NewContent(value string) (Content, error) {
	c := strings.TrimSpace(value)
	if !contentRegex.MatchString(c) {
		return "", shared.NewDomainError("note", "NewContent", shared.ErrInvalidFormat, ContentConstraints)
	}
	return Content(c), nil
}

// String returns the string representation.
func (c Content) String() string {
	return string(c)
}

// Note is an immutable note attached to a module.
type Note struct {
	moduleCode shared.ModuleCode
	content    Content
}

// New creates a Note from validated fields.
func New(code shared.ModuleCode, content Content) Note {
	return Note{moduleCode: code, content: content}
}

// ModuleCode returns the module the note belongs to.
func (n Note) ModuleCode() shared.ModuleCode { return n.moduleCode }

// Content returns the note body.
func (n Note) Content() Content { return n.content }

// IdentityEquals reports whether both notes have the same content.
func (n Note) IdentityEquals(other Note) bool {
	return n.content == other.content
}

// FullEquals compares every field.
func (n Note) FullEquals(other Note) bool {
	return n == other
}

// String renders the note for feedback messages.
func (n Note) String() string {
	return string(n.moduleCode) + ": " + string(n.content)
}

// MatchesKeywords matches notes whose module code or content contains any keyword as a whole word.
func MatchesKeywords(keywords []string) func(Note) bool {
	return func(n Note) bool {
		return shared.ContainsAnyWord(string(n.moduleCode), keywords) ||
			shared.ContainsAnyWord(string(n.content), keywords)
	}
}
