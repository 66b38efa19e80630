// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. It has no third-party dependencies.
package shared

import (
	"errors"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	// Collection errors
	ErrDuplicate        = errors.New("duplicate entity")
	ErrNotFound         = errors.New("entity not found")
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// Parse errors
	ErrInvalidFormat  = errors.New("invalid format")
	ErrNothingToEdit  = errors.New("nothing to edit")
	ErrUnknownCommand = errors.New("unknown command")

	// History errors
	ErrNoUndo = errors.New("no more commands to undo")
	ErrNoRedo = errors.New("no more commands to redo")

	// Persistence errors
	ErrDataNotFound    = errors.New("data not found")
	ErrDataMalformed   = errors.New("data malformed")
	ErrDuplicateOnLoad = errors.New("duplicate entity in stored data")
	ErrStorage         = errors.New("storage failure")
)

// DomainError carries where a failure happened and what kind it is.
// Message is always fit to be shown to the user as feedback.
type DomainError struct {
	Domain  string // "cap", "parser", "history", ...
	Op      string // e.g. "Add", "editCapEntry"
	Kind    error  // one of the Err* sentinels above
	Message string
	Err     error // cause, if any
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Domain)
	b.WriteByte('.')
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DomainError) Unwrap() []error {
	errs := make([]error, 0, 2)
	for _, err := range []error{e.Kind, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// NewDomainError builds an error of the given kind with no cause.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message}
}

// WrapError is NewDomainError with a cause attached.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	de := NewDomainError(domain, op, kind, message)
	de.Err = err
	return de
}

// Feedback returns the user-facing text for err.
// Domain errors yield their Message; anything else yields err.Error().
func Feedback(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// IsParseError checks if the error came from command parsing.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrNothingToEdit) ||
		errors.Is(err, ErrUnknownCommand)
}

// IsLoadError checks if the error came from reading persisted data.
func IsLoadError(err error) bool {
	return errors.Is(err, ErrDataNotFound) ||
		errors.Is(err, ErrDataMalformed) ||
		errors.Is(err, ErrDuplicateOnLoad)
}
