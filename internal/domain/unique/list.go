// Package unique provides an ordered collection that rejects identity duplicates.
//
// Adding and replacing use the element's identity predicate so that no two
// elements ever describe the same real-world thing. Removing and locating the
// replace target use full equality so that exactly the displayed element is affected.
package unique

import (
	"github.com/ultistudent/ultistudent/internal/domain/shared"
)

// Entity is implemented by every record kind kept in a List.
type Entity[T any] interface {
	// IdentityEquals is the weaker "same thing" predicate used for duplicate detection.
	IdentityEquals(other T) bool
	// FullEquals compares every field.
	FullEquals(other T) bool
}

// List is an insertion-ordered collection with unique identities.
// The zero value is not usable; create one with New.
type List[T Entity[T]] struct {
	kind  string
	items []T
}

// New creates an empty list. kind names the record type in error messages, e.g. "cap entry".
func New[T Entity[T]](kind string) *List[T] {
	return &List[T]{kind: kind, items: make([]T, 0)}
}

// Contains reports whether an element with the same identity as e is stored.
func (l *List[T]) Contains(e T) bool {
	for _, x := range l.items {
		if x.IdentityEquals(e) {
			return true
		}
	}
	return false
}

// Add appends e.
func (l *List[T]) Add(e T) error {
	if l.Contains(e) {
		return l.duplicate("Add")
	}
	l.items = append(l.items, e)
	return nil
}

// Replace swaps target for edited, keeping its position.
func (l *List[T]) Replace(target, edited T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return l.notFound("Replace")
	}
	if !target.IdentityEquals(edited) && l.Contains(edited) {
		return l.duplicate("Replace")
	}
	l.items[idx] = edited
	return nil
}

// Remove deletes the element fully equal to target.
func (l *List[T]) Remove(target T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return l.notFound("Remove")
	}
	l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
	return nil
}

// SetAll replaces the whole content. Nothing changes if items holds duplicates.
func (l *List[T]) SetAll(items []T) error {
	if !AreUnique(items) {
		return l.duplicate("SetAll")
	}
	next := make([]T, len(items))
	copy(next, items)
	l.items = next
	return nil
}

// Items returns a copy of the elements in order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the element at zero-based position i.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Equal reports whether both lists hold fully equal elements in the same order.
func (l *List[T]) Equal(other *List[T]) bool {
	return EqualSlices(l.items, other.items)
}

func (l *List[T]) indexOf(target T) int {
	for i, x := range l.items {
		if x.FullEquals(target) {
			return i
		}
	}
	return -1
}

func (l *List[T]) duplicate(op string) error {
	return shared.NewDomainError(l.kind, op, shared.ErrDuplicate, "This "+l.kind+" already exists")
}

func (l *List[T]) notFound(op string) error {
	return shared.NewDomainError(l.kind, op, shared.ErrNotFound, "The "+l.kind+" does not exist")
}

// AreUnique reports whether no pair in items is identity-equal.
func AreUnique[T Entity[T]](items []T) bool {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].IdentityEquals(items[j]) {
				return false
			}
		}
	}
	return true
}

// EqualSlices compares two slices element-wise with FullEquals.
func EqualSlices[T Entity[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].FullEquals(b[i]) {
			return false
		}
	}
	return true
}
