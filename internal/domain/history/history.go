// Package history keeps the committed states of a store for undo and redo.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

// Entry is one committed state.
type Entry struct {
	ID         uuid.UUID
	CapturedAt time.Time
	Snapshot   store.Snapshot
}

// Manager tracks a linear list of committed states and a cursor into it.
// The entry at the cursor always matches the store as of the last commit, undo or redo.
type Manager struct {
	store   *store.Store
	entries []Entry
	cursor  int
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the capture time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New creates a manager whose only entry is the current state of s.
func New(s *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store: s,
		now:   timeutil.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.entries = []Entry{m.capture()}
	return m
}

// Commit records the current store state. Any undone states are discarded.
func (m *Manager) Commit() Entry {
	m.entries = append(m.entries[:m.cursor+1:m.cursor+1], m.capture())
	m.cursor = len(m.entries) - 1
	return m.entries[m.cursor]
}

// CanUndo reports whether an earlier state exists.
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether an undone state exists.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

// Undo restores the previous state.
func (m *Manager) Undo() error {
	if !m.CanUndo() {
		return shared.NewDomainError("history", "Undo", shared.ErrNoUndo, "No more commands to undo!")
	}
	return m.moveTo(m.cursor-1, "Undo")
}

// Redo restores the most recently undone state.
func (m *Manager) Redo() error {
	if !m.CanRedo() {
		return shared.NewDomainError("history", "Redo", shared.ErrNoRedo, "No more commands to redo!")
	}
	return m.moveTo(m.cursor+1, "Redo")
}

// Len returns the number of stored states.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Cursor returns the index of the current state.
func (m *Manager) Cursor() int {
	return m.cursor
}

// Current returns the entry at the cursor.
func (m *Manager) Current() Entry {
	return m.entries[m.cursor]
}

func (m *Manager) moveTo(idx int, op string) error {
	// Entries are copies; restoring must not alias them with the live store.
	if err := m.store.Reset(m.entries[idx].Snapshot); err != nil {
		return shared.WrapError("history", op, shared.ErrStorage, "Could not restore state", err)
	}
	m.cursor = idx
	return nil
}

func (m *Manager) capture() Entry {
	return Entry{
		ID:         uuid.New(),
		CapturedAt: m.now(),
		Snapshot:   m.store.Snapshot(),
	}
}
