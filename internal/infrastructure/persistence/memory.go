package persistence

import (
	"context"
	"sync"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
)

// Memory keeps the last saved snapshot in process. It backs the memory
// backend and serves as a Storage double in tests.
type Memory struct {
	mu    sync.Mutex
	snap  store.Snapshot
	saved bool
	saves int
	err   error
}

// NewMemory creates an empty Memory storage. Load reports ErrDataNotFound until the first Save.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements Storage.
func (m *Memory) Load(ctx context.Context) (store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return store.Snapshot{}, err
	}
	if !m.saved {
		return store.Snapshot{}, shared.NewDomainError("storage", "Load", shared.ErrDataNotFound, "No saved data found")
	}
	return m.snap, nil
}

// Save implements Storage.
func (m *Memory) Save(ctx context.Context, snap store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	m.snap = snap
	m.saved = true
	m.saves++
	return nil
}

// Saves returns how many saves succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailWith makes every later Save return err. A nil err clears the failure.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
