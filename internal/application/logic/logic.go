// Package logic is the entry point used by the presentation layer. It runs
// command lines through the parser and executor as one atomic unit and keeps
// the configured storage in step with the store.
package logic

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ultistudent/ultistudent/internal/application/command"
	"github.com/ultistudent/ultistudent/internal/application/model"
	"github.com/ultistudent/ultistudent/internal/application/parser"
	"github.com/ultistudent/ultistudent/internal/domain/capentry"
	"github.com/ultistudent/ultistudent/internal/domain/history"
	"github.com/ultistudent/ultistudent/internal/domain/homework"
	"github.com/ultistudent/ultistudent/internal/domain/note"
	"github.com/ultistudent/ultistudent/internal/domain/person"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
)

// MessageSaveFailed prefixes the feedback shown when the store could not be saved.
const MessageSaveFailed = "Could not save data: "

// Logic serialises command execution. It is safe for concurrent use.
type Logic struct {
	mu sync.Mutex

	model    *model.Model
	executor *command.Executor
	inputs   *InputLog

	storage   persistence.Storage
	lastSaved persistence.Digest

	log        *logger.Logger
	historyOps []history.Option
}

// Option configures a Logic.
type Option func(*Logic)

// WithStorage saves the store after every state-changing command.
func WithStorage(s persistence.Storage) Option {
	return func(l *Logic) {
		l.storage = s
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(l *Logic) {
		if log != nil {
			l.log = log
		}
	}
}

// WithHistoryOptions passes options to the history manager.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(l *Logic) {
		l.historyOps = append(l.historyOps, opts...)
	}
}

// New creates a Logic whose store starts with initial.
// initial is assumed to match what the storage already holds.
func New(initial store.Snapshot, opts ...Option) (*Logic, error) {
	l := &Logic{
		inputs: &InputLog{},
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("logic")

	s, err := store.FromSnapshot(initial)
	if err != nil {
		return nil, err
	}
	digest, err := persistence.DigestOf(initial)
	if err != nil {
		return nil, err
	}

	l.model = model.New(s, l.historyOps...)
	l.executor = command.NewExecutor(l.model, l.inputs)
	l.lastSaved = digest
	return l, nil
}

// Open loads the store from s and returns a Logic saving back to it.
// Missing data starts an empty store. With fallbackEmpty, unreadable data does too.
func Open(ctx context.Context, s persistence.Storage, fallbackEmpty bool, opts ...Option) (*Logic, error) {
	l := &Logic{log: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	log := l.log.Named("logic")

	snap, err := s.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrDataNotFound):
		log.Info("no saved data, starting with an empty store")
		snap = store.Snapshot{}
	case fallbackEmpty && shared.IsLoadError(err):
		log.Warn("saved data unreadable, starting with an empty store", logger.Err(err))
		snap = store.Snapshot{}
	default:
		return nil, err
	}

	return New(snap, append(opts, WithStorage(s))...)
}

// Execute parses line, runs it and saves the store if it changed.
//
// A parse or execution error leaves everything unchanged. A save error is
// returned together with the result of the command, which has already been applied.
func (l *Logic) Execute(ctx context.Context, line string) (*command.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	log := l.log.WithCorrelationID(uuid.NewString())
	ctx = logger.WithContext(ctx, log)

	cmd, err := parser.Parse(line)
	if err != nil {
		log.Warn("command rejected", logger.Err(err))
		return nil, err
	}
	log = log.With(logger.CommandWord(cmd.Word()))

	res, err := l.executor.Execute(ctx, cmd)
	l.inputs.add(line)
	if err != nil {
		log.Warn("command failed", logger.Err(err), logger.Latency(time.Since(start)))
		return nil, err
	}

	log.Debug("command executed",
		logger.Bool("committed", res.Committed),
		logger.Latency(time.Since(start)),
	)

	if cmd.Mutates() {
		if err := l.persist(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// persist saves the store when its digest differs from the last save.
func (l *Logic) persist(ctx context.Context) error {
	if l.storage == nil {
		return nil
	}
	log := logger.FromContext(ctx)

	snap := l.model.Snapshot()
	digest, err := persistence.DigestOf(snap)
	if err != nil {
		return shared.WrapError("logic", "Save", shared.ErrStorage, MessageSaveFailed+err.Error(), err)
	}
	if digest == l.lastSaved {
		return nil
	}

	if err := l.storage.Save(ctx, snap); err != nil {
		log.Error("save failed", logger.Err(err))
		return shared.WrapError("logic", "Save", shared.ErrStorage, MessageSaveFailed+err.Error(), err)
	}
	l.lastSaved = digest
	return nil
}

// Close releases the storage if it holds connections.
func (l *Logic) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.storage.(persistence.Closer); ok {
		return c.Close()
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEWS
// ══════════════════════════════════════════════════════════════════════════════

// FilteredPersons returns the persons currently displayed.
func (l *Logic) FilteredPersons() []person.Person {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.FilteredPersons()
}

// FilteredCapEntries returns the CAP entries currently displayed.
func (l *Logic) FilteredCapEntries() []capentry.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.FilteredCapEntries()
}

// FilteredHomework returns the homework currently displayed.
func (l *Logic) FilteredHomework() []homework.Homework {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.FilteredHomework()
}

// FilteredNotes returns the notes currently displayed.
func (l *Logic) FilteredNotes() []note.Note {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.FilteredNotes()
}

// CAP computes the cumulative average point over all CAP entries.
func (l *Logic) CAP() capentry.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.CAP()
}

// SetPersonFilter replaces the person filter; nil shows all.
func (l *Logic) SetPersonFilter(p model.Predicate[person.Person]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.model.UpdatePersonFilter(p)
}

// SetCapEntryFilter replaces the CAP entry filter; nil shows all.
func (l *Logic) SetCapEntryFilter(p model.Predicate[capentry.Entry]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.model.UpdateCapEntryFilter(p)
}

// SetHomeworkFilter replaces the homework filter; nil shows all.
func (l *Logic) SetHomeworkFilter(p model.Predicate[homework.Homework]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.model.UpdateHomeworkFilter(p)
}

// SetNoteFilter replaces the note filter; nil shows all.
func (l *Logic) SetNoteFilter(p model.Predicate[note.Note]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.model.UpdateNoteFilter(p)
}

// Snapshot returns a copy of the whole store.
func (l *Logic) Snapshot() store.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.Snapshot()
}

// Inputs returns the lines entered so far, most recent first.
func (l *Logic) Inputs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inputs.Lines()
}

// ══════════════════════════════════════════════════════════════════════════════
// INPUT LOG
// ══════════════════════════════════════════════════════════════════════════════

// InputLog records command lines that parsed successfully.
type InputLog struct {
	lines []string
}

func (h *InputLog) add(line string) {
	h.lines = append(h.lines, line)
}

// Lines returns a copy of the recorded lines, most recent first.
func (h *InputLog) Lines() []string {
	out := make([]string, len(h.lines))
	for i, line := range h.lines {
		out[len(h.lines)-1-i] = line
	}
	return out
}
