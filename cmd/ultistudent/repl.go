package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ultistudent/ultistudent/internal/application/command"
	"github.com/ultistudent/ultistudent/internal/application/logic"
	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

// helpOrder lists the command words in the order help shows them.
var helpOrder = []string{
	command.WordAdd, command.WordEdit, command.WordDelete, command.WordFind, command.WordList,
	command.WordAddCapEntry, command.WordEditCapEntry, command.WordDeleteCapEntry,
	command.WordFindCapEntry, command.WordListCapEntry,
	command.WordAddHomework, command.WordEditHomework, command.WordDeleteHomework,
	command.WordFindHomework, command.WordListHomework,
	command.WordAddNote, command.WordEditNote, command.WordDeleteNote,
	command.WordFindNote, command.WordListNote,
	command.WordClear, command.WordUndo, command.WordRedo, command.WordHistory,
	command.WordHelp, command.WordExit,
}

// repl reads command lines, runs them and prints feedback and the switched view.
type repl struct {
	logic   *logic.Logic
	in      io.Reader
	out     io.Writer
	prompt  string
	timeout time.Duration
	now     func() time.Time
}

type replOption func(*repl)

func withPrompt(p string) replOption {
	return func(r *repl) { r.prompt = p }
}

// withTimeout bounds each command, including the save that follows it.
func withTimeout(d time.Duration) replOption {
	return func(r *repl) { r.timeout = d }
}

func withClock(now func() time.Time) replOption {
	return func(r *repl) { r.now = now }
}

func newREPL(l *logic.Logic, in io.Reader, out io.Writer, opts ...replOption) *repl {
	r := &repl{
		logic: l,
		in:    in,
		out:   out,
		now:   timeutil.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes lines until exit, end of input or cancellation.
func (r *repl) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.out, r.prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		res, _ := r.exec(ctx, scanner.Text())
		if res != nil && res.Exit {
			return nil
		}
	}
}

// Exec runs a single line and returns its error after printing it.
func (r *repl) Exec(ctx context.Context, line string) error {
	_, err := r.exec(ctx, line)
	return err
}

func (r *repl) exec(ctx context.Context, line string) (*command.Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res, err := r.logic.Execute(ctx, line)
	if res != nil {
		r.render(res)
	}
	if err != nil {
		fmt.Fprintln(r.out, shared.Feedback(err))
	}
	return res, err
}

// ══════════════════════════════════════════════════════════════════════════════
// RENDERING
// ══════════════════════════════════════════════════════════════════════════════

func (r *repl) render(res *command.Result) {
	fmt.Fprintln(r.out, res.Feedback)

	if res.ShowHelp {
		r.printHelp()
	}

	switch res.View {
	case command.ViewPersons:
		for i, p := range r.logic.FilteredPersons() {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, p)
		}
	case command.ViewCap:
		for i, e := range r.logic.FilteredCapEntries() {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, e)
		}
	case command.ViewHomework:
		now := r.now()
		for i, h := range r.logic.FilteredHomework() {
			due := timeutil.FormatDueIn(h.Deadline().DaysFrom(now))
			fmt.Fprintf(r.out, "%d. %s (%s)\n", i+1, h, due)
		}
	case command.ViewNotes:
		for i, n := range r.logic.FilteredNotes() {
			fmt.Fprintf(r.out, "%d. %s\n", i+1, n)
		}
	}
}

func (r *repl) printHelp() {
	for _, word := range helpOrder {
		fmt.Fprintf(r.out, "\n%s\n", command.Usage[word])
	}
}
