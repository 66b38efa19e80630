// Package main is the UltiStudent command-line entry point.
//
// UltiStudent keeps contacts, CAP entries, homework and module notes for a
// student, with undo/redo over every change. The binary runs an interactive
// prompt on stdin/stdout or executes a single command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ultistudent/ultistudent/config"
	"github.com/ultistudent/ultistudent/internal/application/logic"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
)

// Set at build time with -ldflags "-X main.Version=... -X main.BuildTime=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "ultistudent"

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		// command errors were already shown as feedback
		var fe *feedbackError
		if !errors.As(err, &fe) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// feedbackError marks an error whose message has already been printed.
type feedbackError struct {
	err error
}

func (e *feedbackError) Error() string { return e.err.Error() }
func (e *feedbackError) Unwrap() error { return e.err }

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Contacts, CAP, homework and notes for students",
		Long: `UltiStudent keeps contacts, CAP entries, homework and module notes,
with undo and redo over every change.

Without a subcommand it reads commands from standard input, one per line.
Type "help" for the list of commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			defer app.close()

			r := newREPL(app.logic, cmd.InOrStdin(), cmd.OutOrStdout(),
				withTimeout(app.cfg.Storage.Timeout),
				withPrompt("> "),
			)
			return r.Run(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file path (YAML)")
	flags.String("data", "", "data file for the file and sqlite backends")
	flags.String("backend", "", "storage backend (memory, file, sqlite, postgres, redis)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "exec <command line>",
		Short: "Run a single command and exit",
		Example: `  ultistudent exec "addHomework hw/Lab1 mc/CS2103T d/01/01/2020"
  ultistudent exec listCapEntry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			defer app.close()

			r := newREPL(app.logic, nil, cmd.OutOrStdout(), withTimeout(app.cfg.Storage.Timeout))
			if err := r.Exec(cmd.Context(), args[0]); err != nil {
				return &feedbackError{err: err}
			}
			return nil
		},
	})

	return cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// WIRING
// ══════════════════════════════════════════════════════════════════════════════

type app struct {
	cfg   *config.Config
	log   *logger.Logger
	logic *logic.Logic
}

func setup(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.LogFormat(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.With(logger.String("app", cfg.App.Name))

	ctx, cancel := context.WithTimeout(cmd.Context(), openTimeout(cfg))
	defer cancel()

	storage, err := openStorage(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	l, err := logic.Open(ctx, storage, cfg.Storage.FallbackEmpty, logic.WithLogger(log))
	if err != nil {
		if c, ok := storage.(persistence.Closer); ok {
			_ = c.Close()
		}
		_ = log.Sync()
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	log.Info("ultistudent started",
		logger.String("version", Version),
		logger.Backend(cfg.Storage.Backend),
		logger.String("environment", string(cfg.App.Environment)),
		logger.String("cap", l.CAP().String()),
	)
	return &app{cfg: cfg, log: log, logic: l}, nil
}

func (a *app) close() {
	if err := a.logic.Close(); err != nil {
		a.log.Warn("failed to close storage", logger.Err(err))
	}
	_ = a.log.Sync()
}
