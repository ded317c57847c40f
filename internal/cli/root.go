// Package cli wires the command-line surface: report generation, ledger
// edits, settings management and backups.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
	"github.com/taxirapport/taxirapport/pkg/config"
	"github.com/taxirapport/taxirapport/pkg/db"
)

var verbose bool

// app holds the resolved dependencies shared by all commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider settings.Provider
	ledger   *edits.Ledger
	database *db.DB
}

var current *app

var rootCmd = &cobra.Command{
	Use:           "taxirapport",
	Short:         "Taxi shift reporting: payroll and shift PDFs from exported shift files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil && current.database != nil {
			current.database.Close()
		}
	},
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a := &app{cfg: cfg, logger: logger}

	switch cfg.Settings.Backend {
	case "postgres":
		database, err := db.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("could not connect to settings database: %w", err)
		}
		a.database = database
		a.provider = settings.NewPostgresStore(database.Pool)
	default:
		a.provider = settings.NewFileStore(cfg.Settings.Dir, logger)
	}

	store := edits.NewStore(cfg.Ledger.Path, logger)
	a.ledger = edits.NewLedger(store)
	return a, nil
}

// journalFor opens the per-file journal for a source file.
func (a *app) journalFor(source string) *edits.Journal {
	name := filepath.Base(source) + ".json"
	store := edits.NewStore(filepath.Join(a.cfg.Ledger.JournalDir, name), a.logger)
	return edits.NewJournal(store)
}

// fileStore returns the file-backed provider, or an error for backends
// whose settings are managed elsewhere.
func (a *app) fileStore() (*settings.FileStore, error) {
	fs, ok := a.provider.(*settings.FileStore)
	if !ok {
		return nil, fmt.Errorf("settings are managed by the web backend; use it to change them")
	}
	return fs, nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
