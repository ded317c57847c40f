// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic ledger backup.
type Scheduler struct {
	cron       *cron.Cron
	ledgerPath string
	backupDir  string
	keep       int
	logger     *slog.Logger
}

// NewScheduler creates a scheduler snapshotting ledgerPath into backupDir,
// keeping at most keep snapshots.
func NewScheduler(ledgerPath, backupDir string, keep int, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:       c,
		ledgerPath: ledgerPath,
		backupDir:  backupDir,
		keep:       keep,
		logger:     logger,
	}
}

// Start registers the backup job with the given 5-field cron schedule and
// begins running.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() { s.backup() })
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("backup scheduler started",
		slog.String("schedule", schedule),
		slog.String("ledger", s.ledgerPath),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("backup scheduler stopping")
	return s.cron.Stop()
}

// RunNow takes a snapshot immediately.
func (s *Scheduler) RunNow() error {
	return s.backup()
}

func (s *Scheduler) backup() error {
	src, err := os.Open(s.ledgerPath)
	if os.IsNotExist(err) {
		s.logger.Debug("no ledger file, skipping backup", slog.String("path", s.ledgerPath))
		return nil
	}
	if err != nil {
		s.logger.Error("failed to open ledger for backup", slog.Any("error", err))
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		s.logger.Error("failed to create backup directory", slog.Any("error", err))
		return err
	}

	name := fmt.Sprintf("rettelser_%s_%s.json",
		time.Now().Format("2006-01-02"), uuid.New().String()[:8])
	path := filepath.Join(s.backupDir, name)

	dst, err := os.Create(path)
	if err != nil {
		s.logger.Error("failed to create backup file", slog.Any("error", err))
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		s.logger.Error("failed to write backup", slog.Any("error", err))
		return err
	}

	s.logger.Info("ledger backed up", slog.String("path", path))
	s.prune()
	return nil
}

// prune removes the oldest snapshots beyond the keep limit. Snapshot names
// start with the date, so lexical order is chronological.
func (s *Scheduler) prune() {
	if s.keep <= 0 {
		return
	}
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "rettelser_") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= s.keep {
		return
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-s.keep] {
		if err := os.Remove(filepath.Join(s.backupDir, name)); err != nil {
			s.logger.Warn("failed to prune backup", slog.String("name", name), slog.Any("error", err))
		}
	}
}
