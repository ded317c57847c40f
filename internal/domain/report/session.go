package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/payroll"
	"github.com/taxirapport/taxirapport/internal/domain/reconcile"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

// ErrNoData is returned when a recomputation runs before any file loaded
// rows.
var ErrNoData = errors.New("no data loaded")

// LonnSession drives the salary report pipeline: files in, ledger applied,
// driver filtered, payroll computed, table assembled. Every input change
// is followed by a full synchronous Recompute; nothing is incremental.
type LonnSession struct {
	provider settings.Provider
	ledger   *edits.Ledger
	logger   *slog.Logger

	datasets []*dataset.Dataset
	sources  []string
	driverID string
	template string
	now      func() time.Time
}

// NewLonnSession creates an empty session over the given collaborators.
func NewLonnSession(provider settings.Provider, ledger *edits.Ledger, logger *slog.Logger) *LonnSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &LonnSession{
		provider: provider,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadFiles replaces the session's datasets. Unreadable files abort the
// load with the previous datasets intact. Afterwards the provider learns
// the live column names for template authoring.
func (s *LonnSession) LoadFiles(paths []string) error {
	var loaded []*dataset.Dataset
	for _, path := range paths {
		ds, err := dataset.Load(path)
		if err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		loaded = append(loaded, ds)
	}
	s.datasets = loaded
	s.sources = append([]string(nil), paths...)
	s.pushAvailableColumns()
	s.logger.Info("files loaded", slog.Int("count", len(loaded)))
	return nil
}

// SetDriver selects the driver whose shifts the report covers.
func (s *LonnSession) SetDriver(id string) { s.driverID = id }

// SetTemplate selects the column template by name. Empty means the
// provider's default, falling back to all columns.
func (s *LonnSession) SetTemplate(name string) { s.template = name }

// Datasets returns the loaded datasets.
func (s *LonnSession) Datasets() []*dataset.Dataset { return s.datasets }

func (s *LonnSession) pushAvailableColumns() {
	seen := make(map[string]struct{})
	var columns []string
	for _, ds := range s.datasets {
		for _, col := range ds.Columns {
			if _, dup := seen[col]; dup {
				continue
			}
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}
	s.provider.SetAvailableColumns(columns)
}

// Recompute runs the full pipeline and assembles the salary report.
func (s *LonnSession) Recompute(ctx context.Context) (*LonnReport, error) {
	if len(s.datasets) == 0 {
		return nil, ErrNoData
	}

	driverID := s.driverID
	if driverID == "" {
		def, err := s.provider.DefaultDriver(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not read default driver: %w", err)
		}
		driverID = def
	}
	if driverID == "" {
		return nil, errors.New("no driver selected")
	}

	filtered := payroll.Filter(s.datasets, driverID, s.ledger.All(), reconcile.LatestWins{})
	if filtered == nil || filtered.Empty() {
		return nil, fmt.Errorf("no shifts for driver %s in the loaded files", driverID)
	}

	pct := s.provider.DriverPercent(ctx, driverID)
	summary := payroll.Calculate(filtered, pct)

	templateName := s.template
	if templateName == "" {
		def, err := s.provider.DefaultTemplate(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not read default template: %w", err)
		}
		templateName = def
	}
	templates, err := s.provider.Templates(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read templates: %w", err)
	}
	columns := SelectColumns(filtered, templateName, templates)
	if len(columns) == 0 {
		return nil, fmt.Errorf("template %q selects no columns present in the data", templateName)
	}

	source := ""
	if len(s.sources) > 0 {
		source = s.sources[0]
	}
	period := ExtractPeriod(s.datasets, source, s.now())

	company, err := s.provider.CompanyInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read company info: %w", err)
	}
	drivers, err := s.provider.Drivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read drivers: %w", err)
	}
	driver, _ := settings.FindDriver(drivers, driverID)
	if driver.ID == "" {
		driver.ID = driverID
	}

	account, err := s.provider.DefaultBankAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read default bank account: %w", err)
	}

	return &LonnReport{
		Company:     company,
		Driver:      driver,
		Period:      period,
		Table:       BuildTable(filtered, columns, ContextLonn),
		Summary:     summary,
		DepositLine: DepositLine(summary.CashAmount, account, period.MonthName(), driver.Initials()),
		Edits:       reconcile.RelevantEdits(filtered, s.ledger.All()),
	}, nil
}

// SkiftSession drives the per-file shift report: one dataset, an
// append-only journal of adjustments, cumulative reconciliation.
type SkiftSession struct {
	provider settings.Provider
	journal  *edits.Journal
	logger   *slog.Logger

	ds       *dataset.Dataset
	source   string
	template string
	now      func() time.Time
}

// NewSkiftSession creates an empty session over the given collaborators.
func NewSkiftSession(provider settings.Provider, journal *edits.Journal, logger *slog.Logger) *SkiftSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkiftSession{
		provider: provider,
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}
}

// LoadFile replaces the session's dataset.
func (s *SkiftSession) LoadFile(path string) error {
	ds, err := dataset.Load(path)
	if err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	s.ds = ds
	s.source = path
	s.provider.SetAvailableColumns(ds.Columns)
	s.logger.Info("file loaded", slog.String("path", path), slog.Int("rows", ds.Len()))
	return nil
}

// SetTemplate selects the column template by name.
func (s *SkiftSession) SetTemplate(name string) { s.template = name }

// Dataset returns the loaded dataset.
func (s *SkiftSession) Dataset() *dataset.Dataset { return s.ds }

// Recompute applies the journal and assembles the shift report.
func (s *SkiftSession) Recompute(ctx context.Context) (*SkiftReport, error) {
	if s.ds == nil || s.ds.Empty() {
		return nil, ErrNoData
	}

	relevant := s.journal.Relevant(reconcile.FileKeys(s.ds))
	edited := reconcile.CumulativeFirstRow{}.Apply(s.ds, relevant)

	templateName := s.template
	if templateName == "" {
		def, err := s.provider.DefaultTemplate(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not read default template: %w", err)
		}
		templateName = def
	}
	templates, err := s.provider.Templates(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read templates: %w", err)
	}
	columns := SelectColumns(edited, templateName, templates)
	if len(columns) == 0 {
		return nil, fmt.Errorf("template %q selects no columns present in the data", templateName)
	}

	company, err := s.provider.CompanyInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read company info: %w", err)
	}

	rep := &SkiftReport{
		Company: company,
		Period:  ExtractPeriod([]*dataset.Dataset{edited}, s.source, s.now()),
		License: License(edited),
		Table:   BuildTable(edited, columns, ContextSkift),
		Summary: payroll.Summarize(edited),
		Edits:   relevant,
	}
	rep.FirstShift, rep.LastShift, rep.HasShiftRange = ShiftRange(edited)
	return rep, nil
}
