package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore is the desktop-compatible provider: one JSON file per concern
// under a settings directory. Missing or unreadable files read as empty,
// matching how the application has always started from scratch.
type FileStore struct {
	dir    string
	logger *slog.Logger

	mu        sync.Mutex
	available []string
}

// NewFileStore creates a provider rooted at dir. The directory is created
// on first write, not here.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

type driversFile struct {
	Drivers []Driver `json:"drivers"`
	Default string   `json:"default"`
}

type accountsFile struct {
	Accounts []BankAccount `json:"accounts"`
	Default  string        `json:"default"`
}

type templatesFile struct {
	Templates []Template `json:"templates"`
	Default   string     `json:"default"`
}

func (s *FileStore) driversPath() string   { return filepath.Join(s.dir, "drivers.json") }
func (s *FileStore) accountsPath() string  { return filepath.Join(s.dir, "bank_accounts.json") }
func (s *FileStore) templatesPath() string { return filepath.Join(s.dir, "templates.json") }
func (s *FileStore) companyPath() string   { return filepath.Join(s.dir, "company_info.json") }

func (s *FileStore) read(path string, into any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn("settings file corrupt, treating as empty",
			slog.String("path", path), slog.Any("error", err))
	}
}

func (s *FileStore) write(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *FileStore) Drivers(ctx context.Context) ([]Driver, error) {
	var f driversFile
	s.read(s.driversPath(), &f)
	return f.Drivers, nil
}

func (s *FileStore) DefaultDriver(ctx context.Context) (string, error) {
	var f driversFile
	s.read(s.driversPath(), &f)
	return f.Default, nil
}

func (s *FileStore) DriverPercent(ctx context.Context, id string) float64 {
	drivers, _ := s.Drivers(ctx)
	if d, ok := FindDriver(drivers, id); ok && d.Percent > 0 {
		return d.Percent
	}
	return 45.0
}

// SaveDrivers replaces the driver list and default flag.
func (s *FileStore) SaveDrivers(ctx context.Context, drivers []Driver, defaultID string) error {
	return s.write(s.driversPath(), driversFile{Drivers: drivers, Default: defaultID})
}

func (s *FileStore) Templates(ctx context.Context) ([]Template, error) {
	var f templatesFile
	s.read(s.templatesPath(), &f)
	return f.Templates, nil
}

func (s *FileStore) DefaultTemplate(ctx context.Context) (string, error) {
	var f templatesFile
	s.read(s.templatesPath(), &f)
	return f.Default, nil
}

func (s *FileStore) SaveTemplates(ctx context.Context, templates []Template) error {
	var f templatesFile
	s.read(s.templatesPath(), &f)
	f.Templates = templates
	return s.write(s.templatesPath(), f)
}

// SetDefaultTemplate flags one template name as default; empty clears it.
func (s *FileStore) SetDefaultTemplate(ctx context.Context, name string) error {
	var f templatesFile
	s.read(s.templatesPath(), &f)
	f.Default = name
	return s.write(s.templatesPath(), f)
}

func (s *FileStore) CompanyInfo(ctx context.Context) (CompanyInfo, error) {
	var info CompanyInfo
	s.read(s.companyPath(), &info)
	return info, nil
}

// SaveCompanyInfo replaces the single company record.
func (s *FileStore) SaveCompanyInfo(ctx context.Context, info CompanyInfo) error {
	return s.write(s.companyPath(), info)
}

func (s *FileStore) BankAccounts(ctx context.Context) ([]BankAccount, error) {
	var f accountsFile
	s.read(s.accountsPath(), &f)
	return f.Accounts, nil
}

func (s *FileStore) DefaultBankAccount(ctx context.Context) (string, error) {
	var f accountsFile
	s.read(s.accountsPath(), &f)
	return f.Default, nil
}

// SaveBankAccounts replaces the account list and default flag.
func (s *FileStore) SaveBankAccounts(ctx context.Context, accounts []BankAccount, defaultAccount string) error {
	return s.write(s.accountsPath(), accountsFile{Accounts: accounts, Default: defaultAccount})
}

func (s *FileStore) SetAvailableColumns(columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = append([]string(nil), columns...)
	sort.Strings(s.available)
}

func (s *FileStore) AvailableColumns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.available...)
}

var _ Provider = (*FileStore)(nil)
