package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxDB is the slice of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type PgxDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is the web-backend-compatible provider reading the
// companies/drivers/accounts/templates tables.
type PostgresStore struct {
	db PgxDB

	mu        sync.Mutex
	available []string
}

// NewPostgresStore creates a provider over an existing connection pool.
func NewPostgresStore(db PgxDB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Drivers(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, percent, COALESCE(bank_account, '')
		FROM drivers
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Percent, &d.BankAccount); err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (s *PostgresStore) DefaultDriver(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM drivers WHERE is_default LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read default driver: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) DriverPercent(ctx context.Context, id string) float64 {
	var pct float64
	err := s.db.QueryRow(ctx, `SELECT percent FROM drivers WHERE id = $1`, strings.TrimSpace(id)).Scan(&pct)
	if err != nil || pct <= 0 {
		return 45.0
	}
	return pct
}

func (s *PostgresStore) Templates(ctx context.Context) ([]Template, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, columns
		FROM templates
		ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.Name, &t.Columns); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (s *PostgresStore) DefaultTemplate(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM templates WHERE is_default LIMIT 1`).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read default template: %w", err)
	}
	return name, nil
}

// SaveTemplates replaces the stored template set, keeping the default flag
// of any surviving name.
func (s *PostgresStore) SaveTemplates(ctx context.Context, templates []Template) error {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM templates WHERE name <> ALL($1)`, names); err != nil {
		return fmt.Errorf("failed to prune templates: %w", err)
	}
	for i, t := range templates {
		_, err := s.db.Exec(ctx, `
			INSERT INTO templates (name, columns, position, is_default)
			VALUES ($1, $2, $3, false)
			ON CONFLICT (name) DO UPDATE SET columns = EXCLUDED.columns, position = EXCLUDED.position`,
			t.Name, t.Columns, i)
		if err != nil {
			return fmt.Errorf("failed to save template %q: %w", t.Name, err)
		}
	}
	return nil
}

func (s *PostgresStore) CompanyInfo(ctx context.Context) (CompanyInfo, error) {
	var info CompanyInfo
	err := s.db.QueryRow(ctx, `SELECT name, org_number, address FROM company_info WHERE id = 1`).
		Scan(&info.Name, &info.OrgNumber, &info.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return CompanyInfo{}, nil
	}
	if err != nil {
		return CompanyInfo{}, fmt.Errorf("failed to read company info: %w", err)
	}
	return info, nil
}

func (s *PostgresStore) BankAccounts(ctx context.Context) ([]BankAccount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT account_number, name
		FROM bank_accounts
		ORDER BY account_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []BankAccount
	for rows.Next() {
		var a BankAccount
		if err := rows.Scan(&a.AccountNumber, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *PostgresStore) DefaultBankAccount(ctx context.Context) (string, error) {
	var acct string
	err := s.db.QueryRow(ctx, `SELECT account_number FROM bank_accounts WHERE is_default LIMIT 1`).Scan(&acct)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read default bank account: %w", err)
	}
	return acct, nil
}

func (s *PostgresStore) SetAvailableColumns(columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = append([]string(nil), columns...)
	sort.Strings(s.available)
}

func (s *PostgresStore) AvailableColumns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.available...)
}

var _ Provider = (*PostgresStore)(nil)
