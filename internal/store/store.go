// Package store persists quotation microsites in the quotations table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrThemeNotFound   = errors.New("theme not found")
	ErrThemeExists     = errors.New("theme already exists")
	ErrInvalidThemeKey = errors.New("invalid theme key")
)

// Theme is one quotation microsite. SectionsConfig and CalculatorConfig are
// stored verbatim and are nil when never written.
type Theme struct {
	Key              string          `json:"themeKey"`
	Company          string          `json:"company"`
	Project          string          `json:"project"`
	SectionsConfig   json.RawMessage `json:"sectionsConfig,omitempty"`
	CalculatorConfig json.RawMessage `json:"calculatorConfig,omitempty"`
	IsTemplate       bool            `json:"isTemplate"`
	IsHome           bool            `json:"isHome"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const themeColumns = `theme_key, company, project, sections_config, calculator_config, is_template, is_home, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTheme(row rowScanner) (Theme, error) {
	var (
		t          Theme
		sectionsJS sql.NullString
		calcJS     sql.NullString
	)
	if err := row.Scan(&t.Key, &t.Company, &t.Project, &sectionsJS, &calcJS, &t.IsTemplate, &t.IsHome, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Theme{}, err
	}
	if sectionsJS.Valid {
		t.SectionsConfig = json.RawMessage(sectionsJS.String)
	}
	if calcJS.Valid {
		t.CalculatorConfig = json.RawMessage(calcJS.String)
	}
	return t, nil
}

func (s *Store) GetTheme(ctx context.Context, key string) (Theme, error) {
	t, err := scanTheme(s.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM quotations WHERE theme_key = ?`, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Theme{}, fmt.Errorf("get theme %q: %w", key, ErrThemeNotFound)
		}
		return Theme{}, fmt.Errorf("query theme %q: %w", key, err)
	}
	return t, nil
}

// ListThemes returns every theme, home first, then by key.
func (s *Store) ListThemes(ctx context.Context) ([]Theme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM quotations
		ORDER BY is_home DESC, theme_key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query themes: %w", err)
	}
	defer rows.Close()

	themes := make([]Theme, 0)
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate themes: %w", err)
	}

	return themes, nil
}

// CreateTheme inserts t. It fails with ErrThemeExists when the key is taken.
func (s *Store) CreateTheme(ctx context.Context, t Theme) error {
	key := strings.TrimSpace(t.Key)
	if key == "" {
		return fmt.Errorf("create theme: %w", ErrInvalidThemeKey)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotations (theme_key, company, project, sections_config, calculator_config, is_template, is_home)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(theme_key) DO NOTHING
	`, key, strings.TrimSpace(t.Company), strings.TrimSpace(t.Project), nullJSON(t.SectionsConfig), nullJSON(t.CalculatorConfig), t.IsTemplate, t.IsHome)
	if err != nil {
		return fmt.Errorf("insert theme %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert theme %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("create theme %q: %w", key, ErrThemeExists)
	}
	return nil
}

// CloneTheme copies the configuration of from into a new theme to. The
// clone is never a template nor the home theme.
func (s *Store) CloneTheme(ctx context.Context, from, to string) (Theme, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Theme{}, fmt.Errorf("clone theme: %w", ErrInvalidThemeKey)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Theme{}, fmt.Errorf("begin clone transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	src, err := scanTheme(tx.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM quotations WHERE theme_key = ?`, from))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Theme{}, fmt.Errorf("clone theme %q: %w", from, ErrThemeNotFound)
		}
		return Theme{}, fmt.Errorf("query theme %q: %w", from, err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM quotations WHERE theme_key = ? LIMIT 1)`, to).Scan(&exists); err != nil {
		return Theme{}, fmt.Errorf("check theme %q existence: %w", to, err)
	}
	if exists {
		return Theme{}, fmt.Errorf("clone theme %q: %w", to, ErrThemeExists)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quotations (theme_key, company, project, sections_config, calculator_config, is_template, is_home)
		VALUES (?, ?, ?, ?, ?, FALSE, FALSE)
	`, to, src.Company, src.Project, nullJSON(src.SectionsConfig), nullJSON(src.CalculatorConfig)); err != nil {
		return Theme{}, fmt.Errorf("insert theme %q: %w", to, err)
	}

	clone, err := scanTheme(tx.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM quotations WHERE theme_key = ?`, to))
	if err != nil {
		return Theme{}, fmt.Errorf("query theme %q: %w", to, err)
	}

	if err := tx.Commit(); err != nil {
		return Theme{}, fmt.Errorf("commit clone transaction: %w", err)
	}
	return clone, nil
}

// UpdateSectionsConfig overwrites the stored section list of key.
func (s *Store) UpdateSectionsConfig(ctx context.Context, key string, data json.RawMessage) error {
	return s.updateColumn(ctx, "sections_config", key, data)
}

// UpdateCalculatorConfig overwrites the stored calculator document of key.
func (s *Store) UpdateCalculatorConfig(ctx context.Context, key string, data json.RawMessage) error {
	return s.updateColumn(ctx, "calculator_config", key, data)
}

// LoadCalculatorConfig returns the raw calculator document of key, nil when
// none was ever saved.
func (s *Store) LoadCalculatorConfig(ctx context.Context, key string) ([]byte, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT calculator_config FROM quotations WHERE theme_key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load calculator config %q: %w", key, ErrThemeNotFound)
		}
		return nil, fmt.Errorf("query calculator config %q: %w", key, err)
	}
	if !raw.Valid {
		return nil, nil
	}
	return []byte(raw.String), nil
}

func (s *Store) SaveCalculatorConfig(ctx context.Context, key string, data []byte) error {
	return s.UpdateCalculatorConfig(ctx, key, data)
}

// updateColumn only ever receives one of the two config column names.
func (s *Store) updateColumn(ctx context.Context, column, key string, data json.RawMessage) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE quotations
		SET `+column+` = ?, updated_at = CURRENT_TIMESTAMP
		WHERE theme_key = ?
	`, nullJSON(data), key)
	if err != nil {
		return fmt.Errorf("update %s of %q: %w", column, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s of %q: %w", column, key, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s of %q: %w", column, key, ErrThemeNotFound)
	}
	return nil
}

func nullJSON(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
