package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultCompany = "Plantilla"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	DefaultTheme  string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureHomeTheme(tx, cfg.DefaultTheme, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}

	var hash string
	err := tx.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("check admin user existence: %w", err)
	case strings.HasPrefix(hash, "$2"):
		return nil
	}

	newHash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if hash != "" {
		// Rows written before bcrypt hold a legacy hash; replace it.
		if _, err := tx.Exec(`UPDATE users SET password_hash = ? WHERE email = ?`, newHash, email); err != nil {
			return fmt.Errorf("update admin password hash: %w", err)
		}
		stats.Updates++
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, newHash); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// HashPassword returns the bcrypt hash stored for admin users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// ensureHomeTheme creates the home template theme. Its section and calculator
// configuration stay empty so readers always get the current defaults.
func ensureHomeTheme(tx *sql.Tx, themeKey string, stats *Stats) error {
	themeKey = strings.TrimSpace(themeKey)
	if themeKey == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM quotations WHERE theme_key = ? LIMIT 1)`, themeKey).Scan(&exists); err != nil {
		return fmt.Errorf("check home theme existence: %w", err)
	}
	if exists {
		return nil
	}

	var homeExists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM quotations WHERE is_home = TRUE LIMIT 1)`).Scan(&homeExists); err != nil {
		return fmt.Errorf("check home flag: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO quotations (theme_key, company, project, is_template, is_home)
		VALUES (?, ?, ?, ?, ?)
	`, themeKey, defaultCompany, "", true, !homeExists); err != nil {
		return fmt.Errorf("insert home theme: %w", err)
	}
	stats.Inserts++
	return nil
}
