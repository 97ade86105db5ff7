package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/microsite/internal/db"
	"github.com/Simplici0/microsite/internal/migrations"
)

func openSeedDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	database := openSeedDB(t)

	cfg := Config{
		AdminEmail:    "admin@nova.com",
		AdminPassword: "12345",
		DefaultTheme:  "NOVA",
	}

	for i := 0; i < 5; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 2 {
				t.Fatalf("expected 2 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no writes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ?`, "admin@nova.com", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM quotations WHERE theme_key = ? AND is_home = TRUE AND is_template = TRUE`, "NOVA", 1)

	var hash string
	if err := database.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, "admin@nova.com").Scan(&hash); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("12345")); err != nil {
		t.Fatalf("expected admin hash to match password: %v", err)
	}
}

func TestRunUpgradesLegacyHash(t *testing.T) {
	t.Parallel()

	database := openSeedDB(t)
	if _, err := database.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, "admin@nova.com", "5994471abb01112afcc18159f6cc74b4f511b99806da59b3caf5a9c173cacfc5"); err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}

	stats, err := Run(database, Config{AdminEmail: "admin@nova.com", AdminPassword: "12345"})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Updates != 1 || stats.Inserts != 0 {
		t.Fatalf("expected one update, got %+v", stats)
	}

	var hash string
	if err := database.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, "admin@nova.com").Scan(&hash); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("12345")); err != nil {
		t.Fatalf("expected upgraded hash to match password: %v", err)
	}
}

func TestRunSkipsEmptyValues(t *testing.T) {
	t.Parallel()

	database := openSeedDB(t)

	stats, err := Run(database, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected no inserts, got %d", stats.Inserts)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM users`, nil, 0)
	assertCount(t, database, `SELECT COUNT(*) FROM quotations`, nil, 0)
}

func TestSecondThemeIsNotHome(t *testing.T) {
	t.Parallel()

	database := openSeedDB(t)

	if _, err := Run(database, Config{DefaultTheme: "NOVA"}); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if _, err := Run(database, Config{DefaultTheme: "SMQ"}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM quotations WHERE is_home = TRUE`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM quotations WHERE theme_key = ? AND is_home = FALSE`, "SMQ", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
