package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDotEnv(t *testing.T) {
	input := `
# admin
ADMIN_EMAIL=admin@nova.com
export PORT=9090
SESSION_SECRET="s3cr3t # not a comment"
DEFAULT_THEME='SMQ'
DB_PATH=./data.db # local copy
NO_EQUALS
=orphan
`
	pairs, err := parseDotEnv(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseDotEnv: %v", err)
	}

	want := [][2]string{
		{"ADMIN_EMAIL", "admin@nova.com"},
		{"PORT", "9090"},
		{"SESSION_SECRET", "s3cr3t # not a comment"},
		{"DEFAULT_THEME", "SMQ"},
		{"DB_PATH", "./data.db"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("MICROSITE_KEEP", "already")
	t.Setenv("MICROSITE_NEW", "")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MICROSITE_KEEP=fromfile\nMICROSITE_NEW=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("MICROSITE_KEEP"); got != "already" {
		t.Fatalf("MICROSITE_KEEP=%q, want %q", got, "already")
	}
	if got := os.Getenv("MICROSITE_NEW"); got != "fromfile" {
		t.Fatalf("MICROSITE_NEW=%q, want %q", got, "fromfile")
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
}
