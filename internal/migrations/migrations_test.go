package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFS_ContainsUsersMigration(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one embedded migration")
	}

	content, err := fs.ReadFile(FS, "00001_create_users.sql")
	if err != nil {
		t.Fatalf("read users migration: %v", err)
	}

	for _, want := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE IF NOT EXISTS users"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("users migration missing %q", want)
		}
	}
}

func TestFS_MigrationsAreVersioned(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected non-sql file %q", name)
			continue
		}
		if len(name) < 6 || !strings.Contains(name, "_") {
			t.Errorf("migration %q does not follow NNNNN_name.sql", name)
		}
	}
}
