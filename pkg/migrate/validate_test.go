package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDir_AcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}
}

func TestValidateDir_RejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_bad_name.sql", "-- +goose Up\n-- +goose Down\n")

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to be rejected")
	}
}

func TestValidateDir_RejectsMissingGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260815120000_only_up.sql", "-- +goose Up\nSELECT 1;\n")

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing down marker to be rejected")
	}
}

func TestValidateDir_RejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\n-- +goose Down\n"
	writeMigration(t, dir, "20260815120000_first.sql", body)
	writeMigration(t, dir, "20260815120000_second.sql", body)

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected duplicate versions to be rejected")
	}
}

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
}
