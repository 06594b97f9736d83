package database

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *LexiconDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := db.ImportWords(context.Background(), "nl", []string{"kat"}); err != nil {
			t.Fatal(err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen: %v", err)
		}
		defer db.Close()

		n, err := db.CountWords(context.Background(), "nl")
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("expected 1 word after reopen, got %d", n)
		}
	})
}

// TestImportWords tests importing and reading words.
func TestImportWords(t *testing.T) {
	t.Parallel()

	t.Run("imports and lists sorted words", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		ctx := context.Background()

		n, err := db.ImportWords(ctx, "nl", []string{"mat", "kat", " ", "de"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 inserted, got %d", n)
		}

		words, err := db.Words(ctx, "nl")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"de", "kat", "mat"}
		if !reflect.DeepEqual(words, want) {
			t.Errorf("expected %v, got %v", want, words)
		}
	})

	t.Run("import is idempotent", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.ImportWords(ctx, "nl", []string{"kat", "mat"}); err != nil {
			t.Fatal(err)
		}
		n, err := db.ImportWords(ctx, "nl", []string{"kat", "mat", "zit"})
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("expected 1 new word, got %d", n)
		}
		count, _ := db.CountWords(ctx, "nl")
		if count != 3 {
			t.Errorf("expected 3 words, got %d", count)
		}
	})

	t.Run("languages are separate", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.ImportWords(ctx, "nl", []string{"kat"}); err != nil {
			t.Fatal(err)
		}
		if _, err := db.ImportWords(ctx, "en", []string{"cat", "mat"}); err != nil {
			t.Fatal(err)
		}

		words, _ := db.Words(ctx, "fr")
		if len(words) != 0 {
			t.Errorf("expected no french words, got %v", words)
		}

		langs, err := db.Languages(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(langs) != 2 {
			t.Fatalf("expected 2 languages, got %d", len(langs))
		}
		if langs[0].Language != "en" || langs[0].WordCount != 2 {
			t.Errorf("unexpected first language %+v", langs[0])
		}
		if langs[1].Language != "nl" || langs[1].WordCount != 1 {
			t.Errorf("unexpected second language %+v", langs[1])
		}
	})
}

// TestParseTimestamp tests timestamp parsing with SQLite layouts.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	got := parseTimestamp("2025-01-02 03:04:05")
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !parseTimestamp("garbage").IsZero() {
		t.Error("expected zero time for garbage")
	}
}
