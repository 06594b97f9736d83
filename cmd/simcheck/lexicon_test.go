package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/simcheck/internal/lexicon"
)

func TestLexiconCmd(t *testing.T) {
	t.Parallel()

	t.Run("list without database", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "lexicon", "list", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No words imported yet") {
			t.Errorf("unexpected output: %q", stdout)
		}
	})

	t.Run("import is idempotent", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := filepath.Join(t.TempDir(), "words.txt")
		if err := os.WriteFile(list, []byte("# Dutch words\nkat\nhond\nmat\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		stdout, _, err := runCLI(t, "lexicon", "import", "--db-dir", dbDir, "-l", "nl", list)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "3 words read, 3 new") {
			t.Errorf("unexpected first import output: %q", stdout)
		}

		stdout, _, err = runCLI(t, "lexicon", "import", "--db-dir", dbDir, "-l", "nl", list)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "3 words read, 0 new") {
			t.Errorf("unexpected second import output: %q", stdout)
		}
		if !strings.Contains(stdout, "now holds 3 words") {
			t.Errorf("expected total count, got %q", stdout)
		}

		stdout, _, err = runCLI(t, "lexicon", "list", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Languages (1)") || !strings.Contains(stdout, "nl") {
			t.Errorf("unexpected list output: %q", stdout)
		}
	})

	t.Run("invalid language", func(t *testing.T) {
		t.Parallel()

		list := filepath.Join(t.TempDir(), "words.txt")
		if err := os.WriteFile(list, []byte("kat\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, _, err := runCLI(t, "lexicon", "import", "--db-dir", t.TempDir(), "-l", "not a tag!", list)
		if !errors.Is(err, lexicon.ErrInvalidLanguage) {
			t.Errorf("expected invalid language error, got %v", err)
		}
	})

	t.Run("missing word list", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "lexicon", "import", "--db-dir", t.TempDir(), filepath.Join(t.TempDir(), "missing.txt"))
		if err == nil {
			t.Error("expected error for missing word list")
		}
	})
}
