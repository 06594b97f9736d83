package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/simcheck/internal/engine"
	"github.com/nao1215/simcheck/internal/extract"
	"github.com/nao1215/simcheck/internal/lexicon"
	"github.com/nao1215/simcheck/internal/model"
)

// writeSubmission creates root/owner and writes the given files into it.
func writeSubmission(t *testing.T, root, owner string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(root, owner)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// lookup returns the submission of owner.
func lookup(set model.SubmissionSet, owner string) (model.Submission, bool) {
	i := slices.IndexFunc(set, func(s model.Submission) bool { return s.Owner == owner })
	if i < 0 {
		return model.Submission{}, false
	}
	return set[i], true
}

func textExtractor(t *testing.T) *extract.Extractor {
	t.Helper()

	e, err := extract.NewExtractor([]string{".txt"})
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	return e
}

func TestDiscoverStep(t *testing.T) {
	t.Parallel()

	t.Run("lists submissions sorted by owner", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubmission(t, root, "carol", map[string]string{"essay.txt": "c"})
		writeSubmission(t, root, "alice", map[string]string{"essay.txt": "a"})
		writeSubmission(t, root, "bob", map[string]string{"a.txt": "b", "b.txt": "b"})
		writeSubmission(t, root, "dave", nil)
		if err := os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		run := model.NewRun(root, "nl")
		step := NewDiscoverStep(WithDiscoverLogger(quietLogger()))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		owners := run.Submissions.Owners()
		want := []string{"alice", "bob", "carol", "dave"}
		if len(owners) != len(want) {
			t.Fatalf("expected owners %v, got %v", want, owners)
		}
		for i := range want {
			if owners[i] != want[i] {
				t.Errorf("owner %d: expected %q, got %q", i, want[i], owners[i])
			}
		}

		malformed := run.Submissions.Malformed()
		if len(malformed) != 2 || malformed[0] != "bob" || malformed[1] != "dave" {
			t.Errorf("expected bob and dave malformed, got %v", malformed)
		}
	})

	t.Run("ignore patterns drop files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubmission(t, root, "alice", map[string]string{
			"essay.txt": "a",
			".DS_Store": "junk",
		})

		run := model.NewRun(root, "nl")
		step := NewDiscoverStep(
			WithIgnorePatterns([]string{".*"}),
			WithDiscoverLogger(quietLogger()),
		)
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sub, ok := lookup(run.Submissions, "alice")
		if !ok {
			t.Fatal("alice not discovered")
		}
		if !sub.WellFormed() {
			t.Errorf("expected alice to be well-formed, files: %v", sub.Files)
		}
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		run := model.NewRun(filepath.Join(t.TempDir(), "missing"), "nl")
		err := NewDiscoverStep(WithDiscoverLogger(quietLogger())).Do(context.Background(), run)
		if !errors.Is(err, ErrRootNotFound) {
			t.Errorf("expected ErrRootNotFound, got %v", err)
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		run := model.NewRun(path, "nl")
		err := NewDiscoverStep(WithDiscoverLogger(quietLogger())).Do(context.Background(), run)
		if !errors.Is(err, ErrRootNotDirectory) {
			t.Errorf("expected ErrRootNotDirectory, got %v", err)
		}
	})
}

func TestExtractStep(t *testing.T) {
	t.Parallel()

	t.Run("fills text and digest of well-formed submissions", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubmission(t, root, "alice", map[string]string{"essay.txt": "De kat zit op de mat."})
		writeSubmission(t, root, "bob", map[string]string{"a.txt": "x", "b.txt": "y"})

		run := model.NewRun(root, "nl")
		if err := NewDiscoverStep(WithDiscoverLogger(quietLogger())).Do(context.Background(), run); err != nil {
			t.Fatal(err)
		}

		step := NewExtractStep(textExtractor(t),
			WithExtractConcurrency(4),
			WithExtractLogger(quietLogger()),
		)
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		alice, _ := lookup(run.Submissions, "alice")
		if !alice.Extracted || alice.Text != "De kat zit op de mat." {
			t.Errorf("unexpected alice submission: %+v", alice)
		}
		if len(alice.Digest) != 64 {
			t.Errorf("expected 64 hex digest, got %q", alice.Digest)
		}

		bob, _ := lookup(run.Submissions, "bob")
		if bob.Extracted || bob.Text != "" {
			t.Errorf("malformed submission should not be extracted: %+v", bob)
		}
	})

	t.Run("empty text is a warning not a failure", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubmission(t, root, "alice", map[string]string{"scan.pdf": "%PDF-1.4"})
		writeSubmission(t, root, "bob", map[string]string{"essay.pdf": "%PDF-1.4"})

		run := model.NewRun(root, "nl")
		if err := NewDiscoverStep(WithDiscoverLogger(quietLogger())).Do(context.Background(), run); err != nil {
			t.Fatal(err)
		}

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
		source := extract.SourceFunc(func(path string) (string, error) {
			if filepath.Base(path) == "scan.pdf" {
				return "", nil
			}
			return "De kat zit op de mat.", nil
		})

		if err := NewExtractStep(source, WithExtractLogger(logger)).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		alice, _ := lookup(run.Submissions, "alice")
		if !alice.Extracted || alice.Text != "" {
			t.Errorf("expected alice extracted with empty text: %+v", alice)
		}
		if !strings.Contains(logs.String(), "no text extracted from submission") || !strings.Contains(logs.String(), "owner=alice") {
			t.Errorf("expected warning for alice, got: %s", logs.String())
		}
		if strings.Contains(logs.String(), "owner=bob") {
			t.Errorf("did not expect warning for bob: %s", logs.String())
		}
	})

	t.Run("unsupported format fails the run", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubmission(t, root, "alice", map[string]string{"essay.odt": "x"})

		run := model.NewRun(root, "nl")
		if err := NewDiscoverStep(WithDiscoverLogger(quietLogger())).Do(context.Background(), run); err != nil {
			t.Fatal(err)
		}

		err := NewExtractStep(textExtractor(t), WithExtractLogger(quietLogger())).Do(context.Background(), run)
		if !errors.Is(err, extract.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSubmission(t, root, "alice", map[string]string{"essay.txt": "De kat zit op de mat xyzzyqq."})
	writeSubmission(t, root, "bob", map[string]string{"essay.txt": "De hond zit op de mat xyzzyqq."})
	writeSubmission(t, root, "carol", map[string]string{"essay.txt": "  DE KAT ZIT OP DE MAT XYZZYQQ.  "})
	writeSubmission(t, root, "dave", nil)

	dict, err := lexicon.NewDictionary("nl", "de", "kat", "hond", "zit", "op", "mat")
	if err != nil {
		t.Fatal(err)
	}
	eng := engine.New(dict, engine.WithLogger(quietLogger()))

	p := DefaultPipeline(extract.NewCache(textExtractor(t)), eng, DefaultOptions{
		Concurrency: 2,
		Logger:      quietLogger(),
	})
	if got := p.StepNames(); len(got) != 3 || got[0] != "discover" || got[2] != "compare" {
		t.Fatalf("unexpected steps: %v", got)
	}

	run := model.NewRun(root, "nl")
	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(run.Matrix) != 4 {
		t.Fatalf("expected 4 owners in matrix, got %d", len(run.Matrix))
	}
	if len(run.Matrix["dave"]) != 0 {
		t.Errorf("expected empty row for dave, got %v", run.Matrix["dave"])
	}

	ac, ok := run.Matrix.Get("alice", "carol")
	if !ok {
		t.Fatal("missing alice/carol cell")
	}
	if len(ac.Remarks) != 1 || ac.Remarks[0] != engine.RemarkIdentical {
		t.Errorf("expected identical remark, got %v", ac.Remarks)
	}

	ab, ok := run.Matrix.Get("alice", "bob")
	if !ok {
		t.Fatal("missing alice/bob cell")
	}
	if len(ab.Remarks) != 1 || ab.Remarks[0] != engine.SharedNonWordRemark("xyzzyqq") {
		t.Errorf("expected shared non-word remark, got %v", ab.Remarks)
	}

	if _, ok := run.Matrix.Get("bob", "alice"); ok {
		t.Error("pair must only be stored in one direction")
	}
}
