package extract

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

// TestCache tests memoization of extracted text.
func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("second call does not re-read", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := NewCache(SourceFunc(func(path string) (string, error) {
			calls.Add(1)
			return "text of " + filepath.Base(path), nil
		}))

		path := filepath.Join(t.TempDir(), "essay.pdf")
		first, err := cache.Extract(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := cache.Extract(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first != second {
			t.Errorf("expected identical text, got %q and %q", first, second)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 extraction, got %d", calls.Load())
		}
		if cache.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", cache.Len())
		}
	})

	t.Run("equal paths share an entry", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := NewCache(SourceFunc(func(string) (string, error) {
			calls.Add(1)
			return "x", nil
		}))

		dir := t.TempDir()
		if _, err := cache.Extract(filepath.Join(dir, "essay.pdf")); err != nil {
			t.Fatal(err)
		}
		if _, err := cache.Extract(filepath.Join(dir, "sub", "..", "essay.pdf")); err != nil {
			t.Fatal(err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 extraction, got %d", calls.Load())
		}
	})

	t.Run("file changes are not observed", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor([]string{".txt"})
		if err != nil {
			t.Fatal(err)
		}
		cache := NewCache(e)
		path := writeFile(t, t.TempDir(), "essay.txt", "before")

		if _, err := cache.Extract(path); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("after"), 0600); err != nil {
			t.Fatal(err)
		}
		got, err := cache.Extract(path)
		if err != nil {
			t.Fatal(err)
		}
		if got != "before" {
			t.Errorf("expected cached text, got %q", got)
		}
	})

	t.Run("symlinked file keeps the link extension", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor([]string{".txt"})
		if err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		target := writeFile(t, dir, "blob", "linked essay")
		link := filepath.Join(dir, "essay.txt")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		cache := NewCache(e)
		got, err := cache.Extract(link)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "linked essay" {
			t.Errorf("expected linked text, got %q", got)
		}
		if cache.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", cache.Len())
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		boom := errors.New("boom")
		cache := NewCache(SourceFunc(func(string) (string, error) {
			calls.Add(1)
			return "", boom
		}))

		path := filepath.Join(t.TempDir(), "essay.pdf")
		for range 2 {
			if _, err := cache.Extract(path); !errors.Is(err, boom) {
				t.Errorf("expected boom, got %v", err)
			}
		}
		if calls.Load() != 2 {
			t.Errorf("expected 2 attempts, got %d", calls.Load())
		}
		if cache.Len() != 0 {
			t.Errorf("expected empty cache, got %d", cache.Len())
		}
	})

	t.Run("concurrent first reads extract once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		cache := NewCache(SourceFunc(func(string) (string, error) {
			calls.Add(1)
			<-release
			return "shared", nil
		}))

		path := filepath.Join(t.TempDir(), "essay.pdf")
		const readers = 8
		var wg sync.WaitGroup
		results := make([]string, readers)
		for i := range readers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				text, err := cache.Extract(path)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				results[i] = text
			}()
		}
		close(release)
		wg.Wait()

		for i, r := range results {
			if r != "shared" {
				t.Errorf("reader %d got %q", i, r)
			}
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 extraction, got %d", calls.Load())
		}
	})
}
