package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// WordStore is a persistent source of dictionary words.
// database.LexiconDB implements it.
type WordStore interface {
	Words(ctx context.Context, language string) ([]string, error)
}

// Sources lists where Load looks for words.
type Sources struct {
	// WordLists are plain or hunspell .dic word-list files.
	WordLists []string

	// Store is the optional lexicon database.
	Store WordStore

	// ExtraWords are always treated as known, e.g. course jargon.
	ExtraWords []string
}

// Load builds the Dictionary for lang from every configured source.
// Extra words alone do not count as a dictionary: if neither the word lists
// nor the store provide a word, ErrNoDictionary is returned.
func Load(ctx context.Context, lang string, src Sources) (*Dictionary, error) {
	d, err := NewDictionary(lang)
	if err != nil {
		return nil, err
	}

	for _, path := range src.WordLists {
		words, err := ReadWordListFile(path)
		if err != nil {
			return nil, err
		}
		d.add(words...)
	}

	if src.Store != nil {
		words, err := src.Store.Words(ctx, d.Language())
		if err != nil {
			return nil, fmt.Errorf("failed to read stored words: %w", err)
		}
		d.add(words...)
	}

	if d.Len() == 0 {
		return nil, fmt.Errorf("%w %q (import a word list with 'simcheck lexicon import')", ErrNoDictionary, d.Language())
	}

	d.add(src.ExtraWords...)
	return d, nil
}

// ReadWordListFile reads a word list from disk. See ReadWordList.
func ReadWordListFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // Word list path is user-provided on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return words, nil
}

// ReadWordList parses one word per line. Blank lines and '#' comments are
// skipped. Hunspell .dic files are accepted: a leading numeric count line
// is ignored and affix flags after '/' are stripped.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if isCount(line) {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexByte(line, '/'); i >= 0 {
			line = line[:i]
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			words = append(words, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func isCount(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
