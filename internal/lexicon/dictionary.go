package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidLanguage is returned when the language tag cannot be parsed.
	ErrInvalidLanguage = errors.New("invalid language tag")

	// ErrNoDictionary is returned when no word source yields any word for
	// the requested language.
	ErrNoDictionary = errors.New("no dictionary available for language")
)

// Oracle reports which of the given words are not known words.
type Oracle interface {
	Unknown(words map[string]struct{}) map[string]struct{}
}

// Dictionary is the known-word set of one language.
// It is safe for concurrent lookups once loading has finished.
type Dictionary struct {
	tag   language.Tag
	words map[string]struct{}
}

// NewDictionary creates a Dictionary for the language tag containing words.
// Words are lower-cased with the language's casing rules.
func NewDictionary(lang string, words ...string) (*Dictionary, error) {
	tag, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		tag:   tag,
		words: make(map[string]struct{}, len(words)),
	}
	d.add(words...)
	return d, nil
}

// ParseLanguage validates a BCP 47 language tag such as "nl" or "en-GB".
func ParseLanguage(lang string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %w", ErrInvalidLanguage, lang, err)
	}
	return tag, nil
}

// add inserts words. It is only called while loading.
func (d *Dictionary) add(words ...string) {
	fold := d.caser()
	for _, w := range words {
		w = fold.String(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		d.words[w] = struct{}{}
	}
}

// Language returns the dictionary's language tag.
func (d *Dictionary) Language() string {
	return d.tag.String()
}

// Len returns the number of known words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// caser returns a fresh lower-casing Caser. Casers keep state and must not
// be shared between goroutines.
func (d *Dictionary) caser() cases.Caser {
	return cases.Lower(d.tag)
}

// Contains reports whether word is known, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[d.caser().String(word)]
	return ok
}

// Unknown implements Oracle. It returns the subset of words not in the
// dictionary; the input set is not modified.
func (d *Dictionary) Unknown(words map[string]struct{}) map[string]struct{} {
	unknown := make(map[string]struct{})
	for w := range words {
		if !d.Contains(w) {
			unknown[w] = struct{}{}
		}
	}
	return unknown
}
