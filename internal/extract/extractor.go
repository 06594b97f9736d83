package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension has no
// registered Format.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Source returns the plain text of a document.
type Source interface {
	Extract(path string) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(path string) (string, error)

// Extract implements Source.
func (f SourceFunc) Extract(path string) (string, error) {
	return f(path)
}

// Format reads a single document and returns its text.
type Format func(path string) (string, error)

// builtinFormats maps extensions to the formats shipped with simcheck.
var builtinFormats = map[string]Format{
	".pdf":  extractPDF,
	".docx": extractDOCX,
	".html": extractHTML,
	".htm":  extractHTML,
	".txt":  extractPlain,
	".md":   extractPlain,
}

// DefaultExtensions is the extension set enabled when nothing is configured.
var DefaultExtensions = []string{".pdf"}

// Extractor dispatches extraction by file extension.
type Extractor struct {
	formats map[string]Format
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFormat registers (or replaces) the Format for an extension.
func WithFormat(ext string, format Format) Option {
	return func(e *Extractor) {
		e.formats[normalizeExt(ext)] = format
	}
}

// NewExtractor creates an Extractor with the built-in formats for the given
// extensions enabled. Unknown extensions in the list are rejected.
func NewExtractor(extensions []string, opts ...Option) (*Extractor, error) {
	e := &Extractor{formats: make(map[string]Format)}

	for _, ext := range extensions {
		ext = normalizeExt(ext)
		format, ok := builtinFormats[ext]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		e.formats[ext] = format
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Extract implements Source.
func (e *Extractor) Extract(path string) (string, error) {
	ext := normalizeExt(filepath.Ext(path))
	format, ok := e.formats[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, ext, path)
	}

	text, err := format(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return text, nil
}

// Extensions returns the enabled extensions in sorted order.
func (e *Extractor) Extensions() []string {
	exts := make([]string, 0, len(e.formats))
	for ext := range e.formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// SupportedExtensions lists every extension a built-in Format exists for.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(builtinFormats))
	for ext := range builtinFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// extractPlain returns the file content unchanged.
func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Submission paths come from the assignments folder
	if err != nil {
		return "", err
	}
	return string(data), nil
}
