package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/nao1215/simcheck/internal/model"
)

//go:embed templates/matrix.html
var templateFS embed.FS

// ErrTemplate is returned when a report template cannot be read or parsed.
var ErrTemplate = errors.New("invalid report template")

// HTMLData is the value a matrix template is executed with.
type HTMLData struct {
	// Report is the full report.
	Report *model.Report

	// Owners is the column header order.
	Owners []string

	// Rows holds one row per owner, each with one cell per owner.
	Rows []HTMLRow
}

// HTMLRow is one row of the matrix table.
type HTMLRow struct {
	Owner string
	Cells []HTMLCell
}

// HTMLCell is one cell of the matrix table. Present is false on the
// diagonal, below it, and for pairs involving a skipped submission.
type HTMLCell struct {
	Row     string
	Column  string
	Present bool
	Score   float64
	Remarks []string
	Flagged bool
}

// NewHTMLData lays the matrix out as a square table over the owner list.
func NewHTMLData(report *model.Report) HTMLData {
	data := HTMLData{
		Report: report,
		Owners: report.Owners,
		Rows:   make([]HTMLRow, len(report.Owners)),
	}
	for i, row := range report.Owners {
		cells := make([]HTMLCell, len(report.Owners))
		for j, col := range report.Owners {
			cell := HTMLCell{Row: row, Column: col}
			if result, ok := report.Cell(row, col); ok {
				cell.Present = true
				cell.Score = result.Score
				cell.Remarks = result.Remarks
				cell.Flagged = result.HasRemarks()
			}
			cells[j] = cell
		}
		data.Rows[i] = HTMLRow{Owner: row, Cells: cells}
	}
	return data
}

// DefaultTemplate returns the built-in matrix template.
func DefaultTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/matrix.html"))
}

// LoadTemplate reads and parses a custom matrix template.
// It is meant to be called before any comparison work starts so a broken
// template aborts the run early.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is given by the user
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	tmpl, err := template.New("matrix").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, path, err)
	}
	return tmpl, nil
}

// HTMLWriter renders the similarity matrix as an HTML page.
type HTMLWriter struct {
	baseWriter

	tmpl *template.Template
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithTemplate replaces the built-in template.
func WithTemplate(tmpl *template.Template) HTMLWriterOption {
	return func(w *HTMLWriter) {
		if tmpl != nil {
			w.tmpl = tmpl
		}
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.tmpl == nil {
		w.tmpl = DefaultTemplate()
	}
	return w
}

// Write renders the report. Nothing is written when the template fails.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, NewHTMLData(report)); err != nil {
		return 0, fmt.Errorf("failed to render report: %w", err)
	}
	return w.output.Write(buf.Bytes())
}
