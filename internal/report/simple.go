package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/simcheck/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: pairs are listed from most
// to least similar with their remarks underneath.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it is easier to pipe to files or other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to report are shown.
	showEmpty bool

	// verbose adds file paths and digests of every submission.
	verbose bool

	// limit caps the number of listed pairs. Zero means no limit.
	limit int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithLimit lists at most n pairs.
func WithLimit(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.limit = n
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder
	pairs := rankedPairs(report)

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report, pairs)
	w.writePairs(&sb, pairs)
	w.writeMalformed(&sb, report)
	if w.verbose {
		w.writeSubmissions(&sb, report)
	}
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     TEXT SIMILARITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Assignments: %s\n", report.Root)
	fmt.Fprintf(sb, "Language:    %s\n", report.Language)
	fmt.Fprintf(sb, "Generated:   %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Report ID:   %s\n", report.ID)
	sb.WriteString("\n")
}

// writeSummary writes the counts section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report, pairs []model.Pair) {
	w.writeSection(sb, "SUMMARY")

	fmt.Fprintf(sb, "  SUBMISSIONS: %d\n", len(report.Owners))
	fmt.Fprintf(sb, "  SKIPPED:     %d\n", len(report.Malformed))
	fmt.Fprintf(sb, "  PAIRS:       %d\n", len(pairs))
	fmt.Fprintf(sb, "  FLAGGED:     %d\n", flaggedCount(pairs))
	sb.WriteString("\n")
}

// writePairs lists the compared pairs, most similar first.
func (w *SimpleWriter) writePairs(sb *strings.Builder, pairs []model.Pair) {
	if len(pairs) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "PAIRS (most similar first)")

	if len(pairs) == 0 {
		sb.WriteString("  No pairs compared\n\n")
		return
	}

	shown := pairs
	if w.limit > 0 && len(shown) > w.limit {
		shown = shown[:w.limit]
	}

	for _, p := range shown {
		indicator := " "
		if p.Result.HasRemarks() {
			indicator = "!"
		}
		fmt.Fprintf(sb, "[%s] %s <-> %s  distance %.3f  similarity %s\n",
			indicator, p.First, p.Second, p.Result.Score, percent(p.Result.Score))
		for _, remark := range p.Result.Remarks {
			fmt.Fprintf(sb, "      * %s\n", remark)
		}
	}
	if len(shown) < len(pairs) {
		fmt.Fprintf(sb, "  ... %d more pair(s)\n", len(pairs)-len(shown))
	}
	sb.WriteString("\n")
}

// writeMalformed lists submissions skipped for not holding exactly one file.
func (w *SimpleWriter) writeMalformed(sb *strings.Builder, report *model.Report) {
	if len(report.Malformed) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "SKIPPED SUBMISSIONS")

	if len(report.Malformed) == 0 {
		sb.WriteString("  None\n\n")
		return
	}
	counts := make(map[string]int, len(report.Submissions))
	for _, s := range report.Submissions {
		counts[s.Owner] = s.FileCount
	}
	for _, owner := range report.Malformed {
		fmt.Fprintf(sb, "  [-] %s (%d files)\n", owner, counts[owner])
	}
	sb.WriteString("\n")
}

// writeSubmissions lists every submission with its file and digest.
func (w *SimpleWriter) writeSubmissions(sb *strings.Builder, report *model.Report) {
	w.writeSection(sb, "SUBMISSIONS")

	for _, s := range report.Submissions {
		if s.File == "" {
			fmt.Fprintf(sb, "  %s\n", s.Owner)
			continue
		}
		fmt.Fprintf(sb, "  %s\n    File:   %s\n", s.Owner, s.File)
		if s.Digest != "" {
			fmt.Fprintf(sb, "    SHA3:   %s\n", s.Digest)
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by simcheck\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
