package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/simcheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables and GitHub-flavored alerts without
// hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)
	pairs := rankedPairs(report)

	w.writeHeader(md, report, pairs)
	w.writeAlert(md, pairs)
	w.writePairs(md, pairs)
	w.writeRemarks(md, pairs)
	w.writeMalformed(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report, pairs []model.Pair) {
	md.H1("Text Similarity Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Assignments", codeSpan(report.Root)},
			{"Language", report.Language},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Submissions", strconv.Itoa(len(report.Owners))},
			{"Skipped", strconv.Itoa(len(report.Malformed))},
			{"Pairs", strconv.Itoa(len(pairs))},
			{"Report ID", codeSpan(report.ID)},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert summarizing what needs a closer look.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, pairs []model.Pair) {
	identical := 0
	for _, p := range pairs {
		if p.Result.Score == 0 {
			identical++
		}
	}
	flagged := flaggedCount(pairs)

	switch {
	case identical > 0:
		md.Cautionf("%d pair(s) have identical text.", identical)
	case flagged > 0:
		md.Warningf("%d pair(s) carry remarks worth a closer look.", flagged)
	case len(pairs) > 0:
		md.Tip("No pair produced a remark.")
	default:
		md.Note("Fewer than two submissions could be compared.")
	}
	md.PlainText("")
}

// writePairs writes every compared pair, most similar first.
func (w *MarkdownWriter) writePairs(md *markdown.Markdown, pairs []model.Pair) {
	md.H2("Pairs")
	md.PlainText("")

	if len(pairs) == 0 {
		md.PlainText("No pairs compared.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{
			truncateString(p.First, 40),
			truncateString(p.Second, 40),
			strconv.FormatFloat(p.Result.Score, 'f', 3, 64),
			percent(p.Result.Score),
			strconv.Itoa(len(p.Result.Remarks)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"First", "Second", "Distance", "Similarity", "Remarks"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeRemarks writes the remarks of every flagged pair.
func (w *MarkdownWriter) writeRemarks(md *markdown.Markdown, pairs []model.Pair) {
	if flaggedCount(pairs) == 0 {
		return
	}

	md.H2("Remarks")
	md.PlainText("")

	for _, p := range pairs {
		if !p.Result.HasRemarks() {
			continue
		}
		md.H3(p.First + " / " + p.Second)
		md.PlainText("")
		md.BulletList(p.Result.Remarks...)
		md.PlainText("")
	}
}

// writeMalformed lists submissions that were skipped.
func (w *MarkdownWriter) writeMalformed(md *markdown.Markdown, report *model.Report) {
	if len(report.Malformed) == 0 {
		return
	}

	md.H2("Skipped Submissions")
	md.PlainText("")
	md.PlainText("These folders did not contain exactly one file:")
	md.PlainText("")
	md.BulletList(report.Malformed...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by simcheck*")
}

// codeSpan wraps s in backticks unless it already contains one.
func codeSpan(s string) string {
	if strings.Contains(s, "`") {
		return s
	}
	return "`" + s + "`"
}
