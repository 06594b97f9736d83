package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/nao1215/simcheck/internal/model"
	"github.com/nao1215/simcheck/internal/similarity"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers in order.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// rankedPairs returns the filled cells ordered from most to least similar.
// Ties keep the (first, second) order of the matrix.
func rankedPairs(report *model.Report) []model.Pair {
	pairs := report.Matrix.Pairs()
	slices.SortStableFunc(pairs, func(a, b model.Pair) int {
		return cmp.Compare(a.Result.Score, b.Result.Score)
	})
	return pairs
}

// flaggedCount returns how many pairs carry at least one remark.
func flaggedCount(pairs []model.Pair) int {
	n := 0
	for _, p := range pairs {
		if p.Result.HasRemarks() {
			n++
		}
	}
	return n
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// percent formats a distance score as a similarity percentage.
func percent(distance float64) string {
	return fmt.Sprintf("%.1f%%", 100*similarity.FromDistance(distance))
}
