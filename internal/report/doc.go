// Package report renders a finished comparison run.
//
// This package contains writers for different output formats:
//   - HTMLWriter: The similarity matrix as an HTML table, from a template
//   - MarkdownWriter: Pair listing for sharing in issues or wikis
//   - JSONWriter: Structured JSON output for tool integration
//   - SimpleWriter: Human-readable text output for terminal display
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) so that new output formats can be added
// without touching the comparison engine.
//
// Every writer consumes a *model.Report. Renderers index the matrix by the
// full owner list, so a matrix row exists for every submission even when the
// submission was skipped.
package report
