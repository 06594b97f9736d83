// Package extract turns submitted documents into plain text.
//
// An Extractor dispatches on the lower-cased file extension to a Format
// function. The set of enabled formats is a configuration point; any other
// extension fails with ErrUnsupportedFormat, which callers treat as fatal.
//
// A Cache wraps any Source and memoizes its results for the lifetime of one
// run, keyed by the canonical path. Concurrent first requests for the same
// path share a single extraction.
package extract
