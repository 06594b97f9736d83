// Package database provides SQLite-based storage for simcheck dictionaries.
//
// This package implements the LexiconDB, which stores the known words of
// each language tag. The lexicon package loads a language's words from here
// to decide which shared tokens are non-words.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of plain
// word-list files because:
// 1. A dictionary is imported once and reused across many grading runs
// 2. CGO-free implementation allows easy cross-compilation
// 3. Several languages live side by side in one file
//
// Only dictionaries are stored. Comparison results are never persisted.
package database
