// Package lexicon answers which words are unknown to a language's dictionary.
//
// A Dictionary is an immutable in-memory word set for one language tag,
// assembled at startup from word-list files, the SQLite lexicon store and
// extra words from the configuration file. After loading, every query is a
// pure set lookup, so results are deterministic for a fixed configuration.
package lexicon
