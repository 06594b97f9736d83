// Package main provides the entry point for the simcheck CLI.
//
// simcheck compares a folder of student submissions pairwise and reports
// how similar every pair of documents is, together with remarks such as
// identical texts or shared misspellings.
//
// Usage:
//
//	simcheck check <assignments-folder>
//	simcheck lexicon import --language nl <wordlist>
//
// See --help for all available options.
package main

// main is the entry point for simcheck.
func main() {
	Execute()
}
