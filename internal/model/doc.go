// Package model defines the core data structures used throughout simcheck.
//
// This package contains the following main types:
//   - Submission: One student's folder and the text extracted from its file
//   - SubmissionSet: All submissions of a run, sorted by owner name
//   - ComparisonResult: Score and remarks for one pair of submissions
//   - ComparisonMatrix: Upper-triangular owner -> owner -> result mapping
//   - Report: Everything a report writer needs to render one run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The engine, pipeline and report packages all use these types,
// so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
