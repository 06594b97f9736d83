package model

import (
	"time"

	"github.com/google/uuid"
)

// Run carries the state of one comparison run through the pipeline.
// Steps fill it in order: discovery sets Submissions, extraction fills
// their text, comparison sets Matrix.
type Run struct {
	// Root is the assignments folder holding one subfolder per submission.
	Root string

	// Language is the dictionary language tag used for non-word detection.
	Language string

	// Submissions is the sorted set discovered under Root.
	Submissions SubmissionSet

	// Matrix is the comparison result. Nil until the compare step ran.
	Matrix ComparisonMatrix

	// PerformedSteps records the names of the steps that completed.
	PerformedSteps []string

	// StartedAt is when the run was created.
	StartedAt time.Time
}

// NewRun creates a Run for the given root folder and language.
func NewRun(root, language string) *Run {
	return &Run{
		Root:      root,
		Language:  language,
		StartedAt: time.Now(),
	}
}

// Report is the renderer-facing view of a completed run.
type Report struct {
	// ID uniquely identifies this report.
	ID string `json:"id"`

	// Root is the assignments folder that was compared.
	Root string `json:"root"`

	// Language is the dictionary language tag.
	Language string `json:"language"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Owners is the full ordered owner list. Renderers index Matrix by it.
	Owners []string `json:"owners"`

	// Malformed lists owners whose folder did not hold exactly one file.
	Malformed []string `json:"malformed,omitempty"`

	// Submissions describes every submission of the run.
	Submissions []SubmissionSummary `json:"submissions"`

	// Matrix holds the pairwise results.
	Matrix ComparisonMatrix `json:"matrix"`
}

// SubmissionSummary is the per-owner part of a Report.
type SubmissionSummary struct {
	Owner     string `json:"owner"`
	File      string `json:"file,omitempty"`
	FileCount int    `json:"file_count"`
	Digest    string `json:"digest,omitempty"`
}

// NewReport builds a Report from a finished run.
func NewReport(run *Run) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		Root:        run.Root,
		Language:    run.Language,
		GeneratedAt: time.Now(),
		Owners:      run.Submissions.Owners(),
		Malformed:   run.Submissions.Malformed(),
		Submissions: make([]SubmissionSummary, len(run.Submissions)),
		Matrix:      run.Matrix,
	}
	for i, sub := range run.Submissions {
		r.Submissions[i] = SubmissionSummary{
			Owner:     sub.Owner,
			File:      sub.Path,
			FileCount: len(sub.Files),
			Digest:    sub.Digest,
		}
	}
	if r.Matrix == nil {
		r.Matrix = NewComparisonMatrix(r.Owners)
	}
	return r
}

// Cell returns the result for a pair of owners as stored in the matrix.
// Renderers call it with (row, column) from the owner list.
func (r *Report) Cell(first, second string) (ComparisonResult, bool) {
	return r.Matrix.Get(first, second)
}
