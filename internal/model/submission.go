package model

import "sort"

// Submission is one student's folder within the assignments root.
//
// A submission is well-formed when its folder contains exactly one regular
// file. Malformed submissions keep their owner (so they still show up in the
// matrix) but never carry text.
type Submission struct {
	// Owner is the folder name. It is unique within a SubmissionSet.
	Owner string `json:"owner"`

	// Dir is the absolute path of the submission folder.
	Dir string `json:"dir"`

	// Files lists the regular files directly inside Dir, sorted by name.
	Files []string `json:"files,omitempty"`

	// Path is the single submitted file when the submission is well-formed.
	Path string `json:"path,omitempty"`

	// Text is the extracted plain text. Empty until extraction has run,
	// and always empty for malformed submissions.
	Text string `json:"-"`

	// Digest is the hex SHA3-256 of the raw submitted file.
	Digest string `json:"digest,omitempty"`

	// Extracted reports whether Text has been filled in.
	Extracted bool `json:"-"`
}

// NewSubmission creates a Submission for the given owner folder and the
// files found in it. Path is set only when there is exactly one file.
func NewSubmission(owner, dir string, files []string) Submission {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	s := Submission{
		Owner: owner,
		Dir:   dir,
		Files: sorted,
	}
	if len(sorted) == 1 {
		s.Path = sorted[0]
	}
	return s
}

// WellFormed reports whether the folder holds exactly one file.
func (s Submission) WellFormed() bool {
	return len(s.Files) == 1
}

// SubmissionSet is the ordered list of submissions of one run.
// The order defines which owner comes first in every pair.
type SubmissionSet []Submission

// NewSubmissionSet returns a copy of subs sorted by owner ascending.
func NewSubmissionSet(subs ...Submission) SubmissionSet {
	set := make(SubmissionSet, len(subs))
	copy(set, subs)
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Owner < set[j].Owner
	})
	return set
}

// Owners returns the owner names in set order.
func (s SubmissionSet) Owners() []string {
	owners := make([]string, len(s))
	for i, sub := range s {
		owners[i] = sub.Owner
	}
	return owners
}

// Malformed returns the owners whose folder did not hold exactly one file.
func (s SubmissionSet) Malformed() []string {
	var owners []string
	for _, sub := range s {
		if !sub.WellFormed() {
			owners = append(owners, sub.Owner)
		}
	}
	return owners
}
