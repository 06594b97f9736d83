package model

import "sort"

// ComparisonResult is the outcome of comparing two submissions.
type ComparisonResult struct {
	// Score is the normalized distance between the raw texts.
	// 0.0 means identical, 1.0 means nothing in common.
	Score float64 `json:"score"`

	// Remarks holds qualitative observations about the pair.
	Remarks []string `json:"remarks"`
}

// HasRemarks reports whether the comparison produced any remark.
func (r ComparisonResult) HasRemarks() bool {
	return len(r.Remarks) > 0
}

// ComparisonMatrix maps the first owner of a pair to the second owner to the
// result. It is not symmetric: the result for owners A < B lives only at
// [A][B], never at [B][A].
type ComparisonMatrix map[string]map[string]ComparisonResult

// NewComparisonMatrix creates a matrix with an empty inner map for every owner.
func NewComparisonMatrix(owners []string) ComparisonMatrix {
	m := make(ComparisonMatrix, len(owners))
	for _, owner := range owners {
		m[owner] = make(map[string]ComparisonResult)
	}
	return m
}

// Set stores the result for the ordered pair (first, second).
func (m ComparisonMatrix) Set(first, second string, result ComparisonResult) {
	row, ok := m[first]
	if !ok {
		row = make(map[string]ComparisonResult)
		m[first] = row
	}
	row[second] = result
}

// Get returns the result stored at [first][second]. The reverse direction is
// never consulted.
func (m ComparisonMatrix) Get(first, second string) (ComparisonResult, bool) {
	row, ok := m[first]
	if !ok {
		return ComparisonResult{}, false
	}
	result, ok := row[second]
	return result, ok
}

// Owners returns the top-level keys in ascending order.
func (m ComparisonMatrix) Owners() []string {
	owners := make([]string, 0, len(m))
	for owner := range m {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// Pair is one filled cell of the matrix.
type Pair struct {
	First  string           `json:"first"`
	Second string           `json:"second"`
	Result ComparisonResult `json:"result"`
}

// Pairs flattens the matrix into a list ordered by (first, second).
func (m ComparisonMatrix) Pairs() []Pair {
	var pairs []Pair
	for _, first := range m.Owners() {
		row := m[first]
		seconds := make([]string, 0, len(row))
		for second := range row {
			seconds = append(seconds, second)
		}
		sort.Strings(seconds)
		for _, second := range seconds {
			pairs = append(pairs, Pair{First: first, Second: second, Result: row[second]})
		}
	}
	return pairs
}

// Len returns the number of filled cells.
func (m ComparisonMatrix) Len() int {
	n := 0
	for _, row := range m {
		n += len(row)
	}
	return n
}
