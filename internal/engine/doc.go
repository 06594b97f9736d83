// Package engine builds the pairwise comparison matrix of a submission set.
//
// For every pair of well-formed submissions (A before B in owner order) the
// engine records the raw-text distance and a list of remarks: either the
// identical-text remark, or one remark per shared token the dictionary does
// not know. Malformed submissions produce no pairs but always keep their
// row in the matrix, so renderers can index it by the full owner list.
package engine
