// Package similarity provides normalized string distance metrics.
//
// A Metric maps two texts to a distance in [0, 1]: 0 for identical input,
// 1 when nothing can be reused. Every metric in this package is symmetric
// and accepts empty strings.
package similarity
