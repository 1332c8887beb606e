// Package evaluation measures a scorer's per-pair discriminative power by
// stratified negative sampling.
//
// Given known-positive sentence pairs, each source is scored against randomly
// drawn distractor targets from the other positives. A distractor outranking
// the true target is a ranking failure. The harness reports per-example
// outcomes, squared-deviation statistics for both classes, and the percentage
// of sources with at least one outranking distractor.
package evaluation
