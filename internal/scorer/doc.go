// Package scorer decides how likely two sentences are to be translations of
// each other.
//
// A Unified scorer runs an ordered list of cheap heuristic signals (length
// ratios, copy-pattern consistency, ascii-character ratio) with early-exit
// accept/reject thresholds, then falls back to one expensive final scorer
// (cross-lingual embedding similarity, translation-table evidence, or a mean
// aggregate of several) only for the undecided middle. Signals are selected
// by name at startup; unknown names are a configuration error.
//
// Scores are comparable only within one document pair. Positive means
// translation, negative means not, with ±1.0 as the saturated sentinels.
package scorer
