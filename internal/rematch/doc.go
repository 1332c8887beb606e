// Package rematch computes a greedy one-to-one sentence alignment between two
// documents from pairwise scores.
//
// The matcher is a speed-over-optimality heuristic, not an optimal assignment
// solver: pairs are taken in descending score order and accepted only when
// both segments are still unclaimed. The result is injective in both
// directions, and raising the threshold never increases the match count.
package rematch
