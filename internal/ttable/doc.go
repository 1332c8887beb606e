// Package ttable compiles Giza-style word-translation tables and scores
// sentence pairs by bidirectional translation evidence.
//
// A Table holds forward (source word -> target word -> probability) and
// inverse mappings, built from vocabulary files ("index word count" per line)
// and probability files ("src_index tgt_index probability" per line). Compiled
// tables are persisted as a versioned SQLite database so large Giza outputs
// are parsed once, not per run.
//
// Giza tables are noisy: out-of-range vocabulary indexes are skipped with a
// warning rather than failing the compile. Probabilities for a word are not
// renormalized; they are treated as a monotone evidence distribution.
package ttable
