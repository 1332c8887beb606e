// Package embedding loads word-embedding tables and turns sentences into
// bag-of-words vectors for cross-lingual similarity scoring.
//
// Tables are read from word2vec-style text files (header line, then
// "word float float ..." rows, optionally gzipped). A duplicate word is a
// fatal data error: it signals a corrupt file. Sentences with zero
// in-vocabulary words fall back to the first-inserted vocabulary vector so
// every sentence still yields a vector of the right shape; high
// out-of-vocabulary ratios are logged, never fatal.
package embedding
