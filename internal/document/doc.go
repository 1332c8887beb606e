// Package document models tokenized documents and reads the LTF XML corpus
// format.
//
// A Document is an ordered mapping from segment id to tokenized segment text.
// Insertion order reflects original sentence order; matching does not depend
// on it, but output stability does. Documents are built once by a reader and
// immutable afterwards by convention.
package document
