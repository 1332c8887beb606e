// Package alignment models sentence alignments between document pairs and
// reads/writes the .aln.xml interchange format.
//
// Each Match record carries lists of source and target segment ids so the
// format can express many-to-many alignments, though the rematching engine
// only ever emits 1:1 matches. Within one Alignment every segment id appears
// in at most one match on its side.
package alignment
