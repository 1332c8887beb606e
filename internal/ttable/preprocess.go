package ttable

import "strings"

// Segmenter splits a word into sub-word units, typically backed by an
// external morphological-segmentation model.
type Segmenter interface {
	Segment(word string) []string
}

// Preprocessor tokenizes one side of a sentence pair for table lookups.
// Per-word segmentation results are memoized; the cache grows unbounded,
// which is acceptable because corpus vocabularies are finite.
type Preprocessor struct {
	lowercase bool
	segmenter Segmenter
	memo      map[string][]string
}

// NewPreprocessor builds a side preprocessor. segmenter may be nil, leaving
// whitespace tokens intact.
func NewPreprocessor(lowercase bool, segmenter Segmenter) *Preprocessor {
	p := &Preprocessor{lowercase: lowercase, segmenter: segmenter}
	if segmenter != nil {
		p.memo = make(map[string][]string)
	}
	return p
}

// Tokens splits text on whitespace, lowercases when configured, and applies
// the segmenter per word.
func (p *Preprocessor) Tokens(text string) []string {
	if p.lowercase {
		text = strings.ToLower(text)
	}
	words := strings.Fields(text)
	if p.segmenter == nil {
		return words
	}
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		tokens = append(tokens, p.segment(word)...)
	}
	return tokens
}

func (p *Preprocessor) segment(word string) []string {
	if cached, ok := p.memo[word]; ok {
		return cached
	}
	pieces := p.segmenter.Segment(word)
	p.memo[word] = pieces
	return pieces
}
