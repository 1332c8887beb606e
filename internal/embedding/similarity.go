package embedding

import (
	"log/slog"
	"strings"

	"parmine/internal/logging"
)

// Similarity scores sentence pairs by cosine of their bag-of-words vectors,
// computed independently in each language's embedding space. The two vectors
// live in different spaces; only their mutual cosine is used as a learned
// correlate of translation equivalence.
type Similarity struct {
	source    *Table
	target    *Table
	idf       map[string]float64
	normalize bool
	logger    *slog.Logger
}

// SimilarityOptions configures table loading for a Similarity scorer.
type SimilarityOptions struct {
	SourcePath string
	TargetPath string
	// IDFPath enables IDF-weighted bag-of-words vectors when set.
	IDFPath   string
	MaxVocab  int
	Normalize bool
}

// NewSimilarity eagerly loads both embedding tables. Loading is expensive and
// must happen once per process, before any parallel scoring dispatch.
func NewSimilarity(opts SimilarityOptions, logger *slog.Logger) (*Similarity, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(slog.String(logging.FieldComponent, "embedding"))

	logger.Info("loading source embeddings", slog.String("path", opts.SourcePath))
	source, err := Load(opts.SourcePath, opts.MaxVocab)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded source embeddings", slog.Int("vocab", source.Len()), slog.Int("dim", source.Dimension()))

	logger.Info("loading target embeddings", slog.String("path", opts.TargetPath))
	target, err := Load(opts.TargetPath, opts.MaxVocab)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded target embeddings", slog.Int("vocab", target.Len()), slog.Int("dim", target.Dimension()))

	var idf map[string]float64
	if opts.IDFPath != "" {
		idf, err = LoadIDF(opts.IDFPath)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded idf table", slog.Int("words", len(idf)))
	}

	return &Similarity{
		source:    source,
		target:    target,
		idf:       idf,
		normalize: opts.Normalize,
		logger:    logger,
	}, nil
}

// Score returns the cosine similarity of the two sentences' bag vectors,
// in [-1, 1].
func (s *Similarity) Score(src, tgt string) float64 {
	srcVec := s.vectorize(s.source, src)
	tgtVec := s.vectorize(s.target, tgt)
	return Cosine(srcVec, tgtVec)
}

// DocScore computes similarity between two whole documents, treating each as
// one merged token sequence.
func (s *Similarity) DocScore(srcSents, tgtSents []string) float64 {
	return s.Score(strings.Join(srcSents, " "), strings.Join(tgtSents, " "))
}

func (s *Similarity) vectorize(table *Table, sentence string) []float64 {
	tokens := strings.Fields(strings.ToLower(sentence))
	if s.idf != nil {
		return table.BagOfWordsIDF(tokens, s.idf)
	}
	vec, oov, total := table.BagOfWords(tokens, s.normalize)
	// High OOV is worth noticing but never fatal.
	if total > 0 && 2*oov > total {
		s.logger.Debug("high out-of-vocabulary ratio",
			slog.Int("oov", oov), slog.Int("tokens", total))
	}
	return vec
}
