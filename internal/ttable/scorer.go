package ttable

import (
	"fmt"
	"log/slog"

	"parmine/internal/logging"
	"parmine/internal/services"
)

// combineFunc folds the probabilities of candidate translations into one
// evidence value.
type combineFunc func(probs []float64) float64

// ScorerOptions configures a translation-table Scorer.
type ScorerOptions struct {
	// Combine is "sum" or "max".
	Combine   string
	Lowercase bool
	// SourceSegmenter and TargetSegmenter optionally split words into
	// sub-word units before lookup.
	SourceSegmenter Segmenter
	TargetSegmenter Segmenter
}

// Scorer rates sentence pairs by average bidirectional translation-evidence
// coverage, in [0, 1].
type Scorer struct {
	table   *Table
	srcPrep *Preprocessor
	tgtPrep *Preprocessor
	combine combineFunc
}

// NewScorer wraps a compiled table.
func NewScorer(table *Table, opts ScorerOptions, logger *slog.Logger) (*Scorer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var combine combineFunc
	switch opts.Combine {
	case "sum", "":
		combine = sumProbs
	case "max":
		combine = maxProbs
	default:
		return nil, services.Wrap(services.ErrConfiguration, "ttable", "new scorer",
			fmt.Sprintf("unknown combiner %q", opts.Combine), nil)
	}
	logger.Info("translation scorer ready",
		slog.String(logging.FieldComponent, "ttable"),
		slog.String("source", table.SourceLang),
		slog.String("target", table.TargetLang),
		slog.String("combine", opts.Combine))
	return &Scorer{
		table:   table,
		srcPrep: NewPreprocessor(opts.Lowercase, opts.SourceSegmenter),
		tgtPrep: NewPreprocessor(opts.Lowercase, opts.TargetSegmenter),
		combine: combine,
	}, nil
}

// Score computes mean source-token evidence against the target token set via
// the forward table, the symmetric target-side evidence via the inverse
// table, and returns their mean. Empty token lists on either side score 0.
func (s *Scorer) Score(src, tgt string) float64 {
	srcToks := s.srcPrep.Tokens(src)
	tgtToks := s.tgtPrep.Tokens(tgt)
	if len(srcToks) == 0 || len(tgtToks) == 0 {
		return 0
	}
	// Repeated tokens collapse on the candidate side; each occurrence still
	// counts on the evidence side.
	srcSet := tokenSet(srcToks)
	tgtSet := tokenSet(tgtToks)

	srcEvidence := 0.0
	for _, tok := range srcToks {
		srcEvidence += s.evidence(tok, s.table.Fwd, tgtSet)
	}
	srcEvidence /= float64(len(srcToks))

	tgtEvidence := 0.0
	for _, tok := range tgtToks {
		tgtEvidence += s.evidence(tok, s.table.Inv, srcSet)
	}
	tgtEvidence /= float64(len(tgtToks))

	return (srcEvidence + tgtEvidence) / 2
}

// evidence estimates how strongly tok explains any of the candidate tokens.
// An out-of-table token scores 1 when it appears verbatim among the
// candidates (a copied numeral or name), else 0.
func (s *Scorer) evidence(tok string, table map[string]map[string]float64, candidates map[string]struct{}) float64 {
	probs, ok := table[tok]
	if !ok {
		if _, copied := candidates[tok]; copied {
			return 1.0
		}
		return 0.0
	}
	var matched []float64
	for candidate := range candidates {
		if p, ok := probs[candidate]; ok {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return 0.0
	}
	// Truncated Giza tables need not sum to 1; clamp so the scorer honours
	// its [0, 1] contract.
	return min(s.combine(matched), 1.0)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func sumProbs(probs []float64) float64 {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	return total
}

func maxProbs(probs []float64) float64 {
	best := probs[0]
	for _, p := range probs[1:] {
		if p > best {
			best = p
		}
	}
	return best
}
