package rematch

import (
	"sort"

	"parmine/internal/alignment"
	"parmine/internal/document"
)

// Scorer rates a candidate sentence pair. Implemented by the scorer package's
// variants.
type Scorer interface {
	Score(src, tgt string) float64
}

// PairScore is one scored candidate pair. Scores are only comparable within a
// single document pair.
type PairScore struct {
	SourceSeg string
	TargetSeg string
	Score     float64
}

// Rematch scores the full cross product of the two documents' segments and
// selects a one-to-one alignment. The boolean result is false when no pair
// survives the threshold: "no alignment possible", as opposed to an alignment
// that happens to be short.
func Rematch(src, tgt *document.Document, scorer Scorer, threshold float64) (*alignment.Alignment, bool) {
	pairs := make([]PairScore, 0, src.Len()*tgt.Len())
	for _, srcSeg := range src.Segments() {
		for _, tgtSeg := range tgt.Segments() {
			pairs = append(pairs, PairScore{
				SourceSeg: srcSeg.ID,
				TargetSeg: tgtSeg.ID,
				Score:     scorer.Score(srcSeg.Text, tgtSeg.Text),
			})
		}
	}
	return Match(src.ID, tgt.ID, pairs, threshold)
}

// Match selects a greedy mutually-exclusive one-to-one matching from scored
// pairs. Pairs below threshold are discarded; the rest are walked in
// descending score order, accepting a pair only when neither segment has been
// claimed by a higher-scoring pair. Ties break on (source id, target id) so
// the matching is reproducible.
func Match(sourceID, translationID string, pairs []PairScore, threshold float64) (*alignment.Alignment, bool) {
	kept := make([]PairScore, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Score >= threshold {
			kept = append(kept, pair)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		if kept[i].SourceSeg != kept[j].SourceSeg {
			return kept[i].SourceSeg < kept[j].SourceSeg
		}
		return kept[i].TargetSeg < kept[j].TargetSeg
	})

	claimedSource := make(map[string]struct{})
	claimedTarget := make(map[string]struct{})
	result := alignment.New(sourceID, translationID)
	for _, pair := range kept {
		if _, taken := claimedSource[pair.SourceSeg]; taken {
			continue
		}
		if _, taken := claimedTarget[pair.TargetSeg]; taken {
			continue
		}
		claimedSource[pair.SourceSeg] = struct{}{}
		claimedTarget[pair.TargetSeg] = struct{}{}
		result.Add([]string{pair.SourceSeg}, []string{pair.TargetSeg}, pair.Score)
	}
	if len(result.Matches) == 0 {
		return nil, false
	}
	return result, true
}
