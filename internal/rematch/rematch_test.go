package rematch_test

import (
	"fmt"
	"testing"

	"parmine/internal/document"
	"parmine/internal/rematch"
)

func TestMatchGreedyOneToOne(t *testing.T) {
	pairs := []rematch.PairScore{
		{SourceSeg: "s0", TargetSeg: "t0", Score: 0.9},
		{SourceSeg: "s0", TargetSeg: "t1", Score: 0.8},
		{SourceSeg: "s1", TargetSeg: "t0", Score: 0.7},
		{SourceSeg: "s1", TargetSeg: "t1", Score: 0.2},
	}

	a, ok := rematch.Match("SRC", "TGT", pairs, 0.0)
	if !ok {
		t.Fatal("expected an alignment")
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("alignment not mutually exclusive: %v", err)
	}
	if len(a.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(a.Matches))
	}
	// s0-t0 wins first; s0-t1 and s1-t0 are blocked; s1-t1 survives.
	if a.Matches[0].SourceSegments[0] != "s0" || a.Matches[0].TargetSegments[0] != "t0" {
		t.Fatalf("unexpected first match: %v", a.Matches[0])
	}
	if a.Matches[1].SourceSegments[0] != "s1" || a.Matches[1].TargetSegments[0] != "t1" {
		t.Fatalf("unexpected second match: %v", a.Matches[1])
	}
}

func TestMatchThreshold(t *testing.T) {
	pairs := []rematch.PairScore{
		{SourceSeg: "s0", TargetSeg: "t0", Score: 0.9},
		{SourceSeg: "s1", TargetSeg: "t1", Score: 0.3},
	}

	a, ok := rematch.Match("SRC", "TGT", pairs, 0.5)
	if !ok {
		t.Fatal("expected an alignment")
	}
	if len(a.Matches) != 1 {
		t.Fatalf("expected the sub-threshold pair to be dropped, got %d matches", len(a.Matches))
	}
	if a.Matches[0].Score != 0.9 {
		t.Fatalf("unexpected surviving score: %v", a.Matches[0].Score)
	}

	// Threshold is inclusive.
	a, ok = rematch.Match("SRC", "TGT", pairs, 0.3)
	if !ok || len(a.Matches) != 2 {
		t.Fatalf("expected both pairs at inclusive threshold, got ok=%v matches=%v", ok, a)
	}
}

func TestMatchThresholdMonotonic(t *testing.T) {
	// Raising the threshold over a fixed score set can only shrink the
	// matching, never grow it.
	pairs := []rematch.PairScore{
		{SourceSeg: "s0", TargetSeg: "t0", Score: 0.95},
		{SourceSeg: "s0", TargetSeg: "t1", Score: 0.60},
		{SourceSeg: "s1", TargetSeg: "t1", Score: 0.55},
		{SourceSeg: "s2", TargetSeg: "t2", Score: 0.40},
		{SourceSeg: "s3", TargetSeg: "t3", Score: 0.10},
		{SourceSeg: "s4", TargetSeg: "t4", Score: -0.20},
	}

	thresholds := []float64{-1, 0, 0.1, 0.4, 0.55, 0.6, 0.95, 1}
	counts := make([]int, len(thresholds))
	for i, threshold := range thresholds {
		if a, ok := rematch.Match("SRC", "TGT", pairs, threshold); ok {
			if err := a.Validate(); err != nil {
				t.Fatalf("threshold %v: invalid alignment: %v", threshold, err)
			}
			counts[i] = len(a.Matches)
		}
	}
	// The lowest threshold keeps everything the greedy walk allows: s0 claims
	// t0 and blocks s0-t1, the other four sources pair off.
	if counts[0] != 5 {
		t.Fatalf("expected 5 matches at the lowest threshold, got %d", counts[0])
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Fatalf("match count grew from %d to %d between thresholds %v and %v",
				counts[i-1], counts[i], thresholds[i-1], thresholds[i])
		}
	}
	if counts[len(counts)-1] != 0 {
		t.Fatalf("expected no matches above the highest score, got %d", counts[len(counts)-1])
	}
}

func TestMatchNoAlignmentPossible(t *testing.T) {
	pairs := []rematch.PairScore{
		{SourceSeg: "s0", TargetSeg: "t0", Score: -1},
		{SourceSeg: "s1", TargetSeg: "t1", Score: 0.1},
	}
	if a, ok := rematch.Match("SRC", "TGT", pairs, 0.5); ok || a != nil {
		t.Fatalf("expected no alignment, got ok=%v a=%v", ok, a)
	}
	if a, ok := rematch.Match("SRC", "TGT", nil, 0.5); ok || a != nil {
		t.Fatalf("expected no alignment for empty input, got ok=%v a=%v", ok, a)
	}
}

func TestMatchDeterministicTieBreak(t *testing.T) {
	// All scores equal: ties resolve on (source id, target id), so s0 pairs
	// with t0 and s1 with t1 no matter the input order.
	pairs := []rematch.PairScore{
		{SourceSeg: "s1", TargetSeg: "t0", Score: 0.5},
		{SourceSeg: "s0", TargetSeg: "t1", Score: 0.5},
		{SourceSeg: "s1", TargetSeg: "t1", Score: 0.5},
		{SourceSeg: "s0", TargetSeg: "t0", Score: 0.5},
	}
	for trial := 0; trial < 3; trial++ {
		a, ok := rematch.Match("SRC", "TGT", pairs, 0.0)
		if !ok || len(a.Matches) != 2 {
			t.Fatalf("expected 2 matches, got ok=%v a=%v", ok, a)
		}
		if a.Matches[0].SourceSegments[0] != "s0" || a.Matches[0].TargetSegments[0] != "t0" {
			t.Fatalf("trial %d: unexpected first match %v", trial, a.Matches[0])
		}
		if a.Matches[1].SourceSegments[0] != "s1" || a.Matches[1].TargetSegments[0] != "t1" {
			t.Fatalf("trial %d: unexpected second match %v", trial, a.Matches[1])
		}
	}
}

type textEqualScorer struct{}

func (textEqualScorer) Score(src, tgt string) float64 {
	if src == tgt {
		return 1
	}
	return -1
}

func TestRematchCrossProduct(t *testing.T) {
	src := document.New("SIN_NW_1", "sin")
	tgt := document.New("ENG_NW_1", "eng")
	for i, text := range []string{"alpha", "beta", "gamma"} {
		if err := src.AddSegment(segID("s", i), text); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	// Target holds two of the three texts, in a different order.
	if err := tgt.AddSegment("t-0", "gamma"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tgt.AddSegment("t-1", "alpha"); err != nil {
		t.Fatalf("add: %v", err)
	}

	a, ok := rematch.Rematch(src, tgt, textEqualScorer{}, 0.0)
	if !ok {
		t.Fatal("expected an alignment")
	}
	if a.SourceID != "SIN_NW_1" || a.TranslationID != "ENG_NW_1" {
		t.Fatalf("unexpected pair ids: %s x %s", a.SourceID, a.TranslationID)
	}
	if len(a.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(a.Matches))
	}
	got := make(map[string]string)
	for _, match := range a.Matches {
		got[match.SourceSegments[0]] = match.TargetSegments[0]
	}
	if got["s-0"] != "t-1" || got["s-2"] != "t-0" {
		t.Fatalf("unexpected matching: %v", got)
	}
}

func segID(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}
