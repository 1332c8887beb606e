package evaluation_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"parmine/internal/evaluation"
	"parmine/internal/services"
)

// exactScorer scores 1 for the pairs it was built with and a fixed value for
// everything else.
type exactScorer struct {
	positives map[string]string
	offScore  float64
}

func (s exactScorer) Score(src, tgt string) float64 {
	if s.positives[src] == tgt {
		return 1
	}
	return s.offScore
}

func tenPairs() []evaluation.Pair {
	pairs := make([]evaluation.Pair, 10)
	for i := range pairs {
		pairs[i] = evaluation.Pair{
			Source: fmt.Sprintf("source sentence %d", i),
			Target: fmt.Sprintf("target sentence %d", i),
		}
	}
	return pairs
}

func scorerFor(pairs []evaluation.Pair, offScore float64) exactScorer {
	positives := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		positives[pair.Source] = pair.Target
	}
	return exactScorer{positives: positives, offScore: offScore}
}

func TestRunPerfectScorer(t *testing.T) {
	pairs := tenPairs()
	var out bytes.Buffer
	result, err := evaluation.Run(scorerFor(pairs, 0), pairs, evaluation.Options{NegSamples: 5, Seed: 7}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Positives != 10 {
		t.Fatalf("expected 10 positives, got %d", result.Positives)
	}
	if result.Negatives != 50 {
		t.Fatalf("expected 10 x 5 = 50 negatives, got %d", result.Negatives)
	}
	if result.ErrorCount != 0 || result.ErrorPercent != 0 {
		t.Fatalf("expected no outranking errors, got %d (%.2f%%)", result.ErrorCount, result.ErrorPercent)
	}
	if result.PosDeviation != 0 || result.NegDeviation != 0 || result.CombinedDeviation != 0 {
		t.Fatalf("expected zero deviations: %+v", result)
	}

	report := out.String()
	if !strings.Contains(report, "[TRUE  POS]") {
		t.Fatalf("expected true positive lines in report:\n%s", report)
	}
	if strings.Contains(report, "[FALSE NEG]") {
		t.Fatalf("did not expect false negatives:\n%s", report)
	}
	if !strings.Contains(report, "Errors: 0.00%") {
		t.Fatalf("expected zero error summary:\n%s", report)
	}
}

// invertedScorer prefers every distractor over the true target.
type invertedScorer struct {
	positives map[string]string
}

func (s invertedScorer) Score(src, tgt string) float64 {
	if s.positives[src] == tgt {
		return 0.1
	}
	return 0.9
}

func TestRunOutrankingErrors(t *testing.T) {
	pairs := tenPairs()
	positives := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		positives[pair.Source] = pair.Target
	}

	var out bytes.Buffer
	result, err := evaluation.Run(invertedScorer{positives}, pairs, evaluation.Options{NegSamples: 5, Seed: 7}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ErrorCount != 10 || result.ErrorPercent != 100 {
		t.Fatalf("expected every source outranked, got %d (%.2f%%)", result.ErrorCount, result.ErrorPercent)
	}

	// Distractors all score 0.9: negative deviation is 0.9. Positives all
	// score 0.1: deviation from 1.0 is 0.9.
	if math.Abs(result.NegDeviation-0.9) > 1e-12 {
		t.Fatalf("expected negative deviation 0.9, got %v", result.NegDeviation)
	}
	if math.Abs(result.PosDeviation-0.9) > 1e-12 {
		t.Fatalf("expected positive deviation 0.9, got %v", result.PosDeviation)
	}
	if math.Abs(result.CombinedDeviation-0.9) > 1e-12 {
		t.Fatalf("expected combined deviation 0.9, got %v", result.CombinedDeviation)
	}

	report := out.String()
	if !strings.Contains(report, "[FALSE NEG]") || !strings.Contains(report, "[FALSE POS]") {
		t.Fatalf("expected error lines in report:\n%s", report)
	}
}

func TestRunVerboseListsAllOutrankings(t *testing.T) {
	pairs := tenPairs()
	positives := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		positives[pair.Source] = pair.Target
	}

	var terse, verbose bytes.Buffer
	if _, err := evaluation.Run(invertedScorer{positives}, pairs, evaluation.Options{NegSamples: 5, Seed: 7}, &terse); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := evaluation.Run(invertedScorer{positives}, pairs, evaluation.Options{NegSamples: 5, Seed: 7, Verbose: true}, &verbose); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := strings.Count(terse.String(), "[FALSE POS]"); got != 10 {
		t.Fatalf("expected one distractor line per source, got %d", got)
	}
	if got := strings.Count(verbose.String(), "[FALSE POS]"); got != 50 {
		t.Fatalf("expected every distractor listed in verbose mode, got %d", got)
	}
}

func TestRunSeedReproducible(t *testing.T) {
	pairs := tenPairs()
	scorer := scorerFor(pairs, 0.2)

	var first, second bytes.Buffer
	r1, err := evaluation.Run(scorer, pairs, evaluation.Options{NegSamples: 5, Seed: 42}, &first)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	r2, err := evaluation.Run(scorer, pairs, evaluation.Options{NegSamples: 5, Seed: 42}, &second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("same seed gave different results: %+v vs %+v", r1, r2)
	}
	if first.String() != second.String() {
		t.Fatal("same seed gave different reports")
	}
}

func TestRunAllPositivesShareOneTarget(t *testing.T) {
	// A degenerate corpus where every positive has the same target leaves all
	// distractor pools empty; the deviations must stay finite.
	pairs := make([]evaluation.Pair, 4)
	for i := range pairs {
		pairs[i] = evaluation.Pair{
			Source: fmt.Sprintf("source sentence %d", i),
			Target: "the one shared target",
		}
	}

	var out bytes.Buffer
	result, err := evaluation.Run(scorerFor(pairs, 0.2), pairs, evaluation.Options{NegSamples: 3, Seed: 1}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Negatives != 0 {
		t.Fatalf("expected no negatives, got %d", result.Negatives)
	}
	if math.IsNaN(result.NegDeviation) || math.IsNaN(result.CombinedDeviation) {
		t.Fatalf("expected finite deviations, got %+v", result)
	}
	if result.NegDeviation != 0 {
		t.Fatalf("expected zero negative deviation, got %v", result.NegDeviation)
	}
}

func TestRunRequiresEnoughPairs(t *testing.T) {
	pairs := tenPairs()
	_, err := evaluation.Run(scorerFor(pairs, 0), pairs, evaluation.Options{NegSamples: 10, Seed: 1}, &bytes.Buffer{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
