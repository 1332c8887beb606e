package evaluation

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"time"

	"parmine/internal/services"
)

// Scorer rates a candidate sentence pair.
type Scorer interface {
	Score(src, tgt string) float64
}

// Pair is one known-positive example.
type Pair struct {
	Source string
	Target string
}

// Options tunes the harness.
type Options struct {
	// NegSamples is the number of distractor targets drawn per positive.
	NegSamples int
	// Seed fixes the distractor shuffle for reproducible runs. Zero means
	// seed from the clock.
	Seed int64
	// Verbose lists every outranking distractor instead of just the worst.
	Verbose bool
}

// Result summarizes one evaluation run.
type Result struct {
	Positives int
	Negatives int
	// ErrorCount is the number of sources with at least one outranking
	// distractor; ErrorPercent is the same as a percentage of positives.
	ErrorCount   int
	ErrorPercent float64
	// PosDeviation is the root-mean-squared deviation of positive scores
	// from 1.0 (scores above 1 clamp to 1 first). NegDeviation is the same
	// against 0.0 for distractors (scores below 0 clamp to 0).
	PosDeviation float64
	NegDeviation float64
	// CombinedDeviation weights the two deviations by sample counts.
	CombinedDeviation float64
}

type outranking struct {
	score  float64
	target string
}

// Run scores every positive pair and NegSamples distractors per pair, writing
// a line-per-example report plus a summary block to out. The returned
// ErrorPercent supports programmatic use in hyperparameter sweeps.
func Run(scorer Scorer, pairs []Pair, opts Options, out io.Writer) (Result, error) {
	if len(pairs) <= opts.NegSamples {
		return Result{}, services.Wrap(services.ErrConfiguration, "evaluation", "run",
			fmt.Sprintf("need more than %d positive pairs, got %d", opts.NegSamples, len(pairs)), nil)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	targets := make([]string, len(pairs))
	for i, pair := range pairs {
		targets[i] = pair.Target
	}

	posScores := make([]float64, len(pairs))
	for i, pair := range pairs {
		posScores[i] = scorer.Score(pair.Source, pair.Target)
	}

	errsBySource := make([][]outranking, len(pairs))
	negSquaredError := 0.0
	negCount := 0
	for i, pair := range pairs {
		distractors := make([]string, 0, len(targets)-1)
		for _, target := range targets {
			if target != pair.Target {
				distractors = append(distractors, target)
			}
		}
		rng.Shuffle(len(distractors), func(a, b int) {
			distractors[a], distractors[b] = distractors[b], distractors[a]
		})
		if len(distractors) > opts.NegSamples {
			distractors = distractors[:opts.NegSamples]
		}
		for _, distractor := range distractors {
			score := scorer.Score(pair.Source, distractor)
			if score > posScores[i] {
				errsBySource[i] = append(errsBySource[i], outranking{score: score, target: distractor})
			}
			// Anything above zero counts against the negative class.
			negSquaredError += math.Pow(math.Max(0, score), 2)
			negCount++
		}
	}
	// Every distractor pool can be empty when all positives share one target.
	negDeviation := 0.0
	if negCount > 0 {
		negDeviation = math.Sqrt(negSquaredError / float64(negCount))
	}

	posSquaredError := 0.0
	for _, score := range posScores {
		posSquaredError += math.Pow(1.0-math.Min(1.0, score), 2)
	}
	posDeviation := math.Sqrt(posSquaredError / float64(len(pairs)))

	errCount := 0
	for i, pair := range pairs {
		if len(errsBySource[i]) > 0 {
			errCount++
			fmt.Fprintf(out, "%5d\t[FALSE NEG]\t%.4f\t%s\t%s\n", i+1, posScores[i], pair.Source, pair.Target)
			errs := errsBySource[i]
			sort.Slice(errs, func(a, b int) bool { return errs[a].score > errs[b].score })
			if !opts.Verbose {
				errs = errs[:1]
			}
			for _, wrong := range errs {
				fmt.Fprintf(out, "\t[FALSE POS]\t%.4f\t%s\n", wrong.score, wrong.target)
			}
		} else {
			fmt.Fprintf(out, "%5d\t[TRUE  POS]\t%.4f\t%s\t%s\n", i+1, posScores[i], pair.Source, pair.Target)
		}
		fmt.Fprintln(out)
	}

	result := Result{
		Positives:    len(pairs),
		Negatives:    negCount,
		ErrorCount:   errCount,
		ErrorPercent: 100.0 * float64(errCount) / float64(len(pairs)),
		PosDeviation: posDeviation,
		NegDeviation: negDeviation,
	}
	result.CombinedDeviation = (float64(result.Positives)*posDeviation + float64(negCount)*negDeviation) /
		float64(result.Positives+negCount)

	writeSummary(out, result, opts.NegSamples)
	return result, nil
}

func writeSummary(out io.Writer, r Result, negSamples int) {
	fmt.Fprint(out, "\n=============SUMMARY=====================\n")
	fmt.Fprintf(out, "Errors: %.2f%% \n", r.ErrorPercent)
	fmt.Fprintf(out, "Stats : %d out of %d source sentences were scored higher with wrong targets\n",
		r.ErrorCount, r.Positives)
	fmt.Fprintf(out, "Positives: %d  Negatives: %d x %d = %d\n", r.Positives, r.Positives, negSamples, r.Negatives)
	fmt.Fprintf(out, "Mean-squared diff of positives from 1.0: %.4f\n", r.PosDeviation)
	fmt.Fprintf(out, "Mean-squared diff of negatives from 0.0: %.4f\n", r.NegDeviation)
	fmt.Fprintf(out, "Mean-squared diff (averaged)-----------: %.4f\n", r.CombinedDeviation)
}
