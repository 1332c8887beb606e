package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parmine/internal/evaluation"
)

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var inPath string
	var outPath string
	var negSamples int
	var seed int64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the configured scorer against known-positive pairs",
		Long: "Eval treats the input as parallel text (positive pairs) and scores each source\n" +
			"against randomly sampled wrong targets to measure ranking quality.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := evaluation.Options{
				NegSamples: cfg.Eval.NegSamples,
				Seed:       cfg.Eval.Seed,
				Verbose:    cfg.Eval.Verbose,
			}
			if cmd.Flags().Changed("neg-samples") {
				opts.NegSamples = negSamples
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}

			pairScorer, err := buildScorer(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			in, err := openInput(inPath)
			if err != nil {
				return err
			}
			defer in.Close()
			lines, err := readPairLines(in)
			if err != nil {
				return err
			}
			pairs := make([]evaluation.Pair, len(lines))
			for i, line := range lines {
				pairs[i] = evaluation.Pair{Source: line[0], Target: line[1]}
			}

			out, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			result, err := evaluation.Run(pairScorer, pairs, opts, out)
			if err != nil {
				return err
			}

			cmd.Println(renderSummary("Metric", "Value", [][2]string{
				{"Positives", fmt.Sprintf("%d", result.Positives)},
				{"Negatives", fmt.Sprintf("%d", result.Negatives)},
				{"Outranking errors", fmt.Sprintf("%d (%.2f%%)", result.ErrorCount, result.ErrorPercent)},
				{"Positive deviation from 1.0", fmt.Sprintf("%.4f", result.PosDeviation)},
				{"Negative deviation from 0.0", fmt.Sprintf("%.4f", result.NegDeviation)},
				{"Combined deviation", fmt.Sprintf("%.4f", result.CombinedDeviation)},
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "inp", "i", "-", "Positive pairs, source<TAB>target per line ('-' for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Report output ('-' for stdout)")
	cmd.Flags().IntVarP(&negSamples, "neg-samples", "n", 0, "Negative samples per positive pair")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed for reproducible sampling")

	return cmd
}
