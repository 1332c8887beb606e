package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"parmine/internal/mining"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var foundDir string
	var outDir string
	var threshold float64
	var workers int

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Realign every document pair in the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := mining.Options{
				FoundDir:   cfg.Paths.FoundDir,
				OutDir:     cfg.Paths.OutDir,
				Threshold:  cfg.Mining.Threshold,
				Workers:    cfg.Mining.Workers,
				TargetLang: cfg.Mining.TargetLang,
			}
			if foundDir != "" {
				opts.FoundDir = foundDir
			}
			if outDir != "" {
				opts.OutDir = outDir
			}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = threshold
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			pairScorer, err := buildScorer(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			summary, err := mining.New(opts, pairScorer, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(renderSummary("Outcome", "Pairs", [][2]string{
				{"Aligned", strconv.Itoa(summary.Aligned)},
				{"Skipped (output exists)", strconv.Itoa(summary.Skipped)},
				{"No alignment possible", strconv.Itoa(summary.NoAlignment)},
				{"Failed", strconv.Itoa(summary.Failed)},
				{"Total", strconv.Itoa(summary.Pairs)},
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&foundDir, "found-dir", "", "Corpus root (overrides paths.found_dir)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Alignment output directory (overrides paths.out_dir)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum pair score to keep")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size")

	return cmd
}
