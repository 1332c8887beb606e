package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var inPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score source<TAB>target sentence pairs from a file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
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
			pairs, err := readPairLines(in)
			if err != nil {
				return err
			}

			out, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			for _, pair := range pairs {
				score := pairScorer.Score(pair[0], pair[1])
				fmt.Fprintf(out, "%.4f\t%s\t%s\n", score, pair[0], pair[1])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "inp", "i", "-", "Input file, source<TAB>target per line ('-' for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output file ('-' for stdout)")

	return cmd
}
