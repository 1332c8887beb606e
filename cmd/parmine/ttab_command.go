package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"parmine/internal/ttable"
)

func newTTabCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ttab",
		Short: "Compile and inspect translation tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newTTabCompileCommand(ctx))
	cmd.AddCommand(newTTabInfoCommand(ctx))
	return cmd
}

func newTTabCompileCommand(ctx *commandContext) *cobra.Command {
	var opts ttable.CompileOptions
	var outPath string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile Giza vocabulary and probability files into a table database",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			table, err := ttable.Compile(opts, logger)
			if err != nil {
				return err
			}
			if err := table.Save(cmd.Context(), outPath); err != nil {
				return err
			}
			cmd.Printf("compiled table written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.SourceLang, "src", "s", "", "Source language code, example: sin")
	cmd.Flags().StringVarP(&opts.TargetLang, "tgt", "t", "eng", "Target language code")
	cmd.Flags().StringVar(&opts.SourceVocabPath, "src-vocab", "", "Source vocabulary file (index word count per line)")
	cmd.Flags().StringVar(&opts.TargetVocabPath, "tgt-vocab", "", "Target vocabulary file (index word count per line)")
	cmd.Flags().StringVar(&opts.FwdPath, "fwd-table", "", "Forward Giza table, example: GIZA.normal.t3.final")
	cmd.Flags().StringVar(&opts.InvPath, "inv-table", "", "Inverse Giza table, example: GIZA.invers.t3.final")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output database path")
	for _, required := range []string{"src", "src-vocab", "tgt-vocab", "fwd-table", "out"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func newTTabInfoCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <table.db>",
		Short: "Show sizes of a compiled translation table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ttable.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Println(renderSummary("Field", "Value", [][2]string{
				{"Source language", table.SourceLang},
				{"Target language", table.TargetLang},
				{"Source vocabulary", strconv.Itoa(len(table.SourceVocab))},
				{"Target vocabulary", strconv.Itoa(len(table.TargetVocab))},
				{"Forward entries", strconv.Itoa(len(table.Fwd))},
				{"Inverse entries", strconv.Itoa(len(table.Inv))},
			}))
			return nil
		},
	}
	return cmd
}
