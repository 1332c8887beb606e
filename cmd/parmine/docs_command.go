package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parmine/internal/document"
)

func newDocsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Inspect tokenized documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newDocsDumpCommand(ctx))
	return cmd
}

func newDocsDumpCommand(_ *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "dump <ltf-dir>",
		Short: "Dump an LTF directory as doc_id<TAB>seg_id<TAB>text records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := document.ReadLTFDir(args[0])
			if err != nil {
				return err
			}

			out, err := openOutput(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			for _, doc := range docs {
				for _, seg := range doc.Segments() {
					fmt.Fprintf(out, "%s\t%s\t%s\n", doc.ID, seg.ID, seg.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output file ('-' for stdout)")

	return cmd
}
