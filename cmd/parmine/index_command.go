package main

import (
	"errors"

	"github.com/spf13/cobra"

	"parmine/internal/document"
	"parmine/internal/indexer"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "index <ltf-dir>",
		Short: "Post tokenized segments to the search index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			serviceURL := cfg.Indexer.URL
			if url != "" {
				serviceURL = url
			}
			if serviceURL == "" {
				return errors.New("no index service configured: set indexer.url or pass --url")
			}

			docs, err := document.ReadLTFDir(args[0])
			if err != nil {
				return err
			}
			var records []indexer.Record
			for _, doc := range docs {
				records = append(records, indexer.FromDocument(doc)...)
			}

			client := indexer.New(serviceURL, nil, logger)
			posted, err := client.PostAll(cmd.Context(), records, cfg.Indexer.BatchSize, indexer.PostOptions{
				Commit:     cfg.Indexer.Commit,
				SoftCommit: cfg.Indexer.SoftCommit,
			})
			if err != nil {
				return err
			}
			cmd.Printf("posted %d records from %d documents\n", posted, len(docs))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Index service base URL (overrides indexer.url)")

	return cmd
}
