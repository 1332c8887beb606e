package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"parmine/internal/config"
	"parmine/internal/embedding"
	"parmine/internal/scorer"
)

// scorerOptions maps configuration onto scorer build options.
func scorerOptions(cfg *config.Config) (scorer.Options, error) {
	signals, err := scorer.ParseSignals(cfg.Scorer.Signals)
	if err != nil {
		return scorer.Options{}, err
	}
	return scorer.Options{
		Signals:   signals,
		Combine:   cfg.Scorer.Combine,
		Lowercase: cfg.Scorer.Lowercase,
		Debug:     cfg.Scorer.Debug,
		Embedding: embedding.SimilarityOptions{
			SourcePath: cfg.Embedding.SourcePath,
			TargetPath: cfg.Embedding.TargetPath,
			IDFPath:    cfg.Embedding.IDFPath,
			MaxVocab:   cfg.Embedding.MaxVocab,
			Normalize:  cfg.Embedding.Normalize,
		},
		TTablePath: cfg.TTable.Path,
	}, nil
}

func buildScorer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scorer.Scorer, error) {
	opts, err := scorerOptions(cfg)
	if err != nil {
		return nil, err
	}
	return scorer.Build(ctx, opts, logger)
}

// openInput returns stdin for "" or "-", otherwise the named file.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput returns stdout for "" or "-", otherwise creates the named file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// readPairLines parses "source<TAB>target" lines.
func readPairLines(r io.Reader) ([][2]string, error) {
	var pairs [][2]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		src, tgt, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected source<TAB>target", lineNo)
		}
		pairs = append(pairs, [2]string{src, tgt})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
