package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"parmine/internal/scorer"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScorer(); err != nil {
		return err
	}
	if err := c.validateMining(); err != nil {
		return err
	}
	if err := c.validateEval(); err != nil {
		return err
	}
	if err := c.validateIndexer(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScorer() error {
	signals, err := scorer.ParseSignals(c.Scorer.Signals)
	if err != nil {
		return fmt.Errorf("scorer.signals: %w", err)
	}
	if c.Scorer.Combine != "sum" && c.Scorer.Combine != "max" {
		return fmt.Errorf("scorer.combine must be \"sum\" or \"max\", got %q", c.Scorer.Combine)
	}
	for _, signal := range signals {
		switch signal {
		case scorer.SignalEmbeddingSimilarity:
			if c.Embedding.SourcePath == "" || c.Embedding.TargetPath == "" {
				return errors.New("embedding.source_path and embedding.target_path are required when the embedding-similarity signal is enabled")
			}
			if c.Embedding.MaxVocab <= 0 {
				return errors.New("embedding.max_vocab must be positive")
			}
		case scorer.SignalTranslationTable:
			if c.TTable.Path == "" {
				return errors.New("ttable.path is required when the translation-table signal is enabled. Set PARMINE_TTABLE or edit the config file")
			}
		}
	}
	return nil
}

func (c *Config) validateMining() error {
	if c.Mining.Workers <= 0 {
		return errors.New("mining.workers must be positive")
	}
	if c.Mining.TargetLang == "" {
		return errors.New("mining.target_lang must be set")
	}
	for key, code := range map[string]string{
		"mining.source_lang": c.Mining.SourceLang,
		"mining.target_lang": c.Mining.TargetLang,
	} {
		if code == "" {
			continue
		}
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("%s: unrecognized language code %q", key, code)
		}
	}
	return nil
}

func (c *Config) validateEval() error {
	if c.Eval.NegSamples <= 0 {
		return errors.New("eval.neg_samples must be positive")
	}
	return nil
}

func (c *Config) validateIndexer() error {
	if c.Indexer.URL == "" {
		return nil
	}
	if c.Indexer.BatchSize <= 0 {
		return errors.New("indexer.batch_size must be positive when indexer.url is set")
	}
	if c.Indexer.Commit && c.Indexer.SoftCommit {
		return errors.New("indexer.commit and indexer.soft_commit are mutually exclusive")
	}
	return nil
}
