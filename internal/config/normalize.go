package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeResources(); err != nil {
		return err
	}
	c.normalizeScorer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.FoundDir, err = expandPath(c.Paths.FoundDir); err != nil {
		return fmt.Errorf("paths.found_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutDir) == "" {
		c.Paths.OutDir = defaultOutDir
	}
	if c.Paths.OutDir, err = expandPath(c.Paths.OutDir); err != nil {
		return fmt.Errorf("paths.out_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeResources() error {
	if c.TTable.Path == "" {
		if value, ok := os.LookupEnv("PARMINE_TTABLE"); ok {
			c.TTable.Path = value
		}
	}
	var err error
	if c.Embedding.SourcePath, err = expandPath(c.Embedding.SourcePath); err != nil {
		return fmt.Errorf("embedding.source_path: %w", err)
	}
	if c.Embedding.TargetPath, err = expandPath(c.Embedding.TargetPath); err != nil {
		return fmt.Errorf("embedding.target_path: %w", err)
	}
	if c.Embedding.IDFPath, err = expandPath(c.Embedding.IDFPath); err != nil {
		return fmt.Errorf("embedding.idf_path: %w", err)
	}
	if c.TTable.Path, err = expandPath(c.TTable.Path); err != nil {
		return fmt.Errorf("ttable.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeScorer() {
	c.Scorer.Signals = strings.TrimSpace(c.Scorer.Signals)
	c.Scorer.Combine = strings.ToLower(strings.TrimSpace(c.Scorer.Combine))
	if c.Scorer.Combine == "" {
		c.Scorer.Combine = defaultCombine
	}
	c.Mining.SourceLang = strings.ToLower(strings.TrimSpace(c.Mining.SourceLang))
	c.Mining.TargetLang = strings.ToLower(strings.TrimSpace(c.Mining.TargetLang))
	if c.Mining.TargetLang == "" {
		c.Mining.TargetLang = defaultTargetLang
	}
}

func (c *Config) normalizeLogging() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}
