package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains corpus directory configuration.
type Paths struct {
	// FoundDir is the corpus root holding per-language ltf/ subdirectories and
	// the sentence_alignment directory with document-pair mappings.
	FoundDir string `toml:"found_dir"`
	OutDir   string `toml:"out_dir"`
	LogDir   string `toml:"log_dir"`
}

// Scorer selects and tunes the sentence-pair scoring signals.
type Scorer struct {
	// Signals is a comma-separated list drawn from: length-by-char,
	// length-by-token, copy-pattern, ascii-ratio, embedding-similarity,
	// translation-table.
	Signals   string `toml:"signals"`
	Combine   string `toml:"combine"`
	Lowercase bool   `toml:"lowercase"`
	Debug     bool   `toml:"debug"`
}

// Embedding configures the cross-lingual similarity signal.
type Embedding struct {
	SourcePath string `toml:"source_path"`
	TargetPath string `toml:"target_path"`
	IDFPath    string `toml:"idf_path"`
	MaxVocab   int    `toml:"max_vocab"`
	Normalize  bool   `toml:"normalize"`
}

// TTable configures the translation-table signal.
type TTable struct {
	// Path points at a compiled translation-table database (parmine ttab compile).
	Path string `toml:"path"`
}

// Mining configures the document-pair realignment batch.
type Mining struct {
	Threshold  float64 `toml:"threshold"`
	Workers    int     `toml:"workers"`
	SourceLang string  `toml:"source_lang"`
	TargetLang string  `toml:"target_lang"`
}

// Eval configures the scorer evaluation harness.
type Eval struct {
	NegSamples int   `toml:"neg_samples"`
	Seed       int64 `toml:"seed"`
	Verbose    bool  `toml:"verbose"`
}

// Indexer configures the search-service bulk sink.
type Indexer struct {
	URL        string `toml:"url"`
	BatchSize  int    `toml:"batch_size"`
	Commit     bool   `toml:"commit"`
	SoftCommit bool   `toml:"soft_commit"`
}

// Config is the root configuration object threaded through constructors.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Scorer    Scorer    `toml:"scorer"`
	Embedding Embedding `toml:"embedding"`
	TTable    TTable    `toml:"ttable"`
	Mining    Mining    `toml:"mining"`
	Eval      Eval      `toml:"eval"`
	Indexer   Indexer   `toml:"indexer"`
	LogLevel  string    `toml:"log_level"`
	LogFormat string    `toml:"log_format"`
}

// DefaultConfigPath returns the expanded default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/parmine/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("parmine.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the writable directories a batch run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
