package config

const (
	defaultOutDir     = "~/.local/share/parmine/alignments"
	defaultLogDir     = "~/.local/share/parmine/logs"
	defaultSignals    = "length-by-char,length-by-token,copy-pattern,ascii-ratio"
	defaultCombine    = "sum"
	defaultMaxVocab   = 1_000_000
	defaultThreshold  = 0.0
	defaultWorkers    = 2
	defaultTargetLang = "eng"
	defaultNegSamples = 40
	defaultBatchSize  = 100
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutDir: defaultOutDir,
			LogDir: defaultLogDir,
		},
		Scorer: Scorer{
			Signals:   defaultSignals,
			Combine:   defaultCombine,
			Lowercase: true,
		},
		Embedding: Embedding{
			MaxVocab: defaultMaxVocab,
		},
		Mining: Mining{
			Threshold:  defaultThreshold,
			Workers:    defaultWorkers,
			TargetLang: defaultTargetLang,
		},
		Eval: Eval{
			NegSamples: defaultNegSamples,
			Verbose:    true,
		},
		Indexer: Indexer{
			BatchSize: defaultBatchSize,
		},
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
