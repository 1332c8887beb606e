package scorer

import (
	"context"
	"log/slog"

	"parmine/internal/embedding"
	"parmine/internal/logging"
	"parmine/internal/services"
	"parmine/internal/ttable"
)

// Options carries everything Build needs to assemble a scorer. The fields
// mirror the scorer, embedding, and ttable configuration sections.
type Options struct {
	Signals   []Signal
	Combine   string
	Lowercase bool
	Debug     bool

	Embedding embedding.SimilarityOptions
	// TTablePath points at a compiled translation table.
	TTablePath string
}

// Build assembles the configured scorer: cheap signals wrapped in a Unified
// scorer around zero or more expensive final scorers. All model files are
// loaded eagerly here, before any parallel dispatch, so workers share
// read-only tables.
//
// When only expensive signals are configured the final scorer is returned
// bare, without the Unified wrapper.
func Build(ctx context.Context, opts Options, logger *slog.Logger) (Scorer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var cheap []Signal
	var finals []Scorer

	for _, signal := range opts.Signals {
		logger.Debug("signal enabled", slog.String(logging.FieldSignal, signal.String()))
		switch signal {
		case SignalEmbeddingSimilarity:
			similarity, err := embedding.NewSimilarity(opts.Embedding, logger)
			if err != nil {
				return nil, err
			}
			finals = append(finals, similarity)
		case SignalTranslationTable:
			if opts.TTablePath == "" {
				return nil, services.Wrap(services.ErrConfiguration, "scorer", "build",
					"translation-table signal requires a compiled table path", nil)
			}
			table, err := ttable.Open(ctx, opts.TTablePath)
			if err != nil {
				return nil, err
			}
			translation, err := ttable.NewScorer(table, ttable.ScorerOptions{
				Combine:   opts.Combine,
				Lowercase: opts.Lowercase,
			}, logger)
			if err != nil {
				return nil, err
			}
			finals = append(finals, translation)
		default:
			cheap = append(cheap, signal)
		}
	}

	var final Scorer
	switch len(finals) {
	case 0:
		final = nil
	case 1:
		final = finals[0]
	default:
		final = NewAggregate(finals...)
	}

	if len(cheap) == 0 {
		if final == nil {
			return nil, services.Wrap(services.ErrConfiguration, "scorer", "build", "no signals configured", nil)
		}
		return final, nil
	}
	return NewUnified(cheap, final, opts.Debug, logger)
}
