package scorer

import (
	"fmt"
	"strings"

	"parmine/internal/services"
)

// Signal identifies one scoring heuristic from the fixed configuration
// vocabulary.
type Signal int

const (
	// SignalLengthByChar compares character-count ratios.
	SignalLengthByChar Signal = iota
	// SignalLengthByToken compares whitespace-token-count ratios.
	SignalLengthByToken
	// SignalCopyPattern checks that numerals and URLs were copied verbatim.
	SignalCopyPattern
	// SignalASCIIRatio compares densities of non-alphabetic latin-1 characters.
	SignalASCIIRatio
	// SignalEmbeddingSimilarity scores by bag-of-words embedding cosine.
	SignalEmbeddingSimilarity
	// SignalTranslationTable scores by bidirectional translation-table evidence.
	SignalTranslationTable
)

var signalNames = map[Signal]string{
	SignalLengthByChar:        "length-by-char",
	SignalLengthByToken:       "length-by-token",
	SignalCopyPattern:         "copy-pattern",
	SignalASCIIRatio:          "ascii-ratio",
	SignalEmbeddingSimilarity: "embedding-similarity",
	SignalTranslationTable:    "translation-table",
}

func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return "unknown"
}

// Cheap reports whether the signal is a cheap heuristic, as opposed to an
// expensive model-backed final scorer.
func (s Signal) Cheap() bool {
	switch s {
	case SignalEmbeddingSimilarity, SignalTranslationTable:
		return false
	default:
		return true
	}
}

// ParseSignal resolves one signal name.
func ParseSignal(name string) (Signal, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for signal, known := range signalNames {
		if name == known {
			return signal, nil
		}
	}
	return 0, services.Wrap(services.ErrConfiguration, "scorer", "parse", fmt.Sprintf("unknown signal %q", name), nil)
}

// ParseSignals resolves a comma-separated signal list, preserving order.
// Order matters: cheap signals are evaluated in the order given.
func ParseSignals(csv string) ([]Signal, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, services.Wrap(services.ErrConfiguration, "scorer", "parse", "no signals configured", nil)
	}
	parts := strings.Split(csv, ",")
	signals := make([]Signal, 0, len(parts))
	for _, part := range parts {
		signal, err := ParseSignal(part)
		if err != nil {
			return nil, err
		}
		signals = append(signals, signal)
	}
	return signals, nil
}
