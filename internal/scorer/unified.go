package scorer

import (
	"fmt"
	"log/slog"

	"parmine/internal/logging"
	"parmine/internal/services"
)

// Scorer is the capability every scoring variant implements.
type Scorer interface {
	// Score rates a sentence pair. Higher means more likely a translation.
	Score(src, tgt string) float64
}

// cheapFunc is one heuristic vote over a raw sentence pair.
type cheapFunc func(src, tgt string) float64

// Unified combines ordered cheap signals with an optional expensive final
// scorer. Scoring is deterministic for fixed inputs and configuration.
type Unified struct {
	signals []Signal
	cheap   []cheapFunc
	final   Scorer
	debug   bool
	logger  *slog.Logger
}

// NewUnified builds a Unified scorer over the given cheap signals. final may
// be nil, in which case undecided pairs score notSure; that setting is logged
// as not recommended.
func NewUnified(signals []Signal, final Scorer, debug bool, logger *slog.Logger) (*Unified, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	cheap := make([]cheapFunc, 0, len(signals))
	for _, signal := range signals {
		fn, err := cheapFuncFor(signal)
		if err != nil {
			return nil, err
		}
		cheap = append(cheap, fn)
	}
	if final == nil {
		logger.Warn("unified scorer has no final scorer; undecided pairs will score 0")
	}
	return &Unified{
		signals: signals,
		cheap:   cheap,
		final:   final,
		debug:   debug,
		logger:  logger.With(slog.String(logging.FieldComponent, "scorer")),
	}, nil
}

// Score runs the cheap signals in order, short-circuiting once the running
// total crosses an accept or reject threshold, and otherwise delegates to the
// final scorer. The result always lies in [finalNegScore, finalPosScore].
func (u *Unified) Score(src, tgt string) float64 {
	total := 0.0
	for _, fn := range u.cheap {
		total += fn(src, tgt)
		if total >= mustAccept || total <= mustReject {
			break
		}
	}

	var final float64
	switch {
	case total >= mustAccept:
		final = finalPosScore
	case total <= mustReject:
		final = finalNegScore
	case u.final != nil:
		final = clampFinal(u.final.Score(src, tgt))
		if final < finalNegScore || final > finalPosScore {
			panic(fmt.Sprintf("final scorer returned %v, outside [%v, %v]", final, finalNegScore, finalPosScore))
		}
	default:
		final = notSure
	}

	if u.debug {
		u.logger.Debug("scored pair",
			slog.Float64("heuristic_total", total),
			slog.Float64("score", final),
			slog.String("src", src),
			slog.String("tgt", tgt))
	}
	return final
}

// finalEpsilon absorbs floating-point overshoot from final scorers. Cosine of
// two near-identical vectors can land one ulp above 1.0; that is rounding
// noise, not a contract violation.
const finalEpsilon = 1e-9

func clampFinal(score float64) float64 {
	switch {
	case score > finalPosScore && score <= finalPosScore+finalEpsilon:
		return finalPosScore
	case score < finalNegScore && score >= finalNegScore-finalEpsilon:
		return finalNegScore
	}
	return score
}

func cheapFuncFor(signal Signal) (cheapFunc, error) {
	switch signal {
	case SignalLengthByChar:
		return charLenScore, nil
	case SignalLengthByToken:
		return tokLenScore, nil
	case SignalCopyPattern:
		return copyScore, nil
	case SignalASCIIRatio:
		return asciiRatioScore, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "scorer", "build",
			fmt.Sprintf("signal %s is not a cheap heuristic", signal), nil)
	}
}
