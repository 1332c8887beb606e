package mining

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"parmine/internal/alignment"
	"parmine/internal/document"
	"parmine/internal/logging"
	"parmine/internal/rematch"
	"parmine/internal/services"
)

// alignmentSubdir is the corpus directory holding the document-pair mappings
// to refine.
const alignmentSubdir = "sentence_alignment"

// lockFile guards the output directory against concurrent batch runs.
const lockFile = ".parmine.lock"

// Summary counts document-pair outcomes for one batch run.
type Summary struct {
	Pairs       int
	Aligned     int
	Skipped     int
	NoAlignment int
	Failed      int
}

// Options tunes a batch run.
type Options struct {
	FoundDir   string
	OutDir     string
	Threshold  float64
	Workers    int
	TargetLang string
}

// Runner realigns every document pair recorded in the corpus alignment
// directory. The scorer must be fully constructed (all tables loaded) before
// Run so workers share it read-only.
type Runner struct {
	opts   Options
	scorer rematch.Scorer
	logger *slog.Logger
}

// New creates a batch runner.
func New(opts Options, scorer rematch.Scorer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{opts: opts, scorer: scorer, logger: logger}
}

// Run processes all document pairs with a fixed-size worker pool and returns
// outcome counts. Only setup failures (missing corpus, held lock) return an
// error; per-pair failures are logged and counted.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	alnDir := filepath.Join(r.opts.FoundDir, alignmentSubdir)
	if _, err := os.Stat(alnDir); err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "mining", "run",
			fmt.Sprintf("alignment directory %s not found", alnDir), err)
	}
	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(r.opts.OutDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return Summary{}, services.Wrap(services.ErrTransient, "mining", "run",
			"output directory is locked by another run", nil)
	}
	defer func() { _ = lock.Unlock() }()

	pairs, err := alignment.ReadPairIDs(alnDir)
	if err != nil {
		return Summary{}, err
	}

	runID := uuid.NewString()
	logger := r.logger.With(
		slog.String(logging.FieldComponent, "mining"),
		slog.String(logging.FieldRunID, runID))
	logger.Info("starting batch realignment",
		slog.Int("pairs", len(pairs)),
		slog.Int("workers", r.opts.Workers),
		slog.Float64("threshold", r.opts.Threshold))

	var aligned, skipped, noAlignment, failed atomic.Int64
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(r.opts.Workers)
	for _, pair := range pairs {
		pair := pair
		group.Go(func() error {
			switch r.alignPair(logger, pair) {
			case outcomeAligned:
				aligned.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			case outcomeNoAlignment:
				noAlignment.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = group.Wait()

	summary := Summary{
		Pairs:       len(pairs),
		Aligned:     int(aligned.Load()),
		Skipped:     int(skipped.Load()),
		NoAlignment: int(noAlignment.Load()),
		Failed:      int(failed.Load()),
	}
	logger.Info("batch realignment finished",
		slog.Int("aligned", summary.Aligned),
		slog.Int("skipped", summary.Skipped),
		slog.Int("no_alignment", summary.NoAlignment),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

type outcome int

const (
	outcomeAligned outcome = iota
	outcomeSkipped
	outcomeNoAlignment
	outcomeFailed
)

func (r *Runner) alignPair(logger *slog.Logger, pair alignment.PairID) outcome {
	srcID, tgtID := r.orient(pair)
	pairLogger := logger.With(
		slog.String(logging.FieldSourceDoc, srcID),
		slog.String(logging.FieldTargetDoc, tgtID))

	outPath := filepath.Join(r.opts.OutDir, srcID+alignment.Extension)
	if _, err := os.Stat(outPath); err == nil {
		pairLogger.Info("skipping pair, output exists", slog.String("path", outPath))
		return outcomeSkipped
	}

	srcDoc, err := document.ReadLTFDoc(document.LTFPath(r.opts.FoundDir, srcID))
	if err != nil {
		pairLogger.Warn("skipping pair", logging.Error(err))
		return outcomeFailed
	}
	tgtDoc, err := document.ReadLTFDoc(document.LTFPath(r.opts.FoundDir, tgtID))
	if err != nil {
		pairLogger.Warn("skipping pair", logging.Error(err))
		return outcomeFailed
	}

	pairLogger.Info("aligning pair",
		slog.Int("source_segments", srcDoc.Len()),
		slog.Int("target_segments", tgtDoc.Len()))
	aln, ok := rematch.Rematch(srcDoc, tgtDoc, r.scorer, r.opts.Threshold)
	if !ok {
		pairLogger.Warn("no alignment possible")
		return outcomeNoAlignment
	}
	if err := alignment.WriteFile(outPath, aln); err != nil {
		pairLogger.Warn("skipping pair", logging.Error(err))
		return outcomeFailed
	}
	pairLogger.Info("wrote alignment", slog.Int("matches", len(aln.Matches)))
	return outcomeAligned
}

// orient ensures the target-language document sits on the target side.
// Corpus pair mappings do not guarantee an order.
func (r *Runner) orient(pair alignment.PairID) (srcID, tgtID string) {
	srcID, tgtID = pair.SourceID, pair.TranslationID
	if document.LangPrefix(srcID) == r.opts.TargetLang {
		srcID, tgtID = tgtID, srcID
	}
	return srcID, tgtID
}
