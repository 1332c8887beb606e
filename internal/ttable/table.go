package ttable

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"parmine/internal/logging"
	"parmine/internal/services"
)

// nullIndex is Giza's reserved index for the NULL word. Probability entries
// referencing it carry no lexical evidence and are dropped at compile time.
const nullIndex = 0

// Table is a bidirectional word-translation probability table.
type Table struct {
	SourceLang string
	TargetLang string
	// Fwd maps source word -> target word -> P(target|source).
	Fwd map[string]map[string]float64
	// Inv maps target word -> source word -> P(source|target).
	Inv map[string]map[string]float64
	// SourceVocab and TargetVocab carry corpus frequencies for inspection.
	SourceVocab map[string]int
	TargetVocab map[string]int
}

// CompileOptions names the Giza input files for Compile.
type CompileOptions struct {
	SourceLang      string
	TargetLang      string
	SourceVocabPath string
	TargetVocabPath string
	FwdPath         string
	// InvPath is optional; without it the inverse table is empty and reverse
	// evidence degrades to copy-token checks only.
	InvPath string
}

// Compile parses vocabulary and probability files into an in-memory Table.
// Malformed vocabulary lines are fatal configuration input; probability rows
// referencing unknown vocabulary indexes are skipped with a warning.
func Compile(opts CompileOptions, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(slog.String(logging.FieldComponent, "ttable"))

	srcVocab, srcFreq, err := loadVocab(opts.SourceVocabPath)
	if err != nil {
		return nil, err
	}
	tgtVocab, tgtFreq, err := loadVocab(opts.TargetVocabPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded vocabularies",
		slog.Int("source", len(srcVocab)), slog.Int("target", len(tgtVocab)))

	fwd, skipped, err := readProbs(opts.FwdPath, srcVocab, tgtVocab)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Warn("skipped forward probability rows with unknown indexes", slog.Int("rows", skipped))
	}

	inv := map[string]map[string]float64{}
	if opts.InvPath != "" {
		inv, skipped, err = readProbs(opts.InvPath, tgtVocab, srcVocab)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			logger.Warn("skipped inverse probability rows with unknown indexes", slog.Int("rows", skipped))
		}
	}
	logger.Info("compiled translation table", slog.Int("fwd", len(fwd)), slog.Int("inv", len(inv)))

	return &Table{
		SourceLang:  opts.SourceLang,
		TargetLang:  opts.TargetLang,
		Fwd:         fwd,
		Inv:         inv,
		SourceVocab: srcFreq,
		TargetVocab: tgtFreq,
	}, nil
}

// loadVocab reads "index word count" lines into an index->word map plus
// word->frequency map. Index 0 stays reserved for the NULL word.
func loadVocab(path string) (map[int]string, map[string]int, error) {
	reader, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, nil, err
	}
	defer closeFn()

	idToWord := make(map[int]string)
	freq := make(map[string]int)
	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, nil, services.Wrap(services.ErrConfiguration, "ttable", "load vocab",
				fmt.Sprintf("%s:%d: expected \"index word count\"", path, lineNo), nil)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, services.Wrap(services.ErrConfiguration, "ttable", "load vocab",
				fmt.Sprintf("%s:%d: bad index", path, lineNo), err)
		}
		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, services.Wrap(services.ErrConfiguration, "ttable", "load vocab",
				fmt.Sprintf("%s:%d: bad count", path, lineNo), err)
		}
		if idx == nullIndex {
			return nil, nil, services.Wrap(services.ErrConfiguration, "ttable", "load vocab",
				fmt.Sprintf("%s:%d: index 0 is reserved", path, lineNo), nil)
		}
		if _, dup := idToWord[idx]; dup {
			return nil, nil, services.Wrap(services.ErrConfiguration, "ttable", "load vocab",
				fmt.Sprintf("%s:%d: index %d repeated", path, lineNo, idx), nil)
		}
		idToWord[idx] = fields[1]
		freq[fields[1]] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, services.Wrap(services.ErrData, "ttable", "load vocab", path, err)
	}
	return idToWord, freq, nil
}

// readProbs parses "head_index tail_index probability" rows. Rows referencing
// the NULL index or an unknown index are counted and skipped (lenient policy
// for noisy Giza output).
func readProbs(path string, headVocab, tailVocab map[int]string) (map[string]map[string]float64, int, error) {
	reader, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, 0, err
	}
	defer closeFn()

	table := make(map[string]map[string]float64)
	skipped := 0
	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, 0, services.Wrap(services.ErrData, "ttable", "read probabilities",
				fmt.Sprintf("%s:%d: expected three fields", path, lineNo), nil)
		}
		headIdx, err1 := strconv.Atoi(fields[0])
		tailIdx, err2 := strconv.Atoi(fields[1])
		prob, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, 0, services.Wrap(services.ErrData, "ttable", "read probabilities",
				fmt.Sprintf("%s:%d: malformed row", path, lineNo), nil)
		}
		if headIdx == nullIndex || tailIdx == nullIndex {
			skipped++
			continue
		}
		head, headOK := headVocab[headIdx]
		tail, tailOK := tailVocab[tailIdx]
		if !headOK || !tailOK {
			skipped++
			continue
		}
		row := table[head]
		if row == nil {
			row = make(map[string]float64)
			table[head] = row
		}
		row[tail] = prob
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, services.Wrap(services.ErrData, "ttable", "read probabilities", path, err)
	}
	return table, skipped, nil
}

func openMaybeGzip(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrNotFound, "ttable", "open", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, file.Close, nil
	}
	gz, err := gzip.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, services.Wrap(services.ErrData, "ttable", "open", "gzip "+path, err)
	}
	closeFn := func() error {
		_ = gz.Close()
		return file.Close()
	}
	return gz, closeFn, nil
}
