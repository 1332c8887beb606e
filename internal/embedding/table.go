package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"parmine/internal/services"
)

// Table maps words to fixed-dimension vectors.
type Table struct {
	vectors   map[string][]float64
	dimension int
	// firstWord is the first-inserted vocabulary entry, kept as the fallback
	// vector for sentences with no in-vocabulary words.
	firstWord string
}

// Load reads a word2vec-style text embedding file, capping the vocabulary at
// maxVocab entries. Files ending in .gz are decompressed transparently. The
// first line is a header and is skipped. A repeated word or an inconsistent
// vector dimension is a fatal data error.
func Load(path string, maxVocab int) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "embedding", "load", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, services.Wrap(services.ErrData, "embedding", "load", "open gzip "+path, err)
		}
		defer gz.Close()
		reader = gz
	}

	table := &Table{vectors: make(map[string][]float64)}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			// Header: vocabulary size and dimension. Not trusted, just skipped.
			continue
		}
		line := strings.TrimRight(scanner.Text(), " \r\n")
		if line == "" {
			continue
		}
		word, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, services.Wrap(services.ErrData, "embedding", "load",
				fmt.Sprintf("%s:%d: no vector on line", path, lineNo), nil)
		}
		if _, exists := table.vectors[word]; exists {
			return nil, services.Wrap(services.ErrData, "embedding", "load",
				fmt.Sprintf("%s:%d: word %q found twice", path, lineNo, word), nil)
		}
		vector, err := parseVector(rest)
		if err != nil {
			return nil, services.Wrap(services.ErrData, "embedding", "load",
				fmt.Sprintf("%s:%d", path, lineNo), err)
		}
		if table.dimension == 0 {
			table.dimension = len(vector)
		} else if len(vector) != table.dimension {
			return nil, services.Wrap(services.ErrData, "embedding", "load",
				fmt.Sprintf("%s:%d: dimension %d, expected %d", path, lineNo, len(vector), table.dimension), nil)
		}
		if len(table.vectors) == 0 {
			table.firstWord = word
		}
		table.vectors[word] = vector
		if len(table.vectors) == maxVocab {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrData, "embedding", "load", path, err)
	}
	if len(table.vectors) == 0 {
		return nil, services.Wrap(services.ErrData, "embedding", "load", path+": empty vocabulary", nil)
	}
	return table, nil
}

// Len returns the vocabulary size.
func (t *Table) Len() int { return len(t.vectors) }

// Dimension returns the vector dimension.
func (t *Table) Dimension() int { return t.dimension }

// Vector returns the vector for word, if present.
func (t *Table) Vector(word string) ([]float64, bool) {
	v, ok := t.vectors[word]
	return v, ok
}

func parseVector(fields string) ([]float64, error) {
	parts := strings.Fields(fields)
	vector := make([]float64, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse component %d: %w", i, err)
		}
		vector[i] = value
	}
	return vector, nil
}
