package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"parmine/internal/services"
)

// LoadIDF reads a "word weight" per line IDF table.
func LoadIDF(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "embedding", "load idf", path, err)
	}
	defer file.Close()

	weights := make(map[string]float64)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, services.Wrap(services.ErrData, "embedding", "load idf",
				fmt.Sprintf("%s:%d: expected \"word weight\"", path, lineNo), nil)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return nil, services.Wrap(services.ErrData, "embedding", "load idf",
				fmt.Sprintf("%s:%d", path, lineNo), err)
		}
		weights[word] = weight
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrData, "embedding", "load idf", path, err)
	}
	return weights, nil
}
