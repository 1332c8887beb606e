package embedding

import "math"

// BagOfWords returns the mean of the in-vocabulary word vectors for tokens,
// with per-word unit normalization when normalize is set, plus the token and
// out-of-vocabulary counts for OOV-ratio tracking.
//
// A sentence with zero in-vocabulary words falls back to the table's
// first-inserted vector instead of failing. The stand-in keeps the output
// shape stable for downstream cosine scoring.
func (t *Table) BagOfWords(tokens []string, normalize bool) (vec []float64, oov, total int) {
	sum := make([]float64, t.dimension)
	matched := 0
	for _, token := range tokens {
		total++
		vector, ok := t.vectors[token]
		if !ok {
			oov++
			continue
		}
		if normalize {
			vector = unit(vector)
		}
		add(sum, vector)
		matched++
	}
	if matched == 0 {
		fallback := t.vectors[t.firstWord]
		return append([]float64(nil), fallback...), oov, total
	}
	scale(sum, 1/float64(matched))
	return sum, oov, total
}

// BagOfWordsIDF returns the IDF-weighted mean over the unique-token set:
// the sum of weight-scaled vectors divided by the sum of weights. Tokens
// missing from either the vocabulary or the IDF table are ignored; the same
// zero-match fallback as BagOfWords applies.
func (t *Table) BagOfWordsIDF(tokens []string, idf map[string]float64) []float64 {
	seen := make(map[string]struct{}, len(tokens))
	sum := make([]float64, t.dimension)
	weightTotal := 0.0
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		vector, ok := t.vectors[token]
		if !ok {
			continue
		}
		weight, ok := idf[token]
		if !ok {
			continue
		}
		for i, v := range vector {
			sum[i] += v * weight
		}
		weightTotal += weight
	}
	if weightTotal == 0 {
		fallback := t.vectors[t.firstWord]
		return append([]float64(nil), fallback...)
	}
	scale(sum, 1/weightTotal)
	return sum
}

// Cosine returns the cosine similarity of two equal-length vectors, or 0 when
// either has zero norm.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func unit(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func add(dst, src []float64) {
	for i, x := range src {
		dst[i] += x
	}
}

func scale(v []float64, factor float64) {
	for i := range v {
		v[i] *= factor
	}
}
