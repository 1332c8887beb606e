package scorer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Threshold constants shared by the cheap signals and the Unified scorer.
// Cheap signals vote by adding one of these to a running total; crossing
// mustAccept or mustReject short-circuits the remaining signals.
const (
	mustReject = -20.0
	mustAccept = +20.0
	mayReject  = -1.0
	mayAccept  = +1.0
	notSure    = 0.0
)

// Sentinel scores emitted when the cheap signals decide on their own.
const (
	finalPosScore = 1.0
	finalNegScore = -1.0
)

// Length ratios outside [1/3, 3] are considered incompatible.
const (
	ratioLow  = 0.33
	ratioHigh = 3.0
)

// copyPatterns extract tokens expected to survive translation verbatim:
// digit runs and URLs.
var copyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+`),
	regexp.MustCompile(`https?://[^ ]+`),
}

// charLenScore rejects pairs whose character counts are wildly mismatched.
// The strict variant: an out-of-band ratio is an outright reject, not a lean.
func charLenScore(src, tgt string) float64 {
	ratio := float64(1+utf8.RuneCountInString(src)) / float64(1+utf8.RuneCountInString(tgt))
	if ratio >= ratioLow && ratio <= ratioHigh {
		return notSure
	}
	return mustReject
}

// tokLenScore applies the same ratio test to whitespace token counts.
func tokLenScore(src, tgt string) float64 {
	ratio := float64(1+len(strings.Fields(src))) / float64(1+len(strings.Fields(tgt)))
	if ratio >= ratioLow && ratio <= ratioHigh {
		return notSure
	}
	return mustReject
}

// copyScore checks, per pattern, that both sides carry the same set of copy
// tokens. A mismatched set is strong counter-evidence; an equal non-empty set
// is strong evidence proportional to the number of matches. Zero matches on
// both sides contribute nothing.
func copyScore(src, tgt string) float64 {
	score := 0.0
	for _, pattern := range copyPatterns {
		srcToks := matchSet(pattern, src)
		tgtToks := matchSet(pattern, tgt)
		if !sameSet(srcToks, tgtToks) {
			score += mustReject
			continue
		}
		score += mustAccept * float64(len(srcToks))
	}
	return score
}

// asciiRatioScore compares counts of non-alphabetic characters below U+0100,
// a proxy for shared punctuation and numeral density across scripts.
func asciiRatioScore(src, tgt string) float64 {
	srcCount := 1.0 + float64(countNonAlphaLatin1(src))
	tgtCount := 1.0 + float64(countNonAlphaLatin1(tgt))
	ratio := srcCount / tgtCount
	if ratio >= ratioLow && ratio <= ratioHigh {
		return mayAccept
	}
	return mustReject
}

func countNonAlphaLatin1(s string) int {
	count := 0
	for _, r := range s {
		if r < 256 && !unicode.IsLetter(r) {
			count++
		}
	}
	return count
}

func matchSet(pattern *regexp.Regexp, s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, match := range pattern.FindAllString(s, -1) {
		set[match] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}
	return true
}
