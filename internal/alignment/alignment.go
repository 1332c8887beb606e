package alignment

import (
	"fmt"

	"parmine/internal/services"
)

// Match aligns one or more source segments with one or more target segments
// at a score. Scores are comparable only within one document pair.
type Match struct {
	SourceSegments []string
	TargetSegments []string
	Score          float64
}

// Alignment is the set of matches between one source document and its
// translation.
type Alignment struct {
	SourceID      string
	TranslationID string
	Matches       []Match
}

// New creates an empty alignment for a document pair.
func New(sourceID, translationID string) *Alignment {
	return &Alignment{SourceID: sourceID, TranslationID: translationID}
}

// Add appends a match record.
func (a *Alignment) Add(sourceSegs, targetSegs []string, score float64) {
	a.Matches = append(a.Matches, Match{
		SourceSegments: sourceSegs,
		TargetSegments: targetSegs,
		Score:          score,
	})
}

// Validate checks mutual exclusivity: no segment id may appear in more than
// one match on either side.
func (a *Alignment) Validate() error {
	seenSource := make(map[string]struct{})
	seenTarget := make(map[string]struct{})
	for _, match := range a.Matches {
		for _, id := range match.SourceSegments {
			if _, dup := seenSource[id]; dup {
				return services.Wrap(services.ErrData, "alignment", "validate",
					fmt.Sprintf("%s x %s: source segment %s matched twice", a.SourceID, a.TranslationID, id), nil)
			}
			seenSource[id] = struct{}{}
		}
		for _, id := range match.TargetSegments {
			if _, dup := seenTarget[id]; dup {
				return services.Wrap(services.ErrData, "alignment", "validate",
					fmt.Sprintf("%s x %s: target segment %s matched twice", a.SourceID, a.TranslationID, id), nil)
			}
			seenTarget[id] = struct{}{}
		}
	}
	return nil
}
