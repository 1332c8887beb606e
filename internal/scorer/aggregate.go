package scorer

// Aggregate averages the scores of several scorers. Used when more than one
// expensive final scorer is enabled at once.
type Aggregate struct {
	scorers []Scorer
}

// NewAggregate builds a mean aggregate. At least one scorer is required.
func NewAggregate(scorers ...Scorer) *Aggregate {
	if len(scorers) == 0 {
		panic("aggregate requires at least one scorer")
	}
	return &Aggregate{scorers: scorers}
}

func (a *Aggregate) Score(src, tgt string) float64 {
	total := 0.0
	for _, s := range a.scorers {
		total += s.Score(src, tgt)
	}
	return total / float64(len(a.scorers))
}
