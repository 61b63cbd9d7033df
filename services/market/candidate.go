// Package market provides asset search: a static coin catalog behind the
// SearchService boundary, and the fuzzy ranker that orders candidates
// against a free-text query.
package market

// Candidate is one searchable asset. MarketCapRank is 1-based; 0 means the
// rank is unknown and sorts last on ties.
type Candidate struct {
	ID     string
	Symbol string
	Name   string
	Rank   int
}

// HasRank reports whether the market-cap rank is known.
func (c Candidate) HasRank() bool { return c.Rank > 0 }

// Scored pairs a candidate with its ranking score.
type Scored struct {
	Candidate
	Score float64
}
