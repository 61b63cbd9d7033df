package market

import (
	"sort"
	"strings"
)

// similarity grades how closely b matches a: equal 1.0, prefix 0.9,
// substring 0.7, anything else 0.3. Case-insensitive, trimmed.
func similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == b:
		return 1.0
	case strings.HasPrefix(b, a):
		return 0.9
	case strings.Contains(b, a):
		return 0.7
	default:
		return 0.3
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// score computes one candidate's ranking score:
//
//	max(sim(q,symbol)*2, sim(q,id), sim(q,name)) + exactBonus + rankBonus
//
// where exactBonus is 3 for an exact symbol match, else 2 for an exact id
// match, else 1 for an exact name match; rankBonus is 1/(1+rank) when the
// market-cap rank is known.
func score(query string, c Candidate) float64 {
	base := similarity(query, c.Symbol) * 2
	if s := similarity(query, c.ID); s > base {
		base = s
	}
	if s := similarity(query, c.Name); s > base {
		base = s
	}

	var exact float64
	switch {
	case equalFold(query, c.Symbol):
		exact = 3
	case equalFold(query, c.ID):
		exact = 2
	case equalFold(query, c.Name):
		exact = 1
	}

	var rankBonus float64
	if c.HasRank() {
		rankBonus = 1 / (1 + float64(c.Rank))
	}

	return base + exact + rankBonus
}

// Rank scores candidates against the query and orders them best first.
// Ties break by ascending market-cap rank; candidates without a known rank
// sort after ranked ones.
func Rank(query string, candidates []Candidate) []Scored {
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Scored{Candidate: c, Score: score(query, c)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ri, rj := out[i].Rank, out[j].Rank
		switch {
		case ri > 0 && rj > 0:
			return ri < rj
		case ri > 0:
			return true
		case rj > 0:
			return false
		default:
			return false
		}
	})
	return out
}

// AutoSelect applies the confidence threshold: when the best result scores
// at or above it, the search resolves without manual selection.
func AutoSelect(results []Scored, threshold float64) (Scored, bool) {
	if len(results) == 0 {
		return Scored{}, false
	}
	if results[0].Score >= threshold {
		return results[0], true
	}
	return Scored{}, false
}
