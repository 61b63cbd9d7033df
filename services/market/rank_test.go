package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankExactSymbolBeatsNameSubstring(t *testing.T) {
	candidates := []Candidate{
		{ID: "btcish-token", Symbol: "BTK", Name: "Something btc flavored", Rank: 40},
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Rank: 1},
	}

	out := Rank("btc", candidates)
	require.Len(t, out, 2)
	assert.Equal(t, "bitcoin", out[0].ID)
	assert.Greater(t, out[0].Score, out[1].Score)
}

func TestRankExactSymbolScore(t *testing.T) {
	out := Rank("btc", []Candidate{{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Rank: 1}})
	require.Len(t, out, 1)
	// sim(symbol)=1.0*2 + exact symbol 3 + 1/(1+1).
	assert.InDelta(t, 5.5, out[0].Score, 1e-9)
}

func TestRankHigherCapWinsOnEqualTextMatch(t *testing.T) {
	candidates := []Candidate{
		{ID: "beta", Symbol: "ZZB", Name: "Beta", Rank: 20},
		{ID: "alpha", Symbol: "ZZA", Name: "Alpha", Rank: 5},
	}

	out := Rank("nomatch", candidates)
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0].ID, "rank bonus favors the higher-cap asset")
}

func TestRankUnknownRankSortsLast(t *testing.T) {
	candidates := []Candidate{
		{ID: "mystery", Symbol: "ZZZ", Name: "Mystery"},
		{ID: "ranked", Symbol: "ZZY", Name: "Ranked", Rank: 100},
	}

	out := Rank("nomatch", candidates)
	require.Len(t, out, 2)
	assert.Equal(t, "ranked", out[0].ID)
}

func TestRankIsDeterministic(t *testing.T) {
	first := Rank("eth", catalog)
	for i := 0; i < 5; i++ {
		again := Rank("eth", catalog)
		require.Equal(t, first, again)
	}
	assert.Equal(t, "ethereum", first[0].ID)
}

func TestAutoSelectThreshold(t *testing.T) {
	confident := []Scored{{Candidate: Candidate{ID: "bitcoin"}, Score: 3.0}}
	picked, ok := AutoSelect(confident, 2.5)
	require.True(t, ok)
	assert.Equal(t, "bitcoin", picked.ID)

	vague := []Scored{{Candidate: Candidate{ID: "bitcoin"}, Score: 1.0}}
	_, ok = AutoSelect(vague, 2.5)
	assert.False(t, ok)

	_, ok = AutoSelect(nil, 2.5)
	assert.False(t, ok)
}

func TestSimilarityGrades(t *testing.T) {
	assert.Equal(t, 1.0, similarity("BTC", "btc"))
	assert.Equal(t, 0.9, similarity("bit", "Bitcoin"))
	assert.Equal(t, 0.7, similarity("coin", "Bitcoin"))
	assert.Equal(t, 0.3, similarity("xyz", "Bitcoin"))
}
