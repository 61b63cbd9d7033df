package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSearchSubstring(t *testing.T) {
	svc := NewCatalogService()

	out, err := svc.Search(context.Background(), "bitcoin")
	require.NoError(t, err)

	ids := make([]string, 0, len(out))
	for _, c := range out {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "bitcoin")
	assert.Contains(t, ids, "wrapped-bitcoin")
}

func TestCatalogSearchTypoTolerance(t *testing.T) {
	svc := NewCatalogService()

	out, err := svc.Search(context.Background(), "btx")
	require.NoError(t, err)

	ids := make([]string, 0, len(out))
	for _, c := range out {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "bitcoin", "one edit away from BTC")
}

func TestCatalogSearchEmptyQuery(t *testing.T) {
	svc := NewCatalogService()

	_, err := svc.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestCatalogSearchNoHits(t *testing.T) {
	svc := NewCatalogService()

	out, err := svc.Search(context.Background(), "zzzzzzzz")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCatalogSearchCaches(t *testing.T) {
	svc := NewCatalogService()

	first, err := svc.Search(context.Background(), "SOL")
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), "sol")
	require.NoError(t, err)
	assert.Equal(t, first, second, "normalized query hits the same cache entry")
}

func TestCatalogGet(t *testing.T) {
	svc := NewCatalogService()

	c, ok := svc.Get(context.Background(), "ethereum")
	require.True(t, ok)
	assert.Equal(t, "ETH", c.Symbol)

	_, ok = svc.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestSearchThenRankFindsExactSymbolFirst(t *testing.T) {
	svc := NewCatalogService()

	out, err := svc.Search(context.Background(), "eth")
	require.NoError(t, err)
	require.NotEmpty(t, out)

	ranked := Rank("eth", out)
	assert.Equal(t, "ethereum", ranked[0].ID)
}
