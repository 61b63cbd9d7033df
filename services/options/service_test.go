package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCatalogs(t *testing.T) {
	svc := NewStaticService()

	require.NotEmpty(t, svc.Options(CategoryIndicators))
	require.NotEmpty(t, svc.Options(CategoryPairings))
	require.NotEmpty(t, svc.Options(CategoryTimeframes))

	assert.Contains(t, svc.Options(CategoryIndicators), "RSI")
	assert.Contains(t, svc.Options(CategoryTimeframes), "1h")
}

func TestUnknownCategoryIsEmpty(t *testing.T) {
	svc := NewStaticService()
	assert.Empty(t, svc.Options(Category("nope")))
}

func TestOptionsReturnsCopy(t *testing.T) {
	svc := NewStaticService()

	got := svc.Options(CategoryPairings)
	got[0] = "mutated"
	assert.NotEqual(t, got[0], svc.Options(CategoryPairings)[0])
}
