package market

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	gocache "github.com/patrickmn/go-cache"

	"github.com/glennakiN/Buynoculars-sub000/core/logger"
)

// Service is the search boundary the dialogs depend on.
type Service interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	Get(ctx context.Context, id string) (Candidate, bool)
}

const (
	cacheTTL    = 5 * time.Minute
	cacheSweep  = 10 * time.Minute
	maxTypos    = 2
	logComp     = "service.market"
	maxQueryLen = 64
)

// CatalogService serves the static mock catalog. Per-query results are
// cached; the catalog itself never changes at runtime.
type CatalogService struct {
	catalog []Candidate
	byID    map[string]Candidate
	cache   *gocache.Cache
}

// NewCatalogService builds the default mock search service.
func NewCatalogService() *CatalogService {
	return NewCatalogServiceWith(catalog)
}

// NewCatalogServiceWith builds a search service over an explicit candidate
// set, used by tests and future live-data wiring.
func NewCatalogServiceWith(candidates []Candidate) *CatalogService {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	return &CatalogService{
		catalog: candidates,
		byID:    byID,
		cache:   gocache.New(cacheTTL, cacheSweep),
	}
}

// Get resolves a candidate by identifier.
func (s *CatalogService) Get(ctx context.Context, id string) (Candidate, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Search returns catalog entries matching the query: substring hits on
// symbol, identifier or name, plus near-miss symbols within two edits to
// absorb typos like "btx". The caller ranks the result.
func (s *CatalogService) Search(ctx context.Context, query string) ([]Candidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("market: empty query")
	}
	if len(q) > maxQueryLen {
		q = q[:maxQueryLen]
	}

	if hit, found := s.cache.Get(q); found {
		logger.Debug(ctx, logComp, "search.cache",
			slog.String("cache", "hit"),
			slog.String("payload", q),
		)
		return hit.([]Candidate), nil
	}

	start := time.Now()
	var out []Candidate
	for _, c := range s.catalog {
		if matches(q, c) {
			out = append(out, c)
		}
	}
	s.cache.Set(q, out, gocache.DefaultExpiration)

	logger.Debug(ctx, logComp, "search.scan",
		slog.String("status", "ok"),
		slog.String("cache", "miss"),
		slog.String("payload", q),
		slog.Int("count", len(out)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return out, nil
}

func matches(q string, c Candidate) bool {
	sym := strings.ToLower(c.Symbol)
	if strings.Contains(sym, q) ||
		strings.Contains(strings.ToLower(c.ID), q) ||
		strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	// Typo tolerance on the symbol only, and only once the query is long
	// enough that a two-edit budget doesn't match half the catalog.
	if len(q) < 3 {
		return false
	}
	return levenshtein.ComputeDistance(q, sym) <= maxTypos
}
