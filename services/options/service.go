// Package options serves the static choice catalogs dialogs render as
// pickers: indicator names, quote pairings and candle timeframes.
package options

// Category selects one catalog.
type Category string

const (
	CategoryIndicators Category = "indicators"
	CategoryPairings   Category = "pairings"
	CategoryTimeframes Category = "timeframes"
)

// Service exposes the option catalogs to dialogs.
type Service interface {
	Options(category Category) []string
}

// StaticService holds the built-in catalogs. Values never change at
// runtime, so there is no locking.
type StaticService struct {
	catalogs map[Category][]string
}

// NewStaticService builds the default catalog set.
func NewStaticService() *StaticService {
	return &StaticService{
		catalogs: map[Category][]string{
			CategoryIndicators: {
				"RSI",
				"MACD",
				"EMA Cross",
				"Bollinger",
				"Volume Spike",
				"Stochastic",
			},
			CategoryPairings: {
				"USDT",
				"USDC",
				"BTC",
				"ETH",
			},
			CategoryTimeframes: {
				"5m",
				"15m",
				"1h",
				"4h",
				"1d",
			},
		},
	}
}

// Options returns a copy of the catalog for the category; unknown
// categories yield an empty slice.
func (s *StaticService) Options(category Category) []string {
	src := s.catalogs[category]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
